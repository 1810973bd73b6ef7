package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abhishek200416/p2/internal/apperr"
	"github.com/Abhishek200416/p2/internal/models"
)

// currentType is the fixed discriminator: at most one document carries it.
const currentType = "current"

type ContentRepository interface {
	// GetCurrent returns the current document, or nil when none exists.
	GetCurrent(ctx context.Context) (models.ContentDocument, error)
	// ReplaceCurrent upserts the single current document wholesale.
	ReplaceCurrent(ctx context.Context, doc models.ContentDocument) error
}

type mongoContentRepo struct {
	col *mongo.Collection
}

func NewMongoContentRepo(db *mongo.Database) ContentRepository {
	return &mongoContentRepo{col: db.Collection("portfolio_content")}
}

func (r *mongoContentRepo) GetCurrent(ctx context.Context) (models.ContentDocument, error) {
	var doc bson.M
	err := r.col.FindOne(ctx, bson.M{"type": currentType}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	delete(doc, "_id")
	delete(doc, "type")
	return models.ContentDocument(doc), nil
}

func (r *mongoContentRepo) ReplaceCurrent(ctx context.Context, doc models.ContentDocument) error {
	stored := bson.M(doc)
	stored["type"] = currentType
	_, err := r.col.ReplaceOne(ctx, bson.M{"type": currentType}, stored, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return nil
}
