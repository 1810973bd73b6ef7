package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abhishek200416/p2/internal/apperr"
	"github.com/Abhishek200416/p2/internal/models"
)

type StatusRepository interface {
	Create(ctx context.Context, s *models.StatusCheck) error
	ListAll(ctx context.Context) ([]models.StatusCheck, error)
}

type mongoStatusRepo struct {
	col *mongo.Collection
}

func NewMongoStatusRepo(db *mongo.Database) StatusRepository {
	return &mongoStatusRepo{col: db.Collection("status_checks")}
}

func (r *mongoStatusRepo) Create(ctx context.Context, s *models.StatusCheck) error {
	_, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (r *mongoStatusRepo) ListAll(ctx context.Context) ([]models.StatusCheck, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	var list []models.StatusCheck
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return list, nil
}
