package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abhishek200416/p2/internal/apperr"
	"github.com/Abhishek200416/p2/internal/models"
)

// ErrDuplicateEmail reports an insert that hit the unique email index.
var ErrDuplicateEmail = fmt.Errorf("%w: email already subscribed", apperr.ErrValidation)

type SubscriberRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	Create(ctx context.Context, s *models.Subscriber) error
	ListAll(ctx context.Context) ([]models.Subscriber, error)
	Count(ctx context.Context) (int64, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *models.Feedback) error
	ListAll(ctx context.Context) ([]models.Feedback, error)
	Count(ctx context.Context) (int64, error)
	ListSince(ctx context.Context, since time.Time) ([]models.Feedback, error)
}

type ContactRepository interface {
	Create(ctx context.Context, c *models.Contact) error
	ListAll(ctx context.Context) ([]models.Contact, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type mongoSubscriberRepo struct {
	col *mongo.Collection
}

// NewMongoSubscriberRepo creates the repo and enforces subscription dedup
// at the storage layer with a unique index on email, so concurrent
// subscribes of the same address cannot produce duplicate rows.
func NewMongoSubscriberRepo(db *mongo.Database) SubscriberRepository {
	col := db.Collection("subscribers")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoSubscriberRepo{col: col}
}

func (r *mongoSubscriberRepo) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var s models.Subscriber
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return &s, nil
}

func (r *mongoSubscriberRepo) Create(ctx context.Context, s *models.Subscriber) error {
	_, err := r.col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (r *mongoSubscriberRepo) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	var subs []models.Subscriber
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return subs, nil
}

func (r *mongoSubscriberRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return n, nil
}

type mongoFeedbackRepo struct {
	col *mongo.Collection
}

func NewMongoFeedbackRepo(db *mongo.Database) FeedbackRepository {
	return &mongoFeedbackRepo{col: db.Collection("feedback")}
}

func (r *mongoFeedbackRepo) Create(ctx context.Context, f *models.Feedback) error {
	_, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (r *mongoFeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	var list []models.Feedback
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return list, nil
}

func (r *mongoFeedbackRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return n, nil
}

func (r *mongoFeedbackRepo) ListSince(ctx context.Context, since time.Time) ([]models.Feedback, error) {
	cursor, err := r.col.Find(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	var list []models.Feedback
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return list, nil
}

type mongoContactRepo struct {
	col *mongo.Collection
}

func NewMongoContactRepo(db *mongo.Database) ContactRepository {
	return &mongoContactRepo{col: db.Collection("contacts")}
}

func (r *mongoContactRepo) Create(ctx context.Context, c *models.Contact) error {
	_, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (r *mongoContactRepo) ListAll(ctx context.Context) ([]models.Contact, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	var list []models.Contact
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return list, nil
}

func (r *mongoContactRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return n, nil
}

func (r *mongoContactRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return n, nil
}
