package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) domain.FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(FeedbackCollection)}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return serrors.NewStorageError("create feedback", err)
	}
	return nil
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	var f domain.Feedback
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, serrors.ErrNotFound
	}
	if err != nil {
		return nil, serrors.NewStorageError("get feedback", err)
	}
	return &f, nil
}

func (r *FeedbackRepository) ListByNews(ctx context.Context, newsID string) ([]*domain.Feedback, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"news_id": newsID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, serrors.NewStorageError("list feedback", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Feedback
	if err := cursor.All(ctx, &items); err != nil {
		return nil, serrors.NewStorageError("decode feedback list", err)
	}
	return items, nil
}

func (r *FeedbackRepository) ListByStatus(ctx context.Context, status domain.FeedbackStatus, limit, offset int64) ([]*domain.Feedback, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, serrors.NewStorageError("list feedback by status", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Feedback
	if err := cursor.All(ctx, &items); err != nil {
		return nil, serrors.NewStorageError("decode feedback list", err)
	}
	return items, nil
}

func (r *FeedbackRepository) Update(ctx context.Context, f *domain.Feedback) error {
	f.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		return serrors.NewStorageError("update feedback", err)
	}
	if res.MatchedCount == 0 {
		return serrors.ErrNotFound
	}
	return nil
}

func (r *FeedbackRepository) CountByStatus(ctx context.Context, status domain.FeedbackStatus) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, serrors.NewStorageError("count feedback", err)
	}
	return n, nil
}
