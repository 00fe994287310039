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

type NewsRepository struct {
	coll *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) domain.NewsRepository {
	return &NewsRepository{coll: db.Collection(NewsCollection)}
}

func (r *NewsRepository) Create(ctx context.Context, n *domain.News) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return serrors.NewStorageError("create news", err)
	}
	return nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id string) (*domain.News, error) {
	var n domain.News
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, serrors.ErrNotFound
	}
	if err != nil {
		return nil, serrors.NewStorageError("get news", err)
	}
	return &n, nil
}

func (r *NewsRepository) List(ctx context.Context, onlyPublished bool, category domain.NewsCategory, limit, offset int64) ([]*domain.News, error) {
	filter := bson.M{}
	if onlyPublished {
		filter["published"] = true
	}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, serrors.NewStorageError("list news", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.News
	if err := cursor.All(ctx, &items); err != nil {
		return nil, serrors.NewStorageError("decode news list", err)
	}
	return items, nil
}

func (r *NewsRepository) Update(ctx context.Context, n *domain.News) error {
	n.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": n.ID}, n)
	if err != nil {
		return serrors.NewStorageError("update news", err)
	}
	if res.MatchedCount == 0 {
		return serrors.ErrNotFound
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return serrors.NewStorageError("delete news", err)
	}
	if res.DeletedCount == 0 {
		return serrors.ErrNotFound
	}
	return nil
}

func (r *NewsRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return serrors.NewStorageError("increment views", err)
	}
	return nil
}

func (r *NewsRepository) CountPublished(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"published": true})
	if err != nil {
		return 0, serrors.NewStorageError("count news", err)
	}
	return n, nil
}
