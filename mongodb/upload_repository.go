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

type UploadRepository struct {
	coll *mongo.Collection
}

func NewUploadRepository(db *mongo.Database) domain.UploadRepository {
	return &UploadRepository{coll: db.Collection(UploadsCollection)}
}

func (r *UploadRepository) Create(ctx context.Context, u *domain.Upload) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		return serrors.NewStorageError("create upload", err)
	}
	return nil
}

func (r *UploadRepository) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	var u domain.Upload
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, serrors.ErrNotFound
	}
	if err != nil {
		return nil, serrors.NewStorageError("get upload", err)
	}
	return &u, nil
}

func (r *UploadRepository) ListByUploader(ctx context.Context, uploaderID string) ([]*domain.Upload, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"uploader_id": uploaderID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, serrors.NewStorageError("list uploads", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Upload
	if err := cursor.All(ctx, &items); err != nil {
		return nil, serrors.NewStorageError("decode upload list", err)
	}
	return items, nil
}
