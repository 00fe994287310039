package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// RevokedTokenRepository is the blacklist backing store. The unique index on
// the token string makes Revoke naturally idempotent, and the TTL index on
// expires_at keeps the collection bounded: an entry is only interesting
// while the token itself would still verify.
type RevokedTokenRepository struct {
	coll *mongo.Collection
}

func NewRevokedTokenRepository(db *mongo.Database) domain.RevokedTokenRepository {
	return &RevokedTokenRepository{coll: db.Collection(RevokedTokensCollection)}
}

func (r *RevokedTokenRepository) Revoke(ctx context.Context, entry *domain.RevokedToken) error {
	_, err := r.coll.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		// Already revoked. Same outcome, not an error.
		return nil
	}
	if err != nil {
		return serrors.NewStorageError("revoke token", err)
	}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, token string, now time.Time) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": now.UTC()},
	}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, serrors.NewStorageError("blacklist lookup", err)
	}
	return true, nil
}

func (r *RevokedTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now.UTC()}})
	if err != nil {
		return 0, serrors.NewStorageError("purge blacklist", err)
	}
	return res.DeletedCount, nil
}
