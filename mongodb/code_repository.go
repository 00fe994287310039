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

// OneTimeCodeRepository persists login codes in MongoDB. A TTL index on
// expires_at reclaims expired documents server-side, so no code record
// outlives its expiry by more than the server's sweep interval.
type OneTimeCodeRepository struct {
	coll *mongo.Collection
}

func NewOneTimeCodeRepository(db *mongo.Database) domain.OneTimeCodeRepository {
	return &OneTimeCodeRepository{coll: db.Collection(OneTimeCodesCollection)}
}

func (r *OneTimeCodeRepository) DeleteUnconsumed(ctx context.Context, email string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"email": email, "consumed": false})
	if err != nil {
		return serrors.NewStorageError("delete unconsumed codes", err)
	}
	return nil
}

func (r *OneTimeCodeRepository) Store(ctx context.Context, code *domain.OneTimeCode) error {
	if _, err := r.coll.InsertOne(ctx, code); err != nil {
		return serrors.NewStorageError("store code", err)
	}
	return nil
}

// Consume flips the consumed flag on the matching live code in a single
// FindOneAndUpdate, so two racing verify calls can never both succeed: the
// update's filter requires consumed=false and only one document mutation
// wins. Every non-match (wrong code, expired, consumed, never issued) comes
// back as the same ErrNotFound.
func (r *OneTimeCodeRepository) Consume(ctx context.Context, email, code string, now time.Time) error {
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{
			"email":      email,
			"code":       code,
			"consumed":   false,
			"expires_at": bson.M{"$gt": now.UTC()},
		},
		bson.M{"$set": bson.M{"consumed": true}},
	).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return serrors.ErrNotFound
	}
	if err != nil {
		return serrors.NewStorageError("consume code", err)
	}
	return nil
}

func (r *OneTimeCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now.UTC()}})
	if err != nil {
		return 0, serrors.NewStorageError("delete expired codes", err)
	}
	return res.DeletedCount, nil
}
