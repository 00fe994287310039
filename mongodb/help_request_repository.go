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

type HelpRequestRepository struct {
	coll *mongo.Collection
}

func NewHelpRequestRepository(db *mongo.Database) domain.HelpRequestRepository {
	return &HelpRequestRepository{coll: db.Collection(HelpRequestsCollection)}
}

func (r *HelpRequestRepository) Create(ctx context.Context, req *domain.HelpRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return serrors.NewStorageError("create help request", err)
	}
	return nil
}

func (r *HelpRequestRepository) GetByID(ctx context.Context, id string) (*domain.HelpRequest, error) {
	var req domain.HelpRequest
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, serrors.ErrNotFound
	}
	if err != nil {
		return nil, serrors.NewStorageError("get help request", err)
	}
	return &req, nil
}

func (r *HelpRequestRepository) ListByDepartment(ctx context.Context, dept domain.Department, status domain.HelpRequestStatus, limit, offset int64) ([]*domain.HelpRequest, error) {
	filter := bson.M{"department": dept}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, serrors.NewStorageError("list help requests", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.HelpRequest
	if err := cursor.All(ctx, &items); err != nil {
		return nil, serrors.NewStorageError("decode help request list", err)
	}
	return items, nil
}

func (r *HelpRequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.HelpRequest, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, serrors.NewStorageError("list user help requests", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.HelpRequest
	if err := cursor.All(ctx, &items); err != nil {
		return nil, serrors.NewStorageError("decode help request list", err)
	}
	return items, nil
}

func (r *HelpRequestRepository) Update(ctx context.Context, req *domain.HelpRequest) error {
	req.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return serrors.NewStorageError("update help request", err)
	}
	if res.MatchedCount == 0 {
		return serrors.ErrNotFound
	}
	return nil
}

// CountOpenByDepartment aggregates non-terminal requests per department.
func (r *HelpRequestRepository) CountOpenByDepartment(ctx context.Context) (map[domain.Department]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": bson.M{"$in": bson.A{
				domain.HelpRequestPending,
				domain.HelpRequestAssigned,
				domain.HelpRequestInProgress,
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$department",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, serrors.NewStorageError("aggregate help requests", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Department domain.Department `bson:"_id"`
		Count      int64             `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, serrors.NewStorageError("decode aggregation", err)
	}

	counts := make(map[domain.Department]int64, len(rows))
	for _, row := range rows {
		counts[row.Department] = row.Count
	}
	return counts, nil
}
