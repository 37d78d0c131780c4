package sync

import (
	"context"
	"errors"
	"time"

	"go-datasync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrOperationNotFound is returned for lookups of unknown log ids.
var ErrOperationNotFound = errors.New("sync operation not found")

// OperationLogRepository is the append-only store for operation rows.
// Rows transition PENDING -> RUNNING -> terminal through SetRunning and
// Finalize; a finalized row is never written again.
type OperationLogRepository interface {
	Create(ctx context.Context, log *OperationLog) error
	Get(ctx context.Context, id string) (*OperationLog, error)
	SetRunning(ctx context.Context, id string, at time.Time) error
	Finalize(ctx context.Context, log *OperationLog) error
	List(ctx context.Context, filter LogFilter) ([]OperationLog, error)
}

type OperationLogRepositoryImpl struct {
	collection *mongo.Collection
}

func NewOperationLogRepository(db *database.MongodbDB) OperationLogRepository {
	return &OperationLogRepositoryImpl{
		collection: db.DB.Collection("sync_operations"),
	}
}

func (r *OperationLogRepositoryImpl) Create(ctx context.Context, log *OperationLog) error {
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

func (r *OperationLogRepositoryImpl) Get(ctx context.Context, id string) (*OperationLog, error) {
	var log OperationLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOperationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *OperationLogRepositoryImpl) SetRunning(ctx context.Context, id string, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": StatusPending},
		bson.M{"$set": bson.M{"status": StatusRunning, "started_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOperationNotFound
	}
	return nil
}

func (r *OperationLogRepositoryImpl) Finalize(ctx context.Context, log *OperationLog) error {
	res, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": log.ID, "status": StatusRunning},
		log,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOperationNotFound
	}
	return nil
}

func (r *OperationLogRepositoryImpl) List(ctx context.Context, filter LogFilter) ([]OperationLog, error) {
	query := bson.M{}
	if filter.FacilityID != "" {
		query["source_facility_id"] = filter.FacilityID
	}
	if filter.TargetID != "" {
		query["target_id"] = filter.TargetID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Kind != "" {
		query["operation_type"] = filter.Kind
	}
	window := bson.M{}
	if !filter.From.IsZero() {
		window["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		window["$lt"] = filter.To
	}
	if len(window) > 0 {
		query["started_at"] = window
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []OperationLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
