package target

import (
	"context"
	"errors"
	"time"

	"go-datasync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrTargetNotFound is returned for lookups of unknown target ids.
var ErrTargetNotFound = errors.New("sync target not found")

type TargetRepository interface {
	Create(ctx context.Context, t *SyncTarget) error
	Get(ctx context.Context, id string) (*SyncTarget, error)
	List(ctx context.Context, filter ListFilter) ([]SyncTarget, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	// UpdateWatermark is called by the sync orchestrator only.
	UpdateWatermark(ctx context.Context, id string, t time.Time) error
	Deactivate(ctx context.Context, id string) error
}

type TargetRepositoryImpl struct {
	collection *mongo.Collection
}

func NewTargetRepository(db *database.MongodbDB) TargetRepository {
	return &TargetRepositoryImpl{
		collection: db.DB.Collection("sync_targets"),
	}
}

func (r *TargetRepositoryImpl) Create(ctx context.Context, t *SyncTarget) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, t)
	return err
}

func (r *TargetRepositoryImpl) Get(ctx context.Context, id string) (*SyncTarget, error) {
	var t SyncTarget
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TargetRepositoryImpl) List(ctx context.Context, filter ListFilter) ([]SyncTarget, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var targets []SyncTarget
	if err = cursor.All(ctx, &targets); err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *TargetRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTargetNotFound
	}
	return nil
}

func (r *TargetRepositoryImpl) UpdateWatermark(ctx context.Context, id string, t time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{"last_sync_time": t})
}

func (r *TargetRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}
