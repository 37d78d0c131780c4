package facility

import (
	"context"
	"errors"
	"time"

	"go-datasync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrFacilityNotFound is returned for lookups of unknown facility ids.
var ErrFacilityNotFound = errors.New("facility not found")

type FacilityRepository interface {
	Create(ctx context.Context, f *Facility) error
	Get(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, filter ListFilter) ([]Facility, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	// UpdateWatermark is called by the sync orchestrator only.
	UpdateWatermark(ctx context.Context, id string, t time.Time) error
	Deactivate(ctx context.Context, id string) error
	DistinctTimezones(ctx context.Context) ([]string, error)
}

type FacilityRepositoryImpl struct {
	collection *mongo.Collection
}

func NewFacilityRepository(db *database.MongodbDB) FacilityRepository {
	return &FacilityRepositoryImpl{
		collection: db.DB.Collection("facilities"),
	}
}

func (r *FacilityRepositoryImpl) Create(ctx context.Context, f *Facility) error {
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, f)
	return err
}

func (r *FacilityRepositoryImpl) Get(ctx context.Context, id string) (*Facility, error) {
	var f Facility
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FacilityRepositoryImpl) List(ctx context.Context, filter ListFilter) ([]Facility, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["is_active"] = true
	}
	if filter.Timezone != "" {
		query["timezone"] = filter.Timezone
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var facilities []Facility
	if err = cursor.All(ctx, &facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

func (r *FacilityRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrFacilityNotFound
	}
	return nil
}

func (r *FacilityRepositoryImpl) UpdateWatermark(ctx context.Context, id string, t time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{"last_sync_time": t})
}

func (r *FacilityRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

func (r *FacilityRepositoryImpl) DistinctTimezones(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "timezone", bson.M{})
	if err != nil {
		return nil, err
	}
	timezones := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			timezones = append(timezones, s)
		}
	}
	return timezones, nil
}
