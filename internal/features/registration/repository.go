package registration

import (
	"context"
	"time"

	"go-datasync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *PatientRegistration) error
	List(ctx context.Context, canonicalDate string, limit int64) ([]PatientRegistration, error)
	// ListSince returns a facility's registrations with a canonical
	// timestamp strictly after the given watermark, oldest first.
	ListSince(ctx context.Context, facilityID string, since time.Time) ([]PatientRegistration, error)
	CountByFacility(ctx context.Context) (map[string]int, error)
	Count(ctx context.Context) (int64, error)
}

type RegistrationRepositoryImpl struct {
	collection *mongo.Collection
}

func NewRegistrationRepository(db *database.MongodbDB) RegistrationRepository {
	return &RegistrationRepositoryImpl{
		collection: db.DB.Collection("patient_registrations"),
	}
}

func (r *RegistrationRepositoryImpl) Create(ctx context.Context, reg *PatientRegistration) error {
	reg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, reg)
	return err
}

func (r *RegistrationRepositoryImpl) List(ctx context.Context, canonicalDate string, limit int64) ([]PatientRegistration, error) {
	query := bson.M{}
	if canonicalDate != "" {
		dayStart, err := time.Parse("2006-01-02", canonicalDate)
		if err != nil {
			return nil, err
		}
		query["canonical_time"] = bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.Add(24 * time.Hour),
		}
	}

	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.D{{Key: "canonical_time", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var regs []PatientRegistration
	if err = cursor.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *RegistrationRepositoryImpl) ListSince(ctx context.Context, facilityID string, since time.Time) ([]PatientRegistration, error) {
	query := bson.M{
		"facility_id":    facilityID,
		"canonical_time": bson.M{"$gt": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "canonical_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var regs []PatientRegistration
	if err = cursor.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *RegistrationRepositoryImpl) CountByFacility(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$facility_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			FacilityID string `bson:"_id"`
			Count      int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.FacilityID] = row.Count
	}
	return counts, cursor.Err()
}

func (r *RegistrationRepositoryImpl) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
