package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"go-datasync/internal/features/registration"
	"go-datasync/internal/features/target"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pusher transfers a batch of records to a sync target. Implementations
// interpret the target's opaque connection string; nothing else does.
// Connectivity failures are reported as transient (retriable), data and
// permission failures as fatal.
type Pusher interface {
	Push(ctx context.Context, tgt *target.SyncTarget, records []registration.PatientRegistration) (int, error)
}

// PusherSet resolves the pusher for a target kind.
type PusherSet map[target.Kind]Pusher

func NewPusherSet() PusherSet {
	return PusherSet{
		target.KindWarehouse:   &WarehousePusher{},
		target.KindObjectStore: &ObjectStorePusher{},
		target.KindOther:       &DocumentStorePusher{},
	}
}

// For returns the pusher for a kind.
func (p PusherSet) For(kind target.Kind) (Pusher, error) {
	pusher, ok := p[kind]
	if !ok {
		return nil, fmt.Errorf("no pusher for target type %q", kind)
	}
	return pusher, nil
}

// WarehousePusher upserts records into a relational warehouse over the
// postgres wire protocol. The connection string is a postgres DSN.
type WarehousePusher struct{}

func (p *WarehousePusher) Push(ctx context.Context, tgt *target.SyncTarget, records []registration.PatientRegistration) (int, error) {
	db, err := sql.Open("postgres", tgt.ConnectionString)
	if err != nil {
		return 0, Transient(fmt.Errorf("failed to connect to warehouse: %w", err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, Transient(fmt.Errorf("failed to ping warehouse: %w", err))
	}

	const query = `
		INSERT INTO patient_registrations (
			patient_id, registration_id, full_name, date_of_birth,
			contact_number, email, facility_id, registration_timezone,
			local_time, canonical_time, source_utc
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (patient_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			contact_number = EXCLUDED.contact_number,
			email = EXCLUDED.email,
			canonical_time = EXCLUDED.canonical_time,
			source_utc = EXCLUDED.source_utc`

	count := 0
	for _, rec := range records {
		if _, err := db.ExecContext(ctx, query,
			rec.PatientID, rec.RegistrationID, rec.FullName, rec.DateOfBirth,
			rec.ContactNumber, rec.Email, rec.FacilityID, rec.Timezone,
			rec.LocalTime, rec.CanonicalTime, rec.SourceUTC,
		); err != nil {
			if ctx.Err() != nil {
				return count, ctx.Err()
			}
			return count, fmt.Errorf("failed to upsert record %s: %w", rec.PatientID, err)
		}
		count++
	}
	return count, nil
}

// DocumentStorePusher bulk-upserts records into an external document
// store. The connection string is a mongodb URI of the form
// mongodb://host:port/database.
type DocumentStorePusher struct{}

func (p *DocumentStorePusher) Push(ctx context.Context, tgt *target.SyncTarget, records []registration.PatientRegistration) (int, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(tgt.ConnectionString))
	if err != nil {
		return 0, Transient(fmt.Errorf("failed to connect to document store: %w", err))
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		return 0, Transient(fmt.Errorf("failed to reach document store: %w", err))
	}

	collection := client.Database("datasync").Collection("patient_registrations")

	var writes []mongo.WriteModel
	for _, rec := range records {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": rec.PatientID}).
			SetReplacement(rec).
			SetUpsert(true))
	}
	if len(writes) == 0 {
		return 0, nil
	}

	res, err := collection.BulkWrite(ctx, writes)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("failed to bulk write to document store: %w", err)
	}
	return int(res.UpsertedCount + res.ModifiedCount + res.MatchedCount), nil
}

// ObjectStorePusher appends records as JSON lines to the object path named
// by the connection string.
type ObjectStorePusher struct{}

func (p *ObjectStorePusher) Push(ctx context.Context, tgt *target.SyncTarget, records []registration.PatientRegistration) (int, error) {
	f, err := os.OpenFile(tgt.ConnectionString, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		// Bad paths and permission problems do not heal on retry.
		return 0, fmt.Errorf("failed to open object %s: %w", tgt.ConnectionString, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	count := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := enc.Encode(rec); err != nil {
			return count, fmt.Errorf("failed to write record %s: %w", rec.PatientID, err)
		}
		count++
	}
	return count, nil
}
