package sync

import "time"

// OperationStatus is the state of one sync attempt.
// PENDING -> RUNNING -> SUCCESS | FAILED; terminal rows are never reopened.
type OperationStatus string

const (
	StatusPending OperationStatus = "PENDING"
	StatusRunning OperationStatus = "RUNNING"
	StatusSuccess OperationStatus = "SUCCESS"
	StatusFailed  OperationStatus = "FAILED"
)

// Terminal reports whether the status is final.
func (s OperationStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// OperationKind distinguishes manual triggers from scheduler ticks.
type OperationKind string

const (
	KindManual    OperationKind = "MANUAL"
	KindScheduled OperationKind = "SCHEDULED"
)

// OperationLog is one row of the sync operations log: exactly one attempt
// for a (facility, target) pair. Retries append new rows for the same pair;
// a finished row is immutable.
type OperationLog struct {
	ID               string          `json:"log_id" bson:"_id"`
	SourceFacilityID string          `json:"source_facility_id" bson:"source_facility_id"`
	TargetID         string          `json:"target_id" bson:"target_id"`
	Kind             OperationKind   `json:"operation_type" bson:"operation_type"`
	Attempt          int             `json:"attempt" bson:"attempt"` // 1-based within a trigger
	RecordCount      int             `json:"record_count" bson:"record_count"`
	LagSeconds       float64         `json:"lag_seconds" bson:"lag_seconds"`
	Status           OperationStatus `json:"status" bson:"status"`
	StartedAt        time.Time       `json:"sync_started_at" bson:"started_at"`
	CompletedAt      *time.Time      `json:"sync_completed_at,omitempty" bson:"completed_at,omitempty"`
	DurationSeconds  float64         `json:"duration_seconds" bson:"duration_seconds"`
	ErrorMessage     string          `json:"error_message,omitempty" bson:"error_message,omitempty"`
	CreatedBy        string          `json:"created_by_user" bson:"created_by"`
}

// LogFilter narrows log listings.
type LogFilter struct {
	FacilityID string
	TargetID   string
	Status     OperationStatus
	Kind       OperationKind
	From       time.Time // canonical window start, inclusive
	To         time.Time // canonical window end, exclusive
	Limit      int64
}

// TriggerResult is the synchronous acceptance of a trigger request; the
// attempt itself completes asynchronously and is observable via the log.
type TriggerResult struct {
	LogID  string          `json:"log_id"`
	Status OperationStatus `json:"status"`
}
