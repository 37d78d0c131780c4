package registration

import "time"

// PatientRegistration is an ingested event record. The two derived
// timestamps are computed exactly once at ingestion and never edited
// afterwards.
type PatientRegistration struct {
	PatientID      string `json:"patient_id" bson:"_id"`
	RegistrationID string `json:"registration_id" bson:"registration_id"`
	FullName       string `json:"full_name" bson:"full_name"`
	DateOfBirth    string `json:"date_of_birth" bson:"date_of_birth"`
	ContactNumber  string `json:"contact_number" bson:"contact_number"`
	Email          string `json:"email,omitempty" bson:"email,omitempty"`
	FacilityID     string `json:"facility_id" bson:"facility_id"`

	// Timezone and LocalTime are stored exactly as received.
	Timezone  string `json:"registration_timezone" bson:"timezone"`
	LocalTime string `json:"registration_local_time" bson:"local_time"`

	// CanonicalTime is the registration expressed in the reporting frame
	// (IST); SourceUTC is the UTC instant it occurred at. Write-once.
	CanonicalTime time.Time `json:"registration_ist_time" bson:"canonical_time"`
	SourceUTC     time.Time `json:"source_utc_time" bson:"source_utc"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// RegisterInput is the ingestion boundary payload.
type RegisterInput struct {
	FullName      string `json:"full_name"`
	DateOfBirth   string `json:"date_of_birth"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	FacilityID    string `json:"registration_facility"`
	Timezone      string `json:"local_time_zone"`
	LocalTime     string `json:"local_registration_time"`
}
