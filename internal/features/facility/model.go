package facility

import "time"

// Facility is a source facility reporting events in its own local clock.
// Facilities are never hard-deleted; deactivation preserves referential
// history in the sync operations log.
type Facility struct {
	ID           string     `json:"facility_id" bson:"_id"`
	Name         string     `json:"facility_name" bson:"name"`
	Timezone     string     `json:"facility_timezone" bson:"timezone"`
	Location     string     `json:"facility_location" bson:"location"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	LastSyncTime *time.Time `json:"last_sync_time" bson:"last_sync_time,omitempty"` // canonical clock watermark
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// ListFilter narrows facility listings.
type ListFilter struct {
	ActiveOnly bool
	Timezone   string
}

// GlobalOption is a predefined facility template offered to the
// registration form.
type GlobalOption struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Data Facility `json:"data"`
}
