package target

import "time"

// Kind enumerates what a sync target is.
type Kind string

const (
	KindWarehouse   Kind = "warehouse"
	KindObjectStore Kind = "object_store"
	KindOther       Kind = "other"
)

// Valid reports whether the kind is one of the enumerated values.
func (k Kind) Valid() bool {
	switch k {
	case KindWarehouse, KindObjectStore, KindOther:
		return true
	}
	return false
}

// SyncTarget is a destination records are replicated to. The connection
// string is an opaque credential/address blob interpreted only by the
// pusher for the target's kind.
type SyncTarget struct {
	ID               string     `json:"target_id" bson:"_id"`
	Name             string     `json:"target_name" bson:"name"`
	Kind             Kind       `json:"target_type" bson:"kind"`
	ConnectionString string     `json:"connection_string" bson:"connection_string"`
	IsActive         bool       `json:"is_active" bson:"is_active"`
	LastSyncTime     *time.Time `json:"last_sync_time" bson:"last_sync_time,omitempty"` // canonical clock watermark
	CreatedAt        time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" bson:"updated_at"`
}

// ListFilter narrows target listings.
type ListFilter struct {
	ActiveOnly bool
}
