package metrics

import (
	"time"

	"go-datasync/internal/features/sync"
)

// Window bounds an aggregation query on operation start time. A zero
// bound leaves that side open.
type Window struct {
	From time.Time
	To   time.Time
}

// LagStats summarizes lag_seconds over successful operations.
type LagStats struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Mean        float64 `json:"mean"`
	P95         float64 `json:"p95"`
	SampleCount int     `json:"sample_count"`
}

// SuccessRate is the SUCCESS share of terminal operations. NoData is set
// when the window holds no terminal rows at all; Rate is meaningless then.
type SuccessRate struct {
	Rate    float64 `json:"rate"`
	Success int     `json:"success_count"`
	Failed  int     `json:"failed_count"`
	NoData  bool    `json:"no_data"`
}

// OffsetGroupStats aggregates sync health for all facilities sharing one
// UTC offset, answering which regions sync worst.
type OffsetGroupStats struct {
	OffsetMinutes int         `json:"offset_minutes"`
	Offset        string      `json:"offset"`
	Timezones     []string    `json:"timezones"`
	FacilityCount int         `json:"facility_count"`
	Lag           LagStats    `json:"lag"`
	Success       SuccessRate `json:"success"`
}

// TimezoneGroupStats counts facilities and registrations per designator.
type TimezoneGroupStats struct {
	Timezone          string `json:"timezone"`
	OffsetMinutes     int    `json:"offset_minutes"`
	OffsetFromIST     string `json:"offset_from_ist"`
	FacilityCount     int    `json:"facility_count"`
	RegistrationCount int    `json:"registration_count"`
}

// Overview is the dashboard landing payload.
type Overview struct {
	TotalFacilities    int                 `json:"total_facilities"`
	ActiveFacilities   int                 `json:"active_facilities"`
	TotalTargets       int                 `json:"total_targets"`
	TotalRegistrations int64               `json:"total_registrations"`
	Operations         SuccessRate         `json:"operations"`
	Lag                LagStats            `json:"lag"`
	RecentOperations   []sync.OperationLog `json:"recent_operations"`
}
