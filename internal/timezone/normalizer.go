package timezone

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimestamp is returned when a local timestamp cannot be parsed.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// TimestampLayout is the wall-clock format facilities report in.
const TimestampLayout = "2006-01-02 15:04:05"

// Normalized carries the two derived instants for an event. Both are plain
// instants in a known fixed frame and carry no further zone tag.
type Normalized struct {
	// Canonical is the event expressed in the reporting frame (IST, +05:30).
	Canonical time.Time
	// SourceUTC is the UTC instant the event occurred at.
	SourceUTC time.Time
}

// Normalize converts a local wall-clock timestamp plus a timezone
// designator into the canonical reporting timestamp and the UTC source
// instant:
//
//	sourceUTC = local - offset(designator)
//	canonical = sourceUTC + ReportingOffset
//
// The function is pure: the same input always yields the same pair.
func Normalize(localTimestamp, designator string) (Normalized, error) {
	offset, err := OffsetFor(designator)
	if err != nil {
		return Normalized{}, err
	}

	local, err := time.Parse(TimestampLayout, localTimestamp)
	if err != nil {
		return Normalized{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, localTimestamp)
	}

	sourceUTC := local.Add(-time.Duration(offset.Minutes) * time.Minute)
	canonical := sourceUTC.Add(ReportingOffsetMinutes * time.Minute)

	return Normalized{Canonical: canonical, SourceUTC: sourceUTC}, nil
}

// ToCanonical shifts a UTC instant into the reporting frame.
func ToCanonical(utc time.Time) time.Time {
	return utc.Add(ReportingOffsetMinutes * time.Minute)
}

// Format renders an instant in the wall-clock layout.
func Format(t time.Time) string {
	return t.Format(TimestampLayout)
}
