package timezone

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownTimezone is returned for designators outside the registered set.
	ErrUnknownTimezone = errors.New("unknown timezone designator")
)

// Offset is a named fixed offset from UTC in minutes. The platform models
// every advertised designator as a constant offset; DST-observing zones
// (EST, CET, ...) keep their standard-time offset year round, which is a
// documented limitation near transition dates.
type Offset struct {
	Code    string `json:"code"`
	Minutes int    `json:"minutes"`
}

// Hours renders the offset as fractional hours, e.g. 5.5 for IST.
func (o Offset) Hours() float64 {
	return float64(o.Minutes) / 60.0
}

// String renders the offset in the "+5.5 hours" form used by the
// timezone analysis endpoints.
func (o Offset) String() string {
	sign := ""
	if o.Minutes >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f hours", sign, o.Hours())
}

const (
	// ReportingOffsetMinutes is the canonical reporting frame: IST, +05:30.
	ReportingOffsetMinutes = 330

	// MinOffsetMinutes and MaxOffsetMinutes bound valid offsets (-12:00 to +14:00).
	MinOffsetMinutes = -720
	MaxOffsetMinutes = 840
)

// offsets is the frozen designator table. Read-only after init; there is
// no runtime registration.
var offsets = map[string]int{
	"GMT":     0,
	"GMT/UTC": 0,
	"EST":     -300,
	"CST":     -360,
	"MST":     -420,
	"PST":     -480,
	"ART":     -180,
	"CET":     60,
	"EET":     120,
	"MSK":     180,
	"GST":     240,
	"IST":     330,
	"NPT":     345,
	"SGT":     480,
	"JST":     540,
	"AEST":    600,
	"NZST":    720,
}

func init() {
	for code, minutes := range offsets {
		if minutes < MinOffsetMinutes || minutes > MaxOffsetMinutes {
			panic(fmt.Sprintf("timezone %s offset %d out of range", code, minutes))
		}
	}
}

// OffsetFor looks up the fixed offset for a designator. Unknown designators
// fail with ErrUnknownTimezone, never a silent default.
func OffsetFor(code string) (Offset, error) {
	minutes, ok := offsets[code]
	if !ok {
		return Offset{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, code)
	}
	return Offset{Code: code, Minutes: minutes}, nil
}

// IsKnown reports whether a designator is in the registered set.
func IsKnown(code string) bool {
	_, ok := offsets[code]
	return ok
}

// Designators returns all registered codes in lexical order.
func Designators() []string {
	codes := make([]string, 0, len(offsets))
	for code := range offsets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// OffsetToReporting returns the difference between a source designator and
// the canonical reporting frame, e.g. EST -> "-10.5 hours".
func OffsetToReporting(code string) (string, error) {
	src, err := OffsetFor(code)
	if err != nil {
		return "", err
	}
	diff := Offset{Code: code, Minutes: src.Minutes - ReportingOffsetMinutes}
	return diff.String(), nil
}
