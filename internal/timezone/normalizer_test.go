package timezone

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		local         string
		designator    string
		wantCanonical string
		wantSourceUTC string
		wantErr       error
	}{
		{
			name:          "IST matches reporting frame",
			local:         "2025-10-07 10:00:00",
			designator:    "IST",
			wantCanonical: "2025-10-07 10:00:00",
			wantSourceUTC: "2025-10-07 04:30:00",
		},
		{
			name:          "EST shifts forward",
			local:         "2025-10-07 09:15:00",
			designator:    "EST",
			wantCanonical: "2025-10-07 19:45:00",
			wantSourceUTC: "2025-10-07 14:15:00",
		},
		{
			name:          "UTC only gains the reporting offset",
			local:         "2025-01-01 00:00:00",
			designator:    "GMT/UTC",
			wantCanonical: "2025-01-01 05:30:00",
			wantSourceUTC: "2025-01-01 00:00:00",
		},
		{
			name:          "non hour aligned source offset",
			local:         "2025-06-15 12:00:00",
			designator:    "NPT",
			wantCanonical: "2025-06-15 11:45:00",
			wantSourceUTC: "2025-06-15 06:15:00",
		},
		{
			name:       "unknown designator",
			local:      "2025-10-07 10:00:00",
			designator: "PDT",
			wantErr:    ErrUnknownTimezone,
		},
		{
			name:       "garbage timestamp",
			local:      "07/10/2025 10am",
			designator: "IST",
			wantErr:    ErrInvalidTimestamp,
		},
		{
			name:       "date without time",
			local:      "2025-10-07",
			designator: "IST",
			wantErr:    ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.local, tt.designator)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			if got := Format(got.Canonical); got != tt.wantCanonical {
				t.Errorf("canonical = %s, want %s", got, tt.wantCanonical)
			}
			if got := Format(got.SourceUTC); got != tt.wantSourceUTC {
				t.Errorf("sourceUTC = %s, want %s", got, tt.wantSourceUTC)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	first, err := Normalize("2025-10-07 10:00:00", "JST")
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Normalize("2025-10-07 10:00:00", "JST")
		if err != nil {
			t.Fatalf("Normalize() error on repeat: %v", err)
		}
		if !again.Canonical.Equal(first.Canonical) || !again.SourceUTC.Equal(first.SourceUTC) {
			t.Fatalf("repeat %d diverged: %v vs %v", i, again, first)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	// sourceUTC + offset must reproduce the local wall clock for every code.
	local := "2025-03-30 01:30:00"
	for _, code := range Designators() {
		got, err := Normalize(local, code)
		if err != nil {
			t.Fatalf("Normalize(%s) error: %v", code, err)
		}
		offset, _ := OffsetFor(code)
		back := got.SourceUTC.Add(time.Duration(offset.Minutes) * time.Minute)
		if Format(back) != local {
			t.Errorf("%s: round trip gave %s, want %s", code, Format(back), local)
		}
	}
}
