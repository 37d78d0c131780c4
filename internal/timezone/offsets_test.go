package timezone

import (
	"errors"
	"testing"
)

func TestOffsetFor(t *testing.T) {
	tests := []struct {
		code    string
		minutes int
	}{
		{"IST", 330},
		{"NPT", 345},
		{"EST", -300},
		{"GMT", 0},
		{"GMT/UTC", 0},
		{"NZST", 720},
		{"PST", -480},
	}
	for _, tt := range tests {
		got, err := OffsetFor(tt.code)
		if err != nil {
			t.Fatalf("OffsetFor(%s) error: %v", tt.code, err)
		}
		if got.Minutes != tt.minutes {
			t.Errorf("OffsetFor(%s) = %d, want %d", tt.code, got.Minutes, tt.minutes)
		}
	}
}

func TestOffsetForUnknown(t *testing.T) {
	if _, err := OffsetFor("EDT"); !errors.Is(err, ErrUnknownTimezone) {
		t.Errorf("OffsetFor(EDT) error = %v, want ErrUnknownTimezone", err)
	}
	if _, err := OffsetFor(""); !errors.Is(err, ErrUnknownTimezone) {
		t.Errorf("OffsetFor(\"\") error = %v, want ErrUnknownTimezone", err)
	}
}

func TestOffsetBounds(t *testing.T) {
	for _, code := range Designators() {
		o, err := OffsetFor(code)
		if err != nil {
			t.Fatalf("OffsetFor(%s): %v", code, err)
		}
		if o.Minutes < MinOffsetMinutes || o.Minutes > MaxOffsetMinutes {
			t.Errorf("%s offset %d outside [%d, %d]", code, o.Minutes, MinOffsetMinutes, MaxOffsetMinutes)
		}
	}
}

func TestOffsetString(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"IST", "+5.5 hours"},
		{"EST", "-5.0 hours"},
		{"GMT", "+0.0 hours"},
	}
	for _, tt := range tests {
		o, err := OffsetFor(tt.code)
		if err != nil {
			t.Fatalf("OffsetFor(%s): %v", tt.code, err)
		}
		if got := o.String(); got != tt.want {
			t.Errorf("%s String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestOffsetToReporting(t *testing.T) {
	got, err := OffsetToReporting("EST")
	if err != nil {
		t.Fatalf("OffsetToReporting(EST): %v", err)
	}
	if got != "-10.5 hours" {
		t.Errorf("OffsetToReporting(EST) = %q, want %q", got, "-10.5 hours")
	}

	got, err = OffsetToReporting("IST")
	if err != nil {
		t.Fatalf("OffsetToReporting(IST): %v", err)
	}
	if got != "+0.0 hours" {
		t.Errorf("OffsetToReporting(IST) = %q, want %q", got, "+0.0 hours")
	}
}
