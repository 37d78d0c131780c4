package config

import (
	"testing"
	"time"
)

func TestGetEnvFallback(t *testing.T) {
	if got := getEnv("DATASYNC_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv = %q, want fallback", got)
	}
	t.Setenv("DATASYNC_TEST_SET", "value")
	if got := getEnv("DATASYNC_TEST_SET", "fallback"); got != "value" {
		t.Errorf("getEnv = %q, want value", got)
	}
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset uses fallback", "", 5 * time.Minute},
		{"valid duration", "90s", 90 * time.Second},
		{"garbage uses fallback", "ninety", 5 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("DATASYNC_TEST_DURATION", tt.value)
			}
			if got := getDurationEnv("DATASYNC_TEST_DURATION", 5*time.Minute); got != tt.want {
				t.Errorf("getDurationEnv = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetIntEnv(t *testing.T) {
	if got := getIntEnv("DATASYNC_TEST_INT", 3); got != 3 {
		t.Errorf("getIntEnv = %d, want 3", got)
	}
	t.Setenv("DATASYNC_TEST_INT", "7")
	if got := getIntEnv("DATASYNC_TEST_INT", 3); got != 7 {
		t.Errorf("getIntEnv = %d, want 7", got)
	}
}
