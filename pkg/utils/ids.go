package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewPrefixedID returns ids like "FAC_8F3A21BC": a domain prefix plus the
// first 8 hex characters of a random UUID, uppercased.
func NewPrefixedID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + strings.ToUpper(raw[:8])
}
