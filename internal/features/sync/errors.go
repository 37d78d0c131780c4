package sync

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrSyncAlreadyInProgress rejects a trigger for a pair that already
	// has a RUNNING attempt. The caller retries later; requests are not
	// queued.
	ErrSyncAlreadyInProgress = errors.New("sync already in progress for this pair")

	// ErrCancelled marks an attempt aborted by an explicit cancel request.
	// Cancellation is never retried.
	ErrCancelled = errors.New("sync cancelled")

	errTransient = errors.New("transient sync failure")
)

// Transient wraps an error as a retriable operational failure
// (connectivity, timeout and the like).
func Transient(err error) error {
	return fmt.Errorf("%w: %w", errTransient, err)
}

// IsTransient reports whether an attempt failure should be retried.
// Deadline expiry counts as transient; explicit cancellation does not.
func IsTransient(err error) bool {
	if errors.Is(err, ErrCancelled) {
		return false
	}
	return errors.Is(err, errTransient) || errors.Is(err, context.DeadlineExceeded)
}
