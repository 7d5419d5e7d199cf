package lock

import (
	"context"
	"errors"
)

// ReconcileLocker serializes writers against the occurrence store so that
// concurrent reconciliations cannot race the dedup check.
type ReconcileLocker interface {
	Acquire(ctx context.Context) error

	Release(ctx context.Context) error
}

var ErrLockHeld = errors.New("reconcile lock already held")
