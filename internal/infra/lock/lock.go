package lock

import (
	"condo-reservations/internal/pkg/errs"
)

var (
	// ErrLockTimeout is returned when a slot lock is not acquired within the wait limit.
	ErrLockTimeout = errs.NewIn(errs.ErrStorageContention, "slot lock wait timed out")
	// ErrLockUnavailable is returned when the lock backend cannot be reached.
	ErrLockUnavailable = errs.NewIn(errs.ErrStorageContention, "slot lock backend unavailable")
)
