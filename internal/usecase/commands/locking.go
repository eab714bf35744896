package commands

import (
	"context"
	"slices"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/infra"
	"condo-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

// lockSlots takes the keys in sorted order so two callers needing the same pair cannot deadlock.
func lockSlots(ctx context.Context, locker shared.SlotLocker, keys ...string) (func(), error) {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	unlocks := make([]func(), 0, len(keys))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, key := range keys {
		unlock, err := locker.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}

// checkSlotFree runs the conflict checker against the stored active bookings of the resource-day.
func checkSlotFree(ctx context.Context, tx shared.Tx, c reservation.Candidate) error {
	existing, err := tx.Reservations().FindActiveByResourceAndDate(ctx, c.ResourceID, c.Date)
	if err != nil {
		return err
	}
	return reservation.CheckConflict(c, existing)
}

// resolveConflict turns a storage exclusion violation into a SlotConflict naming the
// booking that won. The failed transaction is gone, so the lookup runs in a fresh one.
func resolveConflict(ctx context.Context, uow shared.UnitOfWork, err error, resourceID uuid.UUID, date calendar.Date, slot calendar.TimeSlot, self uuid.UUID) error {
	if !infra.IsKind(err, infra.KindConflict) {
		return err
	}
	conflict := &reservation.ConflictError{}
	_ = uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, findErr := tx.Reservations().FindActiveByResourceAndDate(ctx, resourceID, date)
		if findErr != nil {
			return findErr
		}
		c := reservation.Candidate{ResourceID: resourceID, Date: date, Slot: slot, ExcludeID: self}
		if hit := reservation.FindConflict(c, existing); hit != nil {
			conflict.ConflictingID = hit.ID()
		}
		return nil
	})
	return conflict
}
