package reservation

import (
	"slices"

	"condo-reservations/internal/domain/calendar"

	"github.com/google/uuid"
)

// Candidate is a slot being checked against existing bookings.
type Candidate struct {
	ResourceID uuid.UUID
	Date       calendar.Date
	Slot       calendar.TimeSlot
	// ExcludeID skips the booking being moved or approved.
	ExcludeID uuid.UUID
}

// FindConflict returns the first active booking on the same resource and date
// whose interval overlaps the candidate, or nil.
func FindConflict(c Candidate, existing []*Reservation) *Reservation {
	for _, r := range existing {
		if !r.IsActive() || r.id == c.ExcludeID {
			continue
		}
		if r.resourceID != c.ResourceID || !r.date.Equal(c.Date) {
			continue
		}
		if r.slot.Overlaps(c.Slot) {
			return r
		}
	}
	return nil
}

// CheckConflict wraps FindConflict into a SlotConflict error.
func CheckConflict(c Candidate, existing []*Reservation) error {
	if hit := FindConflict(c, existing); hit != nil {
		return &ConflictError{ConflictingID: hit.id}
	}
	return nil
}

// MergeIntervals sorts slots by start and merges overlapping or touching ones.
func MergeIntervals(slots []calendar.TimeSlot) []calendar.TimeSlot {
	if len(slots) == 0 {
		return nil
	}
	sorted := slices.Clone(slots)
	slices.SortFunc(sorted, func(a, b calendar.TimeSlot) int {
		if c := a.Start().Compare(b.Start()); c != 0 {
			return c
		}
		return a.End().Compare(b.End())
	})

	merged := []calendar.TimeSlot{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.Start().After(last.End()) {
			merged = append(merged, s)
			continue
		}
		if s.End().After(last.End()) {
			*last, _ = calendar.NewTimeSlot(last.Start(), s.End())
		}
	}
	return merged
}

// FreeWindows is the complement of busy within [opening, closing).
func FreeWindows(opening, closing calendar.TimeOfDay, busy []calendar.TimeSlot) []calendar.TimeSlot {
	var free []calendar.TimeSlot
	cursor := opening
	for _, b := range MergeIntervals(busy) {
		if !b.End().After(cursor) {
			continue
		}
		if !b.Start().Before(closing) {
			break
		}
		if cursor.Before(b.Start()) {
			w, _ := calendar.NewTimeSlot(cursor, b.Start())
			free = append(free, w)
		}
		cursor = b.End()
	}
	if cursor.Before(closing) {
		w, _ := calendar.NewTimeSlot(cursor, closing)
		free = append(free, w)
	}
	return free
}

// OccupiedSlots returns the merged intervals held by active bookings.
func OccupiedSlots(rs []*Reservation) []calendar.TimeSlot {
	slots := make([]calendar.TimeSlot, 0, len(rs))
	for _, r := range rs {
		if r.IsActive() {
			slots = append(slots, r.slot)
		}
	}
	return MergeIntervals(slots)
}
