package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResourceReadStore struct {
	store *Store
}

func NewResourceReadStore(store *Store) *ResourceReadStore {
	return &ResourceReadStore{store: store}
}

func (r *ResourceReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res, ok := r.store.data.resources[id]
	if !ok {
		return nil, errs.Wrapf(resource.ErrResourceNotFound, "%s", id)
	}
	return toResourceView(res), nil
}

func (r *ResourceReadStore) List(_ context.Context, status string) ([]*queries.ResourceView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*queries.ResourceView, 0, len(r.store.data.resources))
	for _, res := range r.store.data.resources {
		if status == "" || res.Status().String() == status {
			out = append(out, toResourceView(res))
		}
	}
	slices.SortFunc(out, func(a, b *queries.ResourceView) int {
		if c := cmp.Compare(resource.NameKey(a.Name), resource.NameKey(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

type ReservationReadStore struct {
	store *Store
}

func NewReservationReadStore(store *Store) *ReservationReadStore {
	return &ReservationReadStore{store: store}
}

func (r *ReservationReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res, ok := r.store.data.reservations[id]
	if !ok {
		return nil, errs.Wrapf(reservation.ErrReservationNotFound, "%s", id)
	}
	return r.view(res), nil
}

func (r *ReservationReadStore) List(_ context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := r.filter(func(res *reservation.Reservation) bool {
		switch {
		case f.RequesterID != nil && res.RequesterID() != *f.RequesterID:
			return false
		case f.ResourceID != nil && res.ResourceID() != *f.ResourceID:
			return false
		case f.Status != nil && res.Status().String() != *f.Status:
			return false
		case !inRange(res.Date(), f.From, f.To):
			return false
		case f.AfterCreatedAt != nil && !beforeCursor(res, *f.AfterCreatedAt, f.AfterID):
			return false
		}
		return true
	})
	slices.SortFunc(matched, newestFirst)
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return r.views(matched), nil
}

func (r *ReservationReadStore) ListUpcoming(
	_ context.Context,
	from calendar.Date,
	requesterID *uuid.UUID,
	limit int,
) ([]*queries.ReservationView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := r.filter(func(res *reservation.Reservation) bool {
		if requesterID != nil && res.RequesterID() != *requesterID {
			return false
		}
		return res.IsActive() && !res.Date().Before(from)
	})
	slices.SortFunc(matched, func(a, b *reservation.Reservation) int {
		if c := a.Date().Time().Compare(b.Date().Time()); c != 0 {
			return c
		}
		if c := a.TimeSlot().Start().Compare(b.TimeSlot().Start()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID().String(), b.ID().String())
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return r.views(matched), nil
}

func (r *ReservationReadStore) ListActiveOn(_ context.Context, date calendar.Date) ([]*queries.ReservationView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := r.filter(func(res *reservation.Reservation) bool {
		return res.IsActive() && res.Date().Equal(date)
	})
	slices.SortFunc(matched, func(a, b *reservation.Reservation) int {
		if c := cmp.Compare(a.ResourceID().String(), b.ResourceID().String()); c != 0 {
			return c
		}
		return a.TimeSlot().Start().Compare(b.TimeSlot().Start())
	})
	return r.views(matched), nil
}

func (r *ReservationReadStore) History(_ context.Context, reservationID uuid.UUID) ([]queries.TransitionView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	history := r.store.data.transitions[reservationID]
	out := make([]queries.TransitionView, len(history))
	for i, tr := range history {
		out[i] = queries.TransitionView{
			Action:  tr.Action.String(),
			From:    tr.From.String(),
			To:      tr.To.String(),
			ActorID: tr.ActorID,
			Reason:  tr.Reason,
			At:      tr.At,
		}
	}
	return out, nil
}

func (r *ReservationReadStore) Stats(_ context.Context, f queries.StatsFilter, top int) (*queries.StatsView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stats := &queries.StatsView{
		ByStatus: make(map[string]int64),
		Revenue:  decimal.Zero,
	}
	perResource := make(map[uuid.UUID]int64)
	perMonth := make(map[string]int64)

	for _, res := range r.store.data.reservations {
		if !inRange(res.Date(), f.From, f.To) {
			continue
		}
		stats.Total++
		stats.ByStatus[res.Status().String()]++
		if slices.Contains(reservation.RevenueStatuses(), res.Status()) {
			stats.Revenue = stats.Revenue.Add(res.Cost())
		}
		perResource[res.ResourceID()]++
		perMonth[res.Date().Time().Format("2006-01")]++
	}
	stats.Revenue = stats.Revenue.Round(2)

	stats.TopResources = make([]queries.ResourceUsage, 0, len(perResource))
	for id, n := range perResource {
		stats.TopResources = append(stats.TopResources, queries.ResourceUsage{
			ResourceID:   id,
			ResourceName: r.resourceName(id),
			Bookings:     n,
		})
	}
	slices.SortFunc(stats.TopResources, func(a, b queries.ResourceUsage) int {
		if c := cmp.Compare(b.Bookings, a.Bookings); c != 0 {
			return c
		}
		return cmp.Compare(a.ResourceName, b.ResourceName)
	})
	if top > 0 && len(stats.TopResources) > top {
		stats.TopResources = stats.TopResources[:top]
	}

	stats.Monthly = make([]queries.MonthlyCount, 0, len(perMonth))
	for month, n := range perMonth {
		stats.Monthly = append(stats.Monthly, queries.MonthlyCount{Month: month, Bookings: n})
	}
	slices.SortFunc(stats.Monthly, func(a, b queries.MonthlyCount) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return stats, nil
}

// callers hold the read lock
func (r *ReservationReadStore) filter(keep func(*reservation.Reservation) bool) []*reservation.Reservation {
	var out []*reservation.Reservation
	for _, res := range r.store.data.reservations {
		if keep(res) {
			out = append(out, res)
		}
	}
	return out
}

func (r *ReservationReadStore) resourceName(id uuid.UUID) string {
	if res, ok := r.store.data.resources[id]; ok {
		return res.Name()
	}
	return ""
}

func (r *ReservationReadStore) view(res *reservation.Reservation) *queries.ReservationView {
	return toReservationView(res, r.resourceName(res.ResourceID()))
}

func (r *ReservationReadStore) views(rs []*reservation.Reservation) []*queries.ReservationView {
	out := make([]*queries.ReservationView, len(rs))
	for i, res := range rs {
		out[i] = r.view(res)
	}
	return out
}

func inRange(d calendar.Date, from, to *calendar.Date) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

func newestFirst(a, b *reservation.Reservation) int {
	if c := createdKey(b).Compare(createdKey(a)); c != 0 {
		return c
	}
	return cmp.Compare(b.ID().String(), a.ID().String())
}

// createdKey has the microsecond precision of list cursors.
func createdKey(res *reservation.Reservation) time.Time {
	return res.CreatedAt().Truncate(time.Microsecond)
}

// beforeCursor matches the keyset predicate (created_at, id) < (after, afterID).
func beforeCursor(res *reservation.Reservation, after time.Time, afterID uuid.UUID) bool {
	if c := createdKey(res).Compare(after); c != 0 {
		return c < 0
	}
	return res.ID().String() < afterID.String()
}

func toReservationView(res *reservation.Reservation, resourceName string) *queries.ReservationView {
	slot := res.TimeSlot()
	return &queries.ReservationView{
		ID:           res.ID(),
		ResourceID:   res.ResourceID(),
		ResourceName: resourceName,
		RequesterID:  res.RequesterID(),
		Date:         res.Date().String(),
		StartTime:    slot.Start().String(),
		EndTime:      slot.End().String(),
		Purpose:      res.Purpose().String(),
		PartySize:    res.PartySize().Int(),
		Notes:        res.Notes().String(),
		Status:       res.Status().String(),
		Cost:         res.Cost(),
		ApproverID:   res.ApproverID(),
		ApprovedAt:   res.ApprovedAt(),
		Reason:       res.Reason(),
		CreatedAt:    res.CreatedAt(),
		UpdatedAt:    res.UpdatedAt(),
	}
}

func toResourceView(res *resource.Resource) *queries.ResourceView {
	return &queries.ResourceView{
		ID:               res.ID(),
		Name:             res.Name(),
		Description:      res.Description(),
		HourlyRate:       res.HourlyRate(),
		Status:           res.Status().String(),
		Capacity:         res.Capacity(),
		OpeningTime:      res.OpeningTime().String(),
		ClosingTime:      res.ClosingTime().String(),
		AllowedWeekdays:  resource.WeekdayInts(res.AllowedWeekdays()),
		MinDurationHours: res.MinDurationHours(),
		MaxDurationHours: res.MaxDurationHours(),
		MinAdvanceHours:  res.MinAdvanceHours(),
		MaxAdvanceHours:  res.MaxAdvanceHours(),
		CreatedAt:        res.CreatedAt(),
		UpdatedAt:        res.UpdatedAt(),
	}
}
