package queries

import (
	"context"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability.go -package=queriesmock

type AvailabilityQueries interface {
	// ForResource returns the occupied and free windows of one resource on date.
	ForResource(ctx context.Context, resourceID uuid.UUID, date calendar.Date) (*AvailabilityView, error)
	// ForDate returns the same view for every active resource.
	ForDate(ctx context.Context, date calendar.Date) ([]*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	resources    ResourceReadStore
	reservations ReservationReadStore
}

func NewAvailabilityQueries(resources ResourceReadStore, reservations ReservationReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{resources: resources, reservations: reservations}
}

func (q *availabilityQueriesImpl) ForResource(ctx context.Context, resourceID uuid.UUID, date calendar.Date) (*AvailabilityView, error) {
	res, err := q.resources.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	booked, err := q.reservations.ListActiveOn(ctx, date)
	if err != nil {
		return nil, err
	}
	return buildAvailability(res, date, slotsByResource(booked)[res.ID])
}

func (q *availabilityQueriesImpl) ForDate(ctx context.Context, date calendar.Date) ([]*AvailabilityView, error) {
	resources, err := q.resources.List(ctx, resource.StatusActive.String())
	if err != nil {
		return nil, err
	}
	booked, err := q.reservations.ListActiveOn(ctx, date)
	if err != nil {
		return nil, err
	}
	byResource := slotsByResource(booked)

	out := make([]*AvailabilityView, 0, len(resources))
	for _, res := range resources {
		view, err := buildAvailability(res, date, byResource[res.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func slotsByResource(views []*ReservationView) map[uuid.UUID][]calendar.TimeSlot {
	out := make(map[uuid.UUID][]calendar.TimeSlot)
	for _, v := range views {
		slot, err := calendar.ParseTimeSlot(v.StartTime, v.EndTime)
		if err != nil {
			continue
		}
		out[v.ResourceID] = append(out[v.ResourceID], slot)
	}
	return out
}

func buildAvailability(res *ResourceView, date calendar.Date, busy []calendar.TimeSlot) (*AvailabilityView, error) {
	opening, err := calendar.ParseTimeOfDay(res.OpeningTime)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s opening time", res.ID)
	}
	closing, err := calendar.ParseTimeOfDay(res.ClosingTime)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s closing time", res.ID)
	}

	open := res.Status == resource.StatusActive.String() && isAllowedDay(res.AllowedWeekdays, date.Weekday())
	occupied := reservation.MergeIntervals(busy)

	view := &AvailabilityView{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Date:         date.String(),
		Open:         open,
		OpeningTime:  opening.String(),
		ClosingTime:  closing.String(),
		Occupied:     toWindows(occupied),
		Free:         []WindowView{},
	}
	if open {
		view.Free = toWindows(reservation.FreeWindows(opening, closing, occupied))
	}
	view.Available = len(view.Free) > 0
	return view, nil
}

func isAllowedDay(days []int, day calendar.Weekday) bool {
	for _, d := range days {
		if d == day.Int() {
			return true
		}
	}
	return false
}

func toWindows(slots []calendar.TimeSlot) []WindowView {
	out := make([]WindowView, 0, len(slots))
	for _, s := range slots {
		out = append(out, WindowView{Start: s.Start().String(), End: s.End().String()})
	}
	return out
}
