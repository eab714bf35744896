package reservation

import (
	"time"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/pkg/clock"
	"condo-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	// Location is the zone the condominium's civil dates and times are read in.
	Location *time.Location
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator, loc *time.Location) *Factory {
	if loc == nil {
		loc = time.UTC
	}
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
		Location:        loc,
	}
}

type Request struct {
	Date      calendar.Date
	Slot      calendar.TimeSlot
	Purpose   string
	PartySize int
	Notes     string
}

// Now is the factory clock read in the booking zone.
func (f *Factory) Now() time.Time {
	return f.Clock.Now().In(f.Location)
}

func (f *Factory) CreateReservation(res *resource.Resource, requester user.Actor, req Request) (*Reservation, error) {
	purpose, err := NewPurpose(req.Purpose)
	if err != nil {
		return nil, err
	}
	party, err := NewPartySize(req.PartySize)
	if err != nil {
		return nil, err
	}
	now := f.Now()
	if err := f.validateSchedule(res, req.Date, req.Slot, now); err != nil {
		return nil, err
	}
	if err := res.CheckCapacity(party.Int()); err != nil {
		return nil, err
	}

	cost := f.PriceCalculator.Calculate(res.HourlyRate(), req.Slot)
	if cost.IsNegative() {
		return nil, ErrNegativeCost
	}

	return &Reservation{
		id:          uuid.New(),
		resourceID:  res.ID(),
		requesterID: requester.ID(),
		date:        req.Date,
		slot:        req.Slot,
		purpose:     purpose,
		partySize:   party,
		notes:       NewNote(req.Notes),
		status:      StatusPending,
		cost:        cost,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// CreationTransition is the history entry written alongside a new reservation.
func CreationTransition(r *Reservation) Transition {
	return Transition{
		ID:            uuid.New(),
		ReservationID: r.id,
		Action:        ActionCreate,
		To:            r.status,
		ActorID:       r.requesterID,
		At:            r.createdAt,
	}
}

// RescheduleReservation re-validates a new date and slot against the catalog and
// recomputes the cost from the resource's current rate.
func (f *Factory) RescheduleReservation(
	res *resource.Resource,
	r *Reservation,
	actor user.Actor,
	date calendar.Date,
	slot calendar.TimeSlot,
) (*Reservation, Transition, error) {
	if err := r.CheckReschedulable(actor); err != nil {
		return nil, Transition{}, err
	}
	now := f.Now()
	if err := f.validateSchedule(res, date, slot, now); err != nil {
		return nil, Transition{}, err
	}
	if err := res.CheckCapacity(r.partySize.Int()); err != nil {
		return nil, Transition{}, err
	}
	cost := f.PriceCalculator.Calculate(res.HourlyRate(), slot)
	return r.Reschedule(actor, date, slot, cost, now)
}

func (f *Factory) validateSchedule(res *resource.Resource, date calendar.Date, slot calendar.TimeSlot, now time.Time) error {
	if date.Before(calendar.DateOf(now)) {
		return errs.Wrapf(ErrDateInPast, "%s", date)
	}
	startAt := date.At(slot.Start(), f.Location)
	if startAt.Before(now) {
		return errs.Wrapf(ErrStartInPast, "%s %s", date, slot.Start())
	}
	if err := res.IsBookableOn(date, slot); err != nil {
		return err
	}
	return res.CheckLeadTime(startAt, now)
}
