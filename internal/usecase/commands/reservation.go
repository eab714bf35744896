package commands

import (
	"context"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/infra/telemetry"
	"condo-reservations/internal/usecase/queries"
	"condo-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

const otelScopeName = "commands"

type CreateReservationInput struct {
	ResourceID uuid.UUID
	reservation.Request
}

type RescheduleInput struct {
	Date calendar.Date
	Slot calendar.TimeSlot
}

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

type ReservationCommands interface {
	Create(ctx context.Context, actor user.Actor, in CreateReservationInput) (*queries.ReservationView, error)
	// Reschedule moves a Pending booking to a new date and slot and recomputes its cost.
	Reschedule(ctx context.Context, actor user.Actor, id uuid.UUID, in RescheduleInput) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	locker             shared.SlotLocker
	factory            *reservation.Factory
	reservationQueries queries.ReservationQueries
	effects            *Effects
	tracer             telemetry.Tracer
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	locker shared.SlotLocker,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	effects *Effects,
	tracer telemetry.Tracer,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		locker:             locker,
		factory:            factory,
		reservationQueries: reservationQueries,
		effects:            effects,
		tracer:             tracer,
	}
}

func (c *reservationCommandsImpl) Create(
	ctx context.Context,
	actor user.Actor,
	in CreateReservationInput,
) (view *queries.ReservationView, err error) {
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".CreateReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttributes(map[string]any{
		"reservation.resource_id": in.ResourceID,
		"reservation.date":        in.Date,
		"reservation.slot":        in.Slot,
	})

	unlock, err := lockSlots(ctx, c.locker, shared.SlotKey(in.ResourceID, in.Date))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		created *reservation.Reservation
		tr      reservation.Transition
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().FindByID(ctx, in.ResourceID)
		if err != nil {
			return err
		}
		r, err := c.factory.CreateReservation(res, actor, in.Request)
		if err != nil {
			return err
		}
		candidate := reservation.Candidate{ResourceID: r.ResourceID(), Date: r.Date(), Slot: r.TimeSlot()}
		if err := checkSlotFree(ctx, tx, candidate); err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, r); err != nil {
			return err
		}
		tr = reservation.CreationTransition(r)
		if err := tx.Transitions().Append(ctx, tr); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, resolveConflict(ctx, c.uow, err, in.ResourceID, in.Date, in.Slot, uuid.Nil)
	}

	scope.SetAttribute("reservation.id", created.ID())
	c.effects.Publish(ctx, created, tr, "reservation created for "+in.Date.String()+" "+in.Slot.String())

	// Read-after-write: Get the complete reservation view from read store
	return c.reservationQueries.GetByIDSystem(ctx, created.ID())
}

func (c *reservationCommandsImpl) Reschedule(
	ctx context.Context,
	actor user.Actor,
	id uuid.UUID,
	in RescheduleInput,
) (view *queries.ReservationView, err error) {
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".RescheduleReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute("reservation.id", id)

	current, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock, err := lockSlots(ctx, c.locker,
		shared.SlotKey(current.ResourceID(), current.Date()),
		shared.SlotKey(current.ResourceID(), in.Date),
	)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		moved *reservation.Reservation
		tr    reservation.Transition
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		// the locks cover the day read before locking
		if r.Version() != current.Version() {
			return reservation.ErrStaleReservation
		}
		res, err := tx.Resources().FindByID(ctx, r.ResourceID())
		if err != nil {
			return err
		}
		next, t, err := c.factory.RescheduleReservation(res, r, actor, in.Date, in.Slot)
		if err != nil {
			return err
		}
		candidate := reservation.Candidate{ResourceID: next.ResourceID(), Date: next.Date(), Slot: next.TimeSlot(), ExcludeID: next.ID()}
		if err := checkSlotFree(ctx, tx, candidate); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, next, r.Version()); err != nil {
			return err
		}
		if err := tx.Transitions().Append(ctx, t); err != nil {
			return err
		}
		moved, tr = next, t
		return nil
	})
	if err != nil {
		return nil, resolveConflict(ctx, c.uow, err, current.ResourceID(), in.Date, in.Slot, id)
	}

	c.effects.Publish(ctx, moved, tr, "reservation moved to "+in.Date.String()+" "+in.Slot.String())
	return c.reservationQueries.GetByIDSystem(ctx, id)
}

func (c *reservationCommandsImpl) load(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var r *reservation.Reservation
	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		r = found
		return nil
	})
	return r, err
}
