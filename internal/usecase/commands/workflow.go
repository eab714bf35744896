package commands

import (
	"context"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/infra/telemetry"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/queries"
	"condo-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

// WorkflowCommands drives a booking through its approval workflow.
//go:generate mockgen -source=workflow.go -destination=../../../tests/mock/commands/workflow.go -package=commandsmock

type WorkflowCommands interface {
	Approve(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.ReservationView, error)
	Reject(ctx context.Context, actor user.Actor, id uuid.UUID, reason string) (*queries.ReservationView, error)
	Cancel(ctx context.Context, actor user.Actor, id uuid.UUID, reason string) (*queries.ReservationView, error)
	Complete(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.ReservationView, error)
}

type workflowCommandsImpl struct {
	uow                shared.UnitOfWork
	locker             shared.SlotLocker
	factory            *reservation.Factory
	reservationQueries queries.ReservationQueries
	effects            *Effects
	tracer             telemetry.Tracer
}

func NewWorkflowCommands(
	uow shared.UnitOfWork,
	locker shared.SlotLocker,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	effects *Effects,
	tracer telemetry.Tracer,
) WorkflowCommands {
	return &workflowCommandsImpl{
		uow:                uow,
		locker:             locker,
		factory:            factory,
		reservationQueries: reservationQueries,
		effects:            effects,
		tracer:             tracer,
	}
}

type transitionFunc func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error)

// Approve re-runs the conflict check under the slot lock: a confirmed booking must
// never overlap another active one, whatever was written since it was requested.
func (c *workflowCommandsImpl) Approve(ctx context.Context, actor user.Actor, id uuid.UUID) (view *queries.ReservationView, err error) {
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".ApproveReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute("reservation.id", id)

	var current *reservation.Reservation
	err = c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		current = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	unlock, err := lockSlots(ctx, c.locker, shared.SlotKey(current.ResourceID(), current.Date()))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		approved *reservation.Reservation
		tr       reservation.Transition
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if r.Version() != current.Version() {
			return reservation.ErrStaleReservation
		}
		next, t, err := r.Approve(actor, c.factory.Now())
		if err != nil {
			return err
		}
		res, err := tx.Resources().FindByID(ctx, r.ResourceID())
		if err != nil {
			return err
		}
		if !res.IsActive() {
			return errs.Wrapf(resource.ErrResourceInactive, "%s is %s", res.Name(), res.Status())
		}
		candidate := reservation.Candidate{ResourceID: r.ResourceID(), Date: r.Date(), Slot: r.TimeSlot(), ExcludeID: r.ID()}
		if err := checkSlotFree(ctx, tx, candidate); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, next, r.Version()); err != nil {
			return err
		}
		if err := tx.Transitions().Append(ctx, t); err != nil {
			return err
		}
		approved, tr = next, t
		return nil
	})
	if err != nil {
		return nil, resolveConflict(ctx, c.uow, err, current.ResourceID(), current.Date(), current.TimeSlot(), id)
	}

	c.effects.Publish(ctx, approved, tr, "reservation approved")
	return c.reservationQueries.GetByIDSystem(ctx, id)
}

func (c *workflowCommandsImpl) Reject(ctx context.Context, actor user.Actor, id uuid.UUID, reason string) (*queries.ReservationView, error) {
	now := c.factory.Now()
	return c.apply(ctx, "RejectReservation", id, "reservation rejected", func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error) {
		return r.Reject(actor, now, reason)
	})
}

func (c *workflowCommandsImpl) Cancel(ctx context.Context, actor user.Actor, id uuid.UUID, reason string) (*queries.ReservationView, error) {
	now := c.factory.Now()
	return c.apply(ctx, "CancelReservation", id, "reservation cancelled", func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error) {
		return r.Cancel(actor, now, reason)
	})
}

func (c *workflowCommandsImpl) Complete(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.ReservationView, error) {
	now := c.factory.Now()
	return c.apply(ctx, "CompleteReservation", id, "reservation completed", func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error) {
		return r.Complete(actor, now)
	})
}

// apply runs a transition that can only free a slot, so no lock is taken; the
// version check rejects a concurrent writer.
func (c *workflowCommandsImpl) apply(
	ctx context.Context,
	spanName string,
	id uuid.UUID,
	description string,
	fn transitionFunc,
) (view *queries.ReservationView, err error) {
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+"."+spanName)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute("reservation.id", id)

	var (
		updated *reservation.Reservation
		tr      reservation.Transition
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		next, t, err := fn(r)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, next, r.Version()); err != nil {
			return err
		}
		if err := tx.Transitions().Append(ctx, t); err != nil {
			return err
		}
		updated, tr = next, t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if tr.Reason != "" {
		description += ": " + tr.Reason
	}
	c.effects.Publish(ctx, updated, tr, description)
	return c.reservationQueries.GetByIDSystem(ctx, id)
}
