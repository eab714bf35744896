package reservation

import (
	"strings"
	"time"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Reservation struct {
	id          uuid.UUID
	resourceID  uuid.UUID
	requesterID uuid.UUID
	date        calendar.Date
	slot        calendar.TimeSlot
	purpose     Purpose
	partySize   PartySize
	notes       Note
	status      Status
	cost        decimal.Decimal
	approverID  *uuid.UUID
	approvedAt  *time.Time
	reason      *string
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

func ReconstructReservation(
	id, resourceID, requesterID uuid.UUID,
	date calendar.Date,
	slot calendar.TimeSlot,
	purpose Purpose,
	partySize PartySize,
	notes Note,
	status Status,
	cost decimal.Decimal,
	approverID *uuid.UUID,
	approvedAt *time.Time,
	reason *string,
	version int,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		resourceID:  resourceID,
		requesterID: requesterID,
		date:        date,
		slot:        slot,
		purpose:     purpose,
		partySize:   partySize,
		notes:       notes,
		status:      status,
		cost:        cost,
		approverID:  approverID,
		approvedAt:  approvedAt,
		reason:      reason,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Reservation) Approve(actor user.Actor, at time.Time) (*Reservation, Transition, error) {
	next, tr, err := r.transition(ActionApprove, actor, at, "")
	if err != nil {
		return nil, Transition{}, err
	}
	approver := actor.ID()
	approvedAt := at
	next.approverID = &approver
	next.approvedAt = &approvedAt
	return next, tr, nil
}

func (r *Reservation) Reject(actor user.Actor, at time.Time, reason string) (*Reservation, Transition, error) {
	if err := authorize(transitionTable[ActionReject].actor, actor, r.requesterID); err != nil {
		return nil, Transition{}, err
	}
	if r.status.CanTransition(ActionReject) && strings.TrimSpace(reason) == "" {
		return nil, Transition{}, ErrRejectionReasonRequired
	}
	next, tr, err := r.transition(ActionReject, actor, at, reason)
	if err != nil {
		return nil, Transition{}, err
	}
	approver := actor.ID()
	next.approverID = &approver
	return next, tr, nil
}

func (r *Reservation) Cancel(actor user.Actor, at time.Time, reason string) (*Reservation, Transition, error) {
	return r.transition(ActionCancel, actor, at, reason)
}

// Complete closes a confirmed reservation. at is read in the booking time zone.
func (r *Reservation) Complete(actor user.Actor, at time.Time) (*Reservation, Transition, error) {
	if err := authorize(transitionTable[ActionComplete].actor, actor, r.requesterID); err != nil {
		return nil, Transition{}, err
	}
	if r.status.CanTransition(ActionComplete) && at.Before(r.EndAt(at.Location())) {
		return nil, Transition{}, errs.Wrapf(ErrNotYetFinished, "ends at %s", r.EndAt(at.Location()).Format(time.RFC3339))
	}
	return r.transition(ActionComplete, actor, at, "")
}

// Reschedule moves a pending reservation. The caller supplies the recomputed cost.
// CheckReschedulable reports whether actor may move this booking at all,
// before any new date or slot is looked at.
func (r *Reservation) CheckReschedulable(actor user.Actor) error {
	if err := authorize(ownerOrAdministrator, actor, r.requesterID); err != nil {
		return err
	}
	if r.status != StatusPending {
		return errs.Wrapf(ErrNotReschedulable, "status is %s", r.status)
	}
	return nil
}

func (r *Reservation) Reschedule(
	actor user.Actor,
	date calendar.Date,
	slot calendar.TimeSlot,
	cost decimal.Decimal,
	at time.Time,
) (*Reservation, Transition, error) {
	if err := r.CheckReschedulable(actor); err != nil {
		return nil, Transition{}, err
	}
	if cost.IsNegative() {
		return nil, Transition{}, ErrNegativeCost
	}
	next := r.clone()
	next.date = date
	next.slot = slot
	next.cost = cost
	next.touch(at)
	return next, Transition{
		ID:            uuid.New(),
		ReservationID: r.id,
		Action:        ActionReschedule,
		From:          r.status,
		To:            r.status,
		ActorID:       actor.ID(),
		At:            at,
	}, nil
}

// transition applies a row of the transition table: permission first, then state.
// The receiver is left untouched.
func (r *Reservation) transition(action Action, actor user.Actor, at time.Time, reason string) (*Reservation, Transition, error) {
	rule := transitionTable[action]
	if err := authorize(rule.actor, actor, r.requesterID); err != nil {
		return nil, Transition{}, err
	}
	if !r.status.CanTransition(action) {
		return nil, Transition{}, &TransitionError{From: r.status, To: rule.to, Action: action}
	}

	next := r.clone()
	next.status = rule.to
	reason = strings.TrimSpace(reason)
	if reason != "" {
		next.reason = &reason
	}
	next.touch(at)

	return next, Transition{
		ID:            uuid.New(),
		ReservationID: r.id,
		Action:        action,
		From:          r.status,
		To:            rule.to,
		ActorID:       actor.ID(),
		Reason:        reason,
		At:            at,
	}, nil
}

func authorize(rule actorRule, actor user.Actor, ownerID uuid.UUID) error {
	switch rule {
	case administratorOnly:
		if !actor.IsAdministrator() {
			return ErrAdministratorOnly
		}
	case ownerOrAdministrator:
		if !actor.CanActOnBehalfOf(ownerID) {
			return ErrNotOwner
		}
	}
	return nil
}

func (r *Reservation) clone() *Reservation {
	c := *r
	return &c
}

func (r *Reservation) touch(at time.Time) {
	r.version++
	r.updatedAt = at
}

// StartAt is the start instant of the booking in loc.
func (r *Reservation) StartAt(loc *time.Location) time.Time {
	return r.date.At(r.slot.Start(), loc)
}

func (r *Reservation) EndAt(loc *time.Location) time.Time {
	return r.date.At(r.slot.End(), loc)
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.requesterID == userID
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) ResourceID() uuid.UUID       { return r.resourceID }
func (r *Reservation) RequesterID() uuid.UUID      { return r.requesterID }
func (r *Reservation) Date() calendar.Date         { return r.date }
func (r *Reservation) TimeSlot() calendar.TimeSlot { return r.slot }
func (r *Reservation) Purpose() Purpose            { return r.purpose }
func (r *Reservation) PartySize() PartySize        { return r.partySize }
func (r *Reservation) Notes() Note                 { return r.notes }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) Cost() decimal.Decimal       { return r.cost }
func (r *Reservation) ApproverID() *uuid.UUID      { return r.approverID }
func (r *Reservation) ApprovedAt() *time.Time      { return r.approvedAt }
func (r *Reservation) Reason() *string             { return r.reason }
func (r *Reservation) Version() int                { return r.version }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
