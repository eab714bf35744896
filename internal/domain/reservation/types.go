package reservation

import (
	"fmt"

	"condo-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound     = errs.NewIn(errs.ErrNotFound, "reservation not found")
	ErrDateInPast              = errs.NewIn(errs.ErrValidation, "reservation date is in the past")
	ErrStartInPast             = errs.NewIn(errs.ErrValidation, "reservation start time has already passed")
	ErrEmptyPurpose            = errs.NewIn(errs.ErrValidation, "purpose cannot be empty")
	ErrPurposeTooLong          = errs.NewIn(errs.ErrValidation, "purpose is too long (max 200 characters)")
	ErrInvalidPartySize        = errs.NewIn(errs.ErrValidation, "number of people must be at least 1")
	ErrRejectionReasonRequired = errs.NewIn(errs.ErrValidation, "a reason is required to reject a reservation")
	ErrNegativeCost            = errs.NewIn(errs.ErrValidation, "cost cannot be negative")
	ErrInvalidStatus           = errs.NewIn(errs.ErrValidation, "invalid reservation status")

	ErrAdministratorOnly = errs.NewIn(errs.ErrPermissionDenied, "only an administrator may perform this action")
	ErrNotOwner          = errs.NewIn(errs.ErrPermissionDenied, "only the requester or an administrator may perform this action")

	ErrNotYetFinished   = errs.NewIn(errs.ErrInvalidStateTransition, "reservation has not ended yet")
	ErrNotReschedulable = errs.NewIn(errs.ErrInvalidStateTransition, "only pending reservations can be rescheduled")
	ErrStaleReservation = errs.NewIn(errs.ErrInvalidStateTransition, "reservation was modified concurrently")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsActive reports whether the status holds its slot. Only active bookings take part in conflict checks.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusRejected
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.Wrapf(ErrInvalidStatus, "%q", s)
	}
	return st, nil
}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRejected}
}

func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

// RevenueStatuses are the statuses whose cost counts as income.
func RevenueStatuses() []Status {
	return []Status{StatusConfirmed, StatusCompleted}
}

type Action string

const (
	ActionCreate     Action = "create"
	ActionReschedule Action = "reschedule"
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionCancel     Action = "cancel"
	ActionComplete   Action = "complete"
)

func (a Action) String() string {
	return string(a)
}

type actorRule int

const (
	administratorOnly actorRule = iota
	ownerOrAdministrator
)

type transitionRule struct {
	from  []Status
	to    Status
	actor actorRule
}

var transitionTable = map[Action]transitionRule{
	ActionApprove:  {from: []Status{StatusPending}, to: StatusConfirmed, actor: administratorOnly},
	ActionReject:   {from: []Status{StatusPending}, to: StatusRejected, actor: administratorOnly},
	ActionCancel:   {from: []Status{StatusPending, StatusConfirmed}, to: StatusCancelled, actor: ownerOrAdministrator},
	ActionComplete: {from: []Status{StatusConfirmed}, to: StatusCompleted, actor: administratorOnly},
}

// CanTransition reports whether action is legal from s.
func (s Status) CanTransition(action Action) bool {
	rule, ok := transitionTable[action]
	if !ok {
		return false
	}
	for _, from := range rule.from {
		if from == s {
			return true
		}
	}
	return false
}

// TransitionError is InvalidStateTransition(from, to).
type TransitionError struct {
	From   Status
	To     Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s reservation: transition from %s to %s is not allowed", e.Action, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == errs.ErrInvalidStateTransition
}

// ConflictError is SlotConflict(conflictingBookingId).
type ConflictError struct {
	ConflictingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested slot overlaps reservation %s", e.ConflictingID)
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrSlotConflict
}
