package shared

import (
	"context"
	"fmt"
	"time"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"

	"github.com/google/uuid"
)

// SlotLocker serialises check-and-write sequences on one resource-day.
type SlotLocker interface {
	// Lock blocks until the key is held or ctx is done. The returned func releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func SlotKey(resourceID uuid.UUID, date calendar.Date) string {
	return fmt.Sprintf("resource:%s:%s", resourceID, date)
}

type AuditEntry struct {
	ActorID       uuid.UUID
	Action        reservation.Action
	ReservationID uuid.UUID
	At            time.Time
	Description   string
}

// AuditSink receives a record after every successful create or transition.
// Failures are logged by the caller and never fail the booking operation.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type Notification struct {
	ReservationID uuid.UUID
	RequesterID   uuid.UUID
	ResourceID    uuid.UUID
	Status        reservation.Status
	Reason        string
	At            time.Time
}

// Notifier informs requesters of Confirmed, Rejected and Cancelled transitions. Best-effort.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

func ShouldNotify(status reservation.Status) bool {
	switch status {
	case reservation.StatusConfirmed, reservation.StatusRejected, reservation.StatusCancelled:
		return true
	default:
		return false
	}
}
