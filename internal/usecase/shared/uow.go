package shared

import (
	"context"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for consistent multi-row reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Resources() ResourceRepository
	Reservations() ReservationRepository
	Transitions() TransitionRepository
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// NameTaken reports whether another resource already uses the case-insensitive name.
	NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, res *resource.Resource) error
	Update(ctx context.Context, res *resource.Resource) error
}

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindActiveByResourceAndDate returns Pending and Confirmed bookings of one resource-day.
	FindActiveByResourceAndDate(ctx context.Context, resourceID uuid.UUID, date calendar.Date) ([]*reservation.Reservation, error)
	Create(ctx context.Context, r *reservation.Reservation) error
	// Update writes r only if the stored version still equals expectedVersion,
	// otherwise it fails with reservation.ErrStaleReservation.
	Update(ctx context.Context, r *reservation.Reservation, expectedVersion int) error
}

type TransitionRepository interface {
	Append(ctx context.Context, tr reservation.Transition) error
	ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]reservation.Transition, error)
}
