package queries

import (
	"context"
	"time"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/pkg/clock"

	"github.com/google/uuid"
)

const DefaultUpcomingLimit = 10

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// List returns up to f.Limit rows ordered by created_at DESC, id DESC.
	List(ctx context.Context, f ReservationFilter) ([]*ReservationView, error)
	// ListUpcoming returns active bookings on or after from, ordered by date and start time.
	ListUpcoming(ctx context.Context, from calendar.Date, requesterID *uuid.UUID, limit int) ([]*ReservationView, error)
	// ListActiveOn returns Pending and Confirmed bookings of every resource on date.
	ListActiveOn(ctx context.Context, date calendar.Date) ([]*ReservationView, error)
	History(ctx context.Context, reservationID uuid.UUID) ([]TransitionView, error)
	Stats(ctx context.Context, f StatsFilter, top int) (*StatsView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the ownership check; used for read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, actor user.Actor, f ReservationFilter, after *Cursor) ([]*ReservationView, *Cursor, error)
	Upcoming(ctx context.Context, actor user.Actor, limit int) ([]*ReservationView, error)
	Stats(ctx context.Context, actor user.Actor, f StatsFilter, top int) (*StatsView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
	clock clock.Clock
	loc   *time.Location
}

func NewReservationQueries(store ReservationReadStore, clk clock.Clock, loc *time.Location) ReservationQueries {
	if loc == nil {
		loc = time.UTC
	}
	return &reservationQueriesImpl{store: store, clock: clk, loc: loc}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOnBehalfOf(view.RequesterID) {
		return nil, reservation.ErrNotOwner
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := q.store.History(ctx, id)
	if err != nil {
		return nil, err
	}
	view.History = history
	return view, nil
}

// List applies the filter with keyset pagination. Residents only ever see their own bookings.
func (q *reservationQueriesImpl) List(
	ctx context.Context,
	actor user.Actor,
	f ReservationFilter,
	after *Cursor,
) ([]*ReservationView, *Cursor, error) {
	if !actor.IsAdministrator() {
		own := actor.ID()
		f.RequesterID = &own
	}
	if f.Status != nil {
		if _, err := reservation.NewStatus(*f.Status); err != nil {
			return nil, nil, err
		}
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, nil, ErrInvalidRange
	}
	if after != nil && after.After != "" {
		t, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, err
		}
		f.AfterCreatedAt = &t
		f.AfterID = id
	}

	limit := ValidateLimit(f.Limit)
	// one extra row tells whether another page exists
	f.Limit = limit + 1
	rows, err := q.store.List(ctx, f)
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return rows, next, nil
}

func (q *reservationQueriesImpl) Upcoming(ctx context.Context, actor user.Actor, limit int) ([]*ReservationView, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	var requester *uuid.UUID
	if !actor.IsAdministrator() {
		own := actor.ID()
		requester = &own
	}
	today := calendar.DateOf(q.clock.Now().In(q.loc))
	return q.store.ListUpcoming(ctx, today, requester, limit)
}

func (q *reservationQueriesImpl) Stats(ctx context.Context, actor user.Actor, f StatsFilter, top int) (*StatsView, error) {
	if !actor.IsAdministrator() {
		return nil, reservation.ErrAdministratorOnly
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, ErrInvalidRange
	}
	if top <= 0 {
		top = DefaultTopResources
	}
	stats, err := q.store.Stats(ctx, f, top)
	if err != nil {
		return nil, err
	}
	if stats.ByStatus == nil {
		stats.ByStatus = make(map[string]int64)
	}
	// every status is reported, zero or not
	for _, st := range reservation.AllStatuses() {
		if _, ok := stats.ByStatus[st.String()]; !ok {
			stats.ByStatus[st.String()] = 0
		}
	}
	return stats, nil
}
