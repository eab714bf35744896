package memstore

import (
	"context"
	"log/slog"
	"slices"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/infra"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in read-only transaction")

type UoW struct {
	store  *Store
	logger *slog.Logger
}

func NewUoW(store *Store, logger *slog.Logger) shared.UnitOfWork {
	return &UoW{store: store, logger: logger}
}

// Within runs fn against a private copy and publishes it only when fn succeeds.
// Writers are serialised on the store mutex.
func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := &memTx{data: u.store.data.clone(), logger: u.logger}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	u.store.data = tx.data
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	return fn(ctx, &memTx{data: u.store.data, readOnly: true, logger: u.logger})
}

type memTx struct {
	data     *snapshot
	readOnly bool
	logger   *slog.Logger
}

func (t *memTx) Resources() shared.ResourceRepository       { return resourceRepo{t} }
func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{t} }
func (t *memTx) Transitions() shared.TransitionRepository   { return transitionRepo{t} }

func (t *memTx) writable() error {
	if t.readOnly {
		return errReadOnly
	}
	return nil
}

type resourceRepo struct{ tx *memTx }

func (r resourceRepo) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := r.tx.data.resources[id]
	if !ok {
		return nil, errs.Wrapf(resource.ErrResourceNotFound, "%s", id)
	}
	return res, nil
}

func (r resourceRepo) NameTaken(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	key := resource.NameKey(name)
	for id, res := range r.tx.data.resources {
		if id != excludeID && resource.NameKey(res.Name()) == key {
			return true, nil
		}
	}
	return false, nil
}

func (r resourceRepo) Create(ctx context.Context, res *resource.Resource) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if taken, _ := r.NameTaken(ctx, res.Name(), res.ID()); taken {
		return errs.Wrap(resource.ErrDuplicateName, "failed to create resource")
	}
	if _, exists := r.tx.data.resources[res.ID()]; exists {
		return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "failed to create resource", nil)
	}
	r.tx.data.resources[res.ID()] = res
	return nil
}

func (r resourceRepo) Update(ctx context.Context, res *resource.Resource) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.data.resources[res.ID()]; !exists {
		return errs.Wrapf(resource.ErrResourceNotFound, "%s", res.ID())
	}
	if taken, _ := r.NameTaken(ctx, res.Name(), res.ID()); taken {
		return errs.Wrap(resource.ErrDuplicateName, "failed to update resource")
	}
	r.tx.data.resources[res.ID()] = res
	return nil
}

type reservationRepo struct{ tx *memTx }

func (r reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.tx.data.reservations[id]
	if !ok {
		return nil, errs.Wrapf(reservation.ErrReservationNotFound, "%s", id)
	}
	return res, nil
}

func (r reservationRepo) FindActiveByResourceAndDate(
	_ context.Context,
	resourceID uuid.UUID,
	date calendar.Date,
) ([]*reservation.Reservation, error) {
	return activeOn(r.tx.data, resourceID, date), nil
}

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.data.reservations[res.ID()]; exists {
		return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "failed to create reservation", nil)
	}
	if _, ok := r.tx.data.resources[res.ResourceID()]; !ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindForeignKeyViolated, "failed to create reservation", nil)
	}
	if err := r.exclude(res); err != nil {
		return err
	}
	r.tx.data.reservations[res.ID()] = res
	return nil
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation, expectedVersion int) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	current, ok := r.tx.data.reservations[res.ID()]
	if !ok || current.Version() != expectedVersion {
		return errs.Wrapf(reservation.ErrStaleReservation, "%s at version %d", res.ID(), expectedVersion)
	}
	if err := r.exclude(res); err != nil {
		return err
	}
	r.tx.data.reservations[res.ID()] = res
	return nil
}

// exclude mirrors the reservations_no_overlap constraint of the Postgres schema.
func (r reservationRepo) exclude(res *reservation.Reservation) error {
	if !res.IsActive() {
		return nil
	}
	c := reservation.Candidate{
		ResourceID: res.ResourceID(),
		Date:       res.Date(),
		Slot:       res.TimeSlot(),
		ExcludeID:  res.ID(),
	}
	if reservation.FindConflict(c, activeOn(r.tx.data, res.ResourceID(), res.Date())) != nil {
		return infra.WrapRepoErr(r.tx.logger, infra.KindConflict, "overlapping active reservation", nil)
	}
	return nil
}

type transitionRepo struct{ tx *memTx }

func (r transitionRepo) Append(_ context.Context, tr reservation.Transition) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.data.reservations[tr.ReservationID]; !ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindForeignKeyViolated, "failed to append transition", nil)
	}
	r.tx.data.transitions[tr.ReservationID] = append(r.tx.data.transitions[tr.ReservationID], tr)
	return nil
}

func (r transitionRepo) ListByReservation(_ context.Context, reservationID uuid.UUID) ([]reservation.Transition, error) {
	return slices.Clone(r.tx.data.transitions[reservationID]), nil
}

func activeOn(data *snapshot, resourceID uuid.UUID, date calendar.Date) []*reservation.Reservation {
	var out []*reservation.Reservation
	for _, res := range data.reservations {
		if res.ResourceID() == resourceID && res.Date().Equal(date) && res.IsActive() {
			out = append(out, res)
		}
	}
	slices.SortFunc(out, func(a, b *reservation.Reservation) int {
		return a.TimeSlot().Start().Compare(b.TimeSlot().Start())
	})
	return out
}
