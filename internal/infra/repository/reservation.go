package repository

import (
	"context"
	"log/slog"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/infra"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReservationRepository(dbtx db.DBTX, logger *slog.Logger) *ReservationRepository {
	return &ReservationRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(reservation.ErrReservationNotFound, "%s", id)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to find reservation by ID", err)
	}
	return res, nil
}

// FindActiveByResourceAndDate lists Pending and Confirmed bookings of one resource-day.
// Callers hold the slot lock; the exclusion constraint catches writers that do not.
func (r *ReservationRepository) FindActiveByResourceAndDate(
	ctx context.Context,
	resourceID uuid.UUID,
	date calendar.Date,
) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE resource_id = $1 AND booking_date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_time`,
		resourceID, pgconv.DateToPgtype(date),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list active reservations", err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan reservation", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate reservations", err)
	}
	return out, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		reservationArgs(res)...,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation, expectedVersion int) error {
	args := append(reservationArgs(res), int32(expectedVersion))
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations SET
			booking_date = $4, start_time = $5, end_time = $6,
			purpose = $7, party_size = $8, notes = $9, status = $10, cost = $11,
			approver_id = $12, approved_at = $13, reason = $14, version = $15,
			updated_at = $17
		WHERE id = $1 AND version = $18`,
		args...,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Wrapf(reservation.ErrStaleReservation, "%s at version %d", res.ID(), expectedVersion)
	}
	return nil
}

func reservationArgs(res *reservation.Reservation) []any {
	var reason string
	if res.Reason() != nil {
		reason = *res.Reason()
	}
	slot := res.TimeSlot()
	return []any{
		res.ID(),
		res.ResourceID(),
		res.RequesterID(),
		pgconv.DateToPgtype(res.Date()),
		pgconv.TimeOfDayToPgtype(slot.Start()),
		pgconv.TimeOfDayToPgtype(slot.End()),
		res.Purpose().String(),
		int32(res.PartySize().Int()),
		res.Notes().String(),
		res.Status().String(),
		pgconv.DecimalToNumeric(res.Cost()),
		pgconv.UUIDPtrToPgtype(res.ApproverID()),
		pgconv.TimePtrToPgtype(res.ApprovedAt()),
		pgconv.OptionalStringToPgtype(reason),
		int32(res.Version()),
		pgconv.TimeToPgtype(res.CreatedAt()),
		pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}
