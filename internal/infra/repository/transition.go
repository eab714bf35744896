package repository

import (
	"context"
	"log/slog"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/infra"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// TransitionRepository appends to the reservation history. Rows are never updated.
type TransitionRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewTransitionRepository(dbtx db.DBTX, logger *slog.Logger) *TransitionRepository {
	return &TransitionRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *TransitionRepository) Append(ctx context.Context, tr reservation.Transition) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservation_transitions
			(id, reservation_id, action, from_status, to_status, actor_id, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tr.ID,
		tr.ReservationID,
		tr.Action.String(),
		pgconv.OptionalStringToPgtype(tr.From.String()),
		tr.To.String(),
		tr.ActorID,
		tr.Reason,
		pgconv.TimeToPgtype(tr.At),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to append transition", err)
	}
	return nil
}

func (r *TransitionRepository) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]reservation.Transition, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, reservation_id, action, from_status, to_status, actor_id, reason, occurred_at
		FROM reservation_transitions
		WHERE reservation_id = $1
		ORDER BY occurred_at, id`,
		reservationID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list transitions", err)
	}
	defer rows.Close()

	var out []reservation.Transition
	for rows.Next() {
		var (
			tr     reservation.Transition
			action string
			from   pgtype.Text
			to     string
			at     pgtype.Timestamptz
		)
		if err := rows.Scan(&tr.ID, &tr.ReservationID, &action, &from, &to, &tr.ActorID, &tr.Reason, &at); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan transition", err)
		}
		tr.Action = reservation.Action(action)
		tr.From = reservation.Status(pgconv.StringFromPgtype(from))
		tr.To = reservation.Status(to)
		tr.At = pgconv.TimeFromPgtype(at)
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate transitions", err)
	}
	return out, nil
}
