package readstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/infra"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/pkg/pgconv"
	"condo-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReservationReadStore(dbtx db.DBTX, logger *slog.Logger) *ReservationReadStore {
	return &ReservationReadStore{
		db:     dbtx,
		logger: logger,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationViewColumns+` `+reservationViewFrom+` WHERE r.id = $1`, id)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(reservation.ErrReservationNotFound, "%s", id)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find reservation by ID", err)
	}
	return view, nil
}

// whereBuilder collects positional predicates for the dynamic list filter.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(format string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *whereBuilder) dateRange(from, to *calendar.Date) {
	if from != nil {
		w.add("r.booking_date >= $%d", pgconv.DateToPgtype(*from))
	}
	if to != nil {
		w.add("r.booking_date <= $%d", pgconv.DateToPgtype(*to))
	}
}

func (r *ReservationReadStore) List(ctx context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	var w whereBuilder
	if f.RequesterID != nil {
		w.add("r.requester_id = $%d", *f.RequesterID)
	}
	if f.ResourceID != nil {
		w.add("r.resource_id = $%d", *f.ResourceID)
	}
	if f.Status != nil {
		w.add("r.status = $%d", *f.Status)
	}
	w.dateRange(f.From, f.To)
	if f.AfterCreatedAt != nil {
		w.args = append(w.args, pgconv.TimeToPgtype(*f.AfterCreatedAt), f.AfterID)
		n := len(w.args)
		w.clauses = append(w.clauses, fmt.Sprintf("(r.created_at, r.id) < ($%d, $%d)", n-1, n))
	}
	w.args = append(w.args, int32(f.Limit))

	query := `SELECT ` + reservationViewColumns + ` ` + reservationViewFrom + w.sql() +
		fmt.Sprintf(` ORDER BY r.created_at DESC, r.id DESC LIMIT $%d`, len(w.args))
	return r.queryViews(ctx, "failed to list reservations", query, w.args...)
}

func (r *ReservationReadStore) ListUpcoming(
	ctx context.Context,
	from calendar.Date,
	requesterID *uuid.UUID,
	limit int,
) ([]*queries.ReservationView, error) {
	return r.queryViews(ctx, "failed to list upcoming reservations", `
		SELECT `+reservationViewColumns+` `+reservationViewFrom+`
		WHERE r.booking_date >= $1
		  AND r.status IN ('pending', 'confirmed')
		  AND ($2::uuid IS NULL OR r.requester_id = $2)
		ORDER BY r.booking_date, r.start_time, r.id
		LIMIT $3`,
		pgconv.DateToPgtype(from), pgconv.UUIDPtrToPgtype(requesterID), int32(limit),
	)
}

func (r *ReservationReadStore) ListActiveOn(ctx context.Context, date calendar.Date) ([]*queries.ReservationView, error) {
	return r.queryViews(ctx, "failed to list reservations on date", `
		SELECT `+reservationViewColumns+` `+reservationViewFrom+`
		WHERE r.booking_date = $1 AND r.status IN ('pending', 'confirmed')
		ORDER BY r.resource_id, r.start_time`,
		pgconv.DateToPgtype(date),
	)
}

func (r *ReservationReadStore) History(ctx context.Context, reservationID uuid.UUID) ([]queries.TransitionView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT action, from_status, to_status, actor_id, reason, occurred_at
		FROM reservation_transitions
		WHERE reservation_id = $1
		ORDER BY occurred_at, id`,
		reservationID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load reservation history", err)
	}
	defer rows.Close()

	out := make([]queries.TransitionView, 0)
	for rows.Next() {
		var (
			tv   queries.TransitionView
			from pgtype.Text
		)
		if err := rows.Scan(&tv.Action, &from, &tv.To, &tv.ActorID, &tv.Reason, &tv.At); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan transition", err)
		}
		tv.From = pgconv.StringFromPgtype(from)
		out = append(out, tv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate history", err)
	}
	return out, nil
}

func (r *ReservationReadStore) Stats(ctx context.Context, f queries.StatsFilter, top int) (*queries.StatsView, error) {
	var w whereBuilder
	w.dateRange(f.From, f.To)
	where := w.sql()

	stats := &queries.StatsView{ByStatus: make(map[string]int64)}

	err := r.collect(ctx, `SELECT r.status, count(*) FROM reservations r`+where+` GROUP BY r.status`, w.args,
		func(rows pgx.Rows) error {
			var (
				status string
				n      int64
			)
			if err := rows.Scan(&status, &n); err != nil {
				return err
			}
			stats.ByStatus[status] = n
			stats.Total += n
			return nil
		})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to count reservations by status", err)
	}

	revenueWhere := revenuePredicate(where)
	var revenue pgtype.Numeric
	if err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(r.cost), 0) FROM reservations r`+revenueWhere, w.args...,
	).Scan(&revenue); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to sum revenue", err)
	}
	if stats.Revenue, err = pgconv.DecimalFromNumeric(revenue); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read revenue", err)
	}
	stats.Revenue = stats.Revenue.Round(2)

	topArgs := append(append([]any{}, w.args...), int32(top))
	stats.TopResources = make([]queries.ResourceUsage, 0, top)
	err = r.collect(ctx, `
		SELECT r.resource_id, s.name, count(*) AS bookings
		FROM reservations r JOIN resources s ON s.id = r.resource_id`+where+`
		GROUP BY r.resource_id, s.name
		ORDER BY bookings DESC, s.name
		LIMIT $`+fmt.Sprint(len(topArgs)), topArgs,
		func(rows pgx.Rows) error {
			var u queries.ResourceUsage
			if err := rows.Scan(&u.ResourceID, &u.ResourceName, &u.Bookings); err != nil {
				return err
			}
			stats.TopResources = append(stats.TopResources, u)
			return nil
		})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to rank resources", err)
	}

	stats.Monthly = make([]queries.MonthlyCount, 0)
	err = r.collect(ctx, `
		SELECT to_char(r.booking_date, 'YYYY-MM') AS month, count(*)
		FROM reservations r`+where+`
		GROUP BY month
		ORDER BY month`, w.args,
		func(rows pgx.Rows) error {
			var m queries.MonthlyCount
			if err := rows.Scan(&m.Month, &m.Bookings); err != nil {
				return err
			}
			stats.Monthly = append(stats.Monthly, m)
			return nil
		})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to count reservations per month", err)
	}

	return stats, nil
}

func revenuePredicate(where string) string {
	statuses := make([]string, 0, len(reservation.RevenueStatuses()))
	for _, st := range reservation.RevenueStatuses() {
		statuses = append(statuses, "'"+st.String()+"'")
	}
	clause := "r.status IN (" + strings.Join(statuses, ", ") + ")"
	if where == "" {
		return " WHERE " + clause
	}
	return where + " AND " + clause
}

func (r *ReservationReadStore) collect(ctx context.Context, query string, args []any, scan func(pgx.Rows) error) error {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *ReservationReadStore) queryViews(ctx context.Context, msg, query string, args ...any) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
	}
	defer rows.Close()

	out := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
	}
	return out, nil
}
