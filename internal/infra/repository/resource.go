package repository

import (
	"context"
	"log/slog"

	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/infra"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ResourceRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewResourceRepository(dbtx db.DBTX, logger *slog.Logger) *ResourceRepository {
	return &ResourceRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id)
	res, err := scanResource(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(resource.ErrResourceNotFound, "%s", id)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to find resource by ID", err)
	}
	return res, nil
}

func (r *ResourceRepository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM resources WHERE lower(name) = $1 AND id <> $2)`,
		resource.NameKey(name), excludeID,
	).Scan(&taken)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check resource name", err)
	}
	return taken, nil
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		resourceArgs(res)...,
	)
	if err != nil {
		return r.writeErr("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	args := resourceArgs(res)
	tag, err := r.db.Exec(ctx, `
		UPDATE resources SET
			name = $2, description = $3, hourly_rate = $4, status = $5, capacity = $6,
			opening_time = $7, closing_time = $8, allowed_weekdays = $9,
			min_duration_hours = $10, max_duration_hours = $11,
			min_advance_hours = $12, max_advance_hours = $13,
			updated_at = $15
		WHERE id = $1`,
		args...,
	)
	if err != nil {
		return r.writeErr("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Wrapf(resource.ErrResourceNotFound, "%s", res.ID())
	}
	return nil
}

func (r *ResourceRepository) writeErr(msg string, err error) error {
	kind := infra.ClassifyPgError(err)
	if kind == infra.KindDuplicateKey {
		return errs.Wrap(resource.ErrDuplicateName, msg)
	}
	return infra.WrapRepoErr(r.logger, kind, msg, err)
}

func resourceArgs(res *resource.Resource) []any {
	days := res.AllowedWeekdays()
	weekdays := make([]int16, len(days))
	for i, d := range days {
		weekdays[i] = int16(d.Int())
	}
	return []any{
		res.ID(),
		res.Name(),
		res.Description(),
		pgconv.DecimalToNumeric(res.HourlyRate()),
		res.Status().String(),
		int32(res.Capacity()),
		pgconv.TimeOfDayToPgtype(res.OpeningTime()),
		pgconv.TimeOfDayToPgtype(res.ClosingTime()),
		weekdays,
		int32(res.MinDurationHours()),
		int32(res.MaxDurationHours()),
		int32(res.MinAdvanceHours()),
		int32(res.MaxAdvanceHours()),
		pgconv.TimeToPgtype(res.CreatedAt()),
		pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}
