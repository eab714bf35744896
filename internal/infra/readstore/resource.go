package readstore

import (
	"context"
	"log/slog"

	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/infra"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/pkg/pgconv"
	"condo-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewResourceReadStore(dbtx db.DBTX, logger *slog.Logger) *ResourceReadStore {
	return &ResourceReadStore{
		db:     dbtx,
		logger: logger,
	}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resourceViewColumns+` FROM resources WHERE id = $1`, id)
	view, err := scanResourceView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(resource.ErrResourceNotFound, "%s", id)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find resource by ID", err)
	}
	return view, nil
}

func (r *ResourceReadStore) List(ctx context.Context, status string) ([]*queries.ResourceView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+resourceViewColumns+`
		FROM resources
		WHERE $1 = '' OR status = $1
		ORDER BY lower(name), id`,
		status,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list resources", err)
	}
	defer rows.Close()

	out := make([]*queries.ResourceView, 0)
	for rows.Next() {
		view, err := scanResourceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan resource", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate resources", err)
	}
	return out, nil
}
