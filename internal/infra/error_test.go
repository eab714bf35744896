//go:build unit

package infra_test

import (
	"io"
	"log/slog"
	"testing"

	"condo-reservations/internal/infra"
	"condo-reservations/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPgError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "wrapped no rows", err: errs.Wrap(pgx.ErrNoRows, "find"), want: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, want: infra.KindConflict},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "other", err: errs.New("connection reset"), want: infra.KindDBFailure},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, infra.ClassifyPgError(c.err))
		})
	}
}

func TestWrapRepoErr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cause := &pgconn.PgError{Code: "23P01"}

	err := infra.WrapRepoErr(logger, infra.KindConflict, "insert reservation", cause)

	assert.True(t, infra.IsKind(err, infra.KindConflict))
	assert.False(t, infra.IsKind(err, infra.KindNotFound))
	assert.True(t, infra.IsKind(errs.Wrap(err, "outer"), infra.KindConflict))
	var pgErr *pgconn.PgError
	assert.True(t, errs.As(err, &pgErr))
}
