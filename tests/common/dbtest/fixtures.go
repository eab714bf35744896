//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domreservation "condo-reservations/internal/domain/reservation"
	domresource "condo-reservations/internal/domain/resource"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/infra/repository"
	"condo-reservations/tests/common/builder"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateTestResource persists the resource described by b and returns it.
func CreateTestResource(t *testing.T, dbtx db.DBTX, b *builder.ResourceBuilder) *domresource.Resource {
	t.Helper()

	res, err := b.BuildDomain()
	require.NoError(t, err)
	err = repository.NewResourceRepository(dbtx, discardLogger()).Create(context.Background(), res)
	require.NoError(t, err)
	return res
}

// CreateTestReservation persists a reservation bypassing the booking rules, for seeding history.
func CreateTestReservation(t *testing.T, dbtx db.DBTX, b *builder.ReservationBuilder) *domreservation.Reservation {
	t.Helper()

	res := b.BuildDomain()
	err := repository.NewReservationRepository(dbtx, discardLogger()).Create(context.Background(), res)
	require.NoError(t, err)
	return res
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except the migration bookkeeping
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
