//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/infra/lock"
	"condo-reservations/internal/infra/memstore"
	"condo-reservations/internal/infra/telemetry"
	"condo-reservations/internal/pkg/clock"
	"condo-reservations/internal/usecase/commands"
	"condo-reservations/internal/usecase/queries"
	"condo-reservations/internal/usecase/shared"
	"condo-reservations/tests/common/builder"

	"github.com/stretchr/testify/require"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []shared.AuditEntry
	err     error
}

func (r *recordingAudit) Record(_ context.Context, entry shared.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return r.err
}

func (r *recordingAudit) actions() []reservation.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reservation.Action, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []shared.Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n shared.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) statuses() []reservation.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reservation.Status, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Status)
	}
	return out
}

type fixture struct {
	clock        *clock.FixedClock
	uow          shared.UnitOfWork
	audit        *recordingAudit
	notifier     *recordingNotifier
	effects      *commands.Effects
	reservations commands.ReservationCommands
	workflow     commands.WorkflowCommands
	resources    commands.ResourceCommands
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewFixedClock(builder.BaseTime)
	store := memstore.NewStore()
	uow := memstore.NewUoW(store, logger)
	tracer := telemetry.NewNoopTracer()

	reservationQueries := queries.NewReservationQueries(memstore.NewReservationReadStore(store), clk, time.UTC)
	resourceQueries := queries.NewResourceQueries(memstore.NewResourceReadStore(store))
	factory := reservation.NewFactory(clk, reservation.NewHourlyRateCalculator(), time.UTC)
	locker := lock.NewLocalLocker(time.Second)

	f := &fixture{
		clock:    clk,
		uow:      uow,
		audit:    &recordingAudit{},
		notifier: &recordingNotifier{},
	}
	f.effects = commands.NewEffects(f.audit, f.notifier, logger)
	f.reservations = commands.NewReservationCommands(uow, locker, factory, reservationQueries, f.effects, tracer)
	f.workflow = commands.NewWorkflowCommands(uow, locker, factory, reservationQueries, f.effects, tracer)
	f.resources = commands.NewResourceCommands(uow, resourceQueries, clk, tracer, logger)
	t.Cleanup(f.effects.Wait)
	return f
}

func (f *fixture) seedResource(t *testing.T, b *builder.ResourceBuilder) *resource.Resource {
	t.Helper()
	res := b.MustBuildDomain()
	require.NoError(t, f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	}))
	return res
}

func (f *fixture) book(t *testing.T, res *resource.Resource, start, end string) *queries.ReservationView {
	t.Helper()
	in := commands.CreateReservationInput{
		ResourceID: res.ID(),
		Request:    builder.NewReservationBuilder().WithSlot(start, end).BuildRequest(),
	}
	view, err := f.reservations.Create(context.Background(), builder.NewResident(), in)
	require.NoError(t, err)
	return view
}
