package components

import (
	"context"
	"log/slog"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/pkg/clock"
	"condo-reservations/internal/usecase/commands"
	"condo-reservations/internal/usecase/queries"
	"condo-reservations/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewHourlyRateCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewResourceQueries,
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewEffects,
		commands.NewReservationCommands,
		commands.NewWorkflowCommands,
		commands.NewResourceCommands,
	),
)

// NewEffects drains in-flight audit and notification writes before the stores close.
func NewEffects(lc fx.Lifecycle, audit shared.AuditSink, notifier shared.Notifier, logger *slog.Logger) *commands.Effects {
	effects := commands.NewEffects(audit, notifier, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			effects.Wait()
			return nil
		},
	})
	return effects
}
