package bootstrap

import (
	"context"

	"condo-reservations/internal/infra/telemetry"
	"condo-reservations/internal/pkg/config"

	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Provide(
		NewTracer,
	),
)

func NewTracer(lc fx.Lifecycle, cfg config.Config) (telemetry.Tracer, error) {
	tracer, shutdown, err := telemetry.NewTracer(context.Background(), cfg.Telemetry)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	return tracer, nil
}
