package bootstrap

import (
	"condo-reservations/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TelemetryModule,
	StorageModule,
	LockModule,
	JWTModule,
	components.UseCaseModule,
	components.HandlerModule,
)
