package components

import (
	"condo-reservations/internal/handler"
	"condo-reservations/internal/handler/api"
	reqdto "condo-reservations/internal/handler/dto/request"
	"condo-reservations/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewResourceHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(
		reqdto.RegisterValidators,
		handler.NewRouter,
	),
)
