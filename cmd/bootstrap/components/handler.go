package components

import (
	"lodging-reservations/internal/handler"
	"lodging-reservations/internal/handler/api"
	"lodging-reservations/internal/handler/middleware"
	"lodging-reservations/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig {
			return cfg.Cookie
		},
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewScheduleHandler,
		api.NewWatchHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
