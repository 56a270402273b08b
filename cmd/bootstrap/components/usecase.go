package components

import (
	"time"

	"lodging-reservations/internal/pkg/clock"
	"lodging-reservations/internal/pkg/config"
	"lodging-reservations/internal/usecase"
	"lodging-reservations/internal/usecase/commands"
	"lodging-reservations/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBookingLocation,
	func(cfg config.Config) config.BookingConfig {
		return cfg.Booking
	},
)

// NewBookingLocation resolves the timezone the Friday-noon gate is anchored
// in. Window math is wall-clock local, never UTC.
func NewBookingLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Booking.Location()
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewReservationQueries,
		queries.NewOccupancyQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
