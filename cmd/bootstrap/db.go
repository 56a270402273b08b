package bootstrap

import (
	"context"

	"lodging-reservations/internal/infra/db"
	"lodging-reservations/internal/infra/watch"
	"lodging-reservations/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
		NewReservationListener,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

func NewReservationListener(lc fx.Lifecycle, pool *pgxpool.Pool) *watch.Listener {
	listener := watch.NewListener(pool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			listener.Stop()
			return nil
		},
	})

	return listener
}
