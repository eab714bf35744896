package bootstrap

import (
	"context"
	"log/slog"

	"condo-reservations/internal/infra/lock"
	"condo-reservations/internal/infra/telemetry"
	"condo-reservations/internal/pkg/config"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var LockModule = fx.Module("lock",
	fx.Provide(
		NewSlotLocker,
	),
)

// NewSlotLocker uses Redis when REDIS_ADDR is set so that several replicas
// serialise the same slots; otherwise locks are held in-process.
func NewSlotLocker(lc fx.Lifecycle, cfg config.Config, tracer telemetry.Tracer, logger *slog.Logger) (shared.SlotLocker, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("slot locks are in-process")
		return lock.NewLocalLocker(cfg.Booking.LockWait), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "ping redis at %s", cfg.Redis.Addr)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	logger.Info("slot locks are held in redis", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.LockTTL)
	return lock.NewRedisLocker(client, tracer, cfg.Redis.LockTTL, cfg.Booking.LockWait), nil
}
