package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"condo-reservations/internal/infra/telemetry"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	otelScopeName        = "slotlock"
	otelLockKeyAttribute = "slotlock.key"
	keyPrefix            = "condo:lock:"
	retryInterval        = 25 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another holder is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker serialises slot keys across processes sharing one Redis.
type RedisLocker struct {
	client *redis.Client
	tracer telemetry.Tracer
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client *redis.Client, tracer telemetry.Tracer, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		tracer: tracer,
		ttl:    ttl,
		wait:   wait,
	}
}

var _ shared.SlotLocker = (*RedisLocker)(nil)

func (l *RedisLocker) Lock(ctx context.Context, key string) (unlock func(), err error) {
	ctx, scope := l.tracer.NewScope(ctx, otelScopeName, otelScopeName+".Lock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute(otelLockKeyAttribute, key)

	redisKey := keyPrefix + key
	token := uuid.NewString()

	waitCtx, cancel := withWait(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		ok, setErr := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if setErr != nil && waitCtx.Err() == nil {
			slog.Error("slot lock acquisition failed", "key", key, "error", setErr.Error())
			return nil, errs.Wrapf(ErrLockUnavailable, "%s: %v", key, setErr)
		}
		if ok {
			scope.SetAttribute("slotlock.attempts", attempt)
			return l.releaser(redisKey, token), nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, errs.Wrapf(ErrLockTimeout, "%s after %s", key, l.wait)
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) releaser(redisKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
				// the TTL frees the key eventually
				slog.Warn("slot lock release failed", "key", redisKey, "error", err.Error())
			}
		})
	}
}
