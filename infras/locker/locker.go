package locker

//go:generate go run go.uber.org/mock/mockgen -source=./locker.go -destination=./mocks/locker_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/shared/constant"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrBusy is returned when the lock could not be acquired within the
// configured wait window. Callers should treat it as retryable contention,
// not a business-rule rejection.
var ErrBusy = errors.New("lock is held by another request")

// Handle identifies one successful acquisition. The token guards against
// releasing a lock that expired and was re-acquired by someone else.
type Handle struct {
	Key   string
	token string
}

// Locker is a named mutual-exclusion lock shared across service replicas.
// Acquire blocks up to the configured wait timeout; a held lock is forcibly
// released after the hold timeout so a stuck holder cannot deadlock the key.
type Locker interface {
	Acquire(ctx context.Context, key string) (Handle, error)
	Release(ctx context.Context, handle Handle) error
}

// releaseScript deletes the key only when it still carries our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`

type redisLocker struct {
	client *goRedis.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client *goRedis.Client, cfg *config.Config, otel otel.Otel) Locker {
	return &redisLocker{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

// Acquire implements Locker. It polls SET NX until the wait window closes;
// the value holds the handle token and the TTL enforces the bounded hold time.
func (l *redisLocker) Acquire(ctx context.Context, key string) (handle Handle, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Acquire")
	defer scope.End()

	scope.SetAttribute("lock.key", key)

	token := uuid.NewString()
	hold := time.Duration(l.cfg.Lock.HoldSeconds) * time.Second
	retry := time.Duration(l.cfg.Lock.RetryMillis) * time.Millisecond

	deadline := time.NewTimer(time.Duration(l.cfg.Lock.WaitSeconds) * time.Second)
	defer deadline.Stop()

	ticker := time.NewTicker(retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, hold).Result()
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to acquire lock")
			scope.TraceError(err)

			return Handle{}, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if ok {
			return Handle{Key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return Handle{}, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-deadline.C:
			scope.AddEvent("lock wait timed out")

			return Handle{}, ErrBusy
		case <-ticker.C:
		}
	}
}

// Release implements Locker. Releasing an already-expired handle is a no-op.
func (l *redisLocker) Release(ctx context.Context, handle Handle) (err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("lock.key", handle.Key)

	if err = l.client.Eval(ctx, releaseScript, []string{handle.Key}, handle.token).Err(); err != nil {
		log.Error().Err(err).Str("key", handle.Key).Msg("failed to release lock")

		return fmt.Errorf("failed to release lock: %w", err)
	}

	return nil
}
