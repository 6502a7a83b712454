package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLockNotAcquired возвращается, когда блокировка уже удерживается
	// другим обработчиком (например, параллельным дублем webhook-а)
	ErrLockNotAcquired = errors.New("redislock: lock not acquired")
)

// Locker распределённая блокировка по плану
// Используется обработчиком платежных уведомлений: провайдер доставляет
// уведомления at-least-once, и два дубля могут прийти почти одновременно
type Locker interface {
	WithPlanLock(ctx context.Context, planID int64, fn func(ctx context.Context) error) error
}

type planLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanLocker создает locker с ключом на каждый план
func NewPlanLocker(client *redis.Client, ttl time.Duration) Locker {
	return &planLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *planLocker) WithPlanLock(ctx context.Context, planID int64, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:plan:%d", planID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("redislock: acquire plan lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

// Снятие блокировки только своим токеном, чтобы не снять чужую
// после истечения собственного TTL
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *planLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redislock: release plan lock: %w", err)
	}
	return nil
}

// NoopLocker выполняет fn без блокировки
// Используется, когда Redis выключен в конфигурации: защита от дублей
// остаётся на условном обновлении payment_status в БД
type NoopLocker struct{}

// WithPlanLock выполняет fn напрямую
func (NoopLocker) WithPlanLock(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
