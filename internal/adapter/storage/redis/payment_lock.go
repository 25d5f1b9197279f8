package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// PaymentLock implements ports.PaymentLocker with SET NX PX.
type PaymentLock struct {
	client goredis.UniversalClient
}

// NewPaymentLock creates a Redis-backed payment lock.
func NewPaymentLock(client goredis.UniversalClient) *PaymentLock {
	return &PaymentLock{client: client}
}

// Acquire takes key for ttl. ok is false when another holder owns it.
func (l *PaymentLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", false, fmt.Errorf("lock token: %w", err)
	}
	token := hex.EncodeToString(buf)

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis lock acquire %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops key if token still owns it. An expired or stolen lock is left alone.
func (l *PaymentLock) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		return fmt.Errorf("redis lock release %s: %w", key, err)
	}
	return nil
}
