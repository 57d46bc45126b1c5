package redisstore

import (
	"context"
	"fmt"
	"time"

	"remit-service/internal/application"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AccountLock serializes transfer admission per account across service
// instances with a SetNX + TTL lease. The TTL bounds how long a crashed
// holder can block an account.
type AccountLock struct {
	Client *redis.Client
	TTL    time.Duration
	Retry  time.Duration
}

var _ application.AccountLocker = (*AccountLock)(nil)

func New(client *redis.Client, ttl, retry time.Duration) *AccountLock {
	return &AccountLock{Client: client, TTL: ttl, Retry: retry}
}

// release only deletes the key if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0`)

func (l *AccountLock) Do(ctx context.Context, accountID int64, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("transfer:admit:%d", accountID)
	token := uuid.NewString()

	for {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.Retry):
		}
	}
	defer func() {
		_, _ = releaseScript.Run(context.WithoutCancel(ctx), l.Client, []string{key}, token).Result()
	}()

	return fn(ctx)
}
