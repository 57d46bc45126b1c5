package redisstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	redisstore "remit-service/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newLock(t *testing.T) *redisstore.AccountLock {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.New(client, time.Minute, 5*time.Millisecond)
}

func TestAccountLock_Serializes(t *testing.T) {
	lock := newLock(t)
	ctx := context.Background()

	var inside, maxInside int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := lock.Do(ctx, 7, func(context.Context) error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()
				time.Sleep(10 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, maxInside)
}

func TestAccountLock_DistinctAccountsDoNotBlock(t *testing.T) {
	lock := newLock(t)
	ctx := context.Background()

	err := lock.Do(ctx, 1, func(ctx context.Context) error {
		done := make(chan error, 1)
		go func() {
			done <- lock.Do(ctx, 2, func(context.Context) error { return nil })
		}()
		select {
		case err := <-done:
			return err
		case <-time.After(time.Second):
			t.Fatal("lock for another account blocked")
			return nil
		}
	})
	require.NoError(t, err)
}

func TestAccountLock_ReleasedAfterError(t *testing.T) {
	lock := newLock(t)
	ctx := context.Background()

	wantErr := context.DeadlineExceeded
	err := lock.Do(ctx, 7, func(context.Context) error { return wantErr })
	require.ErrorIs(t, err, wantErr)

	// lock is free again
	err = lock.Do(ctx, 7, func(context.Context) error { return nil })
	require.NoError(t, err)
}
