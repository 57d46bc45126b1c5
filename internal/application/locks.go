package application

import (
	"context"
	"sync"
)

// KeyedMutex is the in-process AccountLocker: one mutex per account id.
// Sufficient for a single-instance deployment; multi-instance setups use the
// redis-backed locker instead.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: map[int64]*sync.Mutex{}}
}

func (m *KeyedMutex) Do(ctx context.Context, accountID int64, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	lock, ok := m.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[accountID] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
