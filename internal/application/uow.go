package application

import "context"

// UnitOfWork is a minimal transaction boundary; implementations carry the
// transaction through the context so store methods can join it.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopUoW runs the function without a transaction; used in tests and with
// stores that have no transactional backend.
type NoopUoW struct{}

func (NoopUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
