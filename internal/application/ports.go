package application

import (
	"context"
	"time"

	"remit-service/internal/domain"
)

// QuoteStore is the durable record of quotes.
type QuoteStore interface {
	// Save assigns an id on first insert and overwrites on update.
	Save(ctx context.Context, q domain.Quote) (domain.Quote, error)
	// FindOpenByID loads a quote by id, owner and requested=false; any
	// mismatch (absent, wrong owner, already requested) is ErrQuoteNotFound.
	FindOpenByID(ctx context.Context, id, ownerID int64) (domain.Quote, error)
	// TodayAggregate sums requested quotes with requested_at in [dayStart, dayEnd].
	TodayAggregate(ctx context.Context, ownerID int64, dayStart, dayEnd time.Time) (domain.DailyUsage, error)
	// FindAllRequested returns requested quotes ordered by requested_at desc.
	FindAllRequested(ctx context.Context, ownerID int64) ([]domain.Quote, error)
}

// RateGateway fetches current base-price/unit entries for the given rate
// codes. Implementations return their errors raw; the calculator translates
// every failure at the component boundary.
type RateGateway interface {
	FetchRates(ctx context.Context, codes []string) ([]domain.ExchangeEntry, error)
}

// AccountDirectory resolves accounts by id.
type AccountDirectory interface {
	FindByID(ctx context.Context, id int64) (domain.Account, error)
}

// AccountLocker runs fn while holding a mutual-exclusion lock for the given
// account. Admission's limit-check-then-persist must be serialized per
// account or two concurrent admissions can both pass the cap check.
type AccountLocker interface {
	Do(ctx context.Context, accountID int64, fn func(ctx context.Context) error) error
}
