package application

import (
	"context"
	"time"

	"remit-service/internal/domain"
)

// DailyLimitAggregator computes an account's already-admitted transfer volume
// for the calendar day containing now, in the reference time zone.
type DailyLimitAggregator struct {
	store QuoteStore
}

func NewDailyLimitAggregator(store QuoteStore) *DailyLimitAggregator {
	return &DailyLimitAggregator{store: store}
}

// TodayUsage never fails on absence: no matching rows is {0, 0}.
func (a *DailyLimitAggregator) TodayUsage(ctx context.Context, accountID int64, now time.Time) (domain.DailyUsage, error) {
	start, end := domain.DayBounds(now)
	return a.store.TodayAggregate(ctx, accountID, start, end)
}
