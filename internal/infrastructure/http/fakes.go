package httpserver

import (
	"context"
	"sort"
	"sync"
	"time"

	"remit-service/internal/application"
	"remit-service/internal/domain"

	"github.com/shopspring/decimal"
)

var _ application.AccountDirectory = (*fakeDirectory)(nil)
var _ application.QuoteStore = (*fakeQuoteStore)(nil)
var _ application.RateGateway = (*fakeRateGateway)(nil)

type fakeDirectory struct {
	accounts map[int64]domain.Account
}

func (f *fakeDirectory) FindByID(_ context.Context, id int64) (domain.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrUnknownUser
	}
	return a, nil
}

type fakeQuoteStore struct {
	mu     sync.Mutex
	nextID int64
	quotes map[int64]domain.Quote
}

func (f *fakeQuoteStore) Save(_ context.Context, q domain.Quote) (domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.quotes == nil {
		f.quotes = map[int64]domain.Quote{}
	}
	if q.ID == 0 {
		f.nextID++
		q.ID = f.nextID
	}
	f.quotes[q.ID] = q
	return q, nil
}

func (f *fakeQuoteStore) FindOpenByID(_ context.Context, id, ownerID int64) (domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[id]
	if !ok || q.OwnerID != ownerID || q.Requested {
		return domain.Quote{}, domain.ErrQuoteNotFound
	}
	return q, nil
}

func (f *fakeQuoteStore) TodayAggregate(_ context.Context, ownerID int64, dayStart, dayEnd time.Time) (domain.DailyUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	usage := domain.DailyUsage{USDSum: decimal.Zero}
	for _, q := range f.quotes {
		if q.OwnerID != ownerID || !q.Requested || q.RequestedAt == nil {
			continue
		}
		if q.RequestedAt.Before(dayStart) || q.RequestedAt.After(dayEnd) {
			continue
		}
		usage.Count++
		usage.USDSum = usage.USDSum.Add(q.USDAmount)
	}
	return usage, nil
}

func (f *fakeQuoteStore) FindAllRequested(_ context.Context, ownerID int64) ([]domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Quote
	for _, q := range f.quotes {
		if q.OwnerID == ownerID && q.Requested {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestedAt.After(*out[j].RequestedAt)
	})
	return out, nil
}

type fakeRateGateway struct{}

func (fakeRateGateway) FetchRates(_ context.Context, codes []string) ([]domain.ExchangeEntry, error) {
	table := []domain.ExchangeEntry{
		{
			Code:         domain.USD.RateCode(),
			CurrencyCode: string(domain.USD),
			CurrencyUnit: decimal.NewFromInt(1),
			BasePrice:    decimal.NewFromInt(1434),
		},
		{
			Code:         domain.JPY.RateCode(),
			CurrencyCode: string(domain.JPY),
			CurrencyUnit: decimal.NewFromInt(100),
			BasePrice:    decimal.RequireFromString("917.11"),
		},
	}
	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}
	var out []domain.ExchangeEntry
	for _, e := range table {
		if wanted[e.Code] {
			out = append(out, e)
		}
	}
	return out, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// NewInMemoryService wires the service against in-memory collaborators with a
// frozen clock; account 1 is a seeded personal-tier account.
func NewInMemoryService(now time.Time) (*application.TransferService, *fakeQuoteStore) {
	dir := &fakeDirectory{accounts: map[int64]domain.Account{
		1: {ID: 1, UserID: "alice@example.com", Name: "Alice", Tier: domain.TierPersonal},
	}}
	store := &fakeQuoteStore{}
	calc := application.NewQuoteCalculator(fakeRateGateway{}, fixedClock{t: now})
	agg := application.NewDailyLimitAggregator(store)
	svc := application.NewTransferService(dir, store, calc, agg, nil, nil, application.WithClock(fixedClock{t: now}))
	return svc, store
}
