package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"remit-service/internal/domain"
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

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

type fakeRateGateway struct {
	entries []domain.ExchangeEntry
	err     error
	codes   []string // last requested codes
}

func (f *fakeRateGateway) FetchRates(_ context.Context, codes []string) ([]domain.ExchangeEntry, error) {
	f.codes = codes
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeQuoteStore struct {
	mu     sync.Mutex
	nextID int64
	quotes map[int64]domain.Quote
	err    error
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{quotes: map[int64]domain.Quote{}}
}

func (f *fakeQuoteStore) Save(_ context.Context, q domain.Quote) (domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Quote{}, f.err
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
	if f.err != nil {
		return domain.Quote{}, f.err
	}
	q, ok := f.quotes[id]
	if !ok || q.OwnerID != ownerID || q.Requested {
		return domain.Quote{}, domain.ErrQuoteNotFound
	}
	return q, nil
}

func (f *fakeQuoteStore) TodayAggregate(_ context.Context, ownerID int64, dayStart, dayEnd time.Time) (domain.DailyUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.DailyUsage{}, f.err
	}
	var usage domain.DailyUsage
	for _, q := range f.quotes {
		if q.OwnerID != ownerID || !q.Requested || q.RequestedAt == nil {
			continue
		}
		at := *q.RequestedAt
		if at.Before(dayStart) || at.After(dayEnd) {
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
	if f.err != nil {
		return nil, f.err
	}
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
