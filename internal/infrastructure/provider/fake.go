package provider

import (
	"context"

	"remit-service/internal/application"
	"remit-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements application.RateGateway.
var _ application.RateGateway = (*Fake)(nil)

// Fake serves a fixed rate table; used in dev and tests when the real rate
// source is not reachable.
type Fake struct {
	entries []domain.ExchangeEntry
}

func NewFake() *Fake {
	return &Fake{entries: []domain.ExchangeEntry{
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
	}}
}

func (f *Fake) FetchRates(_ context.Context, codes []string) ([]domain.ExchangeEntry, error) {
	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}
	var out []domain.ExchangeEntry
	for _, e := range f.entries {
		if wanted[e.Code] {
			out = append(out, e)
		}
	}
	return out, nil
}
