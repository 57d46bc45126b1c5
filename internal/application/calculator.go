package application

import (
	"context"
	"fmt"

	"remit-service/internal/domain"

	"github.com/shopspring/decimal"
)

// QuoteCalculator prices a KRW amount into a target currency using the
// external rate source and the fee schedule. All arithmetic is exact decimal
// with HALF_UP rounding at the documented points only.
type QuoteCalculator struct {
	rates RateGateway
	clock Clock
}

func NewQuoteCalculator(rates RateGateway, clock Clock) *QuoteCalculator {
	if clock == nil {
		clock = realClock{}
	}
	return &QuoteCalculator{rates: rates, clock: clock}
}

// Compute builds an unpersisted quote draft for the account. The amount is
// expected positive (validated at the edge); a non-positive computed target
// amount aborts with ErrNegativeAmount so the quote is never stored.
func (c *QuoteCalculator) Compute(ctx context.Context, owner domain.Account, amount decimal.Decimal, target domain.Currency) (domain.Quote, error) {
	fee, err := domain.TransferFee(amount, target)
	if err != nil {
		return domain.Quote{}, err
	}

	targetRate, usdRate, err := c.fetchRates(ctx, target)
	if err != nil {
		return domain.Quote{}, err
	}

	net := amount.Sub(fee)
	targetAmount := domain.DivHalfUp(net, targetRate, target.FractionDigits())
	if !targetAmount.IsPositive() {
		return domain.Quote{}, domain.ErrNegativeAmount
	}
	// The fee stays KRW-denominated for the USD equivalent as well; only the
	// divisor changes.
	usdAmount := domain.DivHalfUp(net, usdRate, domain.USD.FractionDigits())

	now := c.clock.Now().In(domain.Seoul)
	return domain.Quote{
		OwnerID:         owner.ID,
		SourceAmount:    domain.RoundHalfUp(amount, domain.KRW.FractionDigits()),
		TargetCurrency:  target,
		ExchangeRate:    targetRate,
		USDExchangeRate: usdRate,
		Fee:             fee,
		TargetAmount:    targetAmount,
		USDAmount:       usdAmount,
		ExpiresAt:       now.Add(domain.QuoteValidity),
	}, nil
}

// fetchRates asks the gateway for the target's code plus USD's code (USD is
// always fetched) and derives both per-unit rates. Any gateway failure or a
// missing expected entry surfaces as ErrExternalAPI; no raw transport error
// crosses this boundary.
func (c *QuoteCalculator) fetchRates(ctx context.Context, target domain.Currency) (targetRate, usdRate decimal.Decimal, err error) {
	codes := []string{domain.USD.RateCode()}
	if target != domain.USD {
		codes = append(codes, target.RateCode())
	}

	entries, err := c.rates.FetchRates(ctx, codes)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: %v", domain.ErrExternalAPI, err)
	}

	byCurrency := make(map[string]domain.ExchangeEntry, len(entries))
	for _, e := range entries {
		byCurrency[e.CurrencyCode] = e
	}

	usdEntry, ok := byCurrency[string(domain.USD)]
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: missing entry for USD", domain.ErrExternalAPI)
	}
	targetEntry, ok := byCurrency[string(target)]
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: missing entry for %s", domain.ErrExternalAPI, target)
	}

	return domain.DeriveRate(targetEntry.BasePrice, targetEntry.CurrencyUnit),
		domain.DeriveRate(usdEntry.BasePrice, usdEntry.CurrencyUnit), nil
}
