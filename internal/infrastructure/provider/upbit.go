package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"remit-service/internal/application"
	"remit-service/internal/domain"

	"github.com/shopspring/decimal"
)

// UpbitGateway fetches KRW-anchored rates from an upbit-style endpoint that
// takes a comma-joined set of rate codes and returns one entry per code.
// Errors are returned raw; the calculator translates them at its boundary.
type UpbitGateway struct {
	BaseURL string
	Client  *http.Client
}

var _ application.RateGateway = (*UpbitGateway)(nil)

type upbitEntry struct {
	Code         string      `json:"code"`
	CurrencyCode string      `json:"currencyCode"`
	CurrencyUnit json.Number `json:"currencyUnit"`
	BasePrice    json.Number `json:"basePrice"`
}

func (g *UpbitGateway) FetchRates(ctx context.Context, codes []string) ([]domain.ExchangeEntry, error) {
	if g.BaseURL == "" {
		return nil, errors.New("upbit: missing configuration")
	}

	u, err := url.Parse(g.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("upbit: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("codes", strings.Join(codes, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("upbit: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upbit: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upbit: status %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body []upbitEntry
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("upbit: decode response: %w", err)
	}

	out := make([]domain.ExchangeEntry, 0, len(body))
	for _, e := range body {
		unit, err := decimal.NewFromString(e.CurrencyUnit.String())
		if err != nil {
			return nil, fmt.Errorf("upbit: bad currencyUnit for %s: %w", e.Code, err)
		}
		base, err := decimal.NewFromString(e.BasePrice.String())
		if err != nil {
			return nil, fmt.Errorf("upbit: bad basePrice for %s: %w", e.Code, err)
		}
		out = append(out, domain.ExchangeEntry{
			Code:         e.Code,
			CurrencyCode: e.CurrencyCode,
			CurrencyUnit: unit,
			BasePrice:    base,
		})
	}
	return out, nil
}
