package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"remit-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 9, 10, 0, 0, 0, domain.Seoul)

func setup() (http.Handler, *fakeQuoteStore) {
	svc, store := NewInMemoryService(testNow)
	srv := NewServer(svc)
	return NewRouter(srv), store
}

func doJSON(t *testing.T, h http.Handler, method, path string, accountID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if accountID != "" {
		req.Header.Set("X-Account-Id", accountID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h, _ := setup()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestReadyz_NoPingConfigured(t *testing.T) {
	h, _ := setup()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz_PingFails(t *testing.T) {
	svc, _ := NewInMemoryService(testNow)
	srv := NewServer(svc).WithPing(func(context.Context) error { return errors.New("down") })
	h := NewRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateQuote_USD(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodPost, "/transfer/quote", "1",
		map[string]any{"amount": 1000001, "targetCurrency": "USD"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		QuoteID      int64           `json:"quoteId"`
		ExchangeRate decimal.Decimal `json:"exchangeRate"`
		ExpireTime   string          `json:"expireTime"`
		TargetAmount decimal.Decimal `json:"targetAmount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.QuoteID)
	require.True(t, resp.ExchangeRate.Equal(decimal.NewFromInt(1434)))
	require.True(t, resp.TargetAmount.Equal(decimal.RequireFromString("694.56")))
	require.Equal(t, "2026-03-09 10:10:00", resp.ExpireTime)
}

func TestCreateQuote_MissingAccountHeader(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodPost, "/transfer/quote", "",
		map[string]any{"amount": 10000, "targetCurrency": "USD"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateQuote_AmountBelowFloor(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodPost, "/transfer/quote", "1",
		map[string]any{"amount": 0, "targetCurrency": "USD"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateQuote_KRWTargetRejected(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodPost, "/transfer/quote", "1",
		map[string]any{"amount": 10000, "targetCurrency": "KRW"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateQuote_UnknownAccount(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodPost, "/transfer/quote", "99",
		map[string]any{"amount": 10000, "targetCurrency": "USD"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestTransfer_HappyPath(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodPost, "/transfer/quote", "1",
		map[string]any{"amount": 10000, "targetCurrency": "USD"})
	require.Equal(t, http.StatusOK, rec.Code)
	var quote struct {
		QuoteID int64 `json:"quoteId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))

	rec = doJSON(t, h, http.MethodPost, "/transfer/request", "1",
		map[string]any{"quoteId": quote.QuoteID})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		QuoteID       int64  `json:"quoteId"`
		RequestedDate string `json:"requestedDate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, quote.QuoteID, resp.QuoteID)
	require.Equal(t, "2026-03-09 10:00:00", resp.RequestedDate)
}

func TestRequestTransfer_UnknownQuote(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodPost, "/transfer/request", "1",
		map[string]any{"quoteId": 42})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestTransfer_ExpiredQuote(t *testing.T) {
	h, store := setup()
	saved, err := store.Save(context.Background(), domain.Quote{
		OwnerID:         1,
		SourceAmount:    decimal.NewFromInt(10000),
		TargetCurrency:  domain.USD,
		ExchangeRate:    decimal.NewFromInt(1434),
		USDExchangeRate: decimal.NewFromInt(1434),
		Fee:             decimal.NewFromInt(1020),
		TargetAmount:    decimal.RequireFromString("6.26"),
		USDAmount:       decimal.RequireFromString("6.26"),
		ExpiresAt:       testNow.Add(-time.Minute),
	})
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPost, "/transfer/request", "1",
		map[string]any{"quoteId": saved.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTransfers(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodPost, "/transfer/quote", "1",
		map[string]any{"amount": 10000, "targetCurrency": "USD"})
	require.Equal(t, http.StatusOK, rec.Code)
	var quote struct {
		QuoteID int64 `json:"quoteId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	rec = doJSON(t, h, http.MethodPost, "/transfer/request", "1",
		map[string]any{"quoteId": quote.QuoteID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/transfer/list", "1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		UserID                 string          `json:"userId"`
		Name                   string          `json:"name"`
		TodayTransferCount     int64           `json:"todayTransferCount"`
		TodayTransferUsdAmount decimal.Decimal `json:"todayTransferUsdAmount"`
		History                []struct {
			SourceAmount   decimal.Decimal `json:"sourceAmount"`
			Fee            decimal.Decimal `json:"fee"`
			TargetCurrency string          `json:"targetCurrency"`
			TargetAmount   decimal.Decimal `json:"targetAmount"`
			RequestedDate  string          `json:"requestedDate"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "alice@example.com", resp.UserID)
	require.Equal(t, "Alice", resp.Name)
	require.Equal(t, int64(1), resp.TodayTransferCount)
	require.True(t, resp.TodayTransferUsdAmount.Equal(decimal.RequireFromString("6.26")))
	require.Len(t, resp.History, 1)
	require.Equal(t, "USD", resp.History[0].TargetCurrency)
	require.True(t, resp.History[0].SourceAmount.Equal(decimal.NewFromInt(10000)))
	require.Equal(t, "2026-03-09 10:00:00", resp.History[0].RequestedDate)
}

func TestListTransfers_Empty(t *testing.T) {
	h, _ := setup()
	rec := doJSON(t, h, http.MethodGet, "/transfer/list", "1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TodayTransferCount int64             `json:"todayTransferCount"`
		History            []json.RawMessage `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Zero(t, resp.TodayTransferCount)
	require.Empty(t, resp.History)
}
