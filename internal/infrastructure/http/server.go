package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"remit-service/internal/application"
	"remit-service/internal/domain"

	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04:05"

type Server struct {
	svc  *application.TransferService
	ping func(ctx context.Context) error
}

func NewServer(svc *application.TransferService) *Server { return &Server{svc: svc} }

// WithPing wires the readiness probe to a backend health check.
func (s *Server) WithPing(ping func(ctx context.Context) error) *Server {
	s.ping = ping
	return s
}

type quoteRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	TargetCurrency string          `json:"targetCurrency"`
}

type quoteResponse struct {
	QuoteID      int64           `json:"quoteId"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	ExpireTime   string          `json:"expireTime"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

func (s *Server) CreateQuote(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFrom(r)
	if !ok {
		badRequest(w, "missing or invalid X-Account-Id")
		return
	}
	var body quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	// the amount floor is a caller-side contract: at least 1 KRW
	if body.Amount.LessThan(decimal.NewFromInt(1)) {
		badRequest(w, "amount must be at least 1 KRW")
		return
	}
	currency, err := domain.ParseCurrency(body.TargetCurrency)
	if err != nil || !currency.ValidTarget() {
		badRequest(w, "unsupported target currency")
		return
	}

	quote, err := s.svc.CreateQuote(r.Context(), accountID, body.Amount, currency)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{
		QuoteID:      quote.ID,
		ExchangeRate: quote.ExchangeRate,
		ExpireTime:   quote.ExpiresAt.In(domain.Seoul).Format(timeLayout),
		TargetAmount: quote.TargetAmount,
	})
}

type transferRequest struct {
	QuoteID int64 `json:"quoteId"`
}

type transferResponse struct {
	QuoteID       int64  `json:"quoteId"`
	RequestedDate string `json:"requestedDate"`
}

func (s *Server) RequestTransfer(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFrom(r)
	if !ok {
		badRequest(w, "missing or invalid X-Account-Id")
		return
	}
	var body transferRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if body.QuoteID == 0 {
		badRequest(w, "quoteId is required")
		return
	}

	admitted, err := s.svc.AdmitTransfer(r.Context(), accountID, body.QuoteID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var requestedAt time.Time
	if admitted.RequestedAt != nil {
		requestedAt = admitted.RequestedAt.In(domain.Seoul)
	}
	writeJSON(w, http.StatusOK, transferResponse{
		QuoteID:       admitted.ID,
		RequestedDate: requestedAt.Format(timeLayout),
	})
}

type historyEntry struct {
	SourceAmount    decimal.Decimal `json:"sourceAmount"`
	Fee             decimal.Decimal `json:"fee"`
	USDExchangeRate decimal.Decimal `json:"usdExchangeRate"`
	USDAmount       decimal.Decimal `json:"usdAmount"`
	TargetCurrency  string          `json:"targetCurrency"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	RequestedDate   string          `json:"requestedDate"`
}

type historyResponse struct {
	UserID                 string          `json:"userId"`
	Name                   string          `json:"name"`
	TodayTransferCount     int64           `json:"todayTransferCount"`
	TodayTransferUsdAmount decimal.Decimal `json:"todayTransferUsdAmount"`
	History                []historyEntry  `json:"history"`
}

func (s *Server) ListTransfers(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFrom(r)
	if !ok {
		badRequest(w, "missing or invalid X-Account-Id")
		return
	}

	view, err := s.svc.ListHistory(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	history := make([]historyEntry, 0, len(view.History))
	for _, h := range view.History {
		history = append(history, historyEntry{
			SourceAmount:    h.SourceAmount,
			Fee:             h.Fee,
			USDExchangeRate: h.USDExchangeRate,
			USDAmount:       h.USDAmount,
			TargetCurrency:  string(h.TargetCurrency),
			ExchangeRate:    h.ExchangeRate,
			TargetAmount:    h.TargetAmount,
			RequestedDate:   h.RequestedAt.Format(timeLayout),
		})
	}
	writeJSON(w, http.StatusOK, historyResponse{
		UserID:                 view.UserID,
		Name:                   view.Name,
		TodayTransferCount:     view.TodayCount,
		TodayTransferUsdAmount: view.TodayUSDSum,
		History:                history,
	})
}

// accountFrom reads the caller's account id. Authentication happens upstream;
// the trusted gateway injects this header.
func accountFrom(r *http.Request) (int64, bool) {
	raw := r.Header.Get("X-Account-Id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrExternalAPI):
		writeError(w, http.StatusInternalServerError, "exchange rate source failed")
	case errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrQuoteNotFound),
		errors.Is(err, domain.ErrQuoteExpired),
		errors.Is(err, domain.ErrLimitExceeded),
		errors.Is(err, domain.ErrUnknownUser):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}
