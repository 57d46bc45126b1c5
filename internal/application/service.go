package application

import (
	"context"
	"time"

	"remit-service/internal/domain"

	"github.com/shopspring/decimal"
)

// TransferService orchestrates quoting and transfer admission. Each call is
// independent; the only cross-record consistency requirement is admission's
// per-account limit check, which runs under the account lock inside one
// transaction.
type TransferService struct {
	accounts AccountDirectory
	store    QuoteStore
	calc     *QuoteCalculator
	agg      *DailyLimitAggregator
	locker   AccountLocker
	uow      UnitOfWork
	clock    Clock
}

type Option func(*TransferService)

func WithClock(c Clock) Option { return func(s *TransferService) { s.clock = c } }

func NewTransferService(accounts AccountDirectory, store QuoteStore, calc *QuoteCalculator, agg *DailyLimitAggregator, locker AccountLocker, uow UnitOfWork, opts ...Option) *TransferService {
	s := &TransferService{
		accounts: accounts,
		store:    store,
		calc:     calc,
		agg:      agg,
		locker:   locker,
		uow:      uow,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.locker == nil {
		s.locker = NewKeyedMutex()
	}
	if s.uow == nil {
		s.uow = NoopUoW{}
	}
	return s
}

// CreateQuote prices the amount and persists the resulting open quote.
func (s *TransferService) CreateQuote(ctx context.Context, accountID int64, amount decimal.Decimal, target domain.Currency) (domain.Quote, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.Quote{}, err
	}
	draft, err := s.calc.Compute(ctx, account, amount, target)
	if err != nil {
		return domain.Quote{}, err
	}
	return s.store.Save(ctx, draft)
}

// AdmitTransfer converts an open quote into a committed transfer. The
// aggregate read, cap check and state write are one atomic unit per account.
func (s *TransferService) AdmitTransfer(ctx context.Context, accountID, quoteID int64) (domain.Quote, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.Quote{}, err
	}

	var admitted domain.Quote
	err = s.locker.Do(ctx, accountID, func(ctx context.Context) error {
		return s.uow.Do(ctx, func(ctx context.Context) error {
			quote, err := s.store.FindOpenByID(ctx, quoteID, accountID)
			if err != nil {
				return err
			}

			now := s.clock.Now().In(domain.Seoul)
			next, err := quote.Admit(now)
			if err != nil {
				return err
			}

			usage, err := s.agg.TodayUsage(ctx, accountID, now)
			if err != nil {
				return err
			}
			candidate := usage.USDSum.Add(quote.USDAmount)
			if candidate.GreaterThanOrEqual(account.Tier.DailyLimitUSD()) {
				return domain.ErrLimitExceeded
			}

			admitted, err = s.store.Save(ctx, next)
			return err
		})
	})
	if err != nil {
		return domain.Quote{}, err
	}
	return admitted, nil
}

// HistoryEntry is one admitted transfer, re-rounded for display at read time.
type HistoryEntry struct {
	SourceAmount    decimal.Decimal
	Fee             decimal.Decimal
	USDExchangeRate decimal.Decimal
	USDAmount       decimal.Decimal
	TargetCurrency  domain.Currency
	ExchangeRate    decimal.Decimal
	TargetAmount    decimal.Decimal
	RequestedAt     time.Time
}

// TransferHistory is the list-history view: today's totals plus all admitted
// transfers, most recent first.
type TransferHistory struct {
	UserID      string
	Name        string
	TodayCount  int64
	TodayUSDSum decimal.Decimal
	History     []HistoryEntry
}

// ListHistory reapplies currency rounding on read rather than assuming it was
// preserved from write time: source amount and fee to KRW digits, target
// amount to each quote's own target-currency digits.
func (s *TransferService) ListHistory(ctx context.Context, accountID int64) (TransferHistory, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return TransferHistory{}, err
	}

	now := s.clock.Now().In(domain.Seoul)
	usage, err := s.agg.TodayUsage(ctx, accountID, now)
	if err != nil {
		return TransferHistory{}, err
	}

	quotes, err := s.store.FindAllRequested(ctx, accountID)
	if err != nil {
		return TransferHistory{}, err
	}

	history := make([]HistoryEntry, 0, len(quotes))
	for _, q := range quotes {
		var requestedAt time.Time
		if q.RequestedAt != nil {
			requestedAt = q.RequestedAt.In(domain.Seoul)
		}
		history = append(history, HistoryEntry{
			SourceAmount:    domain.RoundHalfUp(q.SourceAmount, domain.KRW.FractionDigits()),
			Fee:             domain.RoundHalfUp(q.Fee, domain.KRW.FractionDigits()),
			USDExchangeRate: q.USDExchangeRate,
			USDAmount:       q.USDAmount,
			TargetCurrency:  q.TargetCurrency,
			ExchangeRate:    q.ExchangeRate,
			TargetAmount:    domain.RoundHalfUp(q.TargetAmount, q.TargetCurrency.FractionDigits()),
			RequestedAt:     requestedAt,
		})
	}

	return TransferHistory{
		UserID:      account.UserID,
		Name:        account.Name,
		TodayCount:  usage.Count,
		TodayUSDSum: usage.USDSum,
		History:     history,
	}, nil
}
