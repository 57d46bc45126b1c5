package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seoul is the reference time zone for quote expiry and daily windows.
// A fixed offset keeps behavior independent of host tzdata.
var Seoul = time.FixedZone("KST", 9*60*60)

// QuoteValidity is how long a quote stays admissible after creation.
const QuoteValidity = 10 * time.Minute

// Quote is a priced, time-bounded offer to convert a KRW amount into the
// target currency. It is created open and transitions exactly once to
// requested; once requested the record is immutable.
type Quote struct {
	ID              int64
	OwnerID         int64
	SourceAmount    decimal.Decimal // KRW
	TargetCurrency  Currency
	ExchangeRate    decimal.Decimal
	USDExchangeRate decimal.Decimal
	Fee             decimal.Decimal // KRW
	TargetAmount    decimal.Decimal
	USDAmount       decimal.Decimal
	ExpiresAt       time.Time
	RequestedAt     *time.Time
	Requested       bool
}

// Admit transitions an open quote to requested. The expiry check compares
// wall clock against the fixed ExpiresAt; there is no timer-driven sweep.
func (q Quote) Admit(now time.Time) (Quote, error) {
	if now.After(q.ExpiresAt) {
		return Quote{}, ErrQuoteExpired
	}
	at := now
	q.RequestedAt = &at
	q.Requested = true
	return q, nil
}

// DayBounds returns the inclusive start and end of now's calendar day in the
// reference time zone.
func DayBounds(now time.Time) (start, end time.Time) {
	local := now.In(Seoul)
	y, m, d := local.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, Seoul)
	end = time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), Seoul)
	return start, end
}

// DailyUsage aggregates an account's admitted transfers for one calendar day.
// Its zero value is the correct answer for an account with no transfers.
type DailyUsage struct {
	Count  int64
	USDSum decimal.Decimal
}

// ExchangeEntry is one rate record from the external rate source.
type ExchangeEntry struct {
	Code         string
	CurrencyCode string
	CurrencyUnit decimal.Decimal
	BasePrice    decimal.Decimal
}
