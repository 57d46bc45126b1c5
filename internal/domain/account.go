package domain

import "github.com/shopspring/decimal"

// Tier determines an account's daily USD-denominated transfer cap.
type Tier string

const (
	TierPersonal Tier = "personal"
	TierBusiness Tier = "business"
)

var (
	personalDailyLimitUSD = decimal.NewFromInt(1000)
	businessDailyLimitUSD = decimal.NewFromInt(5000)
)

// DailyLimitUSD is the tier's same-calendar-day admitted volume ceiling.
// Reaching the cap exactly is already a rejection.
func (t Tier) DailyLimitUSD() decimal.Decimal {
	if t == TierBusiness {
		return businessDailyLimitUSD
	}
	return personalDailyLimitUSD
}

// Account is the owning party of quotes. Signup, authentication and
// credential storage live outside this service.
type Account struct {
	ID     int64
	UserID string
	Name   string
	Tier   Tier
}
