package domain

import "github.com/shopspring/decimal"

// Currency is the closed set of currencies the service understands.
// KRW is the source currency only; it is never a valid transfer target.
type Currency string

const (
	USD Currency = "USD"
	JPY Currency = "JPY"
	KRW Currency = "KRW"
)

// ParseCurrency maps a wire value onto the closed set.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case USD, JPY, KRW:
		return Currency(s), nil
	}
	return "", ErrUnsupportedCurrency
}

// FractionDigits is the currency's minor-unit scale.
func (c Currency) FractionDigits() int32 {
	switch c {
	case USD:
		return 2
	default:
		return 0
	}
}

// RateCode is the code the external rate source keys this currency by.
func (c Currency) RateCode() string {
	switch c {
	case USD:
		return "FRX.KRWUSD"
	case JPY:
		return "FRX.KRWJPY"
	default:
		return ""
	}
}

// ValidTarget reports whether a transfer may be denominated in c.
func (c Currency) ValidTarget() bool {
	return c == USD || c == JPY
}

var (
	usdFeeTierBoundary = decimal.NewFromInt(1_000_000)

	usdLowFixedFee  = decimal.NewFromInt(1000)
	usdLowFeeRate   = decimal.RequireFromString("0.002")
	usdHighFixedFee = decimal.NewFromInt(3000)
	usdHighFeeRate  = decimal.RequireFromString("0.001")
	jpyFixedFee     = decimal.NewFromInt(3000)
	jpyFeeRate      = decimal.RequireFromString("0.005")
)

// FeeFor selects the fixed fee and percentage rate for a KRW amount sent to
// the given target currency. USD is tiered at 1,000,000 KRW inclusive; JPY is
// flat regardless of amount.
func FeeFor(amount decimal.Decimal, target Currency) (fixed, rate decimal.Decimal, err error) {
	switch target {
	case USD:
		if amount.LessThanOrEqual(usdFeeTierBoundary) {
			return usdLowFixedFee, usdLowFeeRate, nil
		}
		return usdHighFixedFee, usdHighFeeRate, nil
	case JPY:
		return jpyFixedFee, jpyFeeRate, nil
	default:
		return decimal.Decimal{}, decimal.Decimal{}, ErrUnsupportedCurrency
	}
}

// TransferFee computes the full fee in KRW: amount×rate + fixed, rounded
// half-up to KRW digits.
func TransferFee(amount decimal.Decimal, target Currency) (decimal.Decimal, error) {
	fixed, rate, err := FeeFor(amount, target)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return RoundHalfUp(amount.Mul(rate).Add(fixed), KRW.FractionDigits()), nil
}
