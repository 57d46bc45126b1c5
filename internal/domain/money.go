package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// RateScale is the precision exchange rates are derived at before trailing
// zeros are stripped.
const RateScale int32 = 12

// RoundHalfUp rounds to the given number of fraction digits, ties away from
// zero. Every amount in this service is non-negative, so this matches
// HALF_UP semantics.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// DivHalfUp divides a by b and rounds the quotient half-up at the given scale.
func DivHalfUp(a, b decimal.Decimal, places int32) decimal.Decimal {
	return a.DivRound(b, places)
}

var ten = big.NewInt(10)

// StripTrailingZeros removes trailing fractional zeros without changing the
// numeric value, e.g. 9.171100000000 -> 9.1711.
func StripTrailingZeros(d decimal.Decimal) decimal.Decimal {
	for d.Exponent() < 0 {
		q, r := new(big.Int).QuoRem(d.Coefficient(), ten, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		d = decimal.NewFromBigInt(q, d.Exponent()+1)
	}
	return d
}

// DeriveRate turns a base-price/unit pair from the rate source into a
// per-unit exchange rate: round_half_up(basePrice/currencyUnit, 12), stripped.
func DeriveRate(basePrice, currencyUnit decimal.Decimal) decimal.Decimal {
	return StripTrailingZeros(DivHalfUp(basePrice, currencyUnit, RateScale))
}
