package domain

import "errors"

var (
	ErrUnsupportedCurrency = errors.New("unsupported target currency")
	ErrNegativeAmount      = errors.New("computed amount is not positive")
	ErrExternalAPI         = errors.New("exchange rate source failed")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrQuoteExpired        = errors.New("quote expired")
	ErrLimitExceeded       = errors.New("daily transfer limit exceeded")
	ErrUnknownUser         = errors.New("unknown user")
)
