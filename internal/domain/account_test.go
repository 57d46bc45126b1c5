package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_DailyLimitUSD(t *testing.T) {
	t.Parallel()
	require.True(t, TierPersonal.DailyLimitUSD().Equal(decimal.NewFromInt(1000)))
	require.True(t, TierBusiness.DailyLimitUSD().Equal(decimal.NewFromInt(5000)))
}
