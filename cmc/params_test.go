package cmc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParamsEncode(t *testing.T) {
	when := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	params := Params{
		"symbol":     []string{"BTC", "ETH"},
		"convert":    "USD",
		"limit":      100,
		"aux":        nil,
		"amount":     decimal.NewFromFloat(1.5),
		"skip_names": true,
		"time_start": when,
		"id":         []int64{1, 1027},
	}

	encoded := params.Encode()
	require.Equal(t,
		"amount=1.5&convert=USD&id=1%2C1027&limit=100&skip_names=true&symbol=BTC%2CETH&time_start=2025-06-01T12%3A30%3A00Z",
		encoded)
}

func TestParamsEncodeEmpty(t *testing.T) {
	require.Equal(t, "", Params{}.Encode())
	require.Equal(t, "", Params(nil).Encode())
	require.Equal(t, "", Params{"aux": ""}.Encode())
}
