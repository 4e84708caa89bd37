package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	cases := []struct {
		in   decimal.NullDecimal
		want string
	}{
		{decimal.NullDecimal{}, ""},
		{decimal.NewNullDecimal(decimal.Zero), "₹0"},
		{decimal.NewNullDecimal(decimal.NewFromInt(300)), "₹300"},
		{decimal.NewNullDecimal(decimal.NewFromInt(1000)), "₹1,000"},
		{decimal.NewNullDecimal(decimal.NewFromInt(150000)), "₹1,50,000"},
		{decimal.NewNullDecimal(decimal.NewFromInt(12345678)), "₹1,23,45,678"},
		{decimal.NewNullDecimal(decimal.RequireFromString("99.50")), "₹99.5"},
		{decimal.NewNullDecimal(decimal.RequireFromString("1234.5678")), "₹1,234.568"},
		{decimal.NewNullDecimal(decimal.NewFromInt(-2500)), "₹-2,500"},
		{decimal.NewNullDecimal(decimal.RequireFromString("-0.5")), "₹-0.5"},
		{decimal.NewNullDecimal(decimal.RequireFromString("-0.0001")), "₹0"},
		{decimal.NewNullDecimal(decimal.NewFromInt(10000000)), "₹1,00,00,000"},
		{decimal.NewNullDecimal(decimal.RequireFromString("150000.25")), "₹1,50,000.25"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Price(tc.in), "input %v", tc.in)
	}
}

func TestRange(t *testing.T) {
	require.Equal(t, "₹300", Range(decimal.NewFromInt(300), decimal.NewFromInt(300)))
	require.Equal(t, "₹300 — ₹500", Range(decimal.NewFromInt(300), decimal.NewFromInt(500)))
}

func TestDate(t *testing.T) {
	require.Equal(t, "5 Mar 2025", Date(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))
}
