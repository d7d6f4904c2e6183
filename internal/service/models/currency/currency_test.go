package currency_test

import (
	"testing"

	"github.com/corray333/backend-labs/meals/internal/service/models/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	cur, err := currency.ParseCurrency("USD")
	require.NoError(t, err)
	assert.Equal(t, currency.CurrencyUSD, cur)

	cur, err = currency.ParseCurrency("RUB")
	require.NoError(t, err)
	assert.Equal(t, currency.CurrencyRUB, cur)

	_, err = currency.ParseCurrency("usd")
	assert.ErrorIs(t, err, currency.ErrInvalidCurrency)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"70.97", "70.97"},
		{"5", "5.00"},
		{"0", "0.00"},
		{"1.005", "1.01"},
		{"22.994", "22.99"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, currency.Format(decimal.RequireFromString(tt.in)), tt.in)
	}
}
