package currency

import (
	"errors"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyRUB Currency = "RUB"
)

// MinorUnits is the number of fractional digits shown for every supported currency.
const MinorUnits = 2

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyUSD.String():
		return CurrencyUSD, nil
	case CurrencyRUB.String():
		return CurrencyRUB, nil
	default:
		return "", ErrInvalidCurrency
	}
}

// Format renders amount with exactly MinorUnits fractional digits.
// Rounding happens here and nowhere else on the money path.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(MinorUnits)
}
