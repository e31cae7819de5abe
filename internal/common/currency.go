package common

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CurrencyJPY = "JPY"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

var allowedCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "JPY": {}, "GBP": {}, "AUD": {},
	"CAD": {}, "CHF": {}, "CNY": {}, "SEK": {}, "NZD": {},
}

// ValidateCurrencyCode reports whether code is a supported ISO 4217 code.
func ValidateCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	_, ok := allowedCurrencies[strings.ToUpper(code)]
	return ok
}

type CurrencyPair struct {
	From string
	To   string
}

func (p CurrencyPair) String() string {
	return p.From + "/" + p.To
}

// DefaultExchangeRates is the fixed rate table used until a rate service is configured.
var DefaultExchangeRates = map[CurrencyPair]decimal.Decimal{
	{From: CurrencyUSD, To: CurrencyJPY}: decimal.RequireFromString("150.0"),
	{From: CurrencyEUR, To: CurrencyJPY}: decimal.RequireFromString("165.0"),
	{From: CurrencyJPY, To: CurrencyUSD}: decimal.RequireFromString("0.0067"),
	{From: CurrencyJPY, To: CurrencyEUR}: decimal.RequireFromString("0.0061"),
}

// CalculateExchangeRate returns the from→to rate on date using rates.
// Identical currencies are 1. Unknown pairs fall back to 1.
func CalculateExchangeRate(rates map[CurrencyPair]decimal.Decimal, from, to string, _ time.Time) decimal.Decimal {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1)
	}
	if rate, ok := rates[CurrencyPair{From: from, To: to}]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}
