package common

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateCurrencyCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{code: "JPY", want: true},
		{code: "usd", want: true},
		{code: "NZD", want: true},
		{code: "IDR", want: false},
		{code: "JP", want: false},
		{code: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCurrencyCode(tt.code))
		})
	}
}

func TestCalculateExchangeRate(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{name: "same currency", from: "JPY", to: "JPY", want: "1"},
		{name: "usd to jpy", from: "USD", to: "JPY", want: "150"},
		{name: "eur to jpy lower case", from: "eur", to: "jpy", want: "165"},
		{name: "jpy to usd", from: "JPY", to: "USD", want: "0.0067"},
		{name: "unknown pair", from: "GBP", to: "JPY", want: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateExchangeRate(DefaultExchangeRates, tt.from, tt.to, date)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
