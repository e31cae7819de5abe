package fxrate

import "github.com/shopspring/decimal"

const ServiceName = "go-exchange-rate"

type ResponseGetExchangeRate struct {
	Kind string          `json:"kind"`
	From string          `json:"from"`
	To   string          `json:"to"`
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}
