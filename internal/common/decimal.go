package common

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept on every amount and rate.
const AmountScale int32 = 4

var (
	MaxAmount = decimal.RequireFromString("999999999999.99")
	MinAmount = MaxAmount.Neg()

	nonNumeric = regexp.MustCompile(`[^0-9.\-]`)
)

// NewDecimalFromString converts a string to a decimal.Decimal pointer.
// If the input string is empty, it returns nil.
func NewDecimalFromString(data string) (*decimal.Decimal, error) {
	if data != "" {
		amount, err := decimal.NewFromString(data)
		if err != nil {
			return nil, err
		}
		return &amount, nil
	}
	return nil, nil
}

// ValidateAmount cleans a raw amount and parses it.
// Input with no numeric characters left after cleaning is zero.
// Unparseable leftovers and out-of-range values are invalid (Valid=false).
func ValidateAmount(raw string) decimal.NullDecimal {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.NewNullDecimal(decimal.Zero)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}
	}

	if amount.GreaterThan(MaxAmount) || amount.LessThan(MinAmount) {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(RoundAmount(amount))
}

// RequireAmount is ValidateAmount for posting paths, where a rejected amount is an error.
func RequireAmount(field, raw string) (decimal.Decimal, error) {
	amount := ValidateAmount(raw)
	if !amount.Valid {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", ErrAmountOutOfRange, field, raw)
	}
	return amount.Decimal, nil
}

// RoundAmount rounds half away from zero to AmountScale places.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// ConvertAmount returns amount × rate rounded to AmountScale places.
func ConvertAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return RoundAmount(amount.Mul(rate))
}

func FormatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
