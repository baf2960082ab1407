// Package money holds the fixed-point helpers every amount in the ledger goes through.
package money

import (
	"strings"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/shopspring/decimal"
)

const Places = 2

var (
	// MinCashAmount is the smallest cash deposit or withdrawal accepted.
	MinCashAmount = decimal.RequireFromString("1.00")
	// MinPrincipal is the smallest loan or deposit principal accepted.
	MinPrincipal = decimal.RequireFromString("1.00")
)

// Round rounds half away from zero to two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

func Parse(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, commons.ValidationError("amount is required")
	}

	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, commons.ValidationError("amount must be numeric")
	}
	return parsed, nil
}

// ValidateAmount rejects non-positive amounts, amounts below min and
// amounts carrying more than two fractional digits.
func ValidateAmount(amount decimal.Decimal, min decimal.Decimal) error {
	if !amount.IsPositive() {
		return commons.ValidationError("amount must be greater than zero")
	}
	if amount.LessThan(min) {
		return commons.ValidationError("amount must be at least %s", Format(min))
	}
	if !HasValidPrecision(amount) {
		return commons.ValidationError("amount cannot have more than 2 decimal places")
	}
	return nil
}

func HasValidPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(Places))
}
