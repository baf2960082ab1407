package money

import (
	"errors"
	"testing"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, "8884.88", Format(Round(decimal.RequireFromString("8884.8788"))))
	assert.Equal(t, "0.13", Format(Round(decimal.RequireFromString("0.125"))))
	assert.Equal(t, "10.00", Format(decimal.NewFromInt(10)))
}

func TestParse(t *testing.T) {
	amount, err := Parse(" 150.50 ")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("150.5")))

	_, err = Parse("")
	assert.True(t, errors.Is(err, commons.ErrValidation))

	_, err = Parse("ten")
	assert.True(t, errors.Is(err, commons.ErrValidation))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("1.00"), MinCashAmount))
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("12.500"), MinCashAmount))

	cases := []string{"0", "-5", "0.99", "10.001"}
	for _, raw := range cases {
		err := ValidateAmount(decimal.RequireFromString(raw), MinCashAmount)
		assert.Truef(t, errors.Is(err, commons.ErrValidation), "expected validation error for %s", raw)
	}
}
