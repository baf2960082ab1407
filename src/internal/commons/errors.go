package commons

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrRecordNotFound     = errors.New("record not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicateReference = errors.New("duplicate transaction reference")
	ErrAlreadyExists      = errors.New("record already exists")
	ErrPersistence        = errors.New("storage failure")
)

func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func UnauthorizedError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// InsufficientFundsError carries the figures of a failed sufficiency check.
type InsufficientFundsError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %s, requested %s, shortfall %s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2), e.Shortfall.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
