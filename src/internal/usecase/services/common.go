package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"

	prefixDeposit    = "DEP"
	prefixWithdrawal = "WDR"
	prefixTransfer   = "TRF"
	prefixLoan       = "LON"
)

// newReference builds <PREFIX><yyyymmddhhmmss><8 hex chars>.
func newReference(prefix string, now time.Time) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + now.UTC().Format("20060102150405") + token[:8]
}

// failure logs err and builds the error response for its kind. Errors of
// no known kind are reported as storage failures.
func failure[T any](op string, err error, fields logger.Fields) (commons.Response[T], error) {
	logger.Error(op+" failed", err, fields)

	var insufficient *commons.InsufficientFundsError
	switch {
	case errors.Is(err, commons.ErrValidation):
		return commons.ErrorResponse[T]("validation failed", strings.TrimPrefix(err.Error(), commons.ErrValidation.Error()+": ")), err
	case errors.Is(err, commons.ErrUnauthorized):
		return commons.ErrorResponse[T]("unauthorized", err.Error()), err
	case errors.Is(err, commons.ErrRecordNotFound):
		return commons.ErrorResponse[T]("record not found", err.Error()), err
	case errors.As(err, &insufficient):
		return commons.ErrorResponse[T]("insufficient funds", fmt.Sprintf("shortfall %s", insufficient.Shortfall.StringFixed(2))), err
	case errors.Is(err, commons.ErrInsufficientFunds):
		return commons.ErrorResponse[T]("insufficient funds", err.Error()), err
	case errors.Is(err, commons.ErrAccountNotActive):
		return commons.ErrorResponse[T]("account is not active", err.Error()), err
	case errors.Is(err, commons.ErrDuplicateReference):
		return commons.ErrorResponse[T]("duplicate reference", err.Error()), err
	case errors.Is(err, commons.ErrAlreadyExists):
		return commons.ErrorResponse[T]("record already exists", err.Error()), err
	case errors.Is(err, commons.ErrPersistence):
		return commons.ErrorResponse[T]("request failed", "Unable to process request right now"), err
	default:
		return commons.ErrorResponse[T]("request failed", "Unable to process request right now"), fmt.Errorf("%w: %v", commons.ErrPersistence, err)
	}
}

func requireAdmin(actor domain.Actor, action string) error {
	if !actor.IsAdmin() {
		return commons.UnauthorizedError("only an admin may %s", action)
	}
	return nil
}

func requireOwnerOrAdmin(actor domain.Actor, ownerID int64) error {
	if !actor.CanActFor(ownerID) {
		return commons.UnauthorizedError("actor %d may not act for user %d", actor.ID, ownerID)
	}
	return nil
}

// today truncates to the calendar day in UTC.
func today(now func() time.Time) time.Time {
	t := now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
