package models

import (
	"strings"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/shopspring/decimal"
)

type fieldErrors []string

func (e *fieldErrors) add(msg string) {
	*e = append(*e, msg)
}

// requireAmount appends a message when raw is blank, non-numeric or not
// strictly positive.
func (e *fieldErrors) requireAmount(field string, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		e.add(field + " is required")
		return
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		e.add(field + " must be numeric")
		return
	}
	if !parsed.IsPositive() {
		e.add(field + " must be greater than zero")
	}
}

func (e *fieldErrors) requireID(field string, id int64) {
	if id <= 0 {
		e.add(field + " is required")
	}
}

func (e fieldErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return commons.ValidationError("%s", strings.Join(e, "; "))
}
