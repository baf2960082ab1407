package models

import (
	"strings"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type CreateActorRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	PIN      string `json:"pin"`
}

func (r CreateActorRequest) Validate() error {
	var errs fieldErrors

	if strings.TrimSpace(r.Username) == "" {
		errs.add("username is required")
	}
	if !domain.Role(strings.ToUpper(strings.TrimSpace(r.Role))).Valid() {
		errs.add("role must be one of ADMIN, CUSTOMER")
	}

	pin := strings.TrimSpace(r.PIN)
	if len(pin) < 4 || len(pin) > 6 {
		errs.add("pin must be 4 to 6 digits")
	} else {
		for _, ch := range pin {
			if ch < '0' || ch > '9' {
				errs.add("pin must contain digits only")
				break
			}
		}
	}

	return errs.err()
}

type ActorResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}
