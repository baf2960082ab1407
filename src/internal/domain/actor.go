package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// Actor is an authenticated caller. Customers own accounts through Account.UserID.
type Actor struct {
	ID        int64
	Username  string
	Role      Role
	PinHash   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanActFor reports whether the actor may operate on resources owned by userID.
func (a Actor) CanActFor(userID int64) bool {
	return a.IsAdmin() || (a.ID != 0 && a.ID == userID)
}
