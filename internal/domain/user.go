package domain

import "time"

// Roles a user account can hold. Admin unlocks the back-office.
const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// ValidRole reports whether the value is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents a storefront account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	OrderCount   int       `json:"orderCount,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
