package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee roles. Owners may create admins; admins may create the rest.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
	RoleWaiter  = "waiter"
	RoleCook    = "cook"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	BusinessID   uuid.UUID `json:"business_id" db:"business_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRole reports whether role is one of the known employee roles.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleCashier, RoleWaiter, RoleCook:
		return true
	}
	return false
}
