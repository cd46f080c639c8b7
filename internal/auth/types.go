package auth

import (
	"errors"
	"regexp"
	"time"
)

// idPattern defines the valid format for account ids:
// alphanumeric, dots, hyphens, underscores, 1-64 characters.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// maxIDLength is the maximum allowed account id length.
const maxIDLength = 64

// IsValidID checks if an account id meets format requirements.
// Ids must be 1-64 characters, alphanumeric with dots, hyphens, underscores.
func IsValidID(id string) bool {
	return len(id) <= maxIDLength && idPattern.MatchString(id)
}

// Role represents an authorisation tier in the system.
type Role string

const (
	// RoleAdmin manages store data: catalog saves and per-store writes.
	// Admin accounts are created by the superadmin.
	RoleAdmin Role = "admin"

	// RoleSuperadmin is the single bootstrap account. Everything admin can
	// do plus admin account management and the audit trail.
	RoleSuperadmin Role = "superadmin"
)

// roleLevel defines the total order over roles: admin < superadmin.
var roleLevel = map[Role]int{
	RoleAdmin:      1,
	RoleSuperadmin: 2,
}

// Valid returns true if the role is a known role.
func (r Role) Valid() bool {
	_, ok := roleLevel[r]
	return ok
}

// Satisfies returns true if the role meets or exceeds the minimum role.
// Unknown roles satisfy nothing.
func (r Role) Satisfies(min Role) bool {
	level, ok := roleLevel[r]
	if !ok {
		return false
	}
	return level >= roleLevel[min]
}

// User represents an authenticated account.
type User struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sentinel errors for auth operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user id already exists")
	ErrReservedID   = errors.New("user id is reserved")
	ErrTokenInvalid = errors.New("invalid token")
)
