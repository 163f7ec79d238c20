package identity

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/acaipos/backend/internal/domain/shared"
)

// Role represents a user's role at the stand
type Role string

const (
	RoleAdmin Role = "ADMIN" // Owner: reviews expenses, manages pricing, reads reports
	RoleStaff Role = "STAFF" // Attendant: registers sales, production, expenses
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// PIN cost for bcrypt
const bcryptCost = 12

var pinRegex = regexp.MustCompile(`^[0-9]{4,8}$`)

// User is a person who logs into the till with a numeric PIN. Names are
// unique; login is name + PIN.
type User struct {
	shared.BaseAggregateRoot
	Name    string
	PinHash string
	Role    Role
	Active  bool
}

// NewUser creates a user with a freshly hashed PIN.
func NewUser(name, pin string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid role: "+role.String())
	}

	pinHash, err := hashPin(pin)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PinHash:           pinHash,
		Role:              role,
		Active:            true,
	}, nil
}

// VerifyPin verifies if the provided PIN matches
func (u *User) VerifyPin(pin string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte(pin))
	return err == nil
}

// ChangePin sets a new PIN (admin reset)
func (u *User) ChangePin(pin string) error {
	pinHash, err := hashPin(pin)
	if err != nil {
		return err
	}

	u.PinHash = pinHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Deactivate blocks the user from logging in
func (u *User) Deactivate() error {
	if !u.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}

	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Activate re-enables a deactivated user
func (u *User) Activate() error {
	if u.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Active = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// CanLogin returns true if the user may open a session
func (u *User) CanLogin() bool {
	return u.Active
}

func hashPin(pin string) (string, error) {
	if !pinRegex.MatchString(pin) {
		return "", shared.NewDomainError("INVALID_PIN", "PIN must be 4 to 8 digits")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PIN_HASH_ERROR", "Failed to hash PIN")
	}
	return string(hash), nil
}
