package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for PIN login
type LoginInput struct {
	Name string
	Pin  string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserInfo
	ShiftID   *uuid.UUID // open shift bound to the session, nil for admins
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID     uuid.UUID
	Name   string
	Role   string
	Active bool
}

// LogoutInput contains the input for logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration // remaining session lifetime, bounds the revocation entry
}

// CreateUserInput contains input for creating a user
type CreateUserInput struct {
	Name string
	Pin  string
	Role string
}

// ChangePinInput contains input for changing a user's PIN
type ChangePinInput struct {
	UserID uuid.UUID
	NewPin string
}

// UserDTO represents user data returned to the API layer
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
