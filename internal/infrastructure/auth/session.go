package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrSessionIdle      = errors.New("session idle timeout exceeded")
	ErrSessionRevoked   = errors.New("session has been revoked")
)

// SessionClaims are the claims carried by the session cookie. LastActiveAt
// drives the idle timeout; the registered expiry is the hard 30-day cap set
// at login and never extended by refreshes.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	ShiftID      string `json:"shift_id,omitempty"`
	LastActiveAt int64  `json:"last_active_at"`
}

// SessionService mints and validates session tokens
type SessionService struct {
	secret          []byte
	maxAge          time.Duration
	idleTimeout     time.Duration
	refreshInterval time.Duration
	issuer          string
}

// NewSessionService creates a new session service
func NewSessionService(cfg config.SessionConfig) *SessionService {
	return &SessionService{
		secret:          []byte(cfg.Secret),
		maxAge:          cfg.MaxAge,
		idleTimeout:     cfg.IdleTimeout,
		refreshInterval: cfg.RefreshInterval,
		issuer:          cfg.Issuer,
	}
}

// IssueSessionInput contains input for session creation
type IssueSessionInput struct {
	UserID  uuid.UUID
	Name    string
	Role    string
	ShiftID *uuid.UUID
}

// Issue creates a session token at login.
func (s *SessionService) Issue(input IssueSessionInput, now time.Time) (string, *SessionClaims, error) {
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:       input.UserID.String(),
		Name:         input.Name,
		Role:         input.Role,
		LastActiveAt: now.Unix(),
	}
	if input.ShiftID != nil {
		claims.ShiftID = input.ShiftID.String()
	}

	token, err := s.sign(claims)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Validate parses a session token and enforces the idle timeout.
func (s *SessionService) Validate(tokenString string, now time.Time) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	idle := now.Sub(time.Unix(claims.LastActiveAt, 0))
	if idle > s.idleTimeout {
		return nil, ErrSessionIdle
	}

	return claims, nil
}

// NeedsRefresh reports whether enough activity has accumulated to re-mint
// the token. Refreshing on every request would churn the cookie, so the
// last-active mark only moves forward every refresh interval.
func (s *SessionService) NeedsRefresh(claims *SessionClaims, now time.Time) bool {
	return now.Sub(time.Unix(claims.LastActiveAt, 0)) >= s.refreshInterval
}

// Refresh re-mints the token with an updated last-active mark. The token ID
// and the hard expiry survive the refresh, so revocation and the 30-day cap
// both keep working.
func (s *SessionService) Refresh(claims *SessionClaims, now time.Time) (string, *SessionClaims, error) {
	refreshed := *claims
	refreshed.LastActiveAt = now.Unix()
	refreshed.IssuedAt = jwt.NewNumericDate(now)

	token, err := s.sign(&refreshed)
	if err != nil {
		return "", nil, err
	}
	return token, &refreshed, nil
}

// WithShift re-mints the token with a different shift claim, used when a
// login rolls a stale shift over to a fresh one.
func (s *SessionService) WithShift(claims *SessionClaims, shiftID uuid.UUID, now time.Time) (string, *SessionClaims, error) {
	updated := *claims
	updated.ShiftID = shiftID.String()
	updated.LastActiveAt = now.Unix()
	updated.IssuedAt = jwt.NewNumericDate(now)

	token, err := s.sign(&updated)
	if err != nil {
		return "", nil, err
	}
	return token, &updated, nil
}

func (s *SessionService) sign(claims *SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// MaxAge returns the hard session lifetime
func (s *SessionService) MaxAge() time.Duration {
	return s.maxAge
}

// GetUserUUID extracts and parses the user ID from claims
func (c *SessionClaims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetShiftUUID extracts and parses the shift ID from claims, nil if unset
func (c *SessionClaims) GetShiftUUID() (*uuid.UUID, error) {
	if c.ShiftID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(c.ShiftID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// IsAdmin reports whether the session belongs to an admin
func (c *SessionClaims) IsAdmin() bool {
	return c.Role == "ADMIN"
}

// GetRemainingTTL returns the remaining time until the hard expiry
func (c *SessionClaims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
