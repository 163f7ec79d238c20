package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/identity"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shift"
	"github.com/acaipos/backend/internal/infrastructure/auth"
)

// AuthService handles PIN login and logout. Login binds staff to an open
// shift: the session carries the shift ID and every register operation
// lands on it.
type AuthService struct {
	userRepo       identity.UserRepository
	shiftRepo      shift.ShiftRepository
	sessionService *auth.SessionService
	revoker        auth.SessionRevoker
	logger         *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	shiftRepo shift.ShiftRepository,
	sessionService *auth.SessionService,
	revoker auth.SessionRevoker,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		shiftRepo:      shiftRepo,
		sessionService: sessionService,
		revoker:        revoker,
		logger:         logger,
	}
}

// Login authenticates a user by name and PIN and issues a session token.
// Staff get today's shift opened (or reused) as part of the login; a shift
// left open from an earlier day is closed first.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("name", input.Name))

	user, err := s.userRepo.FindByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to look up user during login", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Login failed")
	}
	if user == nil {
		s.logger.Warn("Unknown user during login", zap.String("name", input.Name))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid name or PIN")
	}

	if !user.CanLogin() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("name", input.Name))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	}

	if !user.VerifyPin(input.Pin) {
		s.logger.Warn("Invalid PIN attempt", zap.String("name", input.Name))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid name or PIN")
	}

	now := time.Now()

	var shiftID *uuid.UUID
	if !user.IsAdmin() {
		current, err := s.ensureTodayShift(ctx, user.GetID(), now)
		if err != nil {
			return nil, err
		}
		id := current.GetID()
		shiftID = &id
	}

	token, claims, err := s.sessionService.Issue(auth.IssueSessionInput{
		UserID:  user.GetID(),
		Name:    user.Name,
		Role:    user.Role.String(),
		ShiftID: shiftID,
	}, now)
	if err != nil {
		s.logger.Error("Failed to issue session", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	s.logger.Info("User logged in",
		zap.String("name", user.Name),
		zap.String("user_id", user.GetID().String()),
		zap.String("role", user.Role.String()),
	)

	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User: UserInfo{
			ID:     user.GetID(),
			Name:   user.Name,
			Role:   user.Role.String(),
			Active: user.Active,
		},
		ShiftID: shiftID,
	}, nil
}

// ensureTodayShift returns the user's open shift for today, closing any
// stale shift from an earlier day and opening a fresh one when needed.
func (s *AuthService) ensureTodayShift(ctx context.Context, userID uuid.UUID, now time.Time) (*shift.Shift, error) {
	current, err := s.shiftRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to look up open shift", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Login failed")
	}

	if current != nil && current.OpenedOn().Equal(calendar.DayOf(now)) {
		return current, nil
	}

	if current != nil {
		// Shift left open overnight: close it so yesterday's numbers stop moving.
		if err := current.Close(now); err != nil {
			return nil, err
		}
		if err := s.shiftRepo.Save(ctx, current); err != nil {
			s.logger.Error("Failed to close stale shift", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Login failed")
		}
		s.logger.Info("Closed stale shift from earlier day",
			zap.String("shift_id", current.GetID().String()),
			zap.String("opened_on", current.OpenedOn().Key()),
		)
	}

	fresh, err := shift.NewShift(userID, now)
	if err != nil {
		return nil, err
	}
	if err := s.shiftRepo.Save(ctx, fresh); err != nil {
		s.logger.Error("Failed to open shift", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Login failed")
	}

	s.logger.Info("Opened shift",
		zap.String("shift_id", fresh.GetID().String()),
		zap.String("user_id", userID.String()),
	)
	return fresh, nil
}

// Logout revokes the caller's session token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("Failed to revoke session on logout",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err),
		)
		return shared.NewDomainError("INTERNAL_ERROR", "Logout failed")
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}
