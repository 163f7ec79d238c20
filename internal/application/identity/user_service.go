package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/identity"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/infrastructure/auth"
)

// UserService handles user management, an admin-only surface
type UserService struct {
	userRepo       identity.UserRepository
	sessionService *auth.SessionService
	revoker        auth.SessionRevoker
	logger         *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	sessionService *auth.SessionService,
	revoker auth.SessionRevoker,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		sessionService: sessionService,
		revoker:        revoker,
		logger:         logger,
	}
}

// CreateUser registers a new user with a PIN
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	role := identity.Role(input.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be ADMIN or STAFF")
	}

	existing, err := s.userRepo.FindByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to check user name", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}
	if existing != nil {
		return nil, shared.NewDomainError("NAME_TAKEN", "A user with this name already exists")
	}

	user, err := identity.NewUser(input.Name, input.Pin, role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User created",
		zap.String("user_id", user.GetID().String()),
		zap.String("name", user.Name),
		zap.String("role", user.Role.String()),
	)
	return toUserDTO(user), nil
}

// ListUsers returns every user ordered by name
func (s *UserService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *toUserDTO(&users[i]))
	}
	return out, nil
}

// ChangePin replaces a user's PIN and invalidates their existing sessions
func (s *UserService) ChangePin(ctx context.Context, input ChangePinInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if err := user.ChangePin(input.NewPin); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after PIN change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change PIN")
	}

	if err := s.revoker.RevokeUserSessions(ctx, user.GetID().String(), s.sessionService.MaxAge()); err != nil {
		s.logger.Error("Failed to revoke sessions after PIN change", zap.Error(err))
	}

	s.logger.Info("PIN changed", zap.String("user_id", user.GetID().String()))
	return nil
}

// SetActive activates or deactivates a user. Deactivation invalidates the
// user's sessions immediately.
func (s *UserService) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if active {
		err = user.Activate()
	} else {
		err = user.Deactivate()
	}
	if err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user activation change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	if !active {
		if err := s.revoker.RevokeUserSessions(ctx, user.GetID().String(), s.sessionService.MaxAge()); err != nil {
			s.logger.Error("Failed to revoke sessions after deactivation", zap.Error(err))
		}
	}

	s.logger.Info("User activation changed",
		zap.String("user_id", user.GetID().String()),
		zap.Bool("active", active),
	)
	return nil
}

func toUserDTO(u *identity.User) *UserDTO {
	return &UserDTO{
		ID:        u.GetID(),
		Name:      u.Name,
		Role:      u.Role.String(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
