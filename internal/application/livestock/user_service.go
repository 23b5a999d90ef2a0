package livestock

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
)

// UserService registers and looks up livestock owners
type UserService struct {
	users  livestock.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users livestock.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, logger: logger}
}

// RegisterUser creates a user with a caller-assigned id
func (s *UserService) RegisterUser(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := livestock.NewUser(userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking user %d: %w", userID, err)
	}
	if exists {
		return nil, livestock.NewUserExistsError(userID)
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, livestock.NewUserExistsError(userID)
		}
		return nil, fmt.Errorf("creating user %d: %w", userID, err)
	}

	s.logger.Info("User registered", zap.Int64("user_id", userID))
	return &UserResponse{UserID: user.ID, CreatedAt: user.CreatedAt}, nil
}

// GetUser returns a user or fails with USER_NOT_FOUND
func (s *UserService) GetUser(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, livestock.NewUserNotFoundError(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}
	return &UserResponse{UserID: user.ID, CreatedAt: user.CreatedAt}, nil
}
