package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/models"
	"github.com/codewatch/exam-service/internal/repository"
)

type UserService interface {
	GetAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
	AdminResetPassword(ctx context.Context, email, newPassword string) error
}

type userService struct {
	userRepo repository.UserRepository
	minPwLen int
	logger   zerolog.Logger
}

func NewUserService(userRepo repository.UserRepository, cfg config.AuthConfig, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		minPwLen: cfg.MinPasswordLength,
		logger:   logger,
	}
}

func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// Delete removes the user together with their submissions and event logs.
// Admin accounts cannot be deleted.
func (s *userService) Delete(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	if user.Role == models.RoleAdmin.String() {
		return fmt.Errorf("%w: cannot delete an admin account", ErrForbidden)
	}

	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Msg("User deleted")
	return nil
}

func (s *userService) AdminResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < s.minPwLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.minPwLen)
	}

	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, email, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("Password reset by admin")
	return nil
}
