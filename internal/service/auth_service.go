package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/models"
	"github.com/codewatch/exam-service/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (int64, error)
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenAuth *jwtauth.JWTAuth
	jwtExp    time.Duration
	minPwLen  int
	logger    zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokenAuth *jwtauth.JWTAuth, cfg config.AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenAuth: tokenAuth,
		jwtExp:    cfg.JWTExpiration,
		minPwLen:  cfg.MinPasswordLength,
		logger:    logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (int64, error) {
	if len(req.Password) < s.minPwLen {
		return 0, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.minPwLen)
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent.String()
	}
	if !models.IsValidUserRole(role) {
		return 0, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Role:         role,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Str("role", role).Msg("User registered")
	return id, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     now.Add(s.jwtExp).Unix(),
		"iat":     now.Unix(),
	}

	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{
		Status: "success",
		Token:  tokenString,
		UserID: user.ID,
		Role:   user.Role,
	}, nil
}
