package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/repository"
	"github.com/codewatch/exam-service/internal/service/integration"
)

const tokenBytes = 24

// TokenService owns the credential-reset lifecycle: a single-use opaque
// token per user, time-bounded, cleared on consume or on the first validate
// after expiry (lazy cleanup, no background sweep).
type TokenService interface {
	Issue(ctx context.Context, email string) error
	Validate(ctx context.Context, token string) (string, error)
	Consume(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type tokenService struct {
	userRepo   repository.UserRepository
	mailClient integration.MailClient
	ttl        time.Duration
	minPwLen   int
	now        func() time.Time
	logger     zerolog.Logger
}

func NewTokenService(userRepo repository.UserRepository, mailClient integration.MailClient, cfg config.AuthConfig, logger zerolog.Logger) TokenService {
	return &tokenService{
		userRepo:   userRepo,
		mailClient: mailClient,
		ttl:        cfg.ResetTokenTTL,
		minPwLen:   cfg.MinPasswordLength,
		now:        time.Now,
		logger:     logger,
	}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Issue stores a fresh token on the user row (overwriting any prior one, so
// at most one token is live per user) and asks the mail collaborator to
// deliver it. On delivery failure the token stays stored and ErrDelivery is
// returned; a repeated Issue overwrites it.
func (s *tokenService) Issue(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	token, err := generateToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(s.ttl).Unix()

	if err := s.userRepo.SetResetToken(ctx, email, token, expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	s.logger.Info().Str("email", email).Int64("expires", expires).Msg("Reset token created")

	if err := s.mailClient.SendPasswordReset(ctx, email, token); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("Failed to send reset email")
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	return nil
}

// Validate returns the email the token belongs to. An expired token is
// cleared as a side effect, so the same value can never validate again even
// if the clock were rolled back.
func (s *tokenService) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}
	if user == nil || user.ResetExpires == nil {
		return "", ErrInvalidToken
	}

	if *user.ResetExpires < s.now().Unix() {
		if err := s.userRepo.ClearResetToken(ctx, user.Email); err != nil {
			s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to clear expired token")
		}
		return "", ErrTokenExpired
	}

	return user.Email, nil
}

// Consume clears the token fields. Clearing an already-empty token is a
// no-op, so Consume is idempotent.
func (s *tokenService) Consume(ctx context.Context, email string) error {
	if err := s.userRepo.ClearResetToken(ctx, normalizeEmail(email)); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

func (s *tokenService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < s.minPwLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.minPwLen)
	}

	email, err := s.Validate(ctx, token)
	if err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, email, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.Consume(ctx, email); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("Password reset completed")
	return nil
}
