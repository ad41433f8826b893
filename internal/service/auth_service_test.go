package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/models"
)

func newTestAuthService(users *fakeUserRepo) AuthService {
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	return NewAuthService(users, tokenAuth, config.AuthConfig{
		JWTExpiration:     time.Hour,
		MinPasswordLength: 8,
	}, zerolog.Nop())
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	id, err := svc.Register(ctx, &models.RegisterRequest{
		Name:     "Alice",
		Email:    " Alice@Example.COM",
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero user id")
	}

	// Email was normalized on the way in; login normalizes too.
	resp, err := svc.Login(ctx, "alice@example.com", "super-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}
	if resp.UserID != id || resp.Role != "student" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "a@b.c",
		Password: "short",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "a@b.c",
		Password: "long-enough",
		Role:     "superuser",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.RegisterRequest{
		Email:    "bob@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, "bob@example.com", "wrong-horse")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
