package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
)

func TestDeleteUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := &userService{userRepo: users, minPwLen: 8, logger: zerolog.Nop()}
	ctx := context.Background()

	id, _ := users.Create(ctx, &models.User{Email: "s@e.c", PasswordHash: "h", Role: models.RoleStudent.String()})

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("delete student: %v", err)
	}

	if u, _ := users.GetByID(ctx, id); u != nil {
		t.Fatal("expected user gone")
	}
}

func TestDeleteAdminForbidden(t *testing.T) {
	users := newFakeUserRepo()
	svc := &userService{userRepo: users, minPwLen: 8, logger: zerolog.Nop()}
	ctx := context.Background()

	id, _ := users.Create(ctx, &models.User{Email: "root@e.c", PasswordHash: "h", Role: models.RoleAdmin.String()})

	err := svc.Delete(ctx, id)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if u, _ := users.GetByID(ctx, id); u == nil {
		t.Fatal("admin must survive the delete attempt")
	}
}

func TestDeleteMissingUser(t *testing.T) {
	svc := &userService{userRepo: newFakeUserRepo(), minPwLen: 8, logger: zerolog.Nop()}

	err := svc.Delete(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdminResetPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := &userService{userRepo: users, minPwLen: 8, logger: zerolog.Nop()}
	ctx := context.Background()

	users.Create(ctx, &models.User{Email: "kid@e.c", PasswordHash: "old", Role: models.RoleStudent.String()})

	if err := svc.AdminResetPassword(ctx, "KID@e.c", "fresh-password"); err != nil {
		t.Fatalf("admin reset: %v", err)
	}

	u, _ := users.GetByEmail(ctx, "kid@e.c")
	if u.PasswordHash == "old" {
		t.Fatal("password hash unchanged")
	}

	if err := svc.AdminResetPassword(ctx, "kid@e.c", "short"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	if err := svc.AdminResetPassword(ctx, "none@e.c", "fresh-password"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
