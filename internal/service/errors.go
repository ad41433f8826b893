package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token expired")
	ErrDelivery           = errors.New("failed to deliver reset email")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("operation not allowed")
)
