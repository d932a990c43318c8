package service

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrConflict            = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidResetToken   = errors.New("reset token invalid or expired")
	ErrSearchUnavailable   = errors.New("search unavailable")
)
