package user

import (
	"net/http"

	"rentora-backend/internal/shared/apperror"
)

var (
	ErrUserNotFound         = apperror.New(http.StatusNotFound, "USER_NOT_FOUND", "user not found")
	ErrEmailAlreadyExists   = apperror.New(http.StatusConflict, "EMAIL_ALREADY_EXISTS", "email is already registered")
	ErrInvalidCredentials   = apperror.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrUserInactive         = apperror.New(http.StatusForbidden, "USER_INACTIVE", "account has been deactivated")
	ErrInvalidToken         = apperror.New(http.StatusUnauthorized, "INVALID_TOKEN", "token is invalid or expired")
	ErrEmailAlreadyVerified = apperror.New(http.StatusBadRequest, "EMAIL_ALREADY_VERIFIED", "email is already verified")
	ErrWrongPassword        = apperror.New(http.StatusBadRequest, "WRONG_PASSWORD", "current password is incorrect")
	ErrInvalidRole          = apperror.New(http.StatusBadRequest, "INVALID_ROLE", "role is not valid")
	ErrTooManyAttempts      = apperror.New(http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "too many failed login attempts, try again later")
)
