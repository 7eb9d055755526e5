package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository abstracts user persistence so the service layer can be
// tested against an in-memory implementation.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)

	UpdateProfile(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error

	List(ctx context.Context, page, limit int) ([]User, int64, error)
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}
