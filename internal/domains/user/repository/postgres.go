package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/domains/user"
)

const userColumns = `id, name, email, password_hash, role, phone, avatar, is_active,
	is_email_verified, email_verification_token, email_verification_expires,
	password_reset_token, password_reset_expires, refresh_token, last_login_at,
	created_at, updated_at`

type postgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (id, name, email, password_hash, role, phone, avatar, is_active,
			is_email_verified, email_verification_token, email_verification_expires,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.Avatar, u.IsActive,
		u.IsEmailVerified, u.EmailVerificationToken, u.EmailVerificationExpires,
		u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER($1)", email)
}

func (r *postgresUserRepository) FindByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	return r.findOne(ctx, "email_verification_token = $1", token)
}

func (r *postgresUserRepository) FindByResetToken(ctx context.Context, token string) (*user.User, error) {
	return r.findOne(ctx, "password_reset_token = $1", token)
}

func (r *postgresUserRepository) findOne(ctx context.Context, condition string, args ...interface{}) (*user.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s", userColumns, condition)

	var u user.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.Avatar, &u.IsActive,
		&u.IsEmailVerified, &u.EmailVerificationToken, &u.EmailVerificationExpires,
		&u.PasswordResetToken, &u.PasswordResetExpires, &u.RefreshToken, &u.LastLoginAt,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *postgresUserRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, avatar = $4, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, u.ID, u.Name, u.Phone, u.Avatar)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, password_reset_token = NULL, password_reset_expires = NULL,
			updated_at = NOW()
		WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, passwordHash)
}

func (r *postgresUserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, token)
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $2 WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, at)
}

func (r *postgresUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET is_email_verified = TRUE, email_verification_token = NULL,
			email_verification_expires = NULL, updated_at = NOW()
		WHERE id = $1`
	return r.execExpectingRow(ctx, query, id)
}

func (r *postgresUserRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires = $3, updated_at = NOW()
		WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, token, expires)
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, role)
}

func (r *postgresUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, isActive)
}

func (r *postgresUserRepository) List(ctx context.Context, page, limit int) ([]user.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2", userColumns)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.Avatar, &u.IsActive,
			&u.IsEmailVerified, &u.EmailVerificationToken, &u.EmailVerificationExpires,
			&u.PasswordResetToken, &u.PasswordResetExpires, &u.RefreshToken, &u.LastLoginAt,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// DeleteExpiredTokens clears verification and reset tokens past their
// expiry. Run by the nightly cleanup job.
func (r *postgresUserRepository) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE users
		SET email_verification_token = CASE WHEN email_verification_expires < $1 THEN NULL ELSE email_verification_token END,
			email_verification_expires = CASE WHEN email_verification_expires < $1 THEN NULL ELSE email_verification_expires END,
			password_reset_token = CASE WHEN password_reset_expires < $1 THEN NULL ELSE password_reset_token END,
			password_reset_expires = CASE WHEN password_reset_expires < $1 THEN NULL ELSE password_reset_expires END
		WHERE email_verification_expires < $1 OR password_reset_expires < $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("cleanup expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresUserRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
