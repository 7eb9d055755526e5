package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/internal/domains/user"
	"rentora-backend/internal/infrastructure/queue"
	"rentora-backend/internal/shared"
	"rentora-backend/pkg/cache"
	"rentora-backend/pkg/jwt"
	"rentora-backend/pkg/logger"
)

const (
	bcryptCost              = 12
	verificationTokenExpiry = 24 * time.Hour
	resetTokenExpiry        = time.Hour

	maxLoginAttempts   = 5
	loginAttemptWindow = 15 * time.Minute
)

type UserService struct {
	repo     user.Repository
	jwt      *jwt.Manager
	enqueuer queue.TaskEnqueuer
	cache    cache.Cache
	recorder activity.Recorder
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, enqueuer queue.TaskEnqueuer, c cache.Cache, recorder activity.Recorder) *UserService {
	return &UserService{
		repo:     repo,
		jwt:      jwtManager,
		enqueuer: enqueuer,
		cache:    c,
		recorder: recorder,
	}
}

func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = user.RoleTenant
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	expires := time.Now().UTC().Add(verificationTokenExpiry)

	u := &user.User{
		Name:                     req.Name,
		Email:                    req.Email,
		PasswordHash:             string(hash),
		Role:                     role,
		IsActive:                 true,
		EmailVerificationToken:   &token,
		EmailVerificationExpires: &expires,
	}
	if req.Phone != "" {
		u.Phone = &req.Phone
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.enqueuer.EnqueueVerificationEmail(ctx, shared.VerificationEmailPayload{
		Email: u.Email,
		Name:  u.Name,
		Token: token,
	}); err != nil {
		logger.Error("failed to enqueue verification email", err)
	}

	s.recorder.Record(ctx, u.ID, activity.ActionUserRegistered,
		fmt.Sprintf("%s registered as %s", u.Name, u.Role), &u.ID, strPtr(activity.EntityUser))

	return s.issueTokens(ctx, u)
}

func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkLoginThrottle(ctx, req.Email); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same error whether the account exists or not.
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, req.Email)
		return nil, user.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		logger.Error("failed to update last login", err)
	}
	u.LastLoginAt = &now

	return s.issueTokens(ctx, u)
}

// RefreshToken rotates the token pair. The presented refresh token must
// match the one persisted on the user record, so logout and rotation
// both invalidate older tokens.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*user.AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, user.ErrInvalidToken
	}
	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return nil, user.ErrInvalidToken
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	return s.issueTokens(ctx, u)
}

func (s *UserService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.repo.UpdateRefreshToken(ctx, userID, nil)
}

func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	u, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		return user.ErrInvalidToken
	}
	if u.IsEmailVerified {
		return user.ErrEmailAlreadyVerified
	}
	if u.EmailVerificationExpires == nil || time.Now().UTC().After(*u.EmailVerificationExpires) {
		return user.ErrInvalidToken
	}
	return s.repo.MarkEmailVerified(ctx, u.ID)
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint cannot be used to probe which emails are registered.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	if err := s.repo.SetResetToken(ctx, u.ID, token, time.Now().UTC().Add(resetTokenExpiry)); err != nil {
		return err
	}

	if err := s.enqueuer.EnqueueResetEmail(ctx, shared.ResetEmailPayload{
		Email: u.Email,
		Token: token,
	}); err != nil {
		logger.Error("failed to enqueue reset email", err)
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.repo.FindByResetToken(ctx, token)
	if err != nil {
		return user.ErrInvalidToken
	}
	if u.PasswordResetExpires == nil || time.Now().UTC().After(*u.PasswordResetExpires) {
		return user.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	// Password change invalidates the active session.
	return s.repo.UpdateRefreshToken(ctx, u.ID, nil)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return user.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.ToDTO(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u.ToDTO(), nil
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]user.UserDTO, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *users[i].ToDTO())
	}
	return dtos, total, nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error {
	if !user.IsValidRole(role) {
		return user.ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}

func (s *UserService) UpdateUserStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	if err := s.repo.UpdateStatus(ctx, id, isActive); err != nil {
		return err
	}
	if !isActive {
		// Deactivation kills the active session immediately.
		return s.repo.UpdateRefreshToken(ctx, id, nil)
	}
	return nil
}

func (s *UserService) issueTokens(ctx context.Context, u *user.User) (*user.AuthResponse, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.repo.UpdateRefreshToken(ctx, u.ID, &refresh); err != nil {
		return nil, err
	}

	return &user.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().UTC().Add(s.jwt.AccessExpiry()),
		User:         u.ToDTO(),
	}, nil
}

func (s *UserService) checkLoginThrottle(ctx context.Context, email string) error {
	if s.cache == nil {
		return nil
	}
	var attempts int64
	found, err := s.cache.Get(ctx, loginAttemptsKey(email), &attempts)
	if err != nil {
		logger.Error("failed to read login attempts", err)
		return nil
	}
	if found && attempts >= maxLoginAttempts {
		return user.ErrTooManyAttempts
	}
	return nil
}

func (s *UserService) recordFailedLogin(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	key := loginAttemptsKey(email)
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Error("failed to record login attempt", err)
		return
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, key, loginAttemptWindow); err != nil {
			logger.Error("failed to expire login attempts key", err)
		}
	}
}

func loginAttemptsKey(email string) string {
	return "login_attempts:" + email
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func strPtr(s string) *string {
	return &s
}
