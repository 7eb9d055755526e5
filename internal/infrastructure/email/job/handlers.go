package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"rentora-backend/internal/infrastructure/email"
	"rentora-backend/internal/shared"
	"rentora-backend/pkg/logger"
)

// VerificationEmailHandler delivers account-verification emails.
type VerificationEmailHandler struct {
	emails  email.EmailService
	baseURL string
}

func NewVerificationEmailHandler(emails email.EmailService, baseURL string) *VerificationEmailHandler {
	return &VerificationEmailHandler{emails: emails, baseURL: baseURL}
}

func (h *VerificationEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var p shared.VerificationEmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		// Malformed payloads never become valid; retrying only clogs
		// the queue.
		return fmt.Errorf("unmarshal verification payload: %v: %w", err, asynq.SkipRetry)
	}

	err := h.emails.SendVerificationEmail(ctx, email.VerificationEmailData{
		Email:      p.Email,
		Name:       p.Name,
		VerifyLink: fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", h.baseURL, p.Token),
		ExpiresIn:  "24 hours",
	})
	if err != nil {
		logger.Error("Failed to send verification email", err)
		return err
	}
	return nil
}

// ResetPasswordEmailHandler delivers password-reset emails.
type ResetPasswordEmailHandler struct {
	emails email.EmailService
}

func NewResetPasswordEmailHandler(emails email.EmailService) *ResetPasswordEmailHandler {
	return &ResetPasswordEmailHandler{emails: emails}
}

func (h *ResetPasswordEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var p shared.ResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal reset payload: %v: %w", err, asynq.SkipRetry)
	}

	err := h.emails.SendResetPasswordEmail(ctx, email.ResetPasswordData{
		Email:     p.Email,
		Token:     p.Token,
		ExpiresIn: "1 hour",
	})
	if err != nil {
		logger.Error("Failed to send reset password email", err)
		return err
	}
	return nil
}
