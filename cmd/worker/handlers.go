package main

import (
	"github.com/hibiken/asynq"

	userJob "rentora-backend/internal/domains/user/job"
	"rentora-backend/internal/infrastructure/email"
	emailJob "rentora-backend/internal/infrastructure/email/job"
	"rentora-backend/internal/shared"
	"rentora-backend/pkg/container"
)

type handlerRegistry struct {
	verification  *emailJob.VerificationEmailHandler
	resetPassword *emailJob.ResetPasswordEmailHandler
	cleanup       *userJob.CleanupHandler
}

func initializeHandlers(c *container.Container) *handlerRegistry {
	emailSvc := email.NewSMTPEmailService(
		c.Config.Email.SMTPHost,
		c.Config.Email.SMTPPort,
		c.Config.Email.From,
	)

	return &handlerRegistry{
		verification:  emailJob.NewVerificationEmailHandler(emailSvc, c.Config.App.BaseURL),
		resetPassword: emailJob.NewResetPasswordEmailHandler(emailSvc),
		cleanup:       userJob.NewCleanupHandler(c.UserRepo),
	}
}

func (h *handlerRegistry) register(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendVerificationEmail, h.verification.ProcessTask)
	mux.HandleFunc(shared.TypeSendResetEmail, h.resetPassword.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupExpiredTokens, h.cleanup.HandleCleanupExpiredTokens)
}
