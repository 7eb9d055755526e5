package email

import (
	"context"
	"fmt"
	"net/smtp"

	"rentora-backend/pkg/logger"
)

type VerificationEmailData struct {
	Email      string
	Name       string
	VerifyLink string
	ExpiresIn  string
}

type ResetPasswordData struct {
	Email     string
	Token     string
	ExpiresIn string
}

type EmailService interface {
	SendVerificationEmail(ctx context.Context, data VerificationEmailData) error
	SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendVerificationEmail(ctx context.Context, data VerificationEmailData) error {
	subject := "Verify your Rentora account"
	body := fmt.Sprintf(`Hi %s,

Please click the link below to verify your account:
%s

The link is valid for %s.

If you did not create this account, you can ignore this email.`, data.Name, data.VerifyLink, data.ExpiresIn)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error {
	subject := "Reset your Rentora password"
	body := fmt.Sprintf(`Hi,

Use the following token to reset your password:
%s

The token is valid for %s.

If you did not request a reset, you can ignore this email.`, data.Token, data.ExpiresIn)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Error("Failed to send email", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
