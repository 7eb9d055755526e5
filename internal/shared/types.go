package shared

// Asynq task types and queues shared between the API (producer)
// and the worker (consumer).
const (
	TypeSendVerificationEmail = "email:verification"
	TypeSendResetEmail        = "email:reset_password"
	TypeCleanupExpiredTokens  = "auth:cleanup_expired_tokens"

	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// VerificationEmailPayload is enqueued on registration and on
// resend-verification.
type VerificationEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// ResetEmailPayload is enqueued on forgot-password.
type ResetEmailPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// CleanupExpiredTokensPayload is the (empty) payload of the scheduled
// token-cleanup job.
type CleanupExpiredTokensPayload struct{}
