package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"rentora-backend/internal/shared"
)

// TaskEnqueuer is what services see. Email delivery is best-effort:
// callers log enqueue failures and move on, they never fail the request.
type TaskEnqueuer interface {
	EnqueueVerificationEmail(ctx context.Context, p shared.VerificationEmailPayload) error
	EnqueueResetEmail(ctx context.Context, p shared.ResetEmailPayload) error
}

// Client wraps the asynq producer used by the API process.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

var _ TaskEnqueuer = (*Client)(nil)

func (c *Client) EnqueueVerificationEmail(ctx context.Context, p shared.VerificationEmailPayload) error {
	return c.enqueue(ctx, shared.TypeSendVerificationEmail, p, shared.QueueHigh)
}

func (c *Client) EnqueueResetEmail(ctx context.Context, p shared.ResetEmailPayload) error {
	return c.enqueue(ctx, shared.TypeSendResetEmail, p, shared.QueueHigh)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload interface{}, queue string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(queue),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
