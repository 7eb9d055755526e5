package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance is the maximum accepted age of a signed webhook.
const DefaultTolerance = 5 * time.Minute

var (
	ErrInvalidSignatureHeader = errors.New("invalid webhook signature header")
	ErrSignatureMismatch      = errors.New("webhook signature mismatch")
	ErrTimestampTooOld        = errors.New("webhook timestamp outside tolerance")
)

// WebhookEvent is the envelope of a webhook delivery. Data.Object holds
// the checkout session for session events.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object sessionPayload `json:"object"`
	} `json:"data"`
}

// SessionID returns the checkout session id carried by the event.
func (e *WebhookEvent) SessionID() string {
	return e.Data.Object.ID
}

// VerifySignature checks a `t=...,v1=...` signature header against the
// raw payload: HMAC-SHA256 over "<timestamp>.<payload>" keyed with the
// endpoint secret, constant-time compared, with a freshness bound.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	if tolerance > 0 {
		ts := time.Unix(timestamp, 0)
		if time.Since(ts) > tolerance {
			return ErrTimestampTooOld
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

// ConstructEvent verifies the signature and unmarshals the event.
func ConstructEvent(payload []byte, header, secret string) (*WebhookEvent, error) {
	if err := VerifySignature(payload, header, secret, DefaultTolerance); err != nil {
		return nil, err
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.New("malformed webhook payload")
	}
	return &event, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64 = -1
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignatureHeader
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignatureHeader
	}
	return timestamp, signatures, nil
}
