package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func signPayload(t *testing.T, payload []byte, secret string, ts time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := signPayload(t, payload, testSecret, time.Now())

	assert.NoError(t, VerifySignature(payload, header, testSecret, DefaultTolerance))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := signPayload(t, payload, "whsec_other", time.Now())

	err := VerifySignature(payload, header, testSecret, DefaultTolerance)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifySignatureTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := signPayload(t, payload, testSecret, time.Now())

	err := VerifySignature([]byte(`{"id":"evt_2"}`), header, testSecret, DefaultTolerance)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifySignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := signPayload(t, payload, testSecret, time.Now().Add(-time.Hour))

	err := VerifySignature(payload, header, testSecret, DefaultTolerance)
	assert.ErrorIs(t, err, ErrTimestampTooOld)
}

func TestVerifySignatureMalformedHeaders(t *testing.T) {
	payload := []byte(`{}`)

	tests := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"no signature", "t=12345"},
		{"no timestamp", "v1=deadbeef"},
		{"garbage timestamp", "t=abc,v1=deadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(payload, tt.header, testSecret, DefaultTolerance)
			assert.ErrorIs(t, err, ErrInvalidSignatureHeader)
		})
	}
}

func TestVerifySignatureAcceptsSecondV1(t *testing.T) {
	// During secret rotation two v1 entries appear; any valid one passes.
	payload := []byte(`{"id":"evt_1"}`)
	valid := signPayload(t, payload, testSecret, time.Now())
	header := valid + ",v1=" + hex.EncodeToString([]byte("not-a-real-signature-but-padded"))

	assert.NoError(t, VerifySignature(payload, header, testSecret, DefaultTolerance))
}

func TestConstructEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_123", "payment_intent": "pi_42", "metadata": {"booking_id": "abc"}}}
	}`)
	header := signPayload(t, payload, testSecret, time.Now())

	event, err := ConstructEvent(payload, header, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "cs_test_123", event.SessionID())
	assert.Equal(t, "pi_42", event.Data.Object.PaymentIntent)
	assert.Equal(t, "abc", event.Data.Object.Metadata["booking_id"])
}

func TestConstructEventRejectsUnsigned(t *testing.T) {
	_, err := ConstructEvent([]byte(`{}`), "", testSecret)
	assert.Error(t, err)
}
