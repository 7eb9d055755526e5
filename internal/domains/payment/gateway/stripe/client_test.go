package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora-backend/internal/domains/payment/gateway"
	"rentora-backend/internal/shared/apperror"
)

func checkoutRequest() gateway.CheckoutSessionRequest {
	return gateway.CheckoutSessionRequest{
		BookingID:     "b-123",
		PropertyTitle: "Canal View Apartment",
		CheckIn:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		StayAmount:    decimal.NewFromInt(15000),
		DepositAmount: decimal.NewFromFloat(1500.50),
		Currency:      "usd",
		SuccessURL:    "https://app.example.com/success",
		CancelURL:     "https://app.example.com/cancel",
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "b-123", r.PostForm.Get("metadata[booking_id]"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		// Amounts are sent in cents.
		assert.Equal(t, "1500000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "150050", r.PostForm.Get("line_items[1][price_data][unit_amount]"))
		assert.Equal(t, "Security deposit", r.PostForm.Get("line_items[1][price_data][product_data][name]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","url":"https://pay.example.com/cs_test_1","metadata":{"booking_id":"b-123"}}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_key", server.URL)
	session, err := client.CreateCheckoutSession(context.Background(), checkoutRequest())
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://pay.example.com/cs_test_1", session.URL)
	assert.Equal(t, "b-123", session.Metadata["booking_id"])
}

func TestRetrieveSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)

		w.Write([]byte(`{"id":"cs_test_1","payment_intent":"pi_42","payment_status":"paid"}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_key", server.URL)
	session, err := client.RetrieveSession(context.Background(), "cs_test_1")
	require.NoError(t, err)

	assert.Equal(t, "pi_42", session.PaymentIntentID)
	assert.Equal(t, "paid", session.PaymentStatus)
}

func TestProviderErrorSurfacesAsGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_key", server.URL)
	_, err := client.CreateCheckoutSession(context.Background(), checkoutRequest())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Contains(t, appErr.Message, "Your card was declined.")
}

func TestProviderUnreachable(t *testing.T) {
	client := NewClient("sk_test_key", "http://127.0.0.1:1")
	_, err := client.RetrieveSession(context.Background(), "cs_test_1")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}
