package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentora-backend/internal/domains/payment/gateway"
	"rentora-backend/internal/shared/apperror"
)

const defaultAPIURL = "https://api.stripe.com"

// Client talks to the Stripe checkout API over its form-encoded HTTP
// surface. Only the two calls the booking flow needs are implemented.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

func NewClient(secretKey, apiURL string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		secretKey: secretKey,
		apiURL:    strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var _ gateway.CheckoutGateway = (*Client)(nil)

// sessionPayload is the subset of the checkout session object we read.
type sessionPayload struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentIntent string            `json:"payment_intent"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

type errorPayload struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req gateway.CheckoutSessionRequest) (*gateway.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("metadata[booking_id]", req.BookingID)

	stayName := fmt.Sprintf("%s (%s to %s)", req.PropertyTitle,
		req.CheckIn.Format("2006-01-02"), req.CheckOut.Format("2006-01-02"))
	setLineItem(form, 0, req.Currency, stayName, req.StayAmount)
	setLineItem(form, 1, req.Currency, "Security deposit", req.DepositAmount)

	var payload sessionPayload
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &payload); err != nil {
		return nil, err
	}
	return toSession(payload), nil
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*gateway.CheckoutSession, error) {
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)

	var payload sessionPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return toSession(payload), nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.Gateway("payment provider unreachable")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperror.Gateway("failed to read payment provider response")
	}

	if resp.StatusCode >= 400 {
		var apiErr errorPayload
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return apperror.Gateway("payment provider error: " + apiErr.Error.Message)
		}
		return apperror.Gateway("payment provider returned status " + strconv.Itoa(resp.StatusCode))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return apperror.Gateway("malformed payment provider response")
	}
	return nil
}

// setLineItem writes one price-data line item; amounts are converted to
// the currency's smallest unit.
func setLineItem(form url.Values, index int, currency, name string, amount decimal.Decimal) {
	prefix := fmt.Sprintf("line_items[%d]", index)
	form.Set(prefix+"[price_data][currency]", currency)
	form.Set(prefix+"[price_data][product_data][name]", name)
	form.Set(prefix+"[price_data][unit_amount]", amount.Mul(decimal.NewFromInt(100)).Round(0).String())
	form.Set(prefix+"[quantity]", "1")
}

func toSession(p sessionPayload) *gateway.CheckoutSession {
	return &gateway.CheckoutSession{
		ID:              p.ID,
		URL:             p.URL,
		PaymentIntentID: p.PaymentIntent,
		PaymentStatus:   p.PaymentStatus,
		Metadata:        p.Metadata,
	}
}
