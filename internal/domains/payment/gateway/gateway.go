package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutSessionRequest describes a hosted checkout for a booking:
// one line item for the stay and one for the security deposit, tagged
// with the booking id so the webhook can correlate back.
type CheckoutSessionRequest struct {
	BookingID     string
	PropertyTitle string
	CheckIn       time.Time
	CheckOut      time.Time
	StayAmount    decimal.Decimal
	DepositAmount decimal.Decimal
	Currency      string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider-side session. Metadata carries the
// correlation data set at creation time.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
	PaymentStatus   string
	Metadata        map[string]string
}

// CheckoutGateway is the payment provider seen by the booking service.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
