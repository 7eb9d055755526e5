package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

type Booking struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	PropertyID         uuid.UUID       `json:"propertyId" db:"property_id"`
	TenantID           uuid.UUID       `json:"tenantId" db:"tenant_id"`
	LandlordID         uuid.UUID       `json:"landlordId" db:"landlord_id"`
	CheckIn            time.Time       `json:"checkIn" db:"check_in"`
	CheckOut           time.Time       `json:"checkOut" db:"check_out"`
	TotalDays          int             `json:"totalDays" db:"total_days"`
	TotalAmount        decimal.Decimal `json:"totalAmount" db:"total_amount"`
	SecurityDeposit    decimal.Decimal `json:"securityDeposit" db:"security_deposit"`
	Status             string          `json:"status" db:"status"`
	PaymentStatus      string          `json:"paymentStatus" db:"payment_status"`
	PaymentIntentID    *string         `json:"paymentIntentId,omitempty" db:"payment_intent_id"`
	CheckoutSessionID  *string         `json:"checkoutSessionId,omitempty" db:"checkout_session_id"`
	CancellationReason *string         `json:"cancellationReason,omitempty" db:"cancellation_reason"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time       `json:"updatedAt" db:"updated_at"`
}

// IsTerminal reports whether no further transitions are allowed.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// IsParticipant reports whether the user is the tenant or landlord on
// this booking.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.TenantID == userID || b.LandlordID == userID
}

// TotalNights is the ceiling of the stay length in 24h days. CheckOut
// must be strictly after CheckIn, validated upstream.
func TotalNights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	return nights
}
