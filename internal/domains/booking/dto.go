package booking

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"propertyId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
}

func (r CreateBookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyID, validation.Required, validation.By(nonNilUUID)),
		validation.Field(&r.CheckIn, validation.Required),
		validation.Field(&r.CheckOut, validation.Required),
	)
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (r CancelBookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason, validation.Required, validation.Length(3, 500)),
	)
}

// CheckoutResponse is returned by the pay endpoint: the caller is
// redirected to the provider-hosted page.
type CheckoutResponse struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
}

func nonNilUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
