package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists bookings. MarkPaid and Cancel also flip the
// property's status in the same transaction, since those are the only
// two places availability changes.
type Repository interface {
	// Create inserts a booking in pending/pending. A partial unique
	// index allows one active (non-cancelled, non-completed) booking
	// per property; violations map to ErrPropertyAlreadyBooked.
	Create(ctx context.Context, b *Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	FindByCheckoutSession(ctx context.Context, sessionID string) (*Booking, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]Booking, int64, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID, page, limit int) ([]Booking, int64, error)

	AttachCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string) error

	// MarkPaid transitions the booking to confirmed/paid and the
	// property to rented atomically.
	MarkPaid(ctx context.Context, id uuid.UUID, paymentIntentID string) error

	// Cancel transitions the booking to cancelled and the property
	// back to available atomically.
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
}
