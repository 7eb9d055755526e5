package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/internal/domains/booking"
	"rentora-backend/internal/domains/payment/gateway"
	"rentora-backend/internal/domains/property"
	"rentora-backend/internal/domains/user"
	"rentora-backend/pkg/cache"
	"rentora-backend/pkg/logger"
)

// webhookGuardTTL bounds how long a processed checkout session is
// remembered for duplicate-delivery suppression.
const webhookGuardTTL = 24 * time.Hour

type BookingService struct {
	repo       booking.Repository
	properties property.Repository
	gateway    gateway.CheckoutGateway
	cache      cache.Cache
	recorder   activity.Recorder
	successURL string
	cancelURL  string
}

func NewBookingService(
	repo booking.Repository,
	properties property.Repository,
	gw gateway.CheckoutGateway,
	c cache.Cache,
	recorder activity.Recorder,
	successURL, cancelURL string,
) *BookingService {
	return &BookingService{
		repo:       repo,
		properties: properties,
		gateway:    gw,
		cache:      c,
		recorder:   recorder,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// Create validates the stay against the target property and persists a
// booking in pending/pending. The property stays available until the
// payment webhook confirms; availability is not reserved here.
func (s *BookingService) Create(ctx context.Context, tenantID uuid.UUID, req booking.CreateBookingRequest) (*booking.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, booking.ErrInvalidDates
	}

	p, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.ListingType != property.ListingTypeRent {
		return nil, booking.ErrBookingNotRentable
	}
	if p.Status != property.StatusAvailable {
		return nil, booking.ErrPropertyNotAvailable
	}
	if p.OwnerID == tenantID {
		return nil, booking.ErrOwnPropertyBooking
	}

	nights := booking.TotalNights(req.CheckIn, req.CheckOut)
	if nights < p.MinimumStayNights() {
		return nil, booking.ErrBelowMinimumStay
	}

	b := &booking.Booking{
		PropertyID:      p.ID,
		TenantID:        tenantID,
		LandlordID:      p.OwnerID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		TotalDays:       nights,
		TotalAmount:     p.Price().Mul(decimal.NewFromInt(int64(nights))),
		SecurityDeposit: p.SecurityDeposit(),
		Status:          booking.StatusPending,
		PaymentStatus:   booking.PaymentPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, tenantID, activity.ActionBookingCreated,
		fmt.Sprintf("booked %q for %d nights", p.Title, nights), &b.ID, entityBooking())

	return b, nil
}

// CreateCheckoutSession opens a provider-hosted checkout for the stay
// plus the security deposit, tagged with the booking id so the webhook
// can find its way back.
func (s *BookingService) CreateCheckoutSession(ctx context.Context, bookingID, callerID uuid.UUID) (*booking.CheckoutResponse, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.TenantID != callerID {
		return nil, booking.ErrNotParticipant
	}
	if b.IsTerminal() {
		return nil, booking.ErrBookingTerminal
	}

	p, err := s.properties.FindByID(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, gateway.CheckoutSessionRequest{
		BookingID:     b.ID.String(),
		PropertyTitle: p.Title,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		StayAmount:    b.TotalAmount,
		DepositAmount: b.SecurityDeposit,
		Currency:      "usd",
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.AttachCheckoutSession(ctx, b.ID, session.ID); err != nil {
		return nil, err
	}

	return &booking.CheckoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// HandlePaymentSuccess processes a completed-checkout webhook. It
// retrieves the session, resolves the booking from the correlation
// metadata, and flips booking and property state atomically. Duplicate
// deliveries of the same session no-op.
func (s *BookingService) HandlePaymentSuccess(ctx context.Context, sessionID string) error {
	if !s.claimWebhook(ctx, sessionID) {
		logger.Info("duplicate webhook delivery ignored", map[string]interface{}{"session_id": sessionID})
		return nil
	}

	session, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		s.releaseWebhook(ctx, sessionID)
		return err
	}

	b, err := s.resolveBooking(ctx, session, sessionID)
	if err != nil {
		s.releaseWebhook(ctx, sessionID)
		return err
	}

	// Replays that slipped past the cache guard.
	if b.Status == booking.StatusConfirmed && b.PaymentStatus == booking.PaymentPaid {
		return nil
	}
	if b.IsTerminal() {
		return booking.ErrBookingTerminal
	}

	if err := s.repo.MarkPaid(ctx, b.ID, session.PaymentIntentID); err != nil {
		s.releaseWebhook(ctx, sessionID)
		return err
	}

	s.recorder.Record(ctx, b.TenantID, activity.ActionBookingConfirmed,
		fmt.Sprintf("payment received for booking %s", b.ID), &b.ID, entityBooking())

	return nil
}

// Cancel is allowed for the tenant or the landlord on any non-terminal
// booking and returns the property to the market. No refund flow here.
func (s *BookingService) Cancel(ctx context.Context, bookingID, callerID uuid.UUID, reason string) (*booking.Booking, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParticipant(callerID) {
		return nil, booking.ErrNotParticipant
	}
	if b.Status == booking.StatusCancelled {
		return nil, booking.ErrAlreadyCancelled
	}
	if b.Status == booking.StatusCompleted {
		return nil, booking.ErrBookingTerminal
	}

	if err := s.repo.Cancel(ctx, bookingID, reason); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, callerID, activity.ActionBookingCancelled,
		fmt.Sprintf("cancelled booking %s: %s", b.ID, reason), &b.ID, entityBooking())

	return s.repo.FindByID(ctx, bookingID)
}

func (s *BookingService) GetByID(ctx context.Context, bookingID, callerID uuid.UUID, callerRole string) (*booking.Booking, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParticipant(callerID) && callerRole != user.RoleAdmin {
		return nil, booking.ErrNotParticipant
	}
	return b, nil
}

// ListMine returns the caller's bookings: as tenant for tenants, as
// landlord for landlords.
func (s *BookingService) ListMine(ctx context.Context, callerID uuid.UUID, callerRole string, page, limit int) ([]booking.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if callerRole == user.RoleLandlord {
		return s.repo.ListByLandlord(ctx, callerID, page, limit)
	}
	return s.repo.ListByTenant(ctx, callerID, page, limit)
}

func (s *BookingService) resolveBooking(ctx context.Context, session *gateway.CheckoutSession, sessionID string) (*booking.Booking, error) {
	if raw, ok := session.Metadata["booking_id"]; ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, booking.ErrSessionBookingMismatch
		}
		return s.repo.FindByID(ctx, id)
	}
	// Older sessions carry no metadata; fall back to the stored id.
	return s.repo.FindByCheckoutSession(ctx, sessionID)
}

// claimWebhook marks the session as processed. A lost cache is fine:
// the booking-state check above catches replays too.
func (s *BookingService) claimWebhook(ctx context.Context, sessionID string) bool {
	if s.cache == nil {
		return true
	}
	claimed, err := s.cache.SetNX(ctx, webhookKey(sessionID), true, webhookGuardTTL)
	if err != nil {
		logger.Error("webhook guard unavailable", err)
		return true
	}
	return claimed
}

func (s *BookingService) releaseWebhook(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, webhookKey(sessionID)); err != nil {
		logger.Error("failed to release webhook guard", err)
	}
}

func webhookKey(sessionID string) string {
	return "webhook:checkout_session:" + sessionID
}

func entityBooking() *string {
	e := activity.EntityBooking
	return &e
}
