package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora-backend/internal/domains/booking"
	"rentora-backend/internal/domains/payment/gateway"
	"rentora-backend/internal/domains/property"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
	props    *fakePropertyRepo
}

func newFakeBookingRepo(props *fakePropertyRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*booking.Booking{}, props: props}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.PropertyID == b.PropertyID && !existing.IsTerminal() {
			return booking.ErrPropertyAlreadyBooked
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) FindByCheckoutSession(_ context.Context, sessionID string) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.CheckoutSessionID != nil && *b.CheckoutSessionID == sessionID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, booking.ErrBookingNotFound
}

func (r *fakeBookingRepo) ListByTenant(_ context.Context, tenantID uuid.UUID, _, _ int) ([]booking.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []booking.Booking{}
	for _, b := range r.bookings {
		if b.TenantID == tenantID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) ListByLandlord(_ context.Context, landlordID uuid.UUID, _, _ int) ([]booking.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []booking.Booking{}
	for _, b := range r.bookings {
		if b.LandlordID == landlordID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) AttachCheckoutSession(_ context.Context, id uuid.UUID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.CheckoutSessionID = &sessionID
	return nil
}

func (r *fakeBookingRepo) MarkPaid(_ context.Context, id uuid.UUID, paymentIntentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.Status = booking.StatusConfirmed
	b.PaymentStatus = booking.PaymentPaid
	b.PaymentIntentID = &paymentIntentID
	r.props.setStatus(b.PropertyID, property.StatusRented)
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.Status = booking.StatusCancelled
	b.CancellationReason = &reason
	r.props.setStatus(b.PropertyID, property.StatusAvailable)
	return nil
}

type fakePropertyRepo struct {
	mu    sync.Mutex
	props map[uuid.UUID]*property.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: map[uuid.UUID]*property.Property{}}
}

func (r *fakePropertyRepo) add(p *property.Property) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props[p.ID] = p
}

func (r *fakePropertyRepo) setStatus(id uuid.UUID, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.props[id]; ok {
		p.Status = status
	}
}

func (r *fakePropertyRepo) Create(_ context.Context, p *property.Property) error {
	r.add(p)
	return nil
}

func (r *fakePropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props[id]
	if !ok {
		return nil, property.ErrPropertyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePropertyRepo) Update(_ context.Context, _ *property.Property) error { return nil }
func (r *fakePropertyRepo) Delete(_ context.Context, _ uuid.UUID) error          { return nil }

func (r *fakePropertyRepo) Search(_ context.Context, _ property.Filters) ([]property.Property, int64, error) {
	return nil, 0, nil
}

func (r *fakePropertyRepo) ListByOwner(_ context.Context, _ uuid.UUID, _, _ int) ([]property.Property, int64, error) {
	return nil, 0, nil
}

func (r *fakePropertyRepo) ListFeatured(_ context.Context, _ int) ([]property.Property, error) {
	return nil, nil
}

func (r *fakePropertyRepo) ListByCity(_ context.Context, _ string, _ int) ([]property.Property, error) {
	return nil, nil
}

func (r *fakePropertyRepo) FilterOptions(_ context.Context) (*property.FilterOptions, error) {
	return nil, nil
}

func (r *fakePropertyRepo) IncrementViews(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakePropertyRepo) ToggleLike(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakePropertyRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.setStatus(id, status)
	return nil
}

type fakeGateway struct {
	sessions      map[string]*gateway.CheckoutSession
	createCount   int
	retrieveCount int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]*gateway.CheckoutSession{}}
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req gateway.CheckoutSessionRequest) (*gateway.CheckoutSession, error) {
	g.createCount++
	session := &gateway.CheckoutSession{
		ID:              fmt.Sprintf("cs_test_%d", g.createCount),
		URL:             "https://checkout.example.com/pay",
		PaymentIntentID: fmt.Sprintf("pi_test_%d", g.createCount),
		Metadata:        map[string]string{"booking_id": req.BookingID},
	}
	g.sessions[session.ID] = session
	return session, nil
}

func (g *fakeGateway) RetrieveSession(_ context.Context, sessionID string) (*gateway.CheckoutSession, error) {
	g.retrieveCount++
	session, ok := g.sessions[sessionID]
	if !ok {
		return nil, booking.ErrSessionBookingMismatch
	}
	return session, nil
}

type nopRecorder struct{}

func (nopRecorder) Record(_ context.Context, _ uuid.UUID, _, _ string, _ *uuid.UUID, _ *string) {}

func rentalProperty(ownerID uuid.UUID, price int64, minimumStayMonths int) *property.Property {
	return &property.Property{
		ID:          uuid.New(),
		Title:       "Canal View Apartment",
		ListingType: property.ListingTypeRent,
		Status:      property.StatusAvailable,
		OwnerID:     ownerID,
		Rental: &property.RentalDetails{
			RentPrice:   decimal.NewFromInt(price),
			MinimumStay: minimumStayMonths,
		},
	}
}

type testEnv struct {
	svc      *BookingService
	bookings *fakeBookingRepo
	props    *fakePropertyRepo
	gateway  *fakeGateway
}

func newTestEnv() *testEnv {
	props := newFakePropertyRepo()
	bookings := newFakeBookingRepo(props)
	gw := newFakeGateway()
	svc := NewBookingService(bookings, props, gw, nil, nopRecorder{},
		"https://app.example.com/bookings/success", "https://app.example.com/bookings/cancelled")
	return &testEnv{svc: svc, bookings: bookings, props: props, gateway: gw}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateBookingComputesTotals(t *testing.T) {
	env := newTestEnv()
	owner, tenant := uuid.New(), uuid.New()
	p := rentalProperty(owner, 1500, 0)
	env.props.add(p)

	b, err := env.svc.Create(context.Background(), tenant, booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.March, 11),
	})
	require.NoError(t, err)

	assert.Equal(t, 10, b.TotalDays)
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(15000)), "amount = price * nights, got %s", b.TotalAmount)
	assert.Equal(t, booking.StatusPending, b.Status)
	assert.Equal(t, booking.PaymentPending, b.PaymentStatus)
	assert.Equal(t, owner, b.LandlordID)

	// Creation does not reserve the property.
	stored, err := env.props.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, property.StatusAvailable, stored.Status)
}

func TestCreateBookingPartialDayRoundsUp(t *testing.T) {
	env := newTestEnv()
	p := rentalProperty(uuid.New(), 100, 0)
	env.props.add(p)

	b, err := env.svc.Create(context.Background(), uuid.New(), booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    time.Date(2026, time.March, 1, 15, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, time.March, 3, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 44 hours, ceiling-divided by 24.
	assert.Equal(t, 2, b.TotalDays)
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(200)))
}

func TestCreateBookingRejectsInvalidDates(t *testing.T) {
	env := newTestEnv()
	p := rentalProperty(uuid.New(), 1500, 0)
	env.props.add(p)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"checkout before checkin", date(2026, time.March, 10), date(2026, time.March, 1)},
		{"checkout equals checkin", date(2026, time.March, 1), date(2026, time.March, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Create(context.Background(), uuid.New(), booking.CreateBookingRequest{
				PropertyID: p.ID,
				CheckIn:    tt.checkIn,
				CheckOut:   tt.checkOut,
			})
			assert.ErrorIs(t, err, booking.ErrInvalidDates)
		})
	}
}

func TestCreateBookingMinimumStay(t *testing.T) {
	env := newTestEnv()
	// Three-month minimum stay at 1500/night.
	p := rentalProperty(uuid.New(), 1500, 3)
	env.props.add(p)
	tenant := uuid.New()

	// Two months is under the 90-night floor.
	_, err := env.svc.Create(context.Background(), tenant, booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.May, 1),
	})
	assert.ErrorIs(t, err, booking.ErrBelowMinimumStay)

	// Four months clears it.
	b, err := env.svc.Create(context.Background(), tenant, booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.July, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 122, b.TotalDays)
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(1500*122)))
}

func TestCreateBookingUnavailableProperty(t *testing.T) {
	env := newTestEnv()
	p := rentalProperty(uuid.New(), 1500, 0)
	p.Status = property.StatusRented
	env.props.add(p)

	_, err := env.svc.Create(context.Background(), uuid.New(), booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.March, 11),
	})
	assert.ErrorIs(t, err, booking.ErrPropertyNotAvailable)
	assert.Empty(t, env.bookings.bookings, "no booking record on failure")
}

func TestCreateBookingSaleListingRejected(t *testing.T) {
	env := newTestEnv()
	p := &property.Property{
		ID:          uuid.New(),
		ListingType: property.ListingTypeSale,
		Status:      property.StatusAvailable,
		OwnerID:     uuid.New(),
		Sale:        &property.SaleDetails{SalePrice: decimal.NewFromInt(300000)},
	}
	env.props.add(p)

	_, err := env.svc.Create(context.Background(), uuid.New(), booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.March, 11),
	})
	assert.ErrorIs(t, err, booking.ErrBookingNotRentable)
}

func TestCreateBookingOwnProperty(t *testing.T) {
	env := newTestEnv()
	owner := uuid.New()
	p := rentalProperty(owner, 1500, 0)
	env.props.add(p)

	_, err := env.svc.Create(context.Background(), owner, booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.March, 11),
	})
	assert.ErrorIs(t, err, booking.ErrOwnPropertyBooking)
}

func TestCreateBookingSecondActiveBookingConflicts(t *testing.T) {
	env := newTestEnv()
	p := rentalProperty(uuid.New(), 1500, 0)
	env.props.add(p)

	req := booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.March, 11),
	}

	_, err := env.svc.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	_, err = env.svc.Create(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, booking.ErrPropertyAlreadyBooked)
}

func createPaidBooking(t *testing.T, env *testEnv) (*booking.Booking, string) {
	t.Helper()
	p := rentalProperty(uuid.New(), 1500, 0)
	env.props.add(p)
	tenant := uuid.New()

	b, err := env.svc.Create(context.Background(), tenant, booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.March, 11),
	})
	require.NoError(t, err)

	checkout, err := env.svc.CreateCheckoutSession(context.Background(), b.ID, tenant)
	require.NoError(t, err)

	require.NoError(t, env.svc.HandlePaymentSuccess(context.Background(), checkout.SessionID))
	return b, checkout.SessionID
}

func TestPaymentSuccessConfirmsAndRentsProperty(t *testing.T) {
	env := newTestEnv()
	b, _ := createPaidBooking(t, env)

	stored, err := env.bookings.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, stored.Status)
	assert.Equal(t, booking.PaymentPaid, stored.PaymentStatus)
	require.NotNil(t, stored.PaymentIntentID)

	prop, err := env.props.FindByID(context.Background(), b.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, property.StatusRented, prop.Status)
}

func TestPaymentSuccessIsIdempotent(t *testing.T) {
	env := newTestEnv()
	b, sessionID := createPaidBooking(t, env)

	// Second delivery of the same webhook no-ops.
	require.NoError(t, env.svc.HandlePaymentSuccess(context.Background(), sessionID))

	stored, err := env.bookings.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, stored.Status)
	assert.Equal(t, booking.PaymentPaid, stored.PaymentStatus)
}

func TestPaymentSuccessUnknownSession(t *testing.T) {
	env := newTestEnv()
	err := env.svc.HandlePaymentSuccess(context.Background(), "cs_test_unknown")
	assert.Error(t, err)
}

func TestCheckoutSessionOnlyForTenant(t *testing.T) {
	env := newTestEnv()
	p := rentalProperty(uuid.New(), 1500, 0)
	env.props.add(p)
	tenant := uuid.New()

	b, err := env.svc.Create(context.Background(), tenant, booking.CreateBookingRequest{
		PropertyID: p.ID,
		CheckIn:    date(2026, time.March, 1),
		CheckOut:   date(2026, time.March, 11),
	})
	require.NoError(t, err)

	_, err = env.svc.CreateCheckoutSession(context.Background(), b.ID, uuid.New())
	assert.ErrorIs(t, err, booking.ErrNotParticipant)
}

func TestCancelBooking(t *testing.T) {
	env := newTestEnv()
	b, _ := createPaidBooking(t, env)

	cancelled, err := env.svc.Cancel(context.Background(), b.ID, b.TenantID, "plans changed")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "plans changed", *cancelled.CancellationReason)

	// Property returns to the market.
	prop, err := env.props.FindByID(context.Background(), b.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, property.StatusAvailable, prop.Status)

	// Second cancellation fails.
	_, err = env.svc.Cancel(context.Background(), b.ID, b.TenantID, "again")
	assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
}

func TestCancelBookingByLandlord(t *testing.T) {
	env := newTestEnv()
	b, _ := createPaidBooking(t, env)

	_, err := env.svc.Cancel(context.Background(), b.ID, b.LandlordID, "property damaged")
	assert.NoError(t, err)
}

func TestCancelBookingByStranger(t *testing.T) {
	env := newTestEnv()
	b, _ := createPaidBooking(t, env)

	_, err := env.svc.Cancel(context.Background(), b.ID, uuid.New(), "not mine")
	assert.ErrorIs(t, err, booking.ErrNotParticipant)
}

func TestTotalNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"exact days", date(2026, time.March, 1), date(2026, time.March, 4), 3},
		{"partial day rounds up", time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC), time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC), 2},
		{"single night", date(2026, time.March, 1), date(2026, time.March, 2), 1},
		{"four months", date(2026, time.March, 1), date(2026, time.July, 1), 122},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.TotalNights(tt.checkIn, tt.checkOut))
		})
	}
}
