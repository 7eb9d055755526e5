package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/domains/booking"
	"rentora-backend/internal/domains/property"
	"rentora-backend/pkg/database"
)

const bookingColumns = `id, property_id, tenant_id, landlord_id, check_in, check_out,
	total_days, total_amount, security_deposit, status, payment_status,
	payment_intent_id, checkout_session_id, cancellation_reason, created_at, updated_at`

type postgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) booking.Repository {
	return &postgresBookingRepository{db: db}
}

func (r *postgresBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
		INSERT INTO bookings (id, property_id, tenant_id, landlord_id, check_in, check_out,
			total_days, total_amount, security_deposit, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		b.ID, b.PropertyID, b.TenantID, b.LandlordID, b.CheckIn, b.CheckOut,
		b.TotalDays, b.TotalAmount, b.SecurityDeposit, b.Status, b.PaymentStatus,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		// bookings_one_active_per_property is a partial unique index
		// over non-cancelled, non-completed rows.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return booking.ErrPropertyAlreadyBooked
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *postgresBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *postgresBookingRepository) FindByCheckoutSession(ctx context.Context, sessionID string) (*booking.Booking, error) {
	return r.findOne(ctx, "checkout_session_id = $1", sessionID)
}

func (r *postgresBookingRepository) findOne(ctx context.Context, condition string, args ...interface{}) (*booking.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE %s", bookingColumns, condition)

	var b booking.Booking
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.PropertyID, &b.TenantID, &b.LandlordID, &b.CheckIn, &b.CheckOut,
		&b.TotalDays, &b.TotalAmount, &b.SecurityDeposit, &b.Status, &b.PaymentStatus,
		&b.PaymentIntentID, &b.CheckoutSessionID, &b.CancellationReason,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (r *postgresBookingRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]booking.Booking, int64, error) {
	return r.list(ctx, "tenant_id", tenantID, page, limit)
}

func (r *postgresBookingRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID, page, limit int) ([]booking.Booking, int64, error) {
	return r.list(ctx, "landlord_id", landlordID, page, limit)
}

func (r *postgresBookingRepository) list(ctx context.Context, column string, id uuid.UUID, page, limit int) ([]booking.Booking, int64, error) {
	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM bookings WHERE %s = $1", column)
	if err := r.db.QueryRow(ctx, countQuery, id).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM bookings WHERE %s = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		bookingColumns, column)

	rows, err := r.db.Query(ctx, query, id, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	items := []booking.Booking{}
	for rows.Next() {
		var b booking.Booking
		if err := rows.Scan(
			&b.ID, &b.PropertyID, &b.TenantID, &b.LandlordID, &b.CheckIn, &b.CheckOut,
			&b.TotalDays, &b.TotalAmount, &b.SecurityDeposit, &b.Status, &b.PaymentStatus,
			&b.PaymentIntentID, &b.CheckoutSessionID, &b.CancellationReason,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *postgresBookingRepository) AttachCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	query := `UPDATE bookings SET checkout_session_id = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, sessionID)
	if err != nil {
		return fmt.Errorf("attach checkout session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func (r *postgresBookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, paymentIntentID string) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE bookings
			SET status = $2, payment_status = $3, payment_intent_id = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING property_id`

		var propertyID uuid.UUID
		err := tx.QueryRow(ctx, query, id, booking.StatusConfirmed, booking.PaymentPaid, paymentIntentID).Scan(&propertyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return booking.ErrBookingNotFound
			}
			return fmt.Errorf("mark booking paid: %w", err)
		}

		_, err = tx.Exec(ctx,
			"UPDATE properties SET status = $2, updated_at = NOW() WHERE id = $1",
			propertyID, property.StatusRented)
		if err != nil {
			return fmt.Errorf("mark property rented: %w", err)
		}
		return nil
	})
}

func (r *postgresBookingRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE bookings
			SET status = $2, cancellation_reason = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING property_id`

		var propertyID uuid.UUID
		err := tx.QueryRow(ctx, query, id, booking.StatusCancelled, reason).Scan(&propertyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return booking.ErrBookingNotFound
			}
			return fmt.Errorf("cancel booking: %w", err)
		}

		_, err = tx.Exec(ctx,
			"UPDATE properties SET status = $2, updated_at = NOW() WHERE id = $1",
			propertyID, property.StatusAvailable)
		if err != nil {
			return fmt.Errorf("release property: %w", err)
		}
		return nil
	})
}
