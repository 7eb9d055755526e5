package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rentora-backend/internal/domains/booking"
	"rentora-backend/internal/domains/dashboard"
	"rentora-backend/internal/domains/maintenance"
)

type postgresDashboardRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDashboardRepository(db *pgxpool.Pool) dashboard.Repository {
	return &postgresDashboardRepository{db: db}
}

func (r *postgresDashboardRepository) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "SELECT role, COUNT(*) FROM users GROUP BY role")
}

func (r *postgresDashboardRepository) CountPropertiesByStatus(ctx context.Context, ownerID *uuid.UUID) (map[string]int64, error) {
	return r.countGrouped(ctx,
		"SELECT status, COUNT(*) FROM properties WHERE ($1::uuid IS NULL OR owner_id = $1) GROUP BY status",
		ownerID)
}

func (r *postgresDashboardRepository) CountPropertiesByType(ctx context.Context, ownerID *uuid.UUID) (map[string]int64, error) {
	return r.countGrouped(ctx,
		"SELECT property_type, COUNT(*) FROM properties WHERE ($1::uuid IS NULL OR owner_id = $1) GROUP BY property_type",
		ownerID)
}

func (r *postgresDashboardRepository) CountBookingsByStatus(ctx context.Context, landlordID, tenantID *uuid.UUID) (map[string]int64, error) {
	return r.countGrouped(ctx,
		`SELECT status, COUNT(*) FROM bookings
		 WHERE ($1::uuid IS NULL OR landlord_id = $1) AND ($2::uuid IS NULL OR tenant_id = $2)
		 GROUP BY status`,
		landlordID, tenantID)
}

// MonthlyRevenue sums paid booking amounts per calendar month of the
// given year. All twelve slots are returned, zero-filled.
func (r *postgresDashboardRepository) MonthlyRevenue(ctx context.Context, landlordID *uuid.UUID, year int) ([]dashboard.MonthlyRevenue, error) {
	query := `
		SELECT EXTRACT(MONTH FROM updated_at)::int AS month, COALESCE(SUM(total_amount), 0)
		FROM bookings
		WHERE payment_status = $1
			AND EXTRACT(YEAR FROM updated_at) = $2
			AND ($3::uuid IS NULL OR landlord_id = $3)
		GROUP BY month`

	rows, err := r.db.Query(ctx, query, booking.PaymentPaid, year, landlordID)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	series := make([]dashboard.MonthlyRevenue, 12)
	for i := range series {
		series[i] = dashboard.MonthlyRevenue{Month: i + 1, Revenue: decimal.Zero}
	}

	for rows.Next() {
		var month int
		var revenue decimal.Decimal
		if err := rows.Scan(&month, &revenue); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		if month >= 1 && month <= 12 {
			series[month-1].Revenue = revenue
		}
	}
	return series, rows.Err()
}

func (r *postgresDashboardRepository) CountPaidBookings(ctx context.Context, landlordID *uuid.UUID, year int) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM bookings
		WHERE payment_status = $1
			AND EXTRACT(YEAR FROM updated_at) = $2
			AND ($3::uuid IS NULL OR landlord_id = $3)`,
		booking.PaymentPaid, year, landlordID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count paid bookings: %w", err)
	}
	return count, nil
}

func (r *postgresDashboardRepository) CountPendingMaintenance(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM maintenance_requests WHERE status = $1",
		maintenance.StatusPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending maintenance: %w", err)
	}
	return count, nil
}

func (r *postgresDashboardRepository) countGrouped(ctx context.Context, query string, args ...interface{}) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("grouped count: %w", err)
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scan grouped count: %w", err)
		}
		out[key] = count
	}
	return out, rows.Err()
}
