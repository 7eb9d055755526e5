package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/internal/domains/maintenance"
)

// PropertyStats summarizes a property portfolio. OccupancyRate is
// rented/total as a whole percent.
type PropertyStats struct {
	Total         int64            `json:"total"`
	ByStatus      map[string]int64 `json:"byStatus"`
	ByType        map[string]int64 `json:"byType"`
	OccupancyRate int              `json:"occupancyRate"`
}

type BookingStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// MonthlyRevenue is one slot of a twelve-month revenue series.
type MonthlyRevenue struct {
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Earnings is the yearly revenue report: one slot per calendar month
// plus the year's total over paid bookings.
type Earnings struct {
	Year         int              `json:"year"`
	Months       []MonthlyRevenue `json:"months"`
	Total        decimal.Decimal  `json:"total"`
	BookingCount int64            `json:"bookingCount"`
}

// Overview is the role-scoped dashboard payload; sections irrelevant to
// the caller's role stay nil.
type Overview struct {
	Role               string                `json:"role"`
	UsersByRole        map[string]int64      `json:"usersByRole,omitempty"`
	Properties         *PropertyStats        `json:"properties,omitempty"`
	Bookings           *BookingStats         `json:"bookings,omitempty"`
	MonthlyRevenue     []MonthlyRevenue      `json:"monthlyRevenue,omitempty"`
	RecentActivity     []activity.Activity   `json:"recentActivity,omitempty"`
	RecentMaintenance  []maintenance.Request `json:"recentMaintenance,omitempty"`
	PendingMaintenance *int64                `json:"pendingMaintenance,omitempty"`
}

// Repository runs the aggregate queries. A nil owner/landlord scopes to
// the whole platform.
type Repository interface {
	CountUsersByRole(ctx context.Context) (map[string]int64, error)
	CountPropertiesByStatus(ctx context.Context, ownerID *uuid.UUID) (map[string]int64, error)
	CountPropertiesByType(ctx context.Context, ownerID *uuid.UUID) (map[string]int64, error)
	CountBookingsByStatus(ctx context.Context, landlordID, tenantID *uuid.UUID) (map[string]int64, error)
	MonthlyRevenue(ctx context.Context, landlordID *uuid.UUID, year int) ([]MonthlyRevenue, error)
	CountPaidBookings(ctx context.Context, landlordID *uuid.UUID, year int) (int64, error)
	CountPendingMaintenance(ctx context.Context) (int64, error)
}
