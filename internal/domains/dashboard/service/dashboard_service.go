package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/internal/domains/dashboard"
	"rentora-backend/internal/domains/maintenance"
	"rentora-backend/internal/domains/property"
	"rentora-backend/internal/domains/user"
	"rentora-backend/internal/shared/apperror"
)

const recentListSize = 10

type DashboardService struct {
	repo       dashboard.Repository
	activities activity.Repository
	requests   maintenance.Repository
}

func NewDashboardService(repo dashboard.Repository, activities activity.Repository, requests maintenance.Repository) *DashboardService {
	return &DashboardService{repo: repo, activities: activities, requests: requests}
}

// Overview builds the role-scoped dashboard: admins see platform-wide
// numbers, landlords their own portfolio, tenants their own activity
// and reports, support the pending-maintenance queue.
func (s *DashboardService) Overview(ctx context.Context, callerID uuid.UUID, callerRole string) (*dashboard.Overview, error) {
	switch callerRole {
	case user.RoleAdmin:
		return s.adminOverview(ctx)
	case user.RoleLandlord:
		return s.landlordOverview(ctx, callerID)
	case user.RoleSupport:
		return s.supportOverview(ctx)
	default:
		return s.tenantOverview(ctx, callerID)
	}
}

// Earnings reports a year of revenue over paid bookings. Admins get the
// platform-wide series, landlords their own portfolio.
func (s *DashboardService) Earnings(ctx context.Context, callerID uuid.UUID, callerRole string, year int) (*dashboard.Earnings, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	var scope *uuid.UUID
	switch callerRole {
	case user.RoleAdmin:
	case user.RoleLandlord:
		scope = &callerID
	default:
		return nil, apperror.Forbidden("earnings are available to landlords and admins")
	}

	months, err := s.repo.MonthlyRevenue(ctx, scope, year)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountPaidBookings(ctx, scope, year)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.Revenue)
	}

	return &dashboard.Earnings{
		Year:         year,
		Months:       months,
		Total:        total,
		BookingCount: count,
	}, nil
}

func (s *DashboardService) adminOverview(ctx context.Context) (*dashboard.Overview, error) {
	o := &dashboard.Overview{Role: user.RoleAdmin}

	users, err := s.repo.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	o.UsersByRole = users

	props, err := s.propertyStats(ctx, nil)
	if err != nil {
		return nil, err
	}
	o.Properties = props

	bookings, err := s.bookingStats(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	o.Bookings = bookings

	revenue, err := s.repo.MonthlyRevenue(ctx, nil, time.Now().UTC().Year())
	if err != nil {
		return nil, err
	}
	o.MonthlyRevenue = revenue

	recent, err := s.activities.ListRecent(ctx, nil, recentListSize)
	if err != nil {
		return nil, err
	}
	o.RecentActivity = recent

	return o, nil
}

func (s *DashboardService) landlordOverview(ctx context.Context, landlordID uuid.UUID) (*dashboard.Overview, error) {
	o := &dashboard.Overview{Role: user.RoleLandlord}

	props, err := s.propertyStats(ctx, &landlordID)
	if err != nil {
		return nil, err
	}
	o.Properties = props

	bookings, err := s.bookingStats(ctx, &landlordID, nil)
	if err != nil {
		return nil, err
	}
	o.Bookings = bookings

	revenue, err := s.repo.MonthlyRevenue(ctx, &landlordID, time.Now().UTC().Year())
	if err != nil {
		return nil, err
	}
	o.MonthlyRevenue = revenue

	recent, err := s.requests.ListRecent(ctx, maintenance.ListFilters{LandlordID: &landlordID}, recentListSize)
	if err != nil {
		return nil, err
	}
	o.RecentMaintenance = recent

	return o, nil
}

func (s *DashboardService) tenantOverview(ctx context.Context, tenantID uuid.UUID) (*dashboard.Overview, error) {
	o := &dashboard.Overview{Role: user.RoleTenant}

	bookings, err := s.bookingStats(ctx, nil, &tenantID)
	if err != nil {
		return nil, err
	}
	o.Bookings = bookings

	recent, err := s.activities.ListRecent(ctx, &tenantID, recentListSize)
	if err != nil {
		return nil, err
	}
	o.RecentActivity = recent

	requests, err := s.requests.ListRecent(ctx, maintenance.ListFilters{TenantID: &tenantID}, recentListSize)
	if err != nil {
		return nil, err
	}
	o.RecentMaintenance = requests

	return o, nil
}

func (s *DashboardService) supportOverview(ctx context.Context) (*dashboard.Overview, error) {
	o := &dashboard.Overview{Role: user.RoleSupport}

	pending, err := s.repo.CountPendingMaintenance(ctx)
	if err != nil {
		return nil, err
	}
	o.PendingMaintenance = &pending

	requests, err := s.requests.ListRecent(ctx, maintenance.ListFilters{Status: maintenance.StatusPending}, recentListSize)
	if err != nil {
		return nil, err
	}
	o.RecentMaintenance = requests

	return o, nil
}

func (s *DashboardService) propertyStats(ctx context.Context, ownerID *uuid.UUID) (*dashboard.PropertyStats, error) {
	byStatus, err := s.repo.CountPropertiesByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.CountPropertiesByType(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	return &dashboard.PropertyStats{
		Total:         total,
		ByStatus:      byStatus,
		ByType:        byType,
		OccupancyRate: OccupancyRate(byStatus[property.StatusRented], total),
	}, nil
}

func (s *DashboardService) bookingStats(ctx context.Context, landlordID, tenantID *uuid.UUID) (*dashboard.BookingStats, error) {
	byStatus, err := s.repo.CountBookingsByStatus(ctx, landlordID, tenantID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}
	return &dashboard.BookingStats{Total: total, ByStatus: byStatus}, nil
}

// OccupancyRate is rented/total rounded to a whole percent; an empty
// portfolio is 0, not a division error.
func OccupancyRate(rented, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(rented) / float64(total) * 100))
}
