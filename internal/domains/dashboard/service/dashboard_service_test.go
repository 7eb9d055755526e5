package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/internal/domains/dashboard"
	"rentora-backend/internal/domains/maintenance"
	"rentora-backend/internal/domains/user"
)

type fakeDashboardRepo struct {
	propertiesByStatus map[string]int64
	propertiesByType   map[string]int64
	usersByRole        map[string]int64
	bookingsByStatus   map[string]int64
	revenue            []dashboard.MonthlyRevenue
	paidBookings       int64
	pendingMaintenance int64

	lastOwnerScope    *uuid.UUID
	lastLandlordScope *uuid.UUID
	lastTenantScope   *uuid.UUID
	lastRevenueScope  *uuid.UUID
	lastRevenueYear   int
}

func (r *fakeDashboardRepo) CountUsersByRole(_ context.Context) (map[string]int64, error) {
	return r.usersByRole, nil
}

func (r *fakeDashboardRepo) CountPropertiesByStatus(_ context.Context, ownerID *uuid.UUID) (map[string]int64, error) {
	r.lastOwnerScope = ownerID
	return r.propertiesByStatus, nil
}

func (r *fakeDashboardRepo) CountPropertiesByType(_ context.Context, _ *uuid.UUID) (map[string]int64, error) {
	return r.propertiesByType, nil
}

func (r *fakeDashboardRepo) CountBookingsByStatus(_ context.Context, landlordID, tenantID *uuid.UUID) (map[string]int64, error) {
	r.lastLandlordScope = landlordID
	r.lastTenantScope = tenantID
	return r.bookingsByStatus, nil
}

func (r *fakeDashboardRepo) MonthlyRevenue(_ context.Context, landlordID *uuid.UUID, year int) ([]dashboard.MonthlyRevenue, error) {
	r.lastRevenueScope = landlordID
	r.lastRevenueYear = year
	return r.revenue, nil
}

func (r *fakeDashboardRepo) CountPaidBookings(_ context.Context, _ *uuid.UUID, _ int) (int64, error) {
	return r.paidBookings, nil
}

func (r *fakeDashboardRepo) CountPendingMaintenance(_ context.Context) (int64, error) {
	return r.pendingMaintenance, nil
}

type stubActivityRepo struct{}

func (stubActivityRepo) Create(_ context.Context, _ *activity.Activity) error { return nil }

func (stubActivityRepo) List(_ context.Context, _ activity.ListFilters, _, _ int) ([]activity.Activity, int64, error) {
	return nil, 0, nil
}

func (stubActivityRepo) ListRecent(_ context.Context, _ *uuid.UUID, _ int) ([]activity.Activity, error) {
	return []activity.Activity{{Action: activity.ActionBookingCreated}}, nil
}

type stubMaintenanceRepo struct{ lastFilters maintenance.ListFilters }

func (r *stubMaintenanceRepo) Create(_ context.Context, _ *maintenance.Request) error { return nil }

func (r *stubMaintenanceRepo) FindByID(_ context.Context, _ uuid.UUID) (*maintenance.Request, error) {
	return nil, maintenance.ErrRequestNotFound
}

func (r *stubMaintenanceRepo) List(_ context.Context, _ maintenance.ListFilters, _, _ int) ([]maintenance.Request, int64, error) {
	return nil, 0, nil
}

func (r *stubMaintenanceRepo) ListRecent(_ context.Context, f maintenance.ListFilters, _ int) ([]maintenance.Request, error) {
	r.lastFilters = f
	return []maintenance.Request{{Status: maintenance.StatusPending}}, nil
}

func (r *stubMaintenanceRepo) Update(_ context.Context, _ *maintenance.Request) error { return nil }
func (r *stubMaintenanceRepo) Delete(_ context.Context, _ uuid.UUID) error            { return nil }

func newDashboardEnv() (*DashboardService, *fakeDashboardRepo, *stubMaintenanceRepo) {
	repo := &fakeDashboardRepo{
		propertiesByStatus: map[string]int64{"available": 5, "rented": 3, "maintenance": 2},
		propertiesByType:   map[string]int64{"apartment": 7, "house": 3},
		usersByRole:        map[string]int64{"tenant": 40, "landlord": 10},
		bookingsByStatus:   map[string]int64{"pending": 2, "confirmed": 6},
		revenue:            []dashboard.MonthlyRevenue{{Month: 1, Revenue: decimal.NewFromInt(4500)}},
		pendingMaintenance: 7,
	}
	requests := &stubMaintenanceRepo{}
	return NewDashboardService(repo, stubActivityRepo{}, requests), repo, requests
}

func TestOccupancyRate(t *testing.T) {
	tests := []struct {
		name   string
		rented int64
		total  int64
		want   int
	}{
		{"empty portfolio", 0, 0, 0},
		{"thirty percent", 3, 10, 30},
		{"rounds up", 1, 3, 33},
		{"rounds to nearest", 2, 3, 67},
		{"full", 5, 5, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OccupancyRate(tt.rented, tt.total))
		})
	}
}

func TestAdminOverviewIsGlobal(t *testing.T) {
	svc, repo, _ := newDashboardEnv()

	o, err := svc.Overview(context.Background(), uuid.New(), user.RoleAdmin)
	require.NoError(t, err)

	assert.Nil(t, repo.lastOwnerScope, "admin counts are unscoped")
	assert.Equal(t, int64(40), o.UsersByRole["tenant"])
	require.NotNil(t, o.Properties)
	assert.Equal(t, int64(10), o.Properties.Total)
	assert.Equal(t, 30, o.Properties.OccupancyRate)
	require.NotNil(t, o.Bookings)
	assert.Equal(t, int64(8), o.Bookings.Total)
	assert.NotEmpty(t, o.MonthlyRevenue)
	assert.NotEmpty(t, o.RecentActivity)
}

func TestLandlordOverviewScopedToOwner(t *testing.T) {
	svc, repo, requests := newDashboardEnv()
	landlord := uuid.New()

	o, err := svc.Overview(context.Background(), landlord, user.RoleLandlord)
	require.NoError(t, err)

	require.NotNil(t, repo.lastOwnerScope)
	assert.Equal(t, landlord, *repo.lastOwnerScope)
	require.NotNil(t, repo.lastLandlordScope)
	assert.Equal(t, landlord, *repo.lastLandlordScope)
	assert.Nil(t, o.UsersByRole, "landlords do not see user counts")
	require.NotNil(t, requests.lastFilters.LandlordID)
	assert.Equal(t, landlord, *requests.lastFilters.LandlordID)
}

func TestTenantOverview(t *testing.T) {
	svc, repo, requests := newDashboardEnv()
	tenant := uuid.New()

	o, err := svc.Overview(context.Background(), tenant, user.RoleTenant)
	require.NoError(t, err)

	require.NotNil(t, repo.lastTenantScope)
	assert.Equal(t, tenant, *repo.lastTenantScope)
	assert.Nil(t, o.Properties, "tenants have no portfolio section")
	assert.NotEmpty(t, o.RecentMaintenance)
	require.NotNil(t, requests.lastFilters.TenantID)
	assert.Equal(t, tenant, *requests.lastFilters.TenantID)
}

func TestEarningsScopedByRole(t *testing.T) {
	svc, repo, _ := newDashboardEnv()
	repo.paidBookings = 3
	landlord := uuid.New()

	e, err := svc.Earnings(context.Background(), landlord, user.RoleLandlord, 2026)
	require.NoError(t, err)

	require.NotNil(t, repo.lastRevenueScope)
	assert.Equal(t, landlord, *repo.lastRevenueScope)
	assert.Equal(t, 2026, e.Year)
	assert.True(t, e.Total.Equal(decimal.NewFromInt(4500)))
	assert.Equal(t, int64(3), e.BookingCount)

	_, err = svc.Earnings(context.Background(), uuid.New(), user.RoleAdmin, 2026)
	require.NoError(t, err)
	assert.Nil(t, repo.lastRevenueScope, "admin earnings are unscoped")

	_, err = svc.Earnings(context.Background(), uuid.New(), user.RoleTenant, 2026)
	require.Error(t, err)
}

func TestEarningsDefaultsToCurrentYear(t *testing.T) {
	svc, repo, _ := newDashboardEnv()

	_, err := svc.Earnings(context.Background(), uuid.New(), user.RoleAdmin, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Year(), repo.lastRevenueYear)
}

func TestSupportOverviewPendingQueue(t *testing.T) {
	svc, _, requests := newDashboardEnv()

	o, err := svc.Overview(context.Background(), uuid.New(), user.RoleSupport)
	require.NoError(t, err)

	require.NotNil(t, o.PendingMaintenance)
	assert.Equal(t, int64(7), *o.PendingMaintenance)
	assert.Equal(t, maintenance.StatusPending, requests.lastFilters.Status)
	assert.Nil(t, o.Bookings)
}
