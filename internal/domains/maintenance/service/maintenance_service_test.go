package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora-backend/internal/domains/maintenance"
	"rentora-backend/internal/domains/property"
	"rentora-backend/internal/domains/user"
)

type fakeMaintenanceRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*maintenance.Request
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{requests: map[uuid.UUID]*maintenance.Request{}}
}

func (r *fakeMaintenanceRepo) Create(_ context.Context, m *maintenance.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	clone := *m
	r.requests[m.ID] = &clone
	return nil
}

func (r *fakeMaintenanceRepo) FindByID(_ context.Context, id uuid.UUID) (*maintenance.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.requests[id]
	if !ok {
		return nil, maintenance.ErrRequestNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMaintenanceRepo) List(_ context.Context, f maintenance.ListFilters, _, _ int) ([]maintenance.Request, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []maintenance.Request{}
	for _, m := range r.requests {
		if f.TenantID != nil && m.TenantID != *f.TenantID {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMaintenanceRepo) ListRecent(_ context.Context, _ maintenance.ListFilters, _ int) ([]maintenance.Request, error) {
	return nil, nil
}

func (r *fakeMaintenanceRepo) Update(_ context.Context, m *maintenance.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.requests[m.ID]
	if !ok {
		return maintenance.ErrRequestNotFound
	}
	stored.Status = m.Status
	stored.Priority = m.Priority
	stored.CompletedAt = m.CompletedAt
	return nil
}

func (r *fakeMaintenanceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, id)
	return nil
}

type stubPropertyRepo struct {
	property.Repository
	props map[uuid.UUID]*property.Property
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	p, ok := r.props[id]
	if !ok {
		return nil, property.ErrPropertyNotFound
	}
	return p, nil
}

type nopRecorder struct{}

func (nopRecorder) Record(_ context.Context, _ uuid.UUID, _, _ string, _ *uuid.UUID, _ *string) {}

func newMaintenanceEnv(owner uuid.UUID) (*MaintenanceService, *fakeMaintenanceRepo, *property.Property) {
	p := &property.Property{ID: uuid.New(), Title: "Canal View Apartment", OwnerID: owner}
	props := &stubPropertyRepo{props: map[uuid.UUID]*property.Property{p.ID: p}}
	repo := newFakeMaintenanceRepo()
	return NewMaintenanceService(repo, props, nopRecorder{}), repo, p
}

func TestCreateMaintenanceRequest(t *testing.T) {
	svc, _, p := newMaintenanceEnv(uuid.New())
	tenant := uuid.New()

	m, err := svc.Create(context.Background(), tenant, maintenance.CreateRequest{
		PropertyID:  p.ID,
		Title:       "Leaking faucet",
		Description: "The kitchen faucet has been dripping for days.",
	})
	require.NoError(t, err)

	assert.Equal(t, maintenance.StatusPending, m.Status)
	assert.Equal(t, maintenance.PriorityMedium, m.Priority, "priority defaults to medium")
	assert.False(t, m.ReportedAt.IsZero())
}

func TestCreateMaintenanceUnknownProperty(t *testing.T) {
	svc, _, _ := newMaintenanceEnv(uuid.New())

	_, err := svc.Create(context.Background(), uuid.New(), maintenance.CreateRequest{
		PropertyID:  uuid.New(),
		Title:       "Leaking faucet",
		Description: "The kitchen faucet has been dripping for days.",
	})
	assert.ErrorIs(t, err, property.ErrPropertyNotFound)
}

func TestCompletingStampsCompletedAt(t *testing.T) {
	owner := uuid.New()
	svc, repo, p := newMaintenanceEnv(owner)

	m, err := svc.Create(context.Background(), uuid.New(), maintenance.CreateRequest{
		PropertyID:  p.ID,
		Title:       "Broken heater",
		Description: "No heat in the living room since Monday.",
	})
	require.NoError(t, err)

	completed := maintenance.StatusCompleted
	updated, err := svc.Update(context.Background(), m.ID, owner, user.RoleLandlord, maintenance.UpdateRequest{
		Status: &completed,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)

	// Closed requests reject further updates.
	pending := maintenance.StatusPending
	_, err = svc.Update(context.Background(), m.ID, owner, user.RoleLandlord, maintenance.UpdateRequest{
		Status: &pending,
	})
	assert.ErrorIs(t, err, maintenance.ErrRequestClosed)

	stored, err := repo.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusCompleted, stored.Status)
}

func TestTenantCanOnlyCancelOwnRequest(t *testing.T) {
	svc, _, p := newMaintenanceEnv(uuid.New())
	tenant := uuid.New()

	m, err := svc.Create(context.Background(), tenant, maintenance.CreateRequest{
		PropertyID:  p.ID,
		Title:       "Broken heater",
		Description: "No heat in the living room since Monday.",
	})
	require.NoError(t, err)

	completed := maintenance.StatusCompleted
	_, err = svc.Update(context.Background(), m.ID, tenant, user.RoleTenant, maintenance.UpdateRequest{
		Status: &completed,
	})
	assert.ErrorIs(t, err, maintenance.ErrNotAuthorized)

	cancelled := maintenance.StatusCancelled
	updated, err := svc.Update(context.Background(), m.ID, tenant, user.RoleTenant, maintenance.UpdateRequest{
		Status: &cancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusCancelled, updated.Status)
}

func TestStrangerCannotTouchRequest(t *testing.T) {
	svc, _, p := newMaintenanceEnv(uuid.New())

	m, err := svc.Create(context.Background(), uuid.New(), maintenance.CreateRequest{
		PropertyID:  p.ID,
		Title:       "Broken heater",
		Description: "No heat in the living room since Monday.",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), m.ID, uuid.New(), user.RoleTenant)
	assert.ErrorIs(t, err, maintenance.ErrNotAuthorized)

	high := maintenance.PriorityHigh
	_, err = svc.Update(context.Background(), m.ID, uuid.New(), user.RoleLandlord, maintenance.UpdateRequest{
		Priority: &high,
	})
	assert.ErrorIs(t, err, maintenance.ErrNotAuthorized)
}
