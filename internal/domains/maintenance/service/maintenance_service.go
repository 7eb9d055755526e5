package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/internal/domains/maintenance"
	"rentora-backend/internal/domains/property"
	"rentora-backend/internal/domains/user"
)

type MaintenanceService struct {
	repo       maintenance.Repository
	properties property.Repository
	recorder   activity.Recorder
}

func NewMaintenanceService(repo maintenance.Repository, properties property.Repository, recorder activity.Recorder) *MaintenanceService {
	return &MaintenanceService{repo: repo, properties: properties, recorder: recorder}
}

func (s *MaintenanceService) Create(ctx context.Context, tenantID uuid.UUID, req maintenance.CreateRequest) (*maintenance.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The target property must exist; any tenant may report an issue.
	p, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = maintenance.PriorityMedium
	}

	m := &maintenance.Request{
		PropertyID:  p.ID,
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      maintenance.StatusPending,
		Images:      req.Images,
		ReportedAt:  time.Now().UTC(),
	}
	if m.Images == nil {
		m.Images = []string{}
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, tenantID, activity.ActionMaintenanceCreated,
		fmt.Sprintf("reported %q for %q", m.Title, p.Title), &m.ID, entityMaintenance())

	return m, nil
}

func (s *MaintenanceService) GetByID(ctx context.Context, id, callerID uuid.UUID, callerRole string) (*maintenance.Request, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, m, callerID, callerRole); err != nil {
		return nil, err
	}
	return m, nil
}

// List scopes results by role: tenants see their reports, landlords
// their properties' reports, admin and support everything.
func (s *MaintenanceService) List(ctx context.Context, callerID uuid.UUID, callerRole string, f maintenance.ListFilters, page, limit int) ([]maintenance.Request, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	switch callerRole {
	case user.RoleAdmin, user.RoleSupport:
		// Unrestricted.
	case user.RoleLandlord:
		f.LandlordID = &callerID
		f.TenantID = nil
	default:
		f.TenantID = &callerID
		f.LandlordID = nil
	}

	return s.repo.List(ctx, f, page, limit)
}

// Update mutates status and priority. Tenants may only cancel their own
// request; landlords of the property, admin and support may set any
// status. CompletedAt is stamped exactly when the request first becomes
// completed.
func (s *MaintenanceService) Update(ctx context.Context, id, callerID uuid.UUID, callerRole string, req maintenance.UpdateRequest) (*maintenance.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.Status == maintenance.StatusCompleted || m.Status == maintenance.StatusCancelled {
		return nil, maintenance.ErrRequestClosed
	}

	if err := s.authorizeUpdate(ctx, m, callerID, callerRole, req); err != nil {
		return nil, err
	}

	if req.Priority != nil {
		m.Priority = *req.Priority
	}
	if req.Status != nil {
		m.Status = *req.Status
		if m.Status == maintenance.StatusCompleted && m.CompletedAt == nil {
			now := time.Now().UTC()
			m.CompletedAt = &now
		}
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, callerID, activity.ActionMaintenanceUpdated,
		fmt.Sprintf("maintenance %q moved to %s", m.Title, m.Status), &m.ID, entityMaintenance())

	return m, nil
}

func (s *MaintenanceService) authorizeRead(ctx context.Context, m *maintenance.Request, callerID uuid.UUID, callerRole string) error {
	if callerRole == user.RoleAdmin || callerRole == user.RoleSupport {
		return nil
	}
	if m.TenantID == callerID {
		return nil
	}

	p, err := s.properties.FindByID(ctx, m.PropertyID)
	if err != nil {
		return err
	}
	if p.OwnerID != callerID {
		return maintenance.ErrNotAuthorized
	}
	return nil
}

func (s *MaintenanceService) authorizeUpdate(ctx context.Context, m *maintenance.Request, callerID uuid.UUID, callerRole string, req maintenance.UpdateRequest) error {
	if callerRole == user.RoleAdmin || callerRole == user.RoleSupport {
		return nil
	}

	if m.TenantID == callerID {
		// Reporters can only withdraw their own request.
		if req.Priority != nil || req.Status == nil || *req.Status != maintenance.StatusCancelled {
			return maintenance.ErrNotAuthorized
		}
		return nil
	}

	p, err := s.properties.FindByID(ctx, m.PropertyID)
	if err != nil {
		return err
	}
	if p.OwnerID != callerID {
		return maintenance.ErrNotAuthorized
	}
	return nil
}

func entityMaintenance() *string {
	e := activity.EntityMaintenance
	return &e
}
