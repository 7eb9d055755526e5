package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/domains/maintenance"
)

const maintenanceColumns = `m.id, m.property_id, m.tenant_id, m.title, m.description,
	m.priority, m.status, m.images, m.reported_at, m.completed_at, m.created_at, m.updated_at`

type postgresMaintenanceRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMaintenanceRepository(db *pgxpool.Pool) maintenance.Repository {
	return &postgresMaintenanceRepository{db: db}
}

func (r *postgresMaintenanceRepository) Create(ctx context.Context, m *maintenance.Request) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	if m.ReportedAt.IsZero() {
		m.ReportedAt = now
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO maintenance_requests (id, property_id, tenant_id, title, description,
			priority, status, images, reported_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		m.ID, m.PropertyID, m.TenantID, m.Title, m.Description,
		m.Priority, m.Status, m.Images, m.ReportedAt, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert maintenance request: %w", err)
	}
	return nil
}

func (r *postgresMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	query := fmt.Sprintf("SELECT %s FROM maintenance_requests m WHERE m.id = $1", maintenanceColumns)

	var m maintenance.Request
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.PropertyID, &m.TenantID, &m.Title, &m.Description,
		&m.Priority, &m.Status, &m.Images, &m.ReportedAt, &m.CompletedAt,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, maintenance.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find maintenance request: %w", err)
	}
	return &m, nil
}

// List supports landlord scoping via a join on the property owner.
func (r *postgresMaintenanceRepository) List(ctx context.Context, f maintenance.ListFilters, page, limit int) ([]maintenance.Request, int64, error) {
	where, args := buildFilter(f)

	countQuery := "SELECT COUNT(*) FROM maintenance_requests m JOIN properties p ON p.id = m.property_id" + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count maintenance requests: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM maintenance_requests m JOIN properties p ON p.id = m.property_id%s ORDER BY m.reported_at DESC LIMIT $%d OFFSET $%d",
		maintenanceColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list maintenance requests: %w", err)
	}
	defer rows.Close()

	items, err := scanRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *postgresMaintenanceRepository) ListRecent(ctx context.Context, f maintenance.ListFilters, limit int) ([]maintenance.Request, error) {
	where, args := buildFilter(f)

	query := fmt.Sprintf(
		"SELECT %s FROM maintenance_requests m JOIN properties p ON p.id = m.property_id%s ORDER BY m.reported_at DESC LIMIT $%d",
		maintenanceColumns, where, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent maintenance requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *postgresMaintenanceRepository) Update(ctx context.Context, m *maintenance.Request) error {
	query := `
		UPDATE maintenance_requests
		SET status = $2, priority = $3, completed_at = $4, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, m.ID, m.Status, m.Priority, m.CompletedAt)
	if err != nil {
		return fmt.Errorf("update maintenance request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return maintenance.ErrRequestNotFound
	}
	return nil
}

func (r *postgresMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM maintenance_requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete maintenance request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return maintenance.ErrRequestNotFound
	}
	return nil
}

func buildFilter(f maintenance.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	add := func(format string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if f.TenantID != nil {
		add("m.tenant_id = $%d", *f.TenantID)
	}
	if f.LandlordID != nil {
		add("p.owner_id = $%d", *f.LandlordID)
	}
	if f.PropertyID != nil {
		add("m.property_id = $%d", *f.PropertyID)
	}
	if f.Status != "" {
		add("m.status = $%d", f.Status)
	}
	if f.Priority != "" {
		add("m.priority = $%d", f.Priority)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanRequests(rows pgx.Rows) ([]maintenance.Request, error) {
	items := []maintenance.Request{}
	for rows.Next() {
		var m maintenance.Request
		if err := rows.Scan(
			&m.ID, &m.PropertyID, &m.TenantID, &m.Title, &m.Description,
			&m.Priority, &m.Status, &m.Images, &m.ReportedAt, &m.CompletedAt,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan maintenance request: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
