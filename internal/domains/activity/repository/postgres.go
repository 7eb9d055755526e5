package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/domains/activity"
)

type postgresActivityRepository struct {
	db *pgxpool.Pool
}

func NewPostgresActivityRepository(db *pgxpool.Pool) activity.Repository {
	return &postgresActivityRepository{db: db}
}

func (r *postgresActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO activities (id, user_id, action, message, entity_id, entity_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		a.ID, a.UserID, a.Action, a.Message, a.EntityID, a.EntityType, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *postgresActivityRepository) List(ctx context.Context, filters activity.ListFilters, page, limit int) ([]activity.Activity, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	idx := 1

	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", idx))
		args = append(args, *filters.UserID)
		idx++
	}
	if filters.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", idx))
		args = append(args, filters.Action)
		idx++
	}
	if filters.EntityType != "" {
		conditions = append(conditions, fmt.Sprintf("entity_type = $%d", idx))
		args = append(args, filters.EntityType)
		idx++
	}

	where := ""
	for i, c := range conditions {
		if i == 0 {
			where = " WHERE " + c
		} else {
			where += " AND " + c
		}
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM activities"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(
		"SELECT id, user_id, action, message, entity_id, entity_type, created_at FROM activities%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	items, err := scanActivities(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *postgresActivityRepository) ListRecent(ctx context.Context, userID *uuid.UUID, limit int) ([]activity.Activity, error) {
	query := `
		SELECT id, user_id, action, message, entity_id, entity_type, created_at
		FROM activities
		WHERE ($1::uuid IS NULL OR user_id = $1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

func scanActivities(rows pgx.Rows) ([]activity.Activity, error) {
	items := []activity.Activity{}
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Message, &a.EntityID, &a.EntityType, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
