package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mbarrett/shiftroster/pkg/core/model"
	"github.com/mbarrett/shiftroster/pkg/db"
)

// GetSchedule retrieves a schedule and its assignment cells
func (d *DB) GetSchedule(ctx context.Context, scheduleID string) (*db.Schedule, []db.Assignment, error) {
	var s db.Schedule
	err := d.pool.QueryRow(ctx, `
		SELECT id, month, status, violations, created_at, published_at, archived_at
		FROM schedules
		WHERE id = $1
	`, scheduleID).Scan(&s.ID, &s.Month, &s.Status, &s.Violations, &s.CreatedAt, &s.PublishedAt, &s.ArchivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("schedule not found: %s", scheduleID)
		}
		return nil, nil, fmt.Errorf("failed to query schedule: %w", err)
	}

	rows, err := d.pool.Query(ctx, `
		SELECT schedule_id, person_id, date, kind
		FROM assignments
		WHERE schedule_id = $1
	`, scheduleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var date time.Time
		if err := rows.Scan(&a.ScheduleID, &a.PersonID, &date, &a.Kind); err != nil {
			return nil, nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Date = date.Format(model.DateFormat)
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return &s, assignments, nil
}

// GetScheduleByMonth retrieves the most recent non-deleted schedule for a month
func (d *DB) GetScheduleByMonth(ctx context.Context, month string) (*db.Schedule, error) {
	var s db.Schedule
	err := d.pool.QueryRow(ctx, `
		SELECT id, month, status, violations, created_at, published_at, archived_at
		FROM schedules
		WHERE month = $1 AND status != 'deleted'
		ORDER BY created_at DESC
		LIMIT 1
	`, month).Scan(&s.ID, &s.Month, &s.Status, &s.Violations, &s.CreatedAt, &s.PublishedAt, &s.ArchivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query schedule for month %s: %w", month, err)
	}
	return &s, nil
}

// InsertSchedule inserts a schedule and its assignment cells in one transaction
func (d *DB) InsertSchedule(ctx context.Context, schedule *db.Schedule, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedules (id, month, status, violations)
		VALUES ($1, $2, $3, $4)
	`, schedule.ID, schedule.Month, schedule.Status, schedule.Violations)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}

	for _, a := range assignments {
		_, err = tx.Exec(ctx, `
			INSERT INTO assignments (schedule_id, person_id, date, kind)
			VALUES ($1, $2, $3, $4)
		`, a.ScheduleID, a.PersonID, a.Date, a.Kind)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schedule insert: %w", err)
	}
	return nil
}

// UpdateScheduleStatus updates a schedule's lifecycle status and records the
// violation snapshot computed at the transition
func (d *DB) UpdateScheduleStatus(ctx context.Context, scheduleID, status, violations string) error {
	var timestampColumn string
	switch status {
	case string(model.StatusPublished):
		timestampColumn = "published_at = NOW(),"
	case string(model.StatusArchived):
		timestampColumn = "archived_at = NOW(),"
	}

	query := fmt.Sprintf(`
		UPDATE schedules
		SET %s status = $2, violations = $3
		WHERE id = $1
	`, timestampColumn)

	tag, err := d.pool.Exec(ctx, query, scheduleID, status, violations)
	if err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("schedule not found: %s", scheduleID)
	}
	return nil
}

// UpsertAssignment writes a single grid cell
func (d *DB) UpsertAssignment(ctx context.Context, a db.Assignment) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO assignments (schedule_id, person_id, date, kind)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (schedule_id, person_id, date) DO UPDATE SET kind = EXCLUDED.kind
	`, a.ScheduleID, a.PersonID, a.Date, a.Kind)
	if err != nil {
		return fmt.Errorf("failed to upsert assignment: %w", err)
	}
	return nil
}
