package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mbarrett/shiftroster/internal/config"
	"github.com/mbarrett/shiftroster/pkg/core/model"
	"github.com/mbarrett/shiftroster/pkg/core/roster"
	"github.com/mbarrett/shiftroster/pkg/db"
)

// LifecycleStore defines the database operations needed for schedule
// lifecycle transitions
type LifecycleStore interface {
	GetSchedule(ctx context.Context, scheduleID string) (*db.Schedule, []db.Assignment, error)
	GetPeople(ctx context.Context) ([]db.Person, error)
	GetUnavailability(ctx context.Context) ([]db.Unavailability, error)
	UpdateScheduleStatus(ctx context.Context, scheduleID, status, violations string) error
}

// PublishSchedule transitions a draft schedule to published. Publishing
// never blocks on outstanding violations - whether a grid is good enough
// to publish is a human decision - but the violation list computed at the
// transition is recorded with it and returned to the caller.
func PublishSchedule(ctx context.Context, store LifecycleStore, cfg *config.Config, logger *zap.Logger, scheduleID string) ([]model.ValidationError, error) {
	schedule, assignments, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	status := model.ScheduleStatus(schedule.Status)
	if !status.CanTransition(model.StatusPublished) {
		return nil, fmt.Errorf("%w: cannot publish a %s schedule", roster.ErrScheduleImmutable, status)
	}

	// Revalidate so the recorded snapshot reflects the grid actually
	// being published, including any manual edits since generation
	records, err := store.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	unavailability, err := store.GetUnavailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unavailability: %w", err)
	}
	people, err := buildPeople(records, unavailability)
	if err != nil {
		return nil, err
	}

	year, month, err := model.ParseMonth(schedule.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", roster.ErrMalformedInput, err)
	}
	holidays, err := cfg.HolidaysFor(year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holiday calendar: %w", err)
	}

	grid, err := buildGrid(schedule, assignments, people, holidays)
	if err != nil {
		return nil, err
	}

	violations := roster.Validate(grid, people, cfg.Policy())
	snapshot, err := marshalViolations(violations)
	if err != nil {
		return nil, err
	}

	if err := store.UpdateScheduleStatus(ctx, scheduleID, string(model.StatusPublished), snapshot); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published",
		zap.String("schedule_id", scheduleID),
		zap.String("month", schedule.Month),
		zap.Int("violations", len(violations)))

	return violations, nil
}

// ArchiveSchedule transitions a published schedule to archived. Archiving
// never deletes data, only marks the schedule non-current.
func ArchiveSchedule(ctx context.Context, store LifecycleStore, logger *zap.Logger, scheduleID string) error {
	schedule, _, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}

	status := model.ScheduleStatus(schedule.Status)
	if !status.CanTransition(model.StatusArchived) {
		return fmt.Errorf("%w: cannot archive a %s schedule", roster.ErrScheduleImmutable, status)
	}

	if err := store.UpdateScheduleStatus(ctx, scheduleID, string(model.StatusArchived), schedule.Violations); err != nil {
		return fmt.Errorf("failed to archive schedule: %w", err)
	}

	logger.Info("Schedule archived", zap.String("schedule_id", scheduleID), zap.String("month", schedule.Month))
	return nil
}

// DeleteSchedule marks a draft schedule deleted. Published and archived
// schedules can never be deleted.
func DeleteSchedule(ctx context.Context, store LifecycleStore, logger *zap.Logger, scheduleID string) error {
	schedule, _, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}

	status := model.ScheduleStatus(schedule.Status)
	if !status.CanTransition(model.StatusDeleted) {
		return fmt.Errorf("%w: cannot delete a %s schedule", roster.ErrScheduleImmutable, status)
	}

	if err := store.UpdateScheduleStatus(ctx, scheduleID, string(model.StatusDeleted), schedule.Violations); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	logger.Info("Schedule deleted", zap.String("schedule_id", scheduleID), zap.String("month", schedule.Month))
	return nil
}
