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

// ValidateScheduleStore defines the database operations needed for
// on-demand revalidation
type ValidateScheduleStore interface {
	GetSchedule(ctx context.Context, scheduleID string) (*db.Schedule, []db.Assignment, error)
	GetPeople(ctx context.Context) ([]db.Person, error)
	GetUnavailability(ctx context.Context) ([]db.Unavailability, error)
}

// ValidateSchedule re-runs full-grid validation for display purposes
func ValidateSchedule(ctx context.Context, store ValidateScheduleStore, cfg *config.Config, logger *zap.Logger, scheduleID string) ([]model.ValidationError, error) {
	schedule, assignments, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

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

	logger.Info("Schedule validated",
		zap.String("schedule_id", scheduleID),
		zap.String("month", schedule.Month),
		zap.Int("violations", len(violations)))

	return violations, nil
}
