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

// ApplyShiftStore defines the database operations needed for editing a cell
type ApplyShiftStore interface {
	GetSchedule(ctx context.Context, scheduleID string) (*db.Schedule, []db.Assignment, error)
	GetPeople(ctx context.Context) ([]db.Person, error)
	GetUnavailability(ctx context.Context) ([]db.Unavailability, error)
	UpsertAssignment(ctx context.Context, assignment db.Assignment) error
}

// ApplyShiftResult contains the updated grid and the violations found in
// the affected scope (the person's week and the day's coverage)
type ApplyShiftResult struct {
	Grid       *model.ScheduleGrid
	Violations []model.ValidationError
}

// ApplyShift replaces a single cell in a draft schedule and re-validates
// just the affected scope, without a full re-generation. Edits against a
// published or archived schedule fail with ErrScheduleImmutable and leave
// the stored grid unchanged.
func ApplyShift(
	ctx context.Context,
	store ApplyShiftStore,
	cfg *config.Config,
	logger *zap.Logger,
	scheduleID, personID, date string,
	kind model.ShiftKind,
) (*ApplyShiftResult, error) {
	logger.Debug("Starting applyShift",
		zap.String("schedule_id", scheduleID),
		zap.String("person_id", personID),
		zap.String("date", date),
		zap.String("kind", string(kind)))

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

	updated, violations, err := roster.ApplyShift(grid, people, cfg.Policy(), personID, date, kind)
	if err != nil {
		return nil, err
	}

	logger.Info("Cell updated",
		zap.String("schedule_id", scheduleID),
		zap.String("person_id", personID),
		zap.String("date", date),
		zap.String("kind", string(kind)),
		zap.Int("scoped_violations", len(violations)))

	if err := store.UpsertAssignment(ctx, db.Assignment{
		ScheduleID: scheduleID,
		PersonID:   personID,
		Date:       date,
		Kind:       string(kind),
	}); err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	return &ApplyShiftResult{
		Grid:       updated,
		Violations: violations,
	}, nil
}
