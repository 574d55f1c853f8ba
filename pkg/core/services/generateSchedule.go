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

// GenerateScheduleStore defines the database operations needed for
// generating a schedule
type GenerateScheduleStore interface {
	GetPeople(ctx context.Context) ([]db.Person, error)
	GetUnavailability(ctx context.Context) ([]db.Unavailability, error)
	GetScheduleByMonth(ctx context.Context, month string) (*db.Schedule, error)
	InsertSchedule(ctx context.Context, schedule *db.Schedule, assignments []db.Assignment) error
}

// GenerateScheduleResult contains the generation outcome and persistence state
type GenerateScheduleResult struct {
	ScheduleID string
	Month      string
	Result     *roster.GenerationResult
	Saved      bool
}

// GenerateSchedule runs roster generation for a month and persists the best
// grid as a new draft schedule. optionID, when non-empty, folds the named
// relaxation into the policy first (the generate-with-option flow). A second
// generation for a month already generating is rejected with
// ErrConcurrentGeneration. If dryRun is true the result is not saved.
func GenerateSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	locks *MonthLocks,
	cfg *config.Config,
	logger *zap.Logger,
	month string,
	optionID string,
	dryRun bool,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.String("month", month),
		zap.String("option", optionID),
		zap.Bool("dry_run", dryRun))

	year, monthOfYear, err := model.ParseMonth(month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", roster.ErrMalformedInput, err)
	}

	if !locks.TryAcquire(month) {
		return nil, fmt.Errorf("%w: month %s", roster.ErrConcurrentGeneration, month)
	}
	defer locks.Release(month)

	// Regenerating a month is allowed; each run produces a fresh draft.
	// Flag existing schedules so operators know which draft is which.
	if existing, err := store.GetScheduleByMonth(ctx, month); err != nil {
		return nil, fmt.Errorf("failed to check existing schedules: %w", err)
	} else if existing != nil {
		logger.Warn("A schedule already exists for this month",
			zap.String("existing_schedule_id", existing.ID),
			zap.String("existing_status", existing.Status))
	}

	logger.Debug("Fetching people")
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
	logger.Debug("Built schedulable population", zap.Int("count", len(people)))

	holidays, err := cfg.HolidaysFor(year, monthOfYear)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holiday calendar: %w", err)
	}
	logger.Debug("Resolved holidays for month", zap.Int("count", len(holidays)))

	policy := cfg.Policy()

	logger.Info("Running roster generation",
		zap.String("month", month),
		zap.Int("people", len(people)),
		zap.Int("attempts", policy.Attempts))

	var result *roster.GenerationResult
	if optionID != "" {
		result, err = roster.GenerateWithOption(ctx, people, year, monthOfYear, holidays, policy, optionID)
	} else {
		result, err = roster.Generate(ctx, people, year, monthOfYear, holidays, policy)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Generation completed",
		zap.String("outcome", string(result.Outcome)),
		zap.Int("violations", result.BestErrorCount),
		zap.Int("iterations", result.Iterations),
		zap.Int("options", len(result.Options)))

	for _, v := range result.Violations {
		logger.Warn("Validation error",
			zap.String("code", string(v.Code)),
			zap.String("person_id", v.PersonID),
			zap.String("date", v.Date),
			zap.String("message", v.Message))
	}

	out := &GenerateScheduleResult{
		Month:  month,
		Result: result,
	}

	if result.Grid == nil {
		logger.Warn("No usable grid produced - nothing to save")
		return out, nil
	}
	out.ScheduleID = result.Grid.ID

	if dryRun {
		logger.Info("Dry run mode - schedule not saved")
		return out, nil
	}

	violations, err := marshalViolations(result.Violations)
	if err != nil {
		return nil, err
	}

	schedule := &db.Schedule{
		ID:         result.Grid.ID,
		Month:      month,
		Status:     string(model.StatusDraft),
		Violations: violations,
	}

	logger.Info("Saving draft schedule", zap.String("schedule_id", schedule.ID))
	if err := store.InsertSchedule(ctx, schedule, gridAssignments(result.Grid)); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	out.Saved = true
	logger.Info("Schedule saved", zap.String("schedule_id", schedule.ID))

	return out, nil
}
