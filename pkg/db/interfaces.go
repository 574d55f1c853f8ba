package db

import "context"

// PersonStore defines the interface for staff roster operations
type PersonStore interface {
	GetPeople(ctx context.Context) ([]Person, error)
	GetUnavailability(ctx context.Context) ([]Unavailability, error)
}

// ScheduleStore defines the interface for schedule persistence operations
type ScheduleStore interface {
	GetSchedule(ctx context.Context, scheduleID string) (*Schedule, []Assignment, error)
	GetScheduleByMonth(ctx context.Context, month string) (*Schedule, error)
	InsertSchedule(ctx context.Context, schedule *Schedule, assignments []Assignment) error
	UpdateScheduleStatus(ctx context.Context, scheduleID, status, violations string) error
	UpsertAssignment(ctx context.Context, assignment Assignment) error
}
