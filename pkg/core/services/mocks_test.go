package services

import (
	"context"
	"fmt"

	"github.com/mbarrett/shiftroster/internal/config"
	"github.com/mbarrett/shiftroster/pkg/db"
)

// mockStore is an in-memory stand-in for the postgres store, recording
// every write so tests can assert on persistence
type mockStore struct {
	people         []db.Person
	unavailability []db.Unavailability
	schedule       *db.Schedule
	assignments    []db.Assignment

	peopleErr error

	insertedSchedule    *db.Schedule
	insertedAssignments []db.Assignment
	upserted            []db.Assignment
	statusUpdates       []statusUpdate
}

type statusUpdate struct {
	scheduleID string
	status     string
	violations string
}

func (m *mockStore) GetPeople(ctx context.Context) ([]db.Person, error) {
	if m.peopleErr != nil {
		return nil, m.peopleErr
	}
	return m.people, nil
}

func (m *mockStore) GetUnavailability(ctx context.Context) ([]db.Unavailability, error) {
	return m.unavailability, nil
}

func (m *mockStore) GetScheduleByMonth(ctx context.Context, month string) (*db.Schedule, error) {
	if m.schedule != nil && m.schedule.Month == month {
		return m.schedule, nil
	}
	return nil, nil
}

func (m *mockStore) GetSchedule(ctx context.Context, scheduleID string) (*db.Schedule, []db.Assignment, error) {
	if m.schedule == nil || m.schedule.ID != scheduleID {
		return nil, nil, fmt.Errorf("schedule %s not found", scheduleID)
	}
	return m.schedule, m.assignments, nil
}

func (m *mockStore) InsertSchedule(ctx context.Context, schedule *db.Schedule, assignments []db.Assignment) error {
	m.insertedSchedule = schedule
	m.insertedAssignments = assignments
	return nil
}

func (m *mockStore) UpsertAssignment(ctx context.Context, assignment db.Assignment) error {
	m.upserted = append(m.upserted, assignment)
	return nil
}

func (m *mockStore) UpdateScheduleStatus(ctx context.Context, scheduleID, status, violations string) error {
	m.statusUpdates = append(m.statusUpdates, statusUpdate{scheduleID, status, violations})
	return nil
}

func dbPerson(id string, weekdayPrefs ...string) db.Person {
	return db.Person{
		ID:           id,
		FirstName:    "Test",
		LastName:     id,
		Tier:         "Mid",
		State:        "CA",
		Active:       true,
		WeekdayPrefs: weekdayPrefs,
	}
}

// weekdayCfg requires one person per weekday shift kind and none on weekends
func weekdayCfg() *config.Config {
	return &config.Config{
		DatabaseURL: "postgres://test",
		CoverageMinimums: map[string]int{
			"Early":   1,
			"Morning": 1,
			"Late":    1,
			"Night":   1,
		},
	}
}

// zeroCfg requires no coverage at all
func zeroCfg() *config.Config {
	return &config.Config{DatabaseURL: "postgres://test"}
}
