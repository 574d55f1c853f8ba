package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbarrett/shiftroster/pkg/core/roster"
	"github.com/mbarrett/shiftroster/pkg/db"
)

func fullWeekdayStaff() []db.Person {
	prefs := []string{"Early", "Morning", "Late", "Night"}
	return []db.Person{
		dbPerson("alice", prefs...),
		dbPerson("bob", prefs...),
		dbPerson("carol", prefs...),
		dbPerson("dave", prefs...),
	}
}

func TestGenerateSchedule_SavesDraft(t *testing.T) {
	store := &mockStore{people: fullWeekdayStaff()}
	locks := NewMonthLocks()

	result, err := GenerateSchedule(context.Background(), store, locks, weekdayCfg(), zap.NewNop(), "2025-06", "", false)
	require.NoError(t, err)

	assert.Equal(t, roster.OutcomeSuccess, result.Result.Outcome)
	assert.True(t, result.Saved)
	assert.NotEmpty(t, result.ScheduleID)

	require.NotNil(t, store.insertedSchedule)
	assert.Equal(t, result.ScheduleID, store.insertedSchedule.ID)
	assert.Equal(t, "2025-06", store.insertedSchedule.Month)
	assert.Equal(t, "draft", store.insertedSchedule.Status)
	assert.Equal(t, "[]", store.insertedSchedule.Violations)

	// Every cell of the 4-person June grid is persisted
	assert.Len(t, store.insertedAssignments, 4*30)
}

func TestGenerateSchedule_DryRunDoesNotSave(t *testing.T) {
	store := &mockStore{people: fullWeekdayStaff()}

	result, err := GenerateSchedule(context.Background(), store, NewMonthLocks(), weekdayCfg(), zap.NewNop(), "2025-06", "", true)
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Nil(t, store.insertedSchedule)
}

func TestGenerateSchedule_RejectsConcurrentMonth(t *testing.T) {
	store := &mockStore{people: fullWeekdayStaff()}
	locks := NewMonthLocks()
	require.True(t, locks.TryAcquire("2025-06"))

	_, err := GenerateSchedule(context.Background(), store, locks, weekdayCfg(), zap.NewNop(), "2025-06", "", false)
	assert.ErrorIs(t, err, roster.ErrConcurrentGeneration)

	// A different month is unaffected
	_, err = GenerateSchedule(context.Background(), store, locks, weekdayCfg(), zap.NewNop(), "2025-07", "", true)
	assert.NoError(t, err)
}

func TestGenerateSchedule_ReleasesLockAfterRun(t *testing.T) {
	store := &mockStore{people: fullWeekdayStaff()}
	locks := NewMonthLocks()

	_, err := GenerateSchedule(context.Background(), store, locks, weekdayCfg(), zap.NewNop(), "2025-06", "", true)
	require.NoError(t, err)

	assert.True(t, locks.TryAcquire("2025-06"))
}

func TestGenerateSchedule_WithRelaxationOption(t *testing.T) {
	// Nobody takes Night, so a plain run is partial and the relaxed run clean
	prefs := []string{"Early", "Morning", "Late"}
	store := &mockStore{people: []db.Person{
		dbPerson("alice", prefs...),
		dbPerson("bob", prefs...),
		dbPerson("carol", prefs...),
	}}

	plain, err := GenerateSchedule(context.Background(), store, NewMonthLocks(), weekdayCfg(), zap.NewNop(), "2025-06", "", true)
	require.NoError(t, err)
	assert.Equal(t, roster.OutcomePartial, plain.Result.Outcome)

	relaxed, err := GenerateSchedule(context.Background(), store, NewMonthLocks(), weekdayCfg(), zap.NewNop(), "2025-06", "relax_coverage:Night", true)
	require.NoError(t, err)
	assert.Equal(t, roster.OutcomeSuccess, relaxed.Result.Outcome)
}

func TestGenerateSchedule_RegeneratesOverExistingDraft(t *testing.T) {
	store := &mockStore{
		people:   fullWeekdayStaff(),
		schedule: &db.Schedule{ID: "old-draft", Month: "2025-06", Status: "draft"},
	}

	result, err := GenerateSchedule(context.Background(), store, NewMonthLocks(), weekdayCfg(), zap.NewNop(), "2025-06", "", false)
	require.NoError(t, err)

	assert.True(t, result.Saved)
	assert.NotEqual(t, "old-draft", result.ScheduleID)
}

func TestGenerateSchedule_SkipsInactivePeople(t *testing.T) {
	people := fullWeekdayStaff()
	retired := dbPerson("zoe", "Early")
	retired.Active = false
	store := &mockStore{people: append(people, retired)}

	result, err := GenerateSchedule(context.Background(), store, NewMonthLocks(), weekdayCfg(), zap.NewNop(), "2025-06", "", true)
	require.NoError(t, err)

	require.NotNil(t, result.Result.Grid)
	assert.NotContains(t, result.Result.Grid.Assignments, "zoe")
}

func TestGenerateSchedule_StoreErrorPropagates(t *testing.T) {
	store := &mockStore{peopleErr: errors.New("connection refused")}
	locks := NewMonthLocks()

	_, err := GenerateSchedule(context.Background(), store, locks, weekdayCfg(), zap.NewNop(), "2025-06", "", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	// The lock is released on the error path too
	assert.True(t, locks.TryAcquire("2025-06"))
}

func TestGenerateSchedule_BadMonthIsMalformed(t *testing.T) {
	store := &mockStore{people: fullWeekdayStaff()}

	_, err := GenerateSchedule(context.Background(), store, NewMonthLocks(), weekdayCfg(), zap.NewNop(), "June 2025", "", false)
	assert.ErrorIs(t, err, roster.ErrMalformedInput)
}

func TestGenerateSchedule_UnknownOptionIsMalformed(t *testing.T) {
	store := &mockStore{people: fullWeekdayStaff()}

	_, err := GenerateSchedule(context.Background(), store, NewMonthLocks(), weekdayCfg(), zap.NewNop(), "2025-06", "no_such_option", false)
	assert.ErrorIs(t, err, roster.ErrMalformedInput)
}
