package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbarrett/shiftroster/pkg/core/model"
	"github.com/mbarrett/shiftroster/pkg/core/roster"
	"github.com/mbarrett/shiftroster/pkg/db"
)

func draftStore() *mockStore {
	return &mockStore{
		people: []db.Person{dbPerson("alice", "Early", "Night")},
		schedule: &db.Schedule{
			ID:     "sched-1",
			Month:  "2025-06",
			Status: "draft",
		},
		assignments: []db.Assignment{
			{ScheduleID: "sched-1", PersonID: "alice", Date: "2025-06-02", Kind: "OFF"},
		},
	}
}

func TestApplyShift_PersistsTheEditedCell(t *testing.T) {
	store := draftStore()

	result, err := ApplyShift(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-1", "alice", "2025-06-02", model.ShiftEarly)
	require.NoError(t, err)

	assert.Empty(t, result.Violations)
	assert.Equal(t, model.ShiftEarly, result.Grid.KindAt("alice", "2025-06-02"))

	require.Len(t, store.upserted, 1)
	assert.Equal(t, db.Assignment{
		ScheduleID: "sched-1",
		PersonID:   "alice",
		Date:       "2025-06-02",
		Kind:       "Early",
	}, store.upserted[0])
}

func TestApplyShift_ReturnsScopedViolations(t *testing.T) {
	store := draftStore()
	store.unavailability = []db.Unavailability{
		{ID: "u1", PersonID: "alice", Date: "2025-06-02", Reason: "vacation"},
	}

	result, err := ApplyShift(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-1", "alice", "2025-06-02", model.ShiftEarly)
	require.NoError(t, err)

	require.NotEmpty(t, result.Violations)
	assert.Equal(t, model.CodeUnavailabilityConflict, result.Violations[0].Code)

	// The edit still lands; violations are advisory
	require.Len(t, store.upserted, 1)
}

func TestApplyShift_PublishedScheduleIsImmutable(t *testing.T) {
	store := draftStore()
	store.schedule.Status = "published"

	_, err := ApplyShift(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-1", "alice", "2025-06-02", model.ShiftEarly)

	assert.ErrorIs(t, err, roster.ErrScheduleImmutable)
	assert.Empty(t, store.upserted)
}

func TestApplyShift_UnknownScheduleFails(t *testing.T) {
	store := draftStore()

	_, err := ApplyShift(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-999", "alice", "2025-06-02", model.ShiftEarly)

	assert.Error(t, err)
	assert.Empty(t, store.upserted)
}

func TestApplyShift_MalformedEditIsNotPersisted(t *testing.T) {
	store := draftStore()

	_, err := ApplyShift(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-1", "alice", "2025-07-02", model.ShiftEarly)
	assert.ErrorIs(t, err, roster.ErrMalformedInput)

	_, err = ApplyShift(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-1", "ghost", "2025-06-02", model.ShiftEarly)
	assert.ErrorIs(t, err, roster.ErrMalformedInput)

	assert.Empty(t, store.upserted)
}
