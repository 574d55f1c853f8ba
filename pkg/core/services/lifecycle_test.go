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

func TestPublishSchedule_RecordsViolationSnapshot(t *testing.T) {
	store := draftStore()
	// Night is outside alice's preferences, so the draft carries a violation
	store.people = []db.Person{dbPerson("alice", "Early")}
	store.assignments = []db.Assignment{
		{ScheduleID: "sched-1", PersonID: "alice", Date: "2025-06-02", Kind: "Night"},
	}

	violations, err := PublishSchedule(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-1")
	require.NoError(t, err)

	require.Len(t, violations, 1)
	assert.Equal(t, model.CodePreferenceMismatch, violations[0].Code)

	require.Len(t, store.statusUpdates, 1)
	update := store.statusUpdates[0]
	assert.Equal(t, "sched-1", update.scheduleID)
	assert.Equal(t, "published", update.status)
	assert.Contains(t, update.violations, "PREFERENCE_MISMATCH")
}

func TestPublishSchedule_CleanGridRecordsEmptySnapshot(t *testing.T) {
	store := draftStore()

	violations, err := PublishSchedule(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-1")
	require.NoError(t, err)

	assert.Empty(t, violations)
	require.Len(t, store.statusUpdates, 1)
	assert.Equal(t, "[]", store.statusUpdates[0].violations)
}

func TestPublishSchedule_OnlyDraftsCanPublish(t *testing.T) {
	for _, status := range []string{"published", "archived", "deleted"} {
		store := draftStore()
		store.schedule.Status = status

		_, err := PublishSchedule(context.Background(), store, zeroCfg(), zap.NewNop(), "sched-1")

		assert.ErrorIs(t, err, roster.ErrScheduleImmutable, "status %s", status)
		assert.Empty(t, store.statusUpdates)
	}
}

func TestArchiveSchedule_KeepsStoredSnapshot(t *testing.T) {
	store := draftStore()
	store.schedule.Status = "published"
	store.schedule.Violations = `[{"code":"COVERAGE_SHORTFALL"}]`

	err := ArchiveSchedule(context.Background(), store, zap.NewNop(), "sched-1")
	require.NoError(t, err)

	require.Len(t, store.statusUpdates, 1)
	assert.Equal(t, "archived", store.statusUpdates[0].status)
	assert.Equal(t, `[{"code":"COVERAGE_SHORTFALL"}]`, store.statusUpdates[0].violations)
}

func TestArchiveSchedule_OnlyPublishedCanArchive(t *testing.T) {
	store := draftStore()

	err := ArchiveSchedule(context.Background(), store, zap.NewNop(), "sched-1")

	assert.ErrorIs(t, err, roster.ErrScheduleImmutable)
	assert.Empty(t, store.statusUpdates)
}

func TestDeleteSchedule_OnlyDraftsCanDelete(t *testing.T) {
	store := draftStore()

	err := DeleteSchedule(context.Background(), store, zap.NewNop(), "sched-1")
	require.NoError(t, err)
	require.Len(t, store.statusUpdates, 1)
	assert.Equal(t, "deleted", store.statusUpdates[0].status)

	published := draftStore()
	published.schedule.Status = "published"
	err = DeleteSchedule(context.Background(), published, zap.NewNop(), "sched-1")
	assert.ErrorIs(t, err, roster.ErrScheduleImmutable)
	assert.Empty(t, published.statusUpdates)
}
