package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbarrett/shiftroster/pkg/db"
)

func TestListPeople_SortedByName(t *testing.T) {
	zed := db.Person{ID: "p1", FirstName: "Zed", LastName: "Young", Tier: "Lead", State: "CA", Active: true, WeekdayPrefs: []string{"Early"}}
	amy := db.Person{ID: "p2", FirstName: "Amy", LastName: "Abbot", Tier: "Junior", State: "CA", Active: true, WeekdayPrefs: []string{"Late"}}
	ann := db.Person{ID: "p3", FirstName: "Ann", LastName: "Abbot", Tier: "Mid", State: "CA", Active: true, WeekdayPrefs: []string{"Night"}}

	store := &mockStore{people: []db.Person{zed, ann, amy}}

	people, err := ListPeople(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, people, 3)
	assert.Equal(t, "Amy Abbot", people[0].FullName())
	assert.Equal(t, "Ann Abbot", people[1].FullName())
	assert.Equal(t, "Zed Young", people[2].FullName())
}

func TestListPeople_ExcludesInactive(t *testing.T) {
	active := dbPerson("alice", "Early")
	retired := dbPerson("zoe", "Early")
	retired.Active = false

	store := &mockStore{people: []db.Person{active, retired}}

	people, err := ListPeople(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, people, 1)
	assert.Equal(t, "alice", people[0].ID)
}

func TestListPeople_AttachesUnavailability(t *testing.T) {
	store := &mockStore{
		people: []db.Person{dbPerson("alice", "Early")},
		unavailability: []db.Unavailability{
			{ID: "u1", PersonID: "alice", Date: "2025-06-10", Reason: "vacation"},
		},
	}

	people, err := ListPeople(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, people, 1)
	assert.True(t, people[0].IsUnavailable("2025-06-10"))
}
