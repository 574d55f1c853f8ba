package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mbarrett/shiftroster/pkg/core/model"
	"github.com/mbarrett/shiftroster/pkg/db"
)

// ListPeopleStore defines the database operations needed for listing the roster
type ListPeopleStore interface {
	GetPeople(ctx context.Context) ([]db.Person, error)
	GetUnavailability(ctx context.Context) ([]db.Unavailability, error)
}

// ListPeople returns the active schedulable population sorted by name
func ListPeople(ctx context.Context, store ListPeopleStore, logger *zap.Logger) ([]model.Person, error) {
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

	sort.Slice(people, func(i, j int) bool {
		if people[i].LastName != people[j].LastName {
			return people[i].LastName < people[j].LastName
		}
		return people[i].FirstName < people[j].FirstName
	})

	logger.Debug("Listed people", zap.Int("count", len(people)))
	return people, nil
}
