package services

import (
	"encoding/json"
	"fmt"

	"github.com/mbarrett/shiftroster/pkg/core/model"
	"github.com/mbarrett/shiftroster/pkg/core/roster"
	"github.com/mbarrett/shiftroster/pkg/db"
)

// buildPeople converts database staff records into domain people,
// attaching unavailability and keeping active members only
func buildPeople(records []db.Person, unavailability []db.Unavailability) ([]model.Person, error) {
	unavailByPerson := make(map[string]map[string]model.AbsenceReason)
	for _, u := range unavailability {
		reason := model.AbsenceReason(u.Reason)
		if !reason.IsValid() {
			return nil, fmt.Errorf("%w: unknown absence reason %q for person %s", roster.ErrMalformedInput, u.Reason, u.PersonID)
		}
		if unavailByPerson[u.PersonID] == nil {
			unavailByPerson[u.PersonID] = make(map[string]model.AbsenceReason)
		}
		unavailByPerson[u.PersonID][u.Date] = reason
	}

	var people []model.Person
	for _, rec := range records {
		if !rec.Active {
			continue
		}

		weekday, err := parseKinds(rec.WeekdayPrefs, false)
		if err != nil {
			return nil, fmt.Errorf("%w: person %s: %v", roster.ErrMalformedInput, rec.ID, err)
		}
		weekend, err := parseKinds(rec.WeekendPrefs, true)
		if err != nil {
			return nil, fmt.Errorf("%w: person %s: %v", roster.ErrMalformedInput, rec.ID, err)
		}

		unavailable := unavailByPerson[rec.ID]
		if unavailable == nil {
			unavailable = make(map[string]model.AbsenceReason)
		}

		people = append(people, model.Person{
			ID:         rec.ID,
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			Tier:       model.Tier(rec.Tier),
			IsFloater:  rec.IsFloater,
			InTraining: rec.InTraining,
			State:      rec.State,
			Preferences: model.Preferences{
				Weekday: weekday,
				Weekend: weekend,
			},
			UnavailableDates: unavailable,
		})
	}

	return people, nil
}

// parseKinds converts stored kind names into shift kinds, checking they
// belong to the expected weekday or weekend subset
func parseKinds(names []string, weekend bool) ([]model.ShiftKind, error) {
	var kinds []model.ShiftKind
	for _, name := range names {
		kind := model.ShiftKind(name)
		if !kind.IsWork() {
			return nil, fmt.Errorf("unknown shift kind %q in preferences", name)
		}
		if kind.IsWeekendKind() != weekend {
			return nil, fmt.Errorf("shift kind %s is in the wrong preference subset", kind)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// buildGrid reconstructs an in-memory grid from a schedule record and its
// assignment rows
func buildGrid(schedule *db.Schedule, assignments []db.Assignment, people []model.Person, holidays []model.Holiday) (*model.ScheduleGrid, error) {
	year, month, err := model.ParseMonth(schedule.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", roster.ErrMalformedInput, err)
	}

	grid := &model.ScheduleGrid{
		ID:          schedule.ID,
		Year:        year,
		Month:       month,
		Status:      model.ScheduleStatus(schedule.Status),
		Days:        model.BuildMonth(year, month, holidays),
		Assignments: make(map[string][]model.ShiftKind, len(people)),
	}

	for i := range people {
		grid.Assignments[people[i].ID] = make([]model.ShiftKind, len(grid.Days))
	}

	for _, a := range assignments {
		idx := grid.DayIndex(a.Date)
		if idx < 0 {
			return nil, fmt.Errorf("%w: assignment date %s outside schedule month %s", roster.ErrMalformedInput, a.Date, schedule.Month)
		}
		row, ok := grid.Assignments[a.PersonID]
		if !ok {
			// A person may have left the roster since generation; keep
			// their row so the grid stays structurally complete
			row = make([]model.ShiftKind, len(grid.Days))
			grid.Assignments[a.PersonID] = row
		}
		row[idx] = model.ShiftKind(a.Kind)
	}

	return grid, nil
}

// gridAssignments flattens a grid into database assignment rows
func gridAssignments(grid *model.ScheduleGrid) []db.Assignment {
	var assignments []db.Assignment
	for personID, row := range grid.Assignments {
		for i, kind := range row {
			if kind == model.ShiftNone {
				continue
			}
			assignments = append(assignments, db.Assignment{
				ScheduleID: grid.ID,
				PersonID:   personID,
				Date:       grid.Days[i].Date,
				Kind:       string(kind),
			})
		}
	}
	return assignments
}

// marshalViolations encodes the violation snapshot stored with a schedule
func marshalViolations(violations []model.ValidationError) (string, error) {
	if violations == nil {
		violations = []model.ValidationError{}
	}
	data, err := json.Marshal(violations)
	if err != nil {
		return "", fmt.Errorf("failed to marshal violations: %w", err)
	}
	return string(data), nil
}
