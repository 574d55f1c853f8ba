package roster

import (
	"fmt"
	"sort"

	"github.com/mbarrett/shiftroster/pkg/core/model"
)

// Validate checks an entire grid against all applicable rules and returns
// the structured violation list. It is purely functional over its inputs:
// no I/O, no logging, and it never fails for data it can interpret -
// unrecognized kinds or unknown people are reported as MALFORMED_INPUT
// violations rather than errors.
//
// Rules are checked in fixed precedence per cell: unavailability,
// preference eligibility, training pattern, then holiday consistency.
// Floater quota violations follow per person, coverage shortfalls per day.
func Validate(grid *model.ScheduleGrid, people []model.Person, policy Policy) []model.ValidationError {
	var violations []model.ValidationError

	peopleByID := make(map[string]*model.Person, len(people))
	for i := range people {
		peopleByID[people[i].ID] = &people[i]
	}

	// Iterate people in a stable order so results are reproducible
	personIDs := make([]string, 0, len(grid.Assignments))
	for personID := range grid.Assignments {
		personIDs = append(personIDs, personID)
	}
	sort.Strings(personIDs)

	for _, personID := range personIDs {
		row := grid.Assignments[personID]

		person, ok := peopleByID[personID]
		if !ok {
			violations = append(violations, model.ValidationError{
				Code:     model.CodeMalformedInput,
				Message:  fmt.Sprintf("assignment row for unknown person %s", personID),
				PersonID: personID,
			})
			continue
		}

		if len(row) != len(grid.Days) {
			violations = append(violations, model.ValidationError{
				Code:     model.CodeMalformedInput,
				Message:  fmt.Sprintf("assignment row has %d cells but month has %d days", len(row), len(grid.Days)),
				PersonID: personID,
			})
			continue
		}

		for i, kind := range row {
			violations = append(violations, cellViolations(person, grid.Days[i], kind, policy)...)
		}

		violations = append(violations, floaterViolations(person, row, grid.Days, policy)...)
	}

	violations = append(violations, coverageViolations(grid, policy)...)

	return violations
}

// ValidateAssignment checks one proposed cell change, scoped to the cells it
// could affect: the same person's Mon-Sun week and the same day's coverage.
// The grid itself is not modified.
func ValidateAssignment(person *model.Person, date string, proposed model.ShiftKind, grid *model.ScheduleGrid, policy Policy) []model.ValidationError {
	idx := grid.DayIndex(date)
	if idx < 0 {
		return []model.ValidationError{{
			Code:     model.CodeMalformedInput,
			Message:  fmt.Sprintf("date %s is not in the schedule month", date),
			PersonID: person.ID,
			Date:     date,
		}}
	}
	if !proposed.IsValid() {
		return []model.ValidationError{{
			Code:     model.CodeMalformedInput,
			Message:  fmt.Sprintf("unrecognized shift kind %q", string(proposed)),
			PersonID: person.ID,
			Date:     date,
		}}
	}

	scratch := grid.Clone()
	scratch.SetKind(person.ID, idx, proposed)
	row := scratch.Assignments[person.ID]

	var violations []model.ValidationError

	// The person's Mon-Sun week containing the edited day
	start, end := weekBounds(idx, grid.Days)
	for i := start; i < end; i++ {
		violations = append(violations, cellViolations(person, grid.Days[i], row[i], policy)...)
	}

	violations = append(violations, floaterViolations(person, row, grid.Days, policy)...)
	violations = append(violations, dayCoverageViolations(scratch, idx, policy)...)

	return violations
}

// weekBounds returns the [start, end) day-index range of the Mon-Sun week
// containing the given index, clamped to the month
func weekBounds(idx int, days []model.CalendarDay) (int, int) {
	offset := (int(days[idx].Weekday) + 6) % 7 // Monday = 0
	start := idx - offset
	if start < 0 {
		start = 0
	}
	end := start + 7
	if end > len(days) {
		end = len(days)
	}
	return start, end
}

// cellViolations checks a single cell against the per-cell rules in
// precedence order: unavailability, preference, training, holiday
func cellViolations(person *model.Person, day model.CalendarDay, kind model.ShiftKind, policy Policy) []model.ValidationError {
	var violations []model.ValidationError

	if !kind.IsValid() {
		return []model.ValidationError{{
			Code:     model.CodeMalformedInput,
			Message:  fmt.Sprintf("unrecognized shift kind %q", string(kind)),
			PersonID: person.ID,
			Date:     day.Date,
		}}
	}
	if kind.IsWork() && kind.IsWeekendKind() != day.IsWeekend {
		violations = append(violations, model.ValidationError{
			Code:     model.CodeMalformedInput,
			Message:  fmt.Sprintf("%s is not schedulable on a %s", kind, day.Weekday),
			PersonID: person.ID,
			Date:     day.Date,
		})
	}

	// Rule 1: unavailable dates are hard exclusions
	unavailable := person.IsUnavailable(day.Date)
	if unavailable && kind != model.ShiftUnavailable {
		violations = append(violations, model.ValidationError{
			Code:     model.CodeUnavailabilityConflict,
			Message:  fmt.Sprintf("%s is unavailable on %s (%s)", person.FullName(), day.Date, person.UnavailableDates[day.Date]),
			PersonID: person.ID,
			Date:     day.Date,
		})
	} else if !unavailable && kind == model.ShiftUnavailable {
		violations = append(violations, model.ValidationError{
			Code:     model.CodeUnavailabilityConflict,
			Message:  fmt.Sprintf("%s is marked Unavailable on %s but has no recorded absence", person.FullName(), day.Date),
			PersonID: person.ID,
			Date:     day.Date,
		})
	}

	// Rule 2: preference eligibility
	if kind.IsWork() && !person.Prefers(kind) {
		violations = append(violations, model.ValidationError{
			Code:     model.CodePreferenceMismatch,
			Message:  fmt.Sprintf("%s is not in %s's preferences", kind, person.FullName()),
			PersonID: person.ID,
			Date:     day.Date,
			Kind:     kind,
		})
	}

	// Rule 3: trainees follow a fixed Mon-Fri Training pattern with weekends off.
	// A correctly marked unavailable day is exempt.
	if person.InTraining && !(unavailable && kind == model.ShiftUnavailable) {
		expected := model.ShiftTraining
		if day.IsWeekend {
			expected = model.ShiftOff
		}
		if kind != expected {
			violations = append(violations, model.ValidationError{
				Code:     model.CodeTrainingPattern,
				Message:  fmt.Sprintf("%s is in training and must be %s on %s", person.FullName(), expected, day.Weekday),
				PersonID: person.ID,
				Date:     day.Date,
			})
		}
	}

	// Rule 6: holiday consistency, gated by policy
	if !policy.AllowHolidayStaffing && kind.IsWork() {
		if holiday := day.HolidayFor(person.State); holiday != nil {
			violations = append(violations, model.ValidationError{
				Code:     model.CodeHolidayConflict,
				Message:  fmt.Sprintf("%s is assigned %s on %s (%s)", person.FullName(), kind, holiday.Name, day.Date),
				PersonID: person.ID,
				Date:     day.Date,
			})
		}
	}

	return violations
}

// countsTowardQuota reports whether a cell counts against the floater cap
func countsTowardQuota(kind model.ShiftKind) bool {
	return kind.IsWork() || kind == model.ShiftTraining
}

// floaterViolations checks rule 4: a floater's working shifts in any rolling
// window must not exceed the policy cap. Only the first offending window is
// reported per person to keep the list actionable.
func floaterViolations(person *model.Person, row []model.ShiftKind, days []model.CalendarDay, policy Policy) []model.ValidationError {
	if !person.IsFloater {
		return nil
	}

	window := policy.floaterWindow()
	if window > len(row) {
		window = len(row)
	}
	max := policy.floaterMax()

	// Prefix sums of working cells for O(1) window counts
	sums := make([]int, len(row)+1)
	for i, kind := range row {
		sums[i+1] = sums[i]
		if countsTowardQuota(kind) {
			sums[i+1]++
		}
	}

	for i := 0; i+window <= len(row); i++ {
		count := sums[i+window] - sums[i]
		if count > max {
			return []model.ValidationError{{
				Code:     model.CodeFloaterQuota,
				Message:  fmt.Sprintf("%s is a floater with %d shifts in the %d days from %s (max %d)", person.FullName(), count, window, days[i].Date, max),
				PersonID: person.ID,
				Date:     days[i].Date,
			}}
		}
	}

	return nil
}

// coverageViolations checks rule 5 across the whole month
func coverageViolations(grid *model.ScheduleGrid, policy Policy) []model.ValidationError {
	var violations []model.ValidationError
	for idx := range grid.Days {
		violations = append(violations, dayCoverageViolations(grid, idx, policy)...)
	}
	return violations
}

// dayCoverageViolations checks rule 5 for a single day: each applicable
// working kind must have at least the configured minimum number of people.
// Shortfalls are reported per day and kind, not per person.
func dayCoverageViolations(grid *model.ScheduleGrid, dayIdx int, policy Policy) []model.ValidationError {
	day := grid.Days[dayIdx]

	counts := make(map[model.ShiftKind]int)
	for _, row := range grid.Assignments {
		if dayIdx < len(row) {
			counts[row[dayIdx]]++
		}
	}

	var violations []model.ValidationError
	for _, kind := range model.WorkKindsFor(day.IsWeekend) {
		need := policy.CoverageMin(kind)
		if need <= 0 {
			continue
		}
		if have := counts[kind]; have < need {
			violations = append(violations, model.ValidationError{
				Code:    model.CodeCoverageShortfall,
				Message: fmt.Sprintf("%s on %s (%s) has %d of %d required people", kind, day.Date, day.Weekday, have, need),
				Date:    day.Date,
				Kind:    kind,
			})
		}
	}
	return violations
}
