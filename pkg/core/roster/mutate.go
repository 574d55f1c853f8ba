package roster

import (
	"fmt"

	"github.com/mbarrett/shiftroster/pkg/core/model"
)

// ApplyShift replaces a single cell in a draft grid and re-validates just
// the affected scope: the person's week and the day's coverage. The input
// grid is never modified; the returned grid is a new value with the one
// cell changed. Applying the same change twice yields the same grid and
// the same validation result.
//
// Editing a published or archived grid returns ErrScheduleImmutable.
// An unknown person, a date outside the month, or an unrecognized kind
// returns ErrMalformedInput.
func ApplyShift(grid *model.ScheduleGrid, people []model.Person, policy Policy, personID, date string, kind model.ShiftKind) (*model.ScheduleGrid, []model.ValidationError, error) {
	if !grid.Status.Mutable() {
		return nil, nil, fmt.Errorf("%w: schedule %s is %s", ErrScheduleImmutable, grid.ID, grid.Status)
	}

	var person *model.Person
	for i := range people {
		if people[i].ID == personID {
			person = &people[i]
			break
		}
	}
	if person == nil {
		return nil, nil, fmt.Errorf("%w: unknown person %s", ErrMalformedInput, personID)
	}

	idx := grid.DayIndex(date)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: date %s is not in schedule %s", ErrMalformedInput, date, grid.ID)
	}
	if !kind.IsValid() {
		return nil, nil, fmt.Errorf("%w: unrecognized shift kind %q", ErrMalformedInput, string(kind))
	}

	violations := ValidateAssignment(person, date, kind, grid, policy)

	updated := grid.Clone()
	updated.SetKind(personID, idx, kind)

	return updated, violations, nil
}
