package model

import "time"

// ScheduleStatus is the lifecycle state of a schedule grid
type ScheduleStatus string

const (
	StatusDraft     ScheduleStatus = "draft"
	StatusPublished ScheduleStatus = "published"
	StatusArchived  ScheduleStatus = "archived"
	StatusDeleted   ScheduleStatus = "deleted"
)

func (s ScheduleStatus) IsValid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived || s == StatusDeleted
}

// Mutable returns true if cell edits are permitted in this status
func (s ScheduleStatus) Mutable() bool {
	return s == StatusDraft
}

// CanTransition reports whether the lifecycle permits moving to the given status.
// Legal transitions: draft->published, published->archived, draft->deleted.
func (s ScheduleStatus) CanTransition(to ScheduleStatus) bool {
	switch s {
	case StatusDraft:
		return to == StatusPublished || to == StatusDeleted
	case StatusPublished:
		return to == StatusArchived
	}
	return false
}

// ScheduleGrid is a month's assignment grid: for each person an ordered
// sequence of shift kinds aligned to the ordered day sequence.
type ScheduleGrid struct {
	ID     string
	Year   int
	Month  time.Month
	Status ScheduleStatus
	Days   []CalendarDay

	// Assignments maps person ID to a kind per day, index-aligned with Days
	Assignments map[string][]ShiftKind
}

// MonthKey returns the grid's "YYYY-MM" month key
func (g *ScheduleGrid) MonthKey() string {
	return MonthKey(g.Year, g.Month)
}

// DayIndex returns the index of the given date in the day sequence, or -1
func (g *ScheduleGrid) DayIndex(date string) int {
	for i, day := range g.Days {
		if day.Date == date {
			return i
		}
	}
	return -1
}

// KindAt returns the assigned kind for a person on a date.
// Returns ShiftNone if the person or date is not in the grid.
func (g *ScheduleGrid) KindAt(personID, date string) ShiftKind {
	idx := g.DayIndex(date)
	if idx < 0 {
		return ShiftNone
	}
	row, ok := g.Assignments[personID]
	if !ok || idx >= len(row) {
		return ShiftNone
	}
	return row[idx]
}

// SetKind sets the assigned kind for a person on a day index.
// The caller is responsible for checking mutability first.
func (g *ScheduleGrid) SetKind(personID string, dayIndex int, kind ShiftKind) {
	row, ok := g.Assignments[personID]
	if !ok {
		row = make([]ShiftKind, len(g.Days))
		g.Assignments[personID] = row
	}
	row[dayIndex] = kind
}

// Clone returns a deep copy of the grid. Published grids are immutable,
// so every change produces a new grid value through Clone.
func (g *ScheduleGrid) Clone() *ScheduleGrid {
	clone := &ScheduleGrid{
		ID:          g.ID,
		Year:        g.Year,
		Month:       g.Month,
		Status:      g.Status,
		Days:        make([]CalendarDay, len(g.Days)),
		Assignments: make(map[string][]ShiftKind, len(g.Assignments)),
	}
	copy(clone.Days, g.Days)
	for personID, row := range g.Assignments {
		rowCopy := make([]ShiftKind, len(row))
		copy(rowCopy, row)
		clone.Assignments[personID] = rowCopy
	}
	return clone
}
