package model

import (
	"fmt"
	"time"
)

// Holiday represents a single observed holiday date.
// A federal holiday applies to everyone; a state-scoped holiday applies
// only to people whose State matches one of States.
type Holiday struct {
	Name    string
	Date    string // DateFormat
	Federal bool
	States  []string
}

// AppliesTo returns true if the holiday applies to a person in the given state
func (h Holiday) AppliesTo(state string) bool {
	if h.Federal {
		return true
	}
	for _, s := range h.States {
		if s == state {
			return true
		}
	}
	return false
}

// CalendarDay represents one day of the schedule month
type CalendarDay struct {
	Date      string // DateFormat
	Weekday   time.Weekday
	IsWeekend bool
	Holidays  []Holiday
}

// HolidayFor returns the first holiday on this day applying to the given
// state, or nil if the day is an ordinary working day for that state
func (d CalendarDay) HolidayFor(state string) *Holiday {
	for i := range d.Holidays {
		if d.Holidays[i].AppliesTo(state) {
			return &d.Holidays[i]
		}
	}
	return nil
}

// BuildMonth constructs the ordered day sequence for a calendar month,
// attaching any holidays that fall inside it
func BuildMonth(year int, month time.Month, holidays []Holiday) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	holidaysByDate := make(map[string][]Holiday)
	for _, h := range holidays {
		holidaysByDate[h.Date] = append(holidaysByDate[h.Date], h)
	}

	days := make([]CalendarDay, daysInMonth)
	for i := 0; i < daysInMonth; i++ {
		date := first.AddDate(0, 0, i)
		dateStr := date.Format(DateFormat)
		weekday := date.Weekday()
		days[i] = CalendarDay{
			Date:      dateStr,
			Weekday:   weekday,
			IsWeekend: weekday == time.Saturday || weekday == time.Sunday,
			Holidays:  holidaysByDate[dateStr],
		}
	}

	return days
}

// ParseMonth parses a "YYYY-MM" month key
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// MonthKey formats a year and month as the canonical "YYYY-MM" key
func MonthKey(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
