package db

import "time"

// Person represents a database staff record
type Person struct {
	ID           string
	FirstName    string
	LastName     string
	Tier         string
	IsFloater    bool
	InTraining   bool
	State        string
	Active       bool
	WeekdayPrefs []string
	WeekendPrefs []string
}

// Unavailability represents a single unavailable date for a person
type Unavailability struct {
	ID       string
	PersonID string
	Date     string // 2006-01-02
	Reason   string
}

// Schedule represents a database schedule record. Violations holds the
// JSON snapshot of the violation list recorded at the last transition.
type Schedule struct {
	ID          string
	Month       string // 2006-01
	Status      string
	Violations  string
	CreatedAt   time.Time
	PublishedAt *time.Time
	ArchivedAt  *time.Time
}

// Assignment represents one cell of a schedule grid
type Assignment struct {
	ScheduleID string
	PersonID   string
	Date       string // 2006-01-02
	Kind       string
}
