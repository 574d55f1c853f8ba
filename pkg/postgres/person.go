package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mbarrett/shiftroster/pkg/core/model"
	"github.com/mbarrett/shiftroster/pkg/db"
)

// GetPeople retrieves all staff records
func (d *DB) GetPeople(ctx context.Context) ([]db.Person, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, tier, is_floater, in_training, state, active, weekday_prefs, weekend_prefs
		FROM people
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []db.Person
	for rows.Next() {
		var p db.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Tier, &p.IsFloater, &p.InTraining, &p.State, &p.Active, &p.WeekdayPrefs, &p.WeekendPrefs); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// GetUnavailability retrieves all unavailability records
func (d *DB) GetUnavailability(ctx context.Context) ([]db.Unavailability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, person_id, date, reason
		FROM person_unavailability
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unavailability: %w", err)
	}
	defer rows.Close()

	var records []db.Unavailability
	for rows.Next() {
		var u db.Unavailability
		var date time.Time
		if err := rows.Scan(&u.ID, &u.PersonID, &date, &u.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan unavailability: %w", err)
		}
		u.Date = date.Format(model.DateFormat)
		records = append(records, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unavailability: %w", err)
	}

	return records, nil
}
