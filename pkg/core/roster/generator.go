package roster

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mbarrett/shiftroster/pkg/core/model"
)

// Outcome classifies a generation result
type Outcome string

const (
	// OutcomeSuccess means the grid satisfies every rule
	OutcomeSuccess Outcome = "success"

	// OutcomePartial means a usable grid exists but carries violations;
	// the result includes relaxation options
	OutcomePartial Outcome = "partial"

	// OutcomeFailure means no usable grid could be produced at all
	OutcomeFailure Outcome = "failure"
)

// GenerationResult is the first-class return value of a generation run.
// Constraint infeasibility is never an error: a partial or failed run still
// returns the violation list and a ranked set of relaxation options.
type GenerationResult struct {
	Outcome        Outcome
	Grid           *model.ScheduleGrid // nil on OutcomeFailure
	Violations     []model.ValidationError
	BestErrorCount int
	Iterations     int
	Options        []model.GenerationOption
}

// Generate builds a full-month grid from scratch using a bounded number of
// greedy construction attempts. Each attempt fills the grid day by day,
// shift by shift; the completed grid's violation count is its score and the
// lowest-scoring attempt wins. Attempt zero is fully deterministic; later
// attempts perturb candidate order with a seed derived from the attempt
// index, so generation is reproducible for identical input.
//
// Cancelling ctx reports whatever best attempt had been found so far as a
// partial result, never an error. Only structurally invalid input returns
// ErrMalformedInput.
func Generate(ctx context.Context, people []model.Person, year int, month time.Month, holidays []model.Holiday, policy Policy) (*GenerationResult, error) {
	if err := checkPopulation(people); err != nil {
		return nil, err
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid month %d", ErrMalformedInput, month)
	}

	days := model.BuildMonth(year, month, holidays)

	var (
		bestGrid       *model.ScheduleGrid
		bestViolations []model.ValidationError
		bestScore      = -1
		iterations     int
	)

	for attempt := 0; attempt < policy.attempts(); attempt++ {
		// Honor a caller-imposed timeout between attempts, keeping the
		// best grid found so far. The first attempt always runs.
		if attempt > 0 && ctx.Err() != nil {
			break
		}

		var rng *rand.Rand
		if attempt > 0 {
			rng = rand.New(rand.NewSource(int64(attempt)))
		}

		grid := buildAttempt(people, year, month, days, policy, rng)
		violations := Validate(grid, people, policy)
		iterations++

		if bestScore < 0 || len(violations) < bestScore {
			bestGrid = grid
			bestViolations = violations
			bestScore = len(violations)
		}

		if bestScore == 0 {
			break
		}
	}

	result := &GenerationResult{
		Grid:           bestGrid,
		Violations:     bestViolations,
		BestErrorCount: bestScore,
		Iterations:     iterations,
	}

	switch {
	case bestScore == 0:
		result.Outcome = OutcomeSuccess
	case isUsable(bestGrid, days, policy):
		result.Outcome = OutcomePartial
		result.Options = DeriveOptions(bestViolations)
	default:
		result.Outcome = OutcomeFailure
		result.Grid = nil
		result.Options = DeriveOptions(bestViolations)
	}

	return result, nil
}

// GenerateWithOption reruns generation with the named relaxation folded
// into the policy
func GenerateWithOption(ctx context.Context, people []model.Person, year int, month time.Month, holidays []model.Holiday, policy Policy, optionID string) (*GenerationResult, error) {
	relaxed, err := policy.ApplyOption(optionID)
	if err != nil {
		return nil, err
	}
	return Generate(ctx, people, year, month, holidays, relaxed)
}

// checkPopulation enforces the structural invariants on the input roster:
// unique IDs, and non-empty preferences for every schedulable person
func checkPopulation(people []model.Person) error {
	seen := make(map[string]bool, len(people))
	for i := range people {
		p := &people[i]
		if p.ID == "" {
			return fmt.Errorf("%w: person %s has no ID", ErrMalformedInput, p.FullName())
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate person ID %s", ErrMalformedInput, p.ID)
		}
		seen[p.ID] = true
		if !p.InTraining && p.Preferences.Count() == 0 {
			return fmt.Errorf("%w: person %s has no shift preferences", ErrMalformedInput, p.ID)
		}
	}
	return nil
}

// buildAttempt constructs one candidate grid. Unavailable dates and
// training patterns are seeded first, then each (day, kind) slot is filled
// greedily until its coverage minimum is met.
func buildAttempt(people []model.Person, year int, month time.Month, days []model.CalendarDay, policy Policy, rng *rand.Rand) *model.ScheduleGrid {
	grid := &model.ScheduleGrid{
		ID:          uuid.New().String(),
		Year:        year,
		Month:       month,
		Status:      model.StatusDraft,
		Days:        days,
		Assignments: make(map[string][]model.ShiftKind, len(people)),
	}

	for i := range people {
		grid.Assignments[people[i].ID] = seedRow(&people[i], days)
	}

	// loads tracks working cells per person for load balancing
	loads := make(map[string]int, len(people))

	for dayIdx, day := range days {
		for _, kind := range model.WorkKindsFor(day.IsWeekend) {
			need := policy.CoverageMin(kind)
			for assigned := 0; assigned < need; assigned++ {
				candidate := pickCandidate(people, grid, dayIdx, kind, loads, policy, rng)
				if candidate == nil {
					break // shortfall surfaces as a coverage violation
				}
				grid.Assignments[candidate.ID][dayIdx] = kind
				loads[candidate.ID]++
			}
		}
	}

	// Whatever is still unassigned is a day off
	for _, row := range grid.Assignments {
		for i, kind := range row {
			if kind == model.ShiftNone {
				row[i] = model.ShiftOff
			}
		}
	}

	return grid
}

// seedRow pre-fills the cells generation must never touch: unavailable
// dates and the fixed pattern of people in training
func seedRow(person *model.Person, days []model.CalendarDay) []model.ShiftKind {
	row := make([]model.ShiftKind, len(days))
	for i, day := range days {
		switch {
		case person.IsUnavailable(day.Date):
			row[i] = model.ShiftUnavailable
		case person.InTraining && day.IsWeekend:
			row[i] = model.ShiftOff
		case person.InTraining:
			row[i] = model.ShiftTraining
		default:
			row[i] = model.ShiftNone
		}
	}
	return row
}

// pickCandidate selects the best eligible person for a (day, kind) slot.
// Eligibility follows validator rules 1-4: not unavailable, kind in
// preferences, not in training, and within the floater quota. Candidates
// are ranked most-constrained-first: fewest assigned shifts this month,
// then narrowest preference set, with person ID as the deterministic
// tiebreak. A non-nil rng replaces the ID tiebreak with a seeded shuffle.
func pickCandidate(people []model.Person, grid *model.ScheduleGrid, dayIdx int, kind model.ShiftKind, loads map[string]int, policy Policy, rng *rand.Rand) *model.Person {
	var candidates []*model.Person
	for i := range people {
		p := &people[i]
		row := grid.Assignments[p.ID]
		if row[dayIdx] != model.ShiftNone {
			continue // already assigned, unavailable, or in training
		}
		if !p.Prefers(kind) {
			continue
		}
		if p.IsFloater && !floaterCanTake(row, dayIdx, policy) {
			continue
		}
		candidates = append(candidates, p)
	}

	if len(candidates) == 0 {
		return nil
	}

	if rng != nil {
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if loads[a.ID] != loads[b.ID] {
			return loads[a.ID] < loads[b.ID]
		}
		if a.Preferences.Count() != b.Preferences.Count() {
			return a.Preferences.Count() < b.Preferences.Count()
		}
		if rng != nil {
			return false // keep the shuffled order for ties
		}
		return a.ID < b.ID
	})

	return candidates[0]
}

// floaterCanTake reports whether adding one working cell at dayIdx keeps
// every rolling window containing it within the floater cap
func floaterCanTake(row []model.ShiftKind, dayIdx int, policy Policy) bool {
	window := policy.floaterWindow()
	if window > len(row) {
		window = len(row)
	}
	max := policy.floaterMax()

	lo := dayIdx - window + 1
	if lo < 0 {
		lo = 0
	}
	for start := lo; start <= dayIdx && start+window <= len(row); start++ {
		count := 1 // the cell being considered
		for i := start; i < start+window; i++ {
			if i != dayIdx && countsTowardQuota(row[i]) {
				count++
			}
		}
		if count > max {
			return false
		}
	}
	return true
}

// isUsable reports whether the best grid is worth handing to a human:
// a grid with zero working assignments against a non-zero coverage
// requirement is not usable and the run is a failure
func isUsable(grid *model.ScheduleGrid, days []model.CalendarDay, policy Policy) bool {
	if grid == nil {
		return false
	}

	required := 0
	for _, day := range days {
		for _, kind := range model.WorkKindsFor(day.IsWeekend) {
			required += policy.CoverageMin(kind)
		}
	}
	if required == 0 {
		return true
	}

	for _, row := range grid.Assignments {
		for _, kind := range row {
			if kind.IsWork() {
				return true
			}
		}
	}
	return false
}
