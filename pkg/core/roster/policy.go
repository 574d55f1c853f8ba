package roster

import (
	"fmt"
	"strings"

	"github.com/mbarrett/shiftroster/pkg/core/model"
)

const (
	// DefaultAttempts is the generation retry budget when the policy does not set one
	DefaultAttempts = 40

	// DefaultFloaterWindowDays and DefaultFloaterWindowMax implement the floater
	// workload cap. The business rule is stated as 2.5 shifts per week; since
	// fractional shifts do not exist it is enforced as at most 5 working shifts
	// in any rolling 2-week window.
	DefaultFloaterWindowDays = 14
	DefaultFloaterWindowMax  = 5
)

// Policy carries the standing scheduling rules plus any relaxations folded
// in by generation options. Policies are passed by value; relaxing a policy
// never mutates the caller's copy.
type Policy struct {
	// CoverageMinimums is the minimum number of assigned people required
	// per working shift kind on each applicable day
	CoverageMinimums map[model.ShiftKind]int

	// CoverageOverrides holds per-kind relaxed minimums applied on top of
	// CoverageMinimums (an override always wins)
	CoverageOverrides map[model.ShiftKind]int

	// AllowHolidayStaffing permits work shifts on holidays that apply to
	// the assigned person's state
	AllowHolidayStaffing bool

	FloaterWindowDays int
	FloaterWindowMax  int

	// FloaterQuotaBonus is extra window headroom granted by the one-time
	// quota override option
	FloaterQuotaBonus int

	// Attempts is the bounded number of construction attempts per generation
	Attempts int
}

// DefaultPolicy returns a policy with the standing defaults and a coverage
// minimum of one person per working shift kind
func DefaultPolicy() Policy {
	minimums := make(map[model.ShiftKind]int)
	for _, kind := range model.WeekdayWorkKinds {
		minimums[kind] = 1
	}
	for _, kind := range model.WeekendWorkKinds {
		minimums[kind] = 1
	}
	return Policy{
		CoverageMinimums:  minimums,
		FloaterWindowDays: DefaultFloaterWindowDays,
		FloaterWindowMax:  DefaultFloaterWindowMax,
		Attempts:          DefaultAttempts,
	}
}

// CoverageMin returns the effective coverage minimum for a shift kind
func (p Policy) CoverageMin(kind model.ShiftKind) int {
	if override, ok := p.CoverageOverrides[kind]; ok {
		return override
	}
	return p.CoverageMinimums[kind]
}

// floaterMax returns the effective rolling-window shift cap for floaters
func (p Policy) floaterMax() int {
	max := p.FloaterWindowMax
	if max <= 0 {
		max = DefaultFloaterWindowMax
	}
	return max + p.FloaterQuotaBonus
}

// floaterWindow returns the rolling window length in days
func (p Policy) floaterWindow() int {
	if p.FloaterWindowDays <= 0 {
		return DefaultFloaterWindowDays
	}
	return p.FloaterWindowDays
}

// attempts returns the effective generation attempt budget
func (p Policy) attempts() int {
	if p.Attempts <= 0 {
		return DefaultAttempts
	}
	return p.Attempts
}

// Option ID prefixes. Coverage relaxations carry the shift kind after the
// colon, e.g. "relax_coverage:Night".
const (
	optionRelaxCoveragePrefix = "relax_coverage:"
	optionFloaterOverride     = "floater_override"
	optionAllowHolidayWork    = "allow_holiday_staffing"
)

// ApplyOption folds the named relaxation into a copy of the policy.
// The manual_edit option is not a policy change and is rejected here;
// callers hand the best grid to the mutation flow instead.
func (p Policy) ApplyOption(optionID string) (Policy, error) {
	relaxed := p

	// Copy the override map so the caller's policy is untouched
	relaxed.CoverageOverrides = make(map[model.ShiftKind]int, len(p.CoverageOverrides)+1)
	for kind, min := range p.CoverageOverrides {
		relaxed.CoverageOverrides[kind] = min
	}

	switch {
	case strings.HasPrefix(optionID, optionRelaxCoveragePrefix):
		kind := model.ShiftKind(strings.TrimPrefix(optionID, optionRelaxCoveragePrefix))
		if !kind.IsWork() {
			return Policy{}, fmt.Errorf("%w: unknown shift kind in option %q", ErrMalformedInput, optionID)
		}
		current := relaxed.CoverageMin(kind)
		if current > 0 {
			relaxed.CoverageOverrides[kind] = current - 1
		}
		return relaxed, nil

	case optionID == optionFloaterOverride:
		relaxed.FloaterQuotaBonus = p.FloaterQuotaBonus + 1
		return relaxed, nil

	case optionID == optionAllowHolidayWork:
		relaxed.AllowHolidayStaffing = true
		return relaxed, nil

	case optionID == model.OptionManualEdit:
		return Policy{}, fmt.Errorf("%w: %s is not a policy relaxation", ErrMalformedInput, model.OptionManualEdit)
	}

	return Policy{}, fmt.Errorf("%w: unknown generation option %q", ErrMalformedInput, optionID)
}
