package model

// DateFormat is the canonical date layout used throughout the engine.
const DateFormat = "2006-01-02"

// ShiftKind identifies the kind of shift assigned to a person on a day
type ShiftKind string

const (
	// Weekday working shifts
	ShiftEarly   ShiftKind = "Early"
	ShiftMorning ShiftKind = "Morning"
	ShiftLate    ShiftKind = "Late"
	ShiftNight   ShiftKind = "Night"

	// Weekend working shifts
	ShiftWeekendEarly   ShiftKind = "WeekendEarly"
	ShiftWeekendMorning ShiftKind = "WeekendMorning"
	ShiftWeekendLate    ShiftKind = "WeekendLate"
	ShiftWeekendNight   ShiftKind = "WeekendNight"

	// Sentinel kinds
	ShiftNone        ShiftKind = ""
	ShiftOff         ShiftKind = "OFF"
	ShiftUnavailable ShiftKind = "Unavailable"
	ShiftTraining    ShiftKind = "Training"
)

// WeekdayWorkKinds lists the working shift kinds schedulable on weekdays
var WeekdayWorkKinds = []ShiftKind{ShiftEarly, ShiftMorning, ShiftLate, ShiftNight}

// WeekendWorkKinds lists the working shift kinds schedulable on weekends
var WeekendWorkKinds = []ShiftKind{ShiftWeekendEarly, ShiftWeekendMorning, ShiftWeekendLate, ShiftWeekendNight}

// shiftTimes holds the display start/end times for working shifts.
// These are presentation-only and never feed constraint logic.
var shiftTimes = map[ShiftKind][2]string{
	ShiftEarly:          {"06:00", "14:00"},
	ShiftMorning:        {"08:00", "16:00"},
	ShiftLate:           {"14:00", "22:00"},
	ShiftNight:          {"22:00", "06:00"},
	ShiftWeekendEarly:   {"06:00", "14:00"},
	ShiftWeekendMorning: {"08:00", "16:00"},
	ShiftWeekendLate:    {"14:00", "22:00"},
	ShiftWeekendNight:   {"22:00", "06:00"},
}

// IsValid returns true if the kind is a member of the closed enumeration
func (k ShiftKind) IsValid() bool {
	switch k {
	case ShiftEarly, ShiftMorning, ShiftLate, ShiftNight,
		ShiftWeekendEarly, ShiftWeekendMorning, ShiftWeekendLate, ShiftWeekendNight,
		ShiftNone, ShiftOff, ShiftUnavailable, ShiftTraining:
		return true
	}
	return false
}

// IsWork returns true for shift kinds that represent actual working time
func (k ShiftKind) IsWork() bool {
	_, ok := shiftTimes[k]
	return ok
}

// IsWeekendKind returns true for the weekend-prefixed working kinds
func (k ShiftKind) IsWeekendKind() bool {
	switch k {
	case ShiftWeekendEarly, ShiftWeekendMorning, ShiftWeekendLate, ShiftWeekendNight:
		return true
	}
	return false
}

// Times returns the display start and end times for working shift kinds.
// The third return is false for sentinel kinds, which have no times.
func (k ShiftKind) Times() (start, end string, ok bool) {
	times, ok := shiftTimes[k]
	if !ok {
		return "", "", false
	}
	return times[0], times[1], true
}

// WorkKindsFor returns the working shift kinds schedulable on a weekday or weekend day
func WorkKindsFor(isWeekend bool) []ShiftKind {
	if isWeekend {
		return WeekendWorkKinds
	}
	return WeekdayWorkKinds
}

// Tier is an ordinal skill/seniority band
type Tier string

const (
	TierJunior Tier = "Junior"
	TierMid    Tier = "Mid"
	TierSenior Tier = "Senior"
	TierLead   Tier = "Lead"
)

func (t Tier) IsValid() bool {
	return t == TierJunior || t == TierMid || t == TierSenior || t == TierLead
}

// Rank returns the ordinal position of the tier, lowest first
func (t Tier) Rank() int {
	switch t {
	case TierJunior:
		return 1
	case TierMid:
		return 2
	case TierSenior:
		return 3
	case TierLead:
		return 4
	}
	return 0
}

// AbsenceReason categorizes an unavailable date
type AbsenceReason string

const (
	AbsenceVacation         AbsenceReason = "vacation"
	AbsenceSick             AbsenceReason = "sick"
	AbsencePersonal         AbsenceReason = "personal"
	AbsencePredeterminedOff AbsenceReason = "predetermined_off"
)

func (r AbsenceReason) IsValid() bool {
	return r == AbsenceVacation || r == AbsenceSick || r == AbsencePersonal || r == AbsencePredeterminedOff
}

// Preferences holds the shift kinds a person may be assigned,
// partitioned into weekday and weekend subsets
type Preferences struct {
	Weekday []ShiftKind
	Weekend []ShiftKind
}

// Contains returns true if the given kind is in the relevant subset
func (p Preferences) Contains(kind ShiftKind) bool {
	subset := p.Weekday
	if kind.IsWeekendKind() {
		subset = p.Weekend
	}
	for _, k := range subset {
		if k == kind {
			return true
		}
	}
	return false
}

// Count returns the total number of preferred kinds across both subsets
func (p Preferences) Count() int {
	return len(p.Weekday) + len(p.Weekend)
}

// Person represents a schedulable staff member
type Person struct {
	ID         string
	FirstName  string
	LastName   string
	Tier       Tier
	IsFloater  bool
	InTraining bool
	State      string // region code used to resolve the regional holiday calendar
	Preferences Preferences

	// UnavailableDates maps date strings (DateFormat) to the absence reason.
	// Unavailable dates are hard exclusions, never overridable by generation.
	UnavailableDates map[string]AbsenceReason
}

// FullName returns the person's display name
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// IsUnavailable returns true if the person is unavailable on the given date
func (p *Person) IsUnavailable(date string) bool {
	_, ok := p.UnavailableDates[date]
	return ok
}

// Prefers returns true if the person may be assigned the given working kind
func (p *Person) Prefers(kind ShiftKind) bool {
	return p.Preferences.Contains(kind)
}

// ValidationCode identifies a constraint rule in the validation taxonomy
type ValidationCode string

const (
	CodeUnavailabilityConflict ValidationCode = "UNAVAILABILITY_CONFLICT"
	CodePreferenceMismatch     ValidationCode = "PREFERENCE_MISMATCH"
	CodeTrainingPattern        ValidationCode = "TRAINING_PATTERN"
	CodeFloaterQuota           ValidationCode = "FLOATER_QUOTA"
	CodeCoverageShortfall      ValidationCode = "COVERAGE_SHORTFALL"
	CodeHolidayConflict        ValidationCode = "HOLIDAY_CONFLICT"
	CodeMalformedInput         ValidationCode = "MALFORMED_INPUT"
)

// ValidationError describes a single constraint violation.
// Violations are data, not Go errors - they are the expected common case
// a caller must present to a human.
type ValidationError struct {
	Code     ValidationCode `json:"code"`
	Message  string         `json:"message"`
	PersonID string         `json:"personId,omitempty"` // empty for coverage-level violations
	Date     string         `json:"date,omitempty"`     // empty when the violation is not tied to a day
	Kind     ShiftKind      `json:"kind,omitempty"`     // the shift kind involved, when one is
}

// GenerationOption is a named, described relaxation of one constraint,
// offered to a caller after a generation attempt that produced violations
type GenerationOption struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`

	// Severity orders options least-disruptive first; manual_edit sorts last
	Severity int `json:"-"`
}

// OptionManualEdit hands the best grid found to the mutation flow
// instead of proposing an automatic relaxation. It is always offered
// on a partial or failed generation, and always listed last.
const OptionManualEdit = "manual_edit"
