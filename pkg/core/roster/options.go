package roster

import (
	"fmt"
	"sort"

	"github.com/mbarrett/shiftroster/pkg/core/model"
)

// Option severities order the offered relaxations least-disruptive first.
// manual_edit always sorts last.
const (
	severityFloaterOverride = 1
	severityHolidayStaffing = 2
	severityRelaxCoverage   = 3
	severityManualEdit      = 100
)

// DeriveOptions maps the distinct violation codes present in the best
// attempt to candidate relaxations. Options are derived deterministically
// from the violations, never invented: a coverage shortfall yields an
// option to lower that kind's minimum, a floater-quota violation a
// one-time quota override, a holiday conflict the holiday-staffing policy
// switch. The manual_edit option is always offered and always listed last.
func DeriveOptions(violations []model.ValidationError) []model.GenerationOption {
	var options []model.GenerationOption

	shortedKinds := make(map[model.ShiftKind]bool)
	sawFloaterQuota := false
	sawHolidayConflict := false

	for _, v := range violations {
		switch v.Code {
		case model.CodeCoverageShortfall:
			shortedKinds[v.Kind] = true
		case model.CodeFloaterQuota:
			sawFloaterQuota = true
		case model.CodeHolidayConflict:
			sawHolidayConflict = true
		}
	}

	for kind := range shortedKinds {
		options = append(options, model.GenerationOption{
			ID:          optionRelaxCoveragePrefix + string(kind),
			Title:       fmt.Sprintf("Lower the %s coverage minimum", kind),
			Description: fmt.Sprintf("Regenerate with the required number of people on %s shifts reduced by one for this month.", kind),
			Impact:      fmt.Sprintf("Some days may run with fewer people on %s than the standing policy requires.", kind),
			Severity:    severityRelaxCoverage,
		})
	}

	if sawFloaterQuota {
		options = append(options, model.GenerationOption{
			ID:          optionFloaterOverride,
			Title:       "Allow a one-time floater quota override",
			Description: "Regenerate with one extra shift of headroom in each floater's rolling two-week window.",
			Impact:      "Floaters may work one shift above their reduced workload cap this month.",
			Severity:    severityFloaterOverride,
		})
	}

	if sawHolidayConflict {
		options = append(options, model.GenerationOption{
			ID:          optionAllowHolidayWork,
			Title:       "Permit holiday staffing",
			Description: "Regenerate with work shifts allowed on holidays that apply to the assigned person's state.",
			Impact:      "People may be scheduled to work on their regional holidays.",
			Severity:    severityHolidayStaffing,
		})
	}

	options = append(options, model.GenerationOption{
		ID:          model.OptionManualEdit,
		Title:       "Edit the best grid by hand",
		Description: "Keep the best grid found and resolve the remaining violations cell by cell.",
		Impact:      "No rules are relaxed; outstanding violations stay until edited away.",
		Severity:    severityManualEdit,
	})

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Severity != options[j].Severity {
			return options[i].Severity < options[j].Severity
		}
		return options[i].ID < options[j].ID
	})

	return options
}
