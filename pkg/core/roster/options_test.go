package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarrett/shiftroster/pkg/core/model"
)

func TestDeriveOptions_OrderedBySeverityWithManualEditLast(t *testing.T) {
	violations := []model.ValidationError{
		{Code: model.CodeCoverageShortfall, Kind: model.ShiftNight},
		{Code: model.CodeCoverageShortfall, Kind: model.ShiftEarly},
		{Code: model.CodeCoverageShortfall, Kind: model.ShiftNight}, // duplicate kind collapses
		{Code: model.CodeFloaterQuota, PersonID: "flo"},
		{Code: model.CodeHolidayConflict, PersonID: "alice"},
	}

	options := DeriveOptions(violations)

	require.Len(t, options, 5)
	assert.Equal(t, optionFloaterOverride, options[0].ID)
	assert.Equal(t, optionAllowHolidayWork, options[1].ID)
	assert.Equal(t, "relax_coverage:Early", options[2].ID)
	assert.Equal(t, "relax_coverage:Night", options[3].ID)
	assert.Equal(t, model.OptionManualEdit, options[4].ID)
}

func TestDeriveOptions_ManualEditAlwaysOffered(t *testing.T) {
	options := DeriveOptions(nil)

	require.Len(t, options, 1)
	assert.Equal(t, model.OptionManualEdit, options[0].ID)
}

func TestDeriveOptions_IgnoresNonRelaxableCodes(t *testing.T) {
	violations := []model.ValidationError{
		{Code: model.CodeUnavailabilityConflict, PersonID: "alice"},
		{Code: model.CodePreferenceMismatch, PersonID: "bob"},
		{Code: model.CodeTrainingPattern, PersonID: "tina"},
		{Code: model.CodeMalformedInput},
	}

	options := DeriveOptions(violations)

	require.Len(t, options, 1)
	assert.Equal(t, model.OptionManualEdit, options[0].ID)
}
