package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarrett/shiftroster/pkg/core/model"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	for _, kind := range model.WeekdayWorkKinds {
		assert.Equal(t, 1, policy.CoverageMin(kind))
	}
	for _, kind := range model.WeekendWorkKinds {
		assert.Equal(t, 1, policy.CoverageMin(kind))
	}
	assert.Equal(t, DefaultFloaterWindowDays, policy.FloaterWindowDays)
	assert.Equal(t, DefaultFloaterWindowMax, policy.FloaterWindowMax)
	assert.False(t, policy.AllowHolidayStaffing)
}

func TestPolicy_ApplyOptionRelaxCoverage(t *testing.T) {
	policy := DefaultPolicy()

	relaxed, err := policy.ApplyOption("relax_coverage:Night")
	require.NoError(t, err)

	assert.Equal(t, 0, relaxed.CoverageMin(model.ShiftNight))
	assert.Equal(t, 1, relaxed.CoverageMin(model.ShiftEarly))

	// The caller's policy is untouched
	assert.Equal(t, 1, policy.CoverageMin(model.ShiftNight))
}

func TestPolicy_ApplyOptionRelaxCoverageStopsAtZero(t *testing.T) {
	policy := Policy{CoverageMinimums: map[model.ShiftKind]int{model.ShiftNight: 0}}

	relaxed, err := policy.ApplyOption("relax_coverage:Night")
	require.NoError(t, err)

	assert.Equal(t, 0, relaxed.CoverageMin(model.ShiftNight))
}

func TestPolicy_ApplyOptionFloaterOverride(t *testing.T) {
	relaxed, err := DefaultPolicy().ApplyOption(optionFloaterOverride)
	require.NoError(t, err)

	assert.Equal(t, 1, relaxed.FloaterQuotaBonus)
	assert.Equal(t, DefaultFloaterWindowMax+1, relaxed.floaterMax())
}

func TestPolicy_ApplyOptionHolidayStaffing(t *testing.T) {
	relaxed, err := DefaultPolicy().ApplyOption(optionAllowHolidayWork)
	require.NoError(t, err)

	assert.True(t, relaxed.AllowHolidayStaffing)
}

func TestPolicy_ApplyOptionRejectsInvalidIDs(t *testing.T) {
	policy := DefaultPolicy()

	_, err := policy.ApplyOption(model.OptionManualEdit)
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = policy.ApplyOption("relax_coverage:Twilight")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = policy.ApplyOption("no_such_option")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestPolicy_ZeroValueFallsBackToDefaults(t *testing.T) {
	var policy Policy

	assert.Equal(t, DefaultFloaterWindowDays, policy.floaterWindow())
	assert.Equal(t, DefaultFloaterWindowMax, policy.floaterMax())
	assert.Equal(t, DefaultAttempts, policy.attempts())
	assert.Equal(t, 0, policy.CoverageMin(model.ShiftEarly))
}
