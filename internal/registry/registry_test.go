package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careassess/internal/model"
)

func TestFieldCount(t *testing.T) {
	assert.GreaterOrEqual(t, FieldCount(), 200, "instrument carries the full OASIS-shaped field set")
	assert.Len(t, AllFieldKeys(), FieldCount())
}

func TestGetFieldSpec(t *testing.T) {
	spec, ok := GetFieldSpec("M0100_ASSESSMENT_REASON")
	require.True(t, ok)
	assert.Equal(t, model.ValueKindEnum, spec.Kind)
	assert.True(t, spec.Required)
	assert.Contains(t, spec.Options, "9")

	_, ok = GetFieldSpec("M9999_NOT_A_FIELD")
	assert.False(t, ok)
}

func TestAllFieldKeys_StableOrder(t *testing.T) {
	first := AllFieldKeys()
	second := AllFieldKeys()
	assert.Equal(t, first, second)

	// Returned slice is a copy, not the internal order
	first[0] = "tampered"
	assert.NotEqual(t, first[0], AllFieldKeys()[0])
}

func TestAllRequiredFieldKeys_PerType(t *testing.T) {
	soc := AllRequiredFieldKeys(model.AssessmentTypeSOC)
	discharge := AllRequiredFieldKeys(model.AssessmentTypeDischarge)

	assert.Contains(t, soc, "M0104_REFERRAL_DATE")
	assert.NotContains(t, discharge, "M0104_REFERRAL_DATE")

	assert.Contains(t, discharge, "M0906_DISCHARGE_DATE")
	assert.NotContains(t, soc, "M0906_DISCHARGE_DATE")

	// Demographics are required at every timepoint
	for _, keys := range [][]string{soc, discharge} {
		assert.Contains(t, keys, "M0100_ASSESSMENT_REASON")
		assert.Contains(t, keys, "M0040_LAST_NAME")
	}
}

func TestGroupMembership(t *testing.T) {
	group, ok := Group(GroupInpatientSources)
	require.True(t, ok)
	assert.Equal(t, "M1000_NONE", group.NoneKey)
	assert.Contains(t, group.Members, "M1000_SNF")

	byMember, ok := GroupFor("M1000_SNF")
	require.True(t, ok)
	assert.Equal(t, group.ID, byMember.ID)

	_, ok = GroupFor("M0100_ASSESSMENT_REASON")
	assert.False(t, ok, "non-checkbox fields belong to no group")
}

func TestGroupMembers_AreCheckboxes(t *testing.T) {
	for _, groupID := range []string{
		GroupPaymentSources, GroupInpatientSources, GroupActiveConditions,
		GroupHospRisk, GroupRespTreatments, GroupBehaviors,
	} {
		group, ok := Group(groupID)
		require.True(t, ok, groupID)
		require.NotEmpty(t, group.NoneKey, groupID)
		assert.Contains(t, group.Members, group.NoneKey)
		for _, member := range group.Members {
			spec, ok := GetFieldSpec(member)
			require.True(t, ok, member)
			assert.Equal(t, model.ValueKindBoolean, spec.Kind, member)
		}
	}
}

func TestDefaults(t *testing.T) {
	reasonByType := map[model.AssessmentType]string{
		model.AssessmentTypeSOC:       "1",
		model.AssessmentTypeROC:       "3",
		model.AssessmentTypeRecert:    "4",
		model.AssessmentTypeDischarge: "9",
	}
	for typ, want := range reasonByType {
		defaults := Defaults(typ)
		assert.Equal(t, want, defaults.Get("M0100_ASSESSMENT_REASON").Option, string(typ))
	}

	for key := range Defaults(model.AssessmentTypeSOC) {
		_, ok := GetFieldSpec(key)
		assert.True(t, ok, key)
	}
}

func TestReasonCode(t *testing.T) {
	code, ok := ReasonCode(model.AssessmentTypeDischarge)
	assert.True(t, ok)
	assert.Equal(t, "9", code)

	_, ok = ReasonCode(model.AssessmentType("TRANSFER"))
	assert.False(t, ok)
}
