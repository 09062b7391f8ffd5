package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careassess/internal/model"
	"careassess/internal/registry"
	"careassess/internal/skiplogic"
)

// fillValue produces a non-empty answer matching the field's value kind.
func fillValue(t *testing.T, key string) model.AnswerValue {
	t.Helper()
	spec, ok := registry.GetFieldSpec(key)
	require.True(t, ok, "unknown field %s", key)
	switch spec.Kind {
	case model.ValueKindEnum:
		return model.OptionValue(spec.Options[0])
	case model.ValueKindText:
		return model.TextValue("entered")
	case model.ValueKindNumber:
		return model.NumberValue(1)
	case model.ValueKindBoolean:
		return model.BoolValue(true)
	case model.ValueKindStructuredMap:
		return model.MapValue(map[string]string{spec.SubKeys[0]: "x"})
	}
	t.Fatalf("unhandled kind for %s", key)
	return model.AnswerValue{}
}

// fullAnswers fills every required field for the type.
func fullAnswers(t *testing.T, typ model.AssessmentType) model.AssessmentAnswers {
	t.Helper()
	answers := make(model.AssessmentAnswers)
	for _, key := range registry.AllRequiredFieldKeys(typ) {
		answers[key] = fillValue(t, key)
	}
	return answers
}

func TestComputeCompletion_EmptyDraft(t *testing.T) {
	result := ComputeCompletion(model.AssessmentAnswers{}, model.FieldSet{}, model.AssessmentTypeSOC)

	assert.Equal(t, 0, result.Percentage)
	assert.False(t, result.Complete())
	assert.Equal(t, registry.AllRequiredFieldKeys(model.AssessmentTypeSOC), result.MissingRequiredFields,
		"missing list follows instrument order")
}

func TestComputeCompletion_AllFilled(t *testing.T) {
	answers := fullAnswers(t, model.AssessmentTypeSOC)

	result := ComputeCompletion(answers, model.FieldSet{}, model.AssessmentTypeSOC)

	assert.Equal(t, 100, result.Percentage)
	assert.Empty(t, result.MissingRequiredFields)
	assert.True(t, result.Complete())
}

func TestComputeCompletion_OneMissingNeverRoundsTo100(t *testing.T) {
	answers := fullAnswers(t, model.AssessmentTypeSOC)
	required := registry.AllRequiredFieldKeys(model.AssessmentTypeSOC)
	delete(answers, required[0])

	result := ComputeCompletion(answers, model.FieldSet{}, model.AssessmentTypeSOC)

	assert.Less(t, result.Percentage, 100, "a missing field must keep the percentage below 100")
	assert.Equal(t, []string{required[0]}, result.MissingRequiredFields)
	assert.False(t, result.Complete())
}

func TestComputeCompletion_OneFilledNeverRoundsTo0(t *testing.T) {
	required := registry.AllRequiredFieldKeys(model.AssessmentTypeSOC)
	answers := model.AssessmentAnswers{
		required[0]: fillValue(t, required[0]),
	}

	result := ComputeCompletion(answers, model.FieldSet{}, model.AssessmentTypeSOC)

	assert.Greater(t, result.Percentage, 0, "progress must register above 0")
	assert.Less(t, result.Percentage, 100)
}

func TestComputeCompletion_Monotonic(t *testing.T) {
	required := registry.AllRequiredFieldKeys(model.AssessmentTypeSOC)
	answers := make(model.AssessmentAnswers)

	last := -1
	for _, key := range required {
		answers[key] = fillValue(t, key)
		result := ComputeCompletion(answers, model.FieldSet{}, model.AssessmentTypeSOC)
		assert.GreaterOrEqual(t, result.Percentage, last, "filling %s decreased the percentage", key)
		last = result.Percentage
	}
	assert.Equal(t, 100, last)
}

func TestComputeCompletion_SkippedFieldsExcluded(t *testing.T) {
	// Denying the pressure ulcer screen removes its chain from both the
	// numerator and the denominator.
	answers := model.AssessmentAnswers{
		"M1306_UNHEALED_PRESSURE_ULCER": model.OptionValue("0"),
	}
	skipped := skiplogic.ComputeSkippedFields(answers)
	require.True(t, skipped.Contains("M1311_STAGE2_COUNT"))

	result := ComputeCompletion(answers, skipped, model.AssessmentTypeSOC)

	assert.NotContains(t, result.MissingRequiredFields, "M1311_STAGE2_COUNT")
	assert.NotContains(t, result.MissingRequiredFields, "M1320_MOST_PROBLEMATIC_STATUS")
}

func TestComputeCompletion_AllRequiredSkipped(t *testing.T) {
	skipped := model.NewFieldSet(registry.AllRequiredFieldKeys(model.AssessmentTypeSOC)...)

	result := ComputeCompletion(model.AssessmentAnswers{}, skipped, model.AssessmentTypeSOC)

	assert.Equal(t, 100, result.Percentage)
	assert.Empty(t, result.MissingRequiredFields)
	assert.True(t, result.Complete())
}

func TestComputeCompletion_StructuredMapLenient(t *testing.T) {
	spec, ok := registry.GetFieldSpec("M2102_ASSISTANCE_TYPES")
	require.True(t, ok)
	require.Equal(t, model.ValueKindStructuredMap, spec.Kind)

	answers := model.AssessmentAnswers{
		"M2102_ASSISTANCE_TYPES": model.MapValue(map[string]string{spec.SubKeys[0]: "0"}),
	}

	result := ComputeCompletion(answers, model.FieldSet{}, model.AssessmentTypeSOC)
	assert.NotContains(t, result.MissingRequiredFields, "M2102_ASSISTANCE_TYPES",
		"one sub-key is enough to count the field as filled")
}

func TestComputeCompletion_DischargeUsesItsOwnRequiredSet(t *testing.T) {
	socRequired := model.NewFieldSet(registry.AllRequiredFieldKeys(model.AssessmentTypeSOC)...)
	dcRequired := model.NewFieldSet(registry.AllRequiredFieldKeys(model.AssessmentTypeDischarge)...)

	assert.True(t, dcRequired.Contains("M0906_DISCHARGE_DATE"))
	assert.False(t, socRequired.Contains("M0906_DISCHARGE_DATE"))
}
