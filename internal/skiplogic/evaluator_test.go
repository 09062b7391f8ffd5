package skiplogic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careassess/internal/model"
)

func TestComputeSkippedFields_NoAnswers(t *testing.T) {
	skipped := ComputeSkippedFields(model.AssessmentAnswers{})
	assert.Empty(t, skipped, "unanswered triggers must not skip anything")
}

func TestComputeSkippedFields_PressureUlcerChain(t *testing.T) {
	answers := model.AssessmentAnswers{
		"M1306_UNHEALED_PRESSURE_ULCER": model.OptionValue("0"),
	}

	skipped := ComputeSkippedFields(answers)

	assert.True(t, skipped.Contains("M1311_STAGE2_COUNT"))
	assert.True(t, skipped.Contains("M1320_MOST_PROBLEMATIC_STATUS"))
	assert.True(t, skipped.Contains("M1324_MOST_PROBLEMATIC_STAGE"))
	assert.False(t, skipped.Contains("M1306_UNHEALED_PRESSURE_ULCER"), "trigger itself stays applicable")

	// Reversing the trigger restores the chain
	answers["M1306_UNHEALED_PRESSURE_ULCER"] = model.OptionValue("1")
	skipped = ComputeSkippedFields(answers)
	assert.False(t, skipped.Contains("M1311_STAGE2_COUNT"))
}

func TestComputeSkippedFields_UnobservableWounds(t *testing.T) {
	tests := []struct {
		name    string
		trigger string
		value   string
		skipped []string
	}{
		{"stasis ulcer absent", "M1330_STASIS_ULCER", "0", []string{"M1332_STASIS_ULCER_COUNT", "M1334_STASIS_ULCER_STATUS"}},
		{"stasis ulcer unobservable", "M1330_STASIS_ULCER", "2", []string{"M1332_STASIS_ULCER_COUNT", "M1334_STASIS_ULCER_STATUS"}},
		{"surgical wound absent", "M1340_SURGICAL_WOUND", "0", []string{"M1342_SURGICAL_WOUND_STATUS"}},
		{"surgical wound unobservable", "M1340_SURGICAL_WOUND", "2", []string{"M1342_SURGICAL_WOUND_STATUS"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			answers := model.AssessmentAnswers{tc.trigger: model.OptionValue(tc.value)}
			skipped := ComputeSkippedFields(answers)
			for _, key := range tc.skipped {
				assert.True(t, skipped.Contains(key), key)
			}
		})
	}
}

func TestComputeSkippedFields_DepressionPrescreen(t *testing.T) {
	t.Run("sum below threshold skips remaining items", func(t *testing.T) {
		answers := model.AssessmentAnswers{
			"M1730_PHQ_INTEREST":  model.NumberValue(1),
			"M1730_PHQ_DEPRESSED": model.NumberValue(1),
		}
		skipped := ComputeSkippedFields(answers)
		assert.True(t, skipped.Contains("M1730_PHQ_SLEEP"))
		assert.True(t, skipped.Contains("M1730_PHQ_TOTAL"))
	})

	t.Run("sum at threshold keeps remaining items", func(t *testing.T) {
		answers := model.AssessmentAnswers{
			"M1730_PHQ_INTEREST":  model.NumberValue(2),
			"M1730_PHQ_DEPRESSED": model.NumberValue(1),
		}
		skipped := ComputeSkippedFields(answers)
		assert.False(t, skipped.Contains("M1730_PHQ_SLEEP"))
	})

	t.Run("incomplete screen never collapses items", func(t *testing.T) {
		answers := model.AssessmentAnswers{
			"M1730_PHQ_INTEREST": model.NumberValue(0),
		}
		skipped := ComputeSkippedFields(answers)
		assert.False(t, skipped.Contains("M1730_PHQ_SLEEP"))
	})
}

func TestComputeSkippedFields_AssessmentReasonBlocks(t *testing.T) {
	t.Run("admission hides discharge block", func(t *testing.T) {
		answers := model.AssessmentAnswers{
			"M0100_ASSESSMENT_REASON": model.OptionValue("1"),
		}
		skipped := ComputeSkippedFields(answers)
		assert.True(t, skipped.Contains("M0906_DISCHARGE_DATE"))
		assert.True(t, skipped.Contains("M2420_DISCHARGE_DISPOSITION"))
		assert.False(t, skipped.Contains("M0104_REFERRAL_DATE"))
	})

	t.Run("discharge hides admission block", func(t *testing.T) {
		answers := model.AssessmentAnswers{
			"M0100_ASSESSMENT_REASON": model.OptionValue("9"),
		}
		skipped := ComputeSkippedFields(answers)
		assert.True(t, skipped.Contains("M0104_REFERRAL_DATE"))
		assert.True(t, skipped.Contains("M1000_SNF"))
		assert.False(t, skipped.Contains("M0906_DISCHARGE_DATE"))
	})
}

func TestComputeSkippedFields_Deterministic(t *testing.T) {
	answers := model.AssessmentAnswers{
		"M1306_UNHEALED_PRESSURE_ULCER": model.OptionValue("0"),
		"M1330_STASIS_ULCER":            model.OptionValue("2"),
		"M2001_DRUG_REGIMEN_REVIEW":     model.OptionValue("9"),
		"M0100_ASSESSMENT_REASON":       model.OptionValue("1"),
		"M1730_PHQ_INTEREST":            model.NumberValue(0),
		"M1730_PHQ_DEPRESSED":           model.NumberValue(0),
	}

	first := ComputeSkippedFields(answers)
	second := ComputeSkippedFields(answers)
	assert.True(t, first.Equal(second), "same snapshot must yield the same skip set")

	// Evaluation never mutates its input
	assert.Len(t, answers, 6)
}

func TestComputeSkippedFields_SkipPreservesAnswers(t *testing.T) {
	answers := model.AssessmentAnswers{
		"M2001_DRUG_REGIMEN_REVIEW": model.OptionValue("9"),
		"M2003_MEDICATION_FOLLOWUP": model.OptionValue("1"),
	}

	skipped := ComputeSkippedFields(answers)
	require.True(t, skipped.Contains("M2003_MEDICATION_FOLLOWUP"))
	assert.True(t, answers.Filled("M2003_MEDICATION_FOLLOWUP"), "skipping marks inapplicable, never deletes")
}
