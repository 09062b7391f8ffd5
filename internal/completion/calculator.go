// Package completion derives the 0-100 completion percentage and the
// outstanding required fields for an assessment. The result is recomputed
// on every answer mutation and only ever cached for display.
package completion

import (
	"math"

	"careassess/internal/model"
	"careassess/internal/registry"
)

// ComputeCompletion measures how complete the applicable required subset
// is. Skipped fields are complete-by-exclusion: they count in neither the
// numerator nor the denominator. A STRUCTURED_MAP field counts as filled
// when any sub-key holds a non-empty value; this lenient reading is
// deliberate (the clinically stricter all-sub-keys variant was considered
// and rejected).
func ComputeCompletion(answers model.AssessmentAnswers, skipped model.FieldSet, t model.AssessmentType) model.CompletionResult {
	required := registry.AllRequiredFieldKeys(t)

	applicable := make([]string, 0, len(required))
	for _, key := range required {
		if !skipped.Contains(key) {
			applicable = append(applicable, key)
		}
	}

	// Everything required was skipped away: nothing left to fill
	if len(applicable) == 0 {
		return model.CompletionResult{Percentage: 100, MissingRequiredFields: []string{}}
	}

	filled := 0
	missing := make([]string, 0)
	for _, key := range applicable {
		if answers.Filled(key) {
			filled++
		} else {
			missing = append(missing, key)
		}
	}

	pct := int(math.Round(100 * float64(filled) / float64(len(applicable))))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	// Rounding must never report 100 while fields remain, or 0 while
	// progress exists
	if len(missing) > 0 && pct == 100 {
		pct = 99
	}
	if filled > 0 && pct == 0 {
		pct = 1
	}

	return model.CompletionResult{Percentage: pct, MissingRequiredFields: missing}
}
