// Package careplan projects a completed assessment's answers into the
// input contract of the external care-plan creation service. The
// projection is one-way: the source record is never mutated, and absent
// source answers leave the corresponding target fields empty; the
// care-plan collaborator owns its own validation.
package careplan

import (
	"time"

	"careassess/internal/model"
	"careassess/internal/registry"
)

// functionalItems are the ADL answers carried into the seed, keyed by the
// label the care-plan service expects.
var functionalItems = map[string]string{
	"grooming":        "M1800_GROOMING",
	"dressUpper":      "M1810_DRESS_UPPER",
	"dressLower":      "M1820_DRESS_LOWER",
	"bathing":         "M1830_BATHING",
	"toiletTransfer":  "M1840_TOILET_TRANSFER",
	"transferring":    "M1850_TRANSFERRING",
	"ambulation":      "M1860_AMBULATION",
	"feeding":         "M1870_FEEDING",
	"mealPreparation": "M1880_MEAL_PREP",
}

// otherDiagnosisSlots pairs each secondary diagnosis field with its
// severity field.
var otherDiagnosisSlots = [][2]string{
	{"M1023_OTHER_DX_1", "M1023_OTHER_SEVERITY_1"},
	{"M1023_OTHER_DX_2", "M1023_OTHER_SEVERITY_2"},
	{"M1023_OTHER_DX_3", "M1023_OTHER_SEVERITY_3"},
	{"M1023_OTHER_DX_4", "M1023_OTHER_SEVERITY_4"},
	{"M1023_OTHER_DX_5", "M1023_OTHER_SEVERITY_5"},
}

// DeriveCarePlanSeed builds the care-plan draft from an assessment
// record.
func DeriveCarePlanSeed(record *model.AssessmentRecord) *model.CarePlanDraft {
	answers := record.Answers
	draft := &model.CarePlanDraft{
		AssessmentID:   record.ID,
		PatientID:      record.PatientID,
		EpisodeID:      record.EpisodeID,
		AssessmentType: record.Type,
		GeneratedAt:    time.Now(),
	}

	if code := answers.Get("M1021_PRIMARY_DX").Text; code != "" {
		draft.PrimaryDiagnosis = &model.CarePlanDiagnosis{
			Code:     code,
			Severity: answers.Get("M1021_PRIMARY_SEVERITY").Option,
		}
	}

	for _, slot := range otherDiagnosisSlots {
		code := answers.Get(slot[0]).Text
		if code == "" {
			continue
		}
		draft.OtherDiagnoses = append(draft.OtherDiagnoses, model.CarePlanDiagnosis{
			Code:     code,
			Severity: answers.Get(slot[1]).Option,
		})
	}

	functional := make(map[string]string)
	for label, key := range functionalItems {
		if v := answers.Get(key).Option; v != "" {
			functional[label] = v
		}
	}
	if len(functional) > 0 {
		draft.FunctionalStatus = functional
	}

	draft.RiskFactors = selectedRiskFactors(answers)

	if entries := answers.Get("M2102_ASSISTANCE_TYPES").Entries; len(entries) > 0 {
		needs := make(map[string]string, len(entries))
		for k, v := range entries {
			if v != "" {
				needs[k] = v
			}
		}
		if len(needs) > 0 {
			draft.AssistanceNeeds = needs
		}
	}

	return draft
}

// selectedRiskFactors lists the checked hospitalization-risk members,
// excluding the "none" marker.
func selectedRiskFactors(answers model.AssessmentAnswers) []string {
	group, ok := registry.Group(registry.GroupHospRisk)
	if !ok {
		return nil
	}
	var selected []string
	for _, member := range group.Members {
		if member == group.NoneKey {
			continue
		}
		if answers.Get(member).IsSelected() {
			selected = append(selected, member)
		}
	}
	return selected
}
