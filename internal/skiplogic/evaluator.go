// Package skiplogic decides which instrument fields are currently
// inapplicable given the answers entered so far. Evaluation is a pure
// function of the answer snapshot: deterministic, idempotent, and free of
// side effects. Skipping a field never deletes its answer, so data is
// preserved if the clinician later reverses the trigger.
package skiplogic

import (
	"careassess/internal/model"
	"careassess/internal/registry"
)

func init() {
	// Every rule must reference real fields, and no rule's trigger may be
	// skippable by another rule; evaluation order would matter otherwise.
	skippable := make(model.FieldSet)
	for _, r := range ruleTable {
		for _, k := range r.Skips {
			if _, ok := registry.GetFieldSpec(k); !ok {
				panic("skiplogic: rule " + r.Name + " skips unknown field " + k)
			}
			skippable[k] = struct{}{}
		}
	}
	for _, r := range ruleTable {
		for _, t := range r.Triggers {
			if _, ok := registry.GetFieldSpec(t); !ok {
				panic("skiplogic: rule " + r.Name + " triggers on unknown field " + t)
			}
			if skippable.Contains(t) {
				panic("skiplogic: trigger " + t + " of rule " + r.Name + " is itself skippable")
			}
		}
	}
}

// ComputeSkippedFields returns the set of field keys inapplicable under
// the current answers. The result is derived state only; it is never
// persisted as authoritative.
func ComputeSkippedFields(answers model.AssessmentAnswers) model.FieldSet {
	skipped := make(model.FieldSet)
	for _, rule := range ruleTable {
		values := make([]model.AnswerValue, len(rule.Triggers))
		for i, trigger := range rule.Triggers {
			values[i] = answers.Get(trigger)
		}
		if rule.When(values) {
			skipped.Add(rule.Skips...)
		}
	}
	return skipped
}
