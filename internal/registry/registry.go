// Package registry holds the canonical schema for the assessment
// instrument: every field's section, value domain, requiredness and
// default, plus mutually-exclusive checkbox group membership. Content is
// static configuration built once at process start and read-only after.
package registry

import (
	"careassess/internal/model"
)

var (
	fieldIndex map[string]model.FieldSpec
	fieldOrder []string
	groupIndex map[string]model.ExclusiveGroup
	// memberGroup resolves a field key to its group, so callers never
	// infer membership from key naming conventions
	memberGroup map[string]string
)

func init() {
	fields := instrumentFields()
	fieldIndex = make(map[string]model.FieldSpec, len(fields))
	fieldOrder = make([]string, 0, len(fields))
	for _, f := range fields {
		if _, dup := fieldIndex[f.Key]; dup {
			panic("registry: duplicate field key " + f.Key)
		}
		fieldIndex[f.Key] = f
		fieldOrder = append(fieldOrder, f.Key)
	}

	groups := exclusiveGroups()
	groupIndex = make(map[string]model.ExclusiveGroup, len(groups))
	memberGroup = make(map[string]string)
	for _, g := range groups {
		groupIndex[g.ID] = g
		for _, m := range g.Members {
			spec, ok := fieldIndex[m]
			if !ok {
				panic("registry: group " + g.ID + " references unknown field " + m)
			}
			if spec.Kind != model.ValueKindBoolean {
				panic("registry: group member " + m + " is not a checkbox field")
			}
			memberGroup[m] = g.ID
		}
	}
}

// GetFieldSpec returns the schema entry for a field key.
func GetFieldSpec(key string) (model.FieldSpec, bool) {
	spec, ok := fieldIndex[key]
	return spec, ok
}

// AllFieldKeys returns every field key in instrument order.
func AllFieldKeys() []string {
	keys := make([]string, len(fieldOrder))
	copy(keys, fieldOrder)
	return keys
}

// FieldCount returns the number of fields on the instrument.
func FieldCount() int {
	return len(fieldOrder)
}

// AllRequiredFieldKeys returns, in instrument order, the keys required for
// the given assessment type, before skip logic is applied.
func AllRequiredFieldKeys(t model.AssessmentType) []string {
	keys := make([]string, 0, len(fieldOrder))
	for _, k := range fieldOrder {
		if spec := fieldIndex[k]; spec.RequiredForType(t) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Group returns a mutually-exclusive group by id.
func Group(id string) (model.ExclusiveGroup, bool) {
	g, ok := groupIndex[id]
	return g, ok
}

// GroupFor returns the group a field key belongs to, if any.
func GroupFor(key string) (model.ExclusiveGroup, bool) {
	id, ok := memberGroup[key]
	if !ok {
		return model.ExclusiveGroup{}, false
	}
	return groupIndex[id], true
}

// reasonCodes maps each assessment type to its M0100 response code.
var reasonCodes = map[model.AssessmentType]string{
	model.AssessmentTypeSOC:       "1",
	model.AssessmentTypeROC:       "3",
	model.AssessmentTypeRecert:    "4",
	model.AssessmentTypeDischarge: "9",
}

// ReasonCode returns the M0100 response code for an assessment type.
func ReasonCode(t model.AssessmentType) (string, bool) {
	code, ok := reasonCodes[t]
	return code, ok
}

// Defaults returns the prefill answers for a new draft of the given type:
// the static field defaults, with M0100 pinned to the type's reason code.
func Defaults(t model.AssessmentType) model.AssessmentAnswers {
	answers := make(model.AssessmentAnswers)
	for _, k := range fieldOrder {
		spec := fieldIndex[k]
		if spec.Default == "" {
			continue
		}
		switch spec.Kind {
		case model.ValueKindEnum:
			answers[k] = model.OptionValue(spec.Default)
		case model.ValueKindText:
			answers[k] = model.TextValue(spec.Default)
		}
	}
	if code, ok := reasonCodes[t]; ok {
		answers["M0100_ASSESSMENT_REASON"] = model.OptionValue(code)
	}
	return answers
}
