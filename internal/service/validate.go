package service

import (
	"fmt"

	"careassess/internal/model"
	"careassess/internal/registry"
)

// ValidationError reports a value that does not fit its field's schema.
// Recovered locally: returned to the caller as an actionable message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

func invalidField(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidateAnswer checks one incoming answer against the field's schema.
// An all-empty value is always accepted: it clears the answer.
func ValidateAnswer(key string, value model.AnswerValue) error {
	spec, ok := registry.GetFieldSpec(key)
	if !ok {
		return invalidField(key, "unknown field")
	}
	if value.IsEmpty() {
		return nil
	}

	switch spec.Kind {
	case model.ValueKindText:
		if value.Option != "" || value.Number != nil || value.Checked != nil || len(value.Entries) > 0 {
			return invalidField(key, "expected a text value")
		}
	case model.ValueKindEnum:
		if value.Option == "" {
			return invalidField(key, "expected one of the item's response codes")
		}
		if !contains(spec.Options, value.Option) {
			return invalidField(key, "%q is not a valid response code", value.Option)
		}
	case model.ValueKindNumber:
		if value.Number == nil {
			return invalidField(key, "expected a numeric value")
		}
	case model.ValueKindBoolean:
		if value.Checked == nil {
			return invalidField(key, "expected a checkbox value")
		}
	case model.ValueKindStructuredMap:
		if len(value.Entries) == 0 {
			return invalidField(key, "expected structured entries")
		}
		for subKey := range value.Entries {
			if !contains(spec.SubKeys, subKey) {
				return invalidField(key, "unknown sub-key %q", subKey)
			}
		}
	default:
		return invalidField(key, "unsupported value kind %s", spec.Kind)
	}

	return nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
