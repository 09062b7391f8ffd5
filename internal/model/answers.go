package model

// AnswerValue holds one field's entered value. Exactly one slot is set,
// matching the field's ValueKind; validation happens at the mutation
// boundary, not here.
type AnswerValue struct {
	Text    string            `json:"text,omitempty" bson:"text,omitempty"`          // TEXT
	Option  string            `json:"option,omitempty" bson:"option,omitempty"`      // ENUM
	Number  *float64          `json:"number,omitempty" bson:"number,omitempty"`      // NUMBER
	Checked *bool             `json:"checked,omitempty" bson:"checked,omitempty"`    // BOOLEAN
	Entries map[string]string `json:"entries,omitempty" bson:"entries,omitempty"`    // STRUCTURED_MAP
}

// TextValue builds a TEXT answer
func TextValue(s string) AnswerValue {
	return AnswerValue{Text: s}
}

// OptionValue builds an ENUM answer
func OptionValue(s string) AnswerValue {
	return AnswerValue{Option: s}
}

// NumberValue builds a NUMBER answer
func NumberValue(n float64) AnswerValue {
	return AnswerValue{Number: &n}
}

// BoolValue builds a BOOLEAN answer
func BoolValue(b bool) AnswerValue {
	return AnswerValue{Checked: &b}
}

// MapValue builds a STRUCTURED_MAP answer
func MapValue(entries map[string]string) AnswerValue {
	return AnswerValue{Entries: entries}
}

// IsEmpty reports whether no slot holds a usable value. A BOOLEAN answer
// counts as entered once the checkbox has been touched either way. A
// STRUCTURED_MAP counts as entered when at least one sub-key is non-empty.
func (v AnswerValue) IsEmpty() bool {
	if v.Text != "" || v.Option != "" || v.Number != nil || v.Checked != nil {
		return false
	}
	for _, e := range v.Entries {
		if e != "" {
			return false
		}
	}
	return true
}

// IsSelected reports whether a BOOLEAN answer is checked.
func (v AnswerValue) IsSelected() bool {
	return v.Checked != nil && *v.Checked
}

// AssessmentAnswers maps field keys to entered values. It is owned by one
// in-progress draft and mutated only through the engine's mutation entry
// points.
type AssessmentAnswers map[string]AnswerValue

// Clone returns a deep copy of the answer set.
func (a AssessmentAnswers) Clone() AssessmentAnswers {
	out := make(AssessmentAnswers, len(a))
	for k, v := range a {
		if v.Entries != nil {
			entries := make(map[string]string, len(v.Entries))
			for ek, ev := range v.Entries {
				entries[ek] = ev
			}
			v.Entries = entries
		}
		if v.Number != nil {
			n := *v.Number
			v.Number = &n
		}
		if v.Checked != nil {
			b := *v.Checked
			v.Checked = &b
		}
		out[k] = v
	}
	return out
}

// Get returns the value for a key, empty when unanswered.
func (a AssessmentAnswers) Get(key string) AnswerValue {
	return a[key]
}

// Filled reports whether the key holds a non-empty value.
func (a AssessmentAnswers) Filled(key string) bool {
	v, ok := a[key]
	return ok && !v.IsEmpty()
}

// FieldSet is a set of field keys, used for skip state.
type FieldSet map[string]struct{}

// NewFieldSet builds a set from keys.
func NewFieldSet(keys ...string) FieldSet {
	s := make(FieldSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Contains reports set membership.
func (s FieldSet) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Add inserts keys into the set.
func (s FieldSet) Add(keys ...string) {
	for _, k := range keys {
		s[k] = struct{}{}
	}
}

// Keys returns the members in unspecified order.
func (s FieldSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// Equal reports whether both sets hold the same keys.
func (s FieldSet) Equal(other FieldSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}
