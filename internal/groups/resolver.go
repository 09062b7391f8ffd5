// Package groups enforces "none of the above" semantics for the
// instrument's mutually-exclusive checkbox groups. Membership comes from
// registry metadata, never from key naming conventions.
package groups

import (
	"errors"
	"fmt"

	"careassess/internal/model"
	"careassess/internal/registry"
)

var (
	ErrUnknownGroup = errors.New("unknown checkbox group")
	ErrNotAMember   = errors.New("field is not a member of the group")
)

// ApplyGroupSelection toggles one member of a mutually-exclusive group
// and returns a new answer snapshot; the input is never mutated, which
// keeps undo and audit trails cheap. Selecting the "none" member clears
// every sibling; selecting any sibling clears the "none" member.
// Deselecting a member clears nothing else.
func ApplyGroupSelection(answers model.AssessmentAnswers, groupID, selectedKey string, selected bool) (model.AssessmentAnswers, error) {
	group, ok := registry.Group(groupID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	if !group.Contains(selectedKey) {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotAMember, selectedKey, groupID)
	}

	next := answers.Clone()
	next[selectedKey] = model.BoolValue(selected)

	if !selected {
		return next, nil
	}

	if selectedKey == group.NoneKey {
		for _, sibling := range group.Siblings(selectedKey) {
			if next.Get(sibling).IsSelected() {
				next[sibling] = model.BoolValue(false)
			}
		}
	} else if next.Get(group.NoneKey).IsSelected() {
		next[group.NoneKey] = model.BoolValue(false)
	}

	return next, nil
}
