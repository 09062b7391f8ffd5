// Package workflow governs the assessment lifecycle: DRAFT -> SUBMITTED ->
// APPROVED | REJECTED -> SUBMITTED, with LOCKED/COMPLETED as terminal
// markers for assessments closed outside the review workflow.
package workflow

import (
	"errors"
	"fmt"

	"careassess/internal/model"
)

var (
	// ErrIncompleteAssessment rejects a submit below 100% completion
	ErrIncompleteAssessment = errors.New("assessment is not 100% complete")
	// ErrReadOnlyAssessment rejects mutation of a non-editable record
	ErrReadOnlyAssessment = errors.New("assessment is read-only in its current status")
	// ErrInvalidTransition rejects a lifecycle edge the machine does not have
	ErrInvalidTransition = errors.New("invalid status transition")
)

// transitions holds every legal lifecycle edge.
var transitions = map[model.AssessmentStatus][]model.AssessmentStatus{
	model.StatusDraft:     {model.StatusSubmitted, model.StatusLocked, model.StatusCompleted},
	model.StatusSubmitted: {model.StatusApproved, model.StatusRejected},
	model.StatusRejected:  {model.StatusSubmitted, model.StatusLocked, model.StatusCompleted},
	model.StatusApproved:  {},
	model.StatusLocked:    {},
	model.StatusCompleted: {},
}

// CanTransition reports whether the edge from -> to exists.
func CanTransition(from, to model.AssessmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the edge and returns the new status.
func Transition(from, to model.AssessmentStatus) (model.AssessmentStatus, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

// GuardEdit rejects any mutation attempt on a non-editable record. It is
// applied before the mutation path or the autosave coordinator ever see
// the write.
func GuardEdit(status model.AssessmentStatus) error {
	if !status.Editable() {
		return fmt.Errorf("%w: %s", ErrReadOnlyAssessment, status)
	}
	return nil
}

// GuardSubmit enforces the submission gate: an assessment may only move
// to SUBMITTED from an editable status and at 100% completion.
func GuardSubmit(status model.AssessmentStatus, completion model.CompletionResult) error {
	if !CanTransition(status, model.StatusSubmitted) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, status, model.StatusSubmitted)
	}
	if !completion.Complete() {
		return fmt.Errorf("%w: %d%%, %d required fields outstanding",
			ErrIncompleteAssessment, completion.Percentage, len(completion.MissingRequiredFields))
	}
	return nil
}

// StatusForDecision maps a review decision to its target status.
func StatusForDecision(decision model.ReviewDecision) (model.AssessmentStatus, error) {
	switch decision {
	case model.DecisionApprove:
		return model.StatusApproved, nil
	case model.DecisionReject:
		return model.StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown review decision %q", decision)
	}
}
