package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careassess/internal/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to model.AssessmentStatus
		want     bool
	}{
		{model.StatusDraft, model.StatusSubmitted, true},
		{model.StatusDraft, model.StatusLocked, true},
		{model.StatusDraft, model.StatusCompleted, true},
		{model.StatusDraft, model.StatusApproved, false},
		{model.StatusSubmitted, model.StatusApproved, true},
		{model.StatusSubmitted, model.StatusRejected, true},
		{model.StatusSubmitted, model.StatusDraft, false},
		{model.StatusRejected, model.StatusSubmitted, true},
		{model.StatusRejected, model.StatusLocked, true},
		{model.StatusApproved, model.StatusSubmitted, false},
		{model.StatusLocked, model.StatusDraft, false},
		{model.StatusCompleted, model.StatusSubmitted, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransition_InvalidEdgeKeepsStatus(t *testing.T) {
	got, err := Transition(model.StatusApproved, model.StatusSubmitted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.StatusApproved, got, "failed transition must not move the record")
}

func TestGuardEdit(t *testing.T) {
	assert.NoError(t, GuardEdit(model.StatusDraft))
	assert.NoError(t, GuardEdit(model.StatusRejected))

	for _, status := range []model.AssessmentStatus{
		model.StatusSubmitted, model.StatusApproved, model.StatusLocked, model.StatusCompleted,
	} {
		assert.ErrorIs(t, GuardEdit(status), ErrReadOnlyAssessment, string(status))
	}
}

func TestGuardSubmit(t *testing.T) {
	complete := model.CompletionResult{Percentage: 100, MissingRequiredFields: []string{}}
	incomplete := model.CompletionResult{Percentage: 80, MissingRequiredFields: []string{"M0018_NPI"}}

	t.Run("complete draft submits", func(t *testing.T) {
		assert.NoError(t, GuardSubmit(model.StatusDraft, complete))
	})

	t.Run("rejected record resubmits", func(t *testing.T) {
		assert.NoError(t, GuardSubmit(model.StatusRejected, complete))
	})

	t.Run("incomplete draft blocked", func(t *testing.T) {
		assert.ErrorIs(t, GuardSubmit(model.StatusDraft, incomplete), ErrIncompleteAssessment)
	})

	t.Run("terminal status blocked before completeness", func(t *testing.T) {
		assert.ErrorIs(t, GuardSubmit(model.StatusLocked, complete), ErrInvalidTransition)
	})
}

func TestStatusForDecision(t *testing.T) {
	status, err := StatusForDecision(model.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, status)

	status, err = StatusForDecision(model.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, status)

	_, err = StatusForDecision(model.ReviewDecision("MAYBE"))
	assert.Error(t, err)
}
