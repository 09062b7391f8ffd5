package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careassess/internal/model"
	"careassess/internal/registry"
	"careassess/internal/workflow"
)

// fakeRepo is an in-memory AssessmentRepo.
type fakeRepo struct {
	records map[string]*model.AssessmentRecord
	nextID  int
	failAll bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*model.AssessmentRecord)}
}

func (r *fakeRepo) Create(ctx context.Context, record *model.AssessmentRecord) (string, error) {
	if r.failAll {
		return "", errors.New("repo down")
	}
	r.nextID++
	record.ID = fmt.Sprintf("a%d", r.nextID)
	r.records[record.ID] = record
	return record.ID, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*model.AssessmentRecord, error) {
	if r.failAll {
		return nil, errors.New("repo down")
	}
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	copied.Answers = record.Answers.Clone()
	return &copied, nil
}

func (r *fakeRepo) ListByPatient(ctx context.Context, patientID string) ([]*model.AssessmentRecord, error) {
	if r.failAll {
		return nil, errors.New("repo down")
	}
	var out []*model.AssessmentRecord
	for _, record := range r.records {
		if record.PatientID == patientID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindEditableByEpisode(ctx context.Context, patientID, episodeID string) (*model.AssessmentRecord, error) {
	if r.failAll {
		return nil, errors.New("repo down")
	}
	for _, record := range r.records {
		if record.PatientID == patientID && record.EpisodeID == episodeID && record.Status.Editable() {
			return record, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Update(ctx context.Context, record *model.AssessmentRecord) error {
	if r.failAll {
		return errors.New("repo down")
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeRepo) SaveAnswers(ctx context.Context, id string, answers model.AssessmentAnswers, autosaved bool) error {
	if r.failAll {
		return errors.New("repo down")
	}
	record, ok := r.records[id]
	if !ok {
		return errors.New("no such record")
	}
	record.Answers = answers.Clone()
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if r.failAll {
		return errors.New("repo down")
	}
	delete(r.records, id)
	return nil
}

// fakeSnapshots is an in-memory SnapshotCache.
type fakeSnapshots struct {
	data map[string]model.AssessmentAnswers
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{data: make(map[string]model.AssessmentAnswers)}
}

func (c *fakeSnapshots) Set(ctx context.Context, id string, answers model.AssessmentAnswers) error {
	c.data[id] = answers.Clone()
	return nil
}

func (c *fakeSnapshots) Get(ctx context.Context, id string) (model.AssessmentAnswers, error) {
	return c.data[id], nil
}

func (c *fakeSnapshots) Delete(ctx context.Context, id string) error {
	delete(c.data, id)
	return nil
}

// fakeProgress is an in-memory ProgressCache.
type fakeProgress struct {
	data map[string]model.CompletionResult
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{data: make(map[string]model.CompletionResult)}
}

func (c *fakeProgress) Set(ctx context.Context, id string, result model.CompletionResult) error {
	c.data[id] = result
	return nil
}

func (c *fakeProgress) Get(ctx context.Context, id string) (*model.CompletionResult, error) {
	result, ok := c.data[id]
	if !ok {
		return nil, nil
	}
	return &result, nil
}

func (c *fakeProgress) Delete(ctx context.Context, id string) error {
	delete(c.data, id)
	return nil
}

// fakeBroadcaster records pushed events.
type fakeBroadcaster struct {
	events []string
}

func (b *fakeBroadcaster) BroadcastToSession(assessmentID, msgType string, payload interface{}) {
	b.events = append(b.events, msgType)
}

func (b *fakeBroadcaster) DisconnectSession(assessmentID string) {}

func newTestService() (*AssessmentService, *fakeRepo, *fakeBroadcaster) {
	repo := newFakeRepo()
	broadcaster := &fakeBroadcaster{}
	svc := NewAssessmentService(repo, newFakeSnapshots(), newFakeProgress(), zerolog.Nop())
	svc.SetBroadcaster(broadcaster)
	return svc, repo, broadcaster
}

func createDraft(t *testing.T, svc *AssessmentService) *model.AssessmentRecord {
	t.Helper()
	record, err := svc.Create(context.Background(), DraftSeed{
		PatientID:      "patient-1",
		EpisodeID:      "episode-1",
		ClinicianID:    "clinician-1",
		Type:           model.AssessmentTypeSOC,
		AssessmentDate: "2026-08-30",
	})
	require.NoError(t, err)
	return record
}

// fillAllRequired drives the record to 100% completion through the
// service's own mutation path.
func fillAllRequired(t *testing.T, svc *AssessmentService, id string) {
	t.Helper()
	record, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	patch := make(model.AssessmentAnswers)
	for _, key := range registry.AllRequiredFieldKeys(record.Type) {
		if record.Answers.Filled(key) {
			continue
		}
		spec, ok := registry.GetFieldSpec(key)
		require.True(t, ok, key)
		switch spec.Kind {
		case model.ValueKindEnum:
			patch[key] = model.OptionValue(spec.Options[0])
		case model.ValueKindText:
			patch[key] = model.TextValue("entered")
		case model.ValueKindNumber:
			patch[key] = model.NumberValue(1)
		case model.ValueKindBoolean:
			patch[key] = model.BoolValue(true)
		case model.ValueKindStructuredMap:
			patch[key] = model.MapValue(map[string]string{spec.SubKeys[0]: "1"})
		}
	}
	_, result, err := svc.UpdateAnswers(context.Background(), id, patch)
	require.NoError(t, err)
	require.True(t, result.Complete(), "missing: %v", result.MissingRequiredFields)
}

func TestCreate_SeedsDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, model.StatusDraft, record.Status)
	assert.Equal(t, "1", record.Answers.Get("M0100_ASSESSMENT_REASON").Option,
		"M0100 follows the assessment type")
}

func TestCreate_RejectsDuplicateEditable(t *testing.T) {
	svc, _, _ := newTestService()
	createDraft(t, svc)

	_, err := svc.Create(context.Background(), DraftSeed{
		PatientID: "patient-1",
		EpisodeID: "episode-1",
		Type:      model.AssessmentTypeSOC,
	})
	assert.ErrorIs(t, err, ErrDuplicateEditableAssessment)
}

func TestCreate_AllowsSecondRecordAfterClose(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)

	_, err := svc.Close(context.Background(), record.ID, model.StatusLocked)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), DraftSeed{
		PatientID: "patient-1",
		EpisodeID: "episode-1",
		Type:      model.AssessmentTypeSOC,
	})
	assert.NoError(t, err, "a closed record no longer blocks a new draft")
}

func TestCreate_UnknownType(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), DraftSeed{Type: model.AssessmentType("ANNUAL")})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateAnswers_PersistsAndRecomputes(t *testing.T) {
	svc, repo, broadcaster := newTestService()
	record := createDraft(t, svc)

	updated, result, err := svc.UpdateAnswers(context.Background(), record.ID, model.AssessmentAnswers{
		"M0040_LAST_NAME": model.TextValue("Rivera"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Rivera", updated.Answers.Get("M0040_LAST_NAME").Text)
	assert.Greater(t, result.Percentage, 0)
	assert.Contains(t, broadcaster.events, "completion_update")

	stored := repo.records[record.ID]
	assert.Equal(t, "Rivera", stored.Answers.Get("M0040_LAST_NAME").Text)
}

func TestUpdateAnswers_EmptyValueClearsAnswer(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)

	_, _, err := svc.UpdateAnswers(context.Background(), record.ID, model.AssessmentAnswers{
		"M0040_LAST_NAME": model.TextValue("Rivera"),
	})
	require.NoError(t, err)

	updated, _, err := svc.UpdateAnswers(context.Background(), record.ID, model.AssessmentAnswers{
		"M0040_LAST_NAME": {},
	})
	require.NoError(t, err)
	assert.False(t, updated.Answers.Filled("M0040_LAST_NAME"))
}

func TestUpdateAnswers_RejectsInvalidValue(t *testing.T) {
	svc, repo, _ := newTestService()
	record := createDraft(t, svc)

	_, _, err := svc.UpdateAnswers(context.Background(), record.ID, model.AssessmentAnswers{
		"M0100_ASSESSMENT_REASON": model.OptionValue("42"),
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "M0100_ASSESSMENT_REASON", vErr.Field)

	stored := repo.records[record.ID]
	assert.Equal(t, "1", stored.Answers.Get("M0100_ASSESSMENT_REASON").Option, "rejected patch leaves storage untouched")
}

func TestUpdateAnswers_RejectsUnknownField(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)

	_, _, err := svc.UpdateAnswers(context.Background(), record.ID, model.AssessmentAnswers{
		"M9999_NOT_A_FIELD": model.TextValue("x"),
	})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateAnswers_ReadOnlyAfterSubmit(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)
	fillAllRequired(t, svc, record.ID)

	_, err := svc.Submit(context.Background(), record.ID)
	require.NoError(t, err)

	_, _, err = svc.UpdateAnswers(context.Background(), record.ID, model.AssessmentAnswers{
		"M0040_LAST_NAME": model.TextValue("changed"),
	})
	assert.ErrorIs(t, err, workflow.ErrReadOnlyAssessment)
}

func TestUpdateAnswers_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, _, err := svc.UpdateAnswers(context.Background(), "missing", model.AssessmentAnswers{})
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestReplaceAnswers_DropsAbsentKeys(t *testing.T) {
	svc, repo, _ := newTestService()
	record := createDraft(t, svc)
	ctx := context.Background()

	_, _, err := svc.UpdateAnswers(ctx, record.ID, model.AssessmentAnswers{
		"M0040_FIRST_NAME": model.TextValue("Ana"),
		"M0040_LAST_NAME":  model.TextValue("Rivera"),
	})
	require.NoError(t, err)

	// Replace with a set that omits the last name
	updated, result, err := svc.ReplaceAnswers(ctx, record.ID, model.AssessmentAnswers{
		"M0100_ASSESSMENT_REASON": model.OptionValue("1"),
		"M0040_FIRST_NAME":        model.TextValue("Ana"),
	})
	require.NoError(t, err)
	assert.Greater(t, result.Percentage, 0)

	assert.False(t, updated.Answers.Filled("M0040_LAST_NAME"))
	stored := repo.records[record.ID]
	assert.False(t, stored.Answers.Filled("M0040_LAST_NAME"), "an omitted key is dropped from storage")
	assert.Equal(t, "Ana", stored.Answers.Get("M0040_FIRST_NAME").Text)
}

func TestReplaceAnswers_GuardsAndValidates(t *testing.T) {
	svc, repo, _ := newTestService()
	record := createDraft(t, svc)
	ctx := context.Background()

	_, _, err := svc.ReplaceAnswers(ctx, record.ID, model.AssessmentAnswers{
		"M0100_ASSESSMENT_REASON": model.OptionValue("42"),
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "1", repo.records[record.ID].Answers.Get("M0100_ASSESSMENT_REASON").Option,
		"rejected replacement leaves storage untouched")

	fillAllRequired(t, svc, record.ID)
	_, err = svc.Submit(ctx, record.ID)
	require.NoError(t, err)
	_, _, err = svc.ReplaceAnswers(ctx, record.ID, model.AssessmentAnswers{})
	assert.ErrorIs(t, err, workflow.ErrReadOnlyAssessment)
}

func TestApplyGroupSelection_ResolvesExclusivity(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)

	_, _, err := svc.ApplyGroupSelection(context.Background(), record.ID, registry.GroupHospRisk, "M1033_HISTORY_OF_FALLS", true)
	require.NoError(t, err)

	updated, _, err := svc.ApplyGroupSelection(context.Background(), record.ID, registry.GroupHospRisk, "M1033_NONE", true)
	require.NoError(t, err)

	assert.True(t, updated.Answers.Get("M1033_NONE").IsSelected())
	assert.False(t, updated.Answers.Get("M1033_HISTORY_OF_FALLS").IsSelected())
}

func TestSubmit_RejectsIncomplete(t *testing.T) {
	svc, repo, _ := newTestService()
	record := createDraft(t, svc)

	_, err := svc.Submit(context.Background(), record.ID)
	assert.ErrorIs(t, err, workflow.ErrIncompleteAssessment)

	stored := repo.records[record.ID]
	assert.Equal(t, model.StatusDraft, stored.Status, "failed submit must not move the record")
}

func TestSubmit_CompleteDraft(t *testing.T) {
	svc, _, broadcaster := newTestService()
	record := createDraft(t, svc)
	fillAllRequired(t, svc, record.ID)

	submitted, err := svc.Submit(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, submitted.Status)
	assert.Contains(t, broadcaster.events, "status_changed")
}

func TestReview_ApproveAndReject(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	t.Run("approve is terminal", func(t *testing.T) {
		record := createDraft(t, svc)
		fillAllRequired(t, svc, record.ID)
		_, err := svc.Submit(ctx, record.ID)
		require.NoError(t, err)

		reviewed, err := svc.Review(ctx, record.ID, "reviewer-1", model.DecisionApprove, "looks right")
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, reviewed.Status)
		assert.Equal(t, "reviewer-1", reviewed.ReviewedBy)
		assert.NotNil(t, reviewed.ReviewedAt)

		_, err = svc.Review(ctx, record.ID, "reviewer-1", model.DecisionReject, "")
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})

	t.Run("reject reopens for editing and resubmission", func(t *testing.T) {
		svc, _, _ := newTestService()
		record := createDraft(t, svc)
		fillAllRequired(t, svc, record.ID)
		_, err := svc.Submit(ctx, record.ID)
		require.NoError(t, err)

		reviewed, err := svc.Review(ctx, record.ID, "reviewer-1", model.DecisionReject, "recheck M1830")
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, reviewed.Status)
		assert.Equal(t, "recheck M1830", reviewed.ReviewerComments)

		_, _, err = svc.UpdateAnswers(ctx, record.ID, model.AssessmentAnswers{
			"M1830_BATHING": model.OptionValue("2"),
		})
		require.NoError(t, err)

		resubmitted, err := svc.Submit(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusSubmitted, resubmitted.Status)
	})
}

func TestReview_RejectsDraft(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)

	_, err := svc.Review(context.Background(), record.ID, "reviewer-1", model.DecisionApprove, "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestAutosave_BestEffort(t *testing.T) {
	svc, repo, _ := newTestService()
	record := createDraft(t, svc)
	ctx := context.Background()

	answers := record.Answers.Clone()
	answers["M0040_LAST_NAME"] = model.TextValue("Okafor")

	t.Run("persists work in progress", func(t *testing.T) {
		require.NoError(t, svc.Autosave(ctx, record.ID, answers))
		assert.Equal(t, "Okafor", repo.records[record.ID].Answers.Get("M0040_LAST_NAME").Text)
	})

	t.Run("storage failure is swallowed", func(t *testing.T) {
		repo.failAll = true
		defer func() { repo.failAll = false }()
		assert.NoError(t, svc.Autosave(ctx, record.ID, answers))
	})

	t.Run("read-only record still rejects", func(t *testing.T) {
		_, err := svc.Close(ctx, record.ID, model.StatusCompleted)
		require.NoError(t, err)
		assert.ErrorIs(t, svc.Autosave(ctx, record.ID, answers), workflow.ErrReadOnlyAssessment)
	})
}

func TestClose_TargetsOnly(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)

	_, err := svc.Close(context.Background(), record.ID, model.StatusApproved)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	closed, err := svc.Close(context.Background(), record.ID, model.StatusLocked)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLocked, closed.Status)

	// Terminal: no further transitions
	_, err = svc.Close(context.Background(), record.ID, model.StatusCompleted)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestDelete_RemovesRecordAndCaches(t *testing.T) {
	repo := newFakeRepo()
	snapshots := newFakeSnapshots()
	progress := newFakeProgress()
	svc := NewAssessmentService(repo, snapshots, progress, zerolog.Nop())

	record := createDraft(t, svc)
	require.NoError(t, snapshots.Set(context.Background(), record.ID, record.Answers))

	require.NoError(t, svc.Delete(context.Background(), record.ID))

	assert.NotContains(t, repo.records, record.ID)
	assert.NotContains(t, snapshots.data, record.ID)
	assert.NotContains(t, progress.data, record.ID)
}

func TestCarePlanSeed_FromService(t *testing.T) {
	svc, _, _ := newTestService()
	record := createDraft(t, svc)

	_, _, err := svc.UpdateAnswers(context.Background(), record.ID, model.AssessmentAnswers{
		"M1021_PRIMARY_DX":       model.TextValue("I50.9"),
		"M1021_PRIMARY_SEVERITY": model.OptionValue("3"),
	})
	require.NoError(t, err)

	draft, err := svc.CarePlanSeed(context.Background(), record.ID)
	require.NoError(t, err)
	require.NotNil(t, draft.PrimaryDiagnosis)
	assert.Equal(t, "I50.9", draft.PrimaryDiagnosis.Code)
	assert.Equal(t, record.ID, draft.AssessmentID)
}
