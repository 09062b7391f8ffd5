package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"careassess/internal/cache"
	"careassess/internal/careplan"
	"careassess/internal/completion"
	"careassess/internal/groups"
	"careassess/internal/model"
	"careassess/internal/registry"
	"careassess/internal/repository"
	"careassess/internal/skiplogic"
	"careassess/internal/workflow"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrDuplicateEditableAssessment rejects a second editable record for
	// the same patient/episode pair
	ErrDuplicateEditableAssessment = errors.New("an editable assessment already exists for this patient and episode")
	// ErrTransportFailure wraps storage errors surfaced to the caller
	ErrTransportFailure = errors.New("storage operation failed")
)

// DraftSeed is the input for starting a new assessment
type DraftSeed struct {
	PatientID      string               `json:"patientId"`
	EpisodeID      string               `json:"episodeId"`
	ClinicianID    string               `json:"clinicianId"`
	Type           model.AssessmentType `json:"assessmentType"`
	AssessmentDate string               `json:"assessmentDate"`
}

// AssessmentService is the engine's mutation entry point: it owns answer
// validation, skip/completion recomputation, lifecycle transitions, and
// persistence of assessment records.
type AssessmentService struct {
	repo        repository.AssessmentRepo
	snapshots   cache.SnapshotCache
	progress    cache.ProgressCache
	broadcaster Broadcaster
	sessions    SessionCloser
	log         zerolog.Logger
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(repo repository.AssessmentRepo, snapshots cache.SnapshotCache, progress cache.ProgressCache, log zerolog.Logger) *AssessmentService {
	return &AssessmentService{
		repo:      repo,
		snapshots: snapshots,
		progress:  progress,
		log:       log.With().Str("component", "assessment").Logger(),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetSessionCloser sets the hook that syncs lifecycle transitions into
// open editing sessions.
func (s *AssessmentService) SetSessionCloser(c SessionCloser) {
	s.sessions = c
}

// Create starts a new draft for a patient/episode pair. At most one
// editable record may exist per pair; enforced by lookup-before-create.
func (s *AssessmentService) Create(ctx context.Context, seed DraftSeed) (*model.AssessmentRecord, error) {
	if _, ok := registry.ReasonCode(seed.Type); !ok {
		return nil, invalidField("assessmentType", "unknown assessment type %q", seed.Type)
	}

	existing, err := s.repo.FindEditableByEpisode(ctx, seed.PatientID, seed.EpisodeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEditableAssessment, existing.ID)
	}

	answers := registry.Defaults(seed.Type)

	record := &model.AssessmentRecord{
		PatientID:      seed.PatientID,
		EpisodeID:      seed.EpisodeID,
		ClinicianID:    seed.ClinicianID,
		Type:           seed.Type,
		AssessmentDate: seed.AssessmentDate,
		Status:         model.StatusDraft,
		Answers:        answers,
	}

	if _, err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	s.cacheProgress(ctx, record)
	return record, nil
}

// Get retrieves an assessment by id
func (s *AssessmentService) Get(ctx context.Context, id string) (*model.AssessmentRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	if record == nil {
		return nil, ErrAssessmentNotFound
	}
	return record, nil
}

// ListByPatient retrieves all assessments for a patient
func (s *AssessmentService) ListByPatient(ctx context.Context, patientID string) ([]*model.AssessmentRecord, error) {
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	return records, nil
}

// UpdateAnswers merges an answer patch into the record, recomputes skip
// state and completion, and persists. Explicit save: failures surface to
// the caller. An empty patch value clears the stored answer; answers are
// otherwise never dropped.
func (s *AssessmentService) UpdateAnswers(ctx context.Context, id string, patch model.AssessmentAnswers) (*model.AssessmentRecord, model.CompletionResult, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, model.CompletionResult{}, err
	}
	if err := workflow.GuardEdit(record.Status); err != nil {
		return nil, model.CompletionResult{}, err
	}

	for key, value := range patch {
		if err := ValidateAnswer(key, value); err != nil {
			return nil, model.CompletionResult{}, err
		}
	}

	next := record.Answers.Clone()
	if next == nil {
		next = make(model.AssessmentAnswers)
	}
	for key, value := range patch {
		if value.IsEmpty() {
			delete(next, key)
			continue
		}
		next[key] = value
	}
	record.Answers = next

	if err := s.repo.SaveAnswers(ctx, id, next, false); err != nil {
		return nil, model.CompletionResult{}, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	result := s.recompute(ctx, record)
	return record, result, nil
}

// ReplaceAnswers swaps the full answers document for an assessment.
// Unlike UpdateAnswers, a key absent from the new set is dropped from
// storage, so a cleared answer stays cleared.
func (s *AssessmentService) ReplaceAnswers(ctx context.Context, id string, answers model.AssessmentAnswers) (*model.AssessmentRecord, model.CompletionResult, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, model.CompletionResult{}, err
	}
	if err := workflow.GuardEdit(record.Status); err != nil {
		return nil, model.CompletionResult{}, err
	}

	next := make(model.AssessmentAnswers, len(answers))
	for key, value := range answers {
		if err := ValidateAnswer(key, value); err != nil {
			return nil, model.CompletionResult{}, err
		}
		if value.IsEmpty() {
			continue
		}
		next[key] = value
	}
	record.Answers = next

	if err := s.repo.SaveAnswers(ctx, id, next, false); err != nil {
		return nil, model.CompletionResult{}, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	result := s.recompute(ctx, record)
	return record, result, nil
}

// ApplyGroupSelection toggles a mutually-exclusive checkbox group member
// and persists the resolved snapshot.
func (s *AssessmentService) ApplyGroupSelection(ctx context.Context, id, groupID, fieldKey string, selected bool) (*model.AssessmentRecord, model.CompletionResult, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, model.CompletionResult{}, err
	}
	if err := workflow.GuardEdit(record.Status); err != nil {
		return nil, model.CompletionResult{}, err
	}

	next, err := groups.ApplyGroupSelection(record.Answers, groupID, fieldKey, selected)
	if err != nil {
		return nil, model.CompletionResult{}, err
	}
	record.Answers = next

	if err := s.repo.SaveAnswers(ctx, id, next, false); err != nil {
		return nil, model.CompletionResult{}, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	result := s.recompute(ctx, record)
	return record, result, nil
}

// Autosave persists an answer snapshot on behalf of the autosave path.
// Best-effort: storage failures are logged and swallowed, never surfaced.
// Read-only and validation violations still reject the write, before it
// reaches storage.
func (s *AssessmentService) Autosave(ctx context.Context, id string, answers model.AssessmentAnswers) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAssessmentNotFound) {
			return err
		}
		s.log.Warn().Err(err).Str("assessmentId", id).Msg("autosave lookup failed")
		return nil
	}
	if err := workflow.GuardEdit(record.Status); err != nil {
		return err
	}
	for key, value := range answers {
		if err := ValidateAnswer(key, value); err != nil {
			return err
		}
	}

	if err := s.snapshots.Set(ctx, id, answers); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", id).Msg("snapshot cache write failed")
	}

	if err := s.repo.SaveAnswers(ctx, id, answers, true); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", id).Msg("autosave persist failed")
		return nil
	}

	record.Answers = answers
	s.recompute(ctx, record)
	return nil
}

// Completion recomputes the completion result for an assessment
func (s *AssessmentService) Completion(ctx context.Context, id string) (model.CompletionResult, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return model.CompletionResult{}, err
	}
	skipped := skiplogic.ComputeSkippedFields(record.Answers)
	result := completion.ComputeCompletion(record.Answers, skipped, record.Type)
	s.cacheProgress(ctx, record)
	return result, nil
}

// Submit moves an editable assessment to SUBMITTED. Guarded by 100%
// completion of the applicable required fields.
func (s *AssessmentService) Submit(ctx context.Context, id string) (*model.AssessmentRecord, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	skipped := skiplogic.ComputeSkippedFields(record.Answers)
	result := completion.ComputeCompletion(record.Answers, skipped, record.Type)
	if err := workflow.GuardSubmit(record.Status, result); err != nil {
		return nil, err
	}

	record.Status = model.StatusSubmitted
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	s.syncSessionStatus(record)
	s.broadcastStatus(record)
	return record, nil
}

// Review applies a reviewer decision to a submitted assessment. The
// reviewer identity is taken from the authenticated caller; that it
// differs from the authoring clinician is enforced upstream.
func (s *AssessmentService) Review(ctx context.Context, id, reviewerID string, decision model.ReviewDecision, comments string) (*model.AssessmentRecord, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := workflow.StatusForDecision(decision)
	if err != nil {
		return nil, invalidField("decision", "%v", err)
	}
	next, err := workflow.Transition(record.Status, target)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record.Status = next
	record.ReviewerComments = comments
	record.ReviewedBy = reviewerID
	record.ReviewedAt = &now

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	s.syncSessionStatus(record)
	s.broadcastStatus(record)
	return record, nil
}

// Close marks an assessment LOCKED or COMPLETED outside the review
// workflow. Terminal either way.
func (s *AssessmentService) Close(ctx context.Context, id string, target model.AssessmentStatus) (*model.AssessmentRecord, error) {
	if target != model.StatusLocked && target != model.StatusCompleted {
		return nil, invalidField("status", "close target must be LOCKED or COMPLETED")
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := workflow.Transition(record.Status, target)
	if err != nil {
		return nil, err
	}
	record.Status = next

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	s.syncSessionStatus(record)
	s.broadcastStatus(record)
	return record, nil
}

// Delete removes an assessment and its cached state
func (s *AssessmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	if err := s.snapshots.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", id).Msg("snapshot cache delete failed")
	}
	if err := s.progress.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", id).Msg("progress cache delete failed")
	}
	return nil
}

// CarePlanSeed derives the care-plan draft from an assessment
func (s *AssessmentService) CarePlanSeed(ctx context.Context, id string) (*model.CarePlanDraft, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return careplan.DeriveCarePlanSeed(record), nil
}

// recompute derives skip state and completion after a mutation, refreshes
// the display cache, and pushes a progress event to the session.
func (s *AssessmentService) recompute(ctx context.Context, record *model.AssessmentRecord) model.CompletionResult {
	skipped := skiplogic.ComputeSkippedFields(record.Answers)
	result := completion.ComputeCompletion(record.Answers, skipped, record.Type)

	if err := s.progress.Set(ctx, record.ID, result); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", record.ID).Msg("progress cache write failed")
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(record.ID, "completion_update", map[string]interface{}{
			"assessmentId":          record.ID,
			"percentage":            result.Percentage,
			"missingRequiredFields": result.MissingRequiredFields,
			"skippedFields":         skipped.Keys(),
		})
	}
	return result
}

func (s *AssessmentService) cacheProgress(ctx context.Context, record *model.AssessmentRecord) {
	skipped := skiplogic.ComputeSkippedFields(record.Answers)
	result := completion.ComputeCompletion(record.Answers, skipped, record.Type)
	if err := s.progress.Set(ctx, record.ID, result); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", record.ID).Msg("progress cache write failed")
	}
}

func (s *AssessmentService) syncSessionStatus(record *model.AssessmentRecord) {
	if s.sessions != nil {
		s.sessions.Invalidate(record.ID, record.Status)
	}
}

func (s *AssessmentService) broadcastStatus(record *model.AssessmentRecord) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToSession(record.ID, "status_changed", map[string]interface{}{
		"assessmentId": record.ID,
		"status":       record.Status,
	})
}
