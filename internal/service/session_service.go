package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"careassess/internal/autosave"
	"careassess/internal/cache"
	"careassess/internal/completion"
	"careassess/internal/groups"
	"careassess/internal/model"
	"careassess/internal/skiplogic"
	"careassess/internal/workflow"
)

// ErrSessionNotFound means no editing session is open for the assessment
var ErrSessionNotFound = errors.New("no editing session for assessment")

// Session is one clinician's editing session over one assessment. It owns
// the working answer copy and the autosave coordinator; mutations flow
// through it while the session is open, and the coordinator persists the
// working copy in the background. The timer lives and dies with the
// session, never with any presentation component.
type Session struct {
	AssessmentID string
	ClinicianID  string

	svc       *AssessmentService
	snapshots cache.SnapshotCache
	coord     *autosave.Coordinator
	log       zerolog.Logger

	mu      sync.Mutex
	status  model.AssessmentStatus
	answers model.AssessmentAnswers
	atype   model.AssessmentType
	dirty   bool
}

// Apply merges an answer patch into the working copy, recomputes skip
// state and completion, and caches the snapshot for crash recovery. The
// write reaches Mongo on the next autosave tick or explicit save.
func (s *Session) Apply(ctx context.Context, patch model.AssessmentAnswers) (model.CompletionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := workflow.GuardEdit(s.status); err != nil {
		return model.CompletionResult{}, err
	}
	for key, value := range patch {
		if err := ValidateAnswer(key, value); err != nil {
			return model.CompletionResult{}, err
		}
	}

	for key, value := range patch {
		if value.IsEmpty() {
			delete(s.answers, key)
			continue
		}
		s.answers[key] = value
	}
	s.dirty = true

	return s.recomputeLocked(ctx), nil
}

// ApplyGroupSelection toggles a mutually-exclusive group member on the
// working copy.
func (s *Session) ApplyGroupSelection(ctx context.Context, groupID, fieldKey string, selected bool) (model.CompletionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := workflow.GuardEdit(s.status); err != nil {
		return model.CompletionResult{}, err
	}

	next, err := groups.ApplyGroupSelection(s.answers, groupID, fieldKey, selected)
	if err != nil {
		return model.CompletionResult{}, err
	}
	s.answers = next
	s.dirty = true

	return s.recomputeLocked(ctx), nil
}

// Save persists the working copy now, replacing the stored answers
// document so cleared keys stay cleared. Explicit save: failures surface
// to the caller so the UI can alert and retry.
func (s *Session) Save(ctx context.Context) (model.CompletionResult, error) {
	s.mu.Lock()
	snapshot := s.answers.Clone()
	s.mu.Unlock()

	_, result, err := s.svc.ReplaceAnswers(ctx, s.AssessmentID, snapshot)
	if err != nil {
		return model.CompletionResult{}, err
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return result, nil
}

// Submit saves the working copy and moves the assessment to SUBMITTED.
func (s *Session) Submit(ctx context.Context) (*model.AssessmentRecord, error) {
	if _, err := s.Save(ctx); err != nil {
		return nil, err
	}
	record, err := s.svc.Submit(ctx, s.AssessmentID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.status = record.Status
	s.mu.Unlock()
	return record, nil
}

// Answers returns a copy of the working answer set.
func (s *Session) Answers() model.AssessmentAnswers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

// AutosaveState exposes the coordinator state, mainly for diagnostics.
func (s *Session) AutosaveState() autosave.State {
	return s.coord.CurrentState()
}

// autosaveTick is the coordinator's save function: persist the working
// copy if it changed since the last write. Failures are the coordinator's
// problem; it logs, counts, and escalates. The stored record's status is
// re-read on every tick: a submit, review, or close that happened outside
// this session makes the record read-only and blocks the write.
func (s *Session) autosaveTick(ctx context.Context) error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.answers.Clone()
	s.mu.Unlock()

	record, err := s.svc.Get(ctx, s.AssessmentID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.status = record.Status
	s.mu.Unlock()
	if err := workflow.GuardEdit(record.Status); err != nil {
		return err
	}

	if err := s.svc.repo.SaveAnswers(ctx, s.AssessmentID, snapshot, true); err != nil {
		return err
	}
	if err := s.snapshots.Set(ctx, s.AssessmentID, snapshot); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", s.AssessmentID).Msg("snapshot cache write failed")
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	if b := s.svc.broadcaster; b != nil {
		b.BroadcastToSession(s.AssessmentID, "autosave_ok", map[string]interface{}{
			"assessmentId": s.AssessmentID,
			"savedAt":      time.Now(),
		})
	}
	return nil
}

func (s *Session) recomputeLocked(ctx context.Context) model.CompletionResult {
	skipped := skiplogic.ComputeSkippedFields(s.answers)
	result := completion.ComputeCompletion(s.answers, skipped, s.atype)

	if err := s.snapshots.Set(ctx, s.AssessmentID, s.answers); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", s.AssessmentID).Msg("snapshot cache write failed")
	}
	if err := s.svc.progress.Set(ctx, s.AssessmentID, result); err != nil {
		s.log.Warn().Err(err).Str("assessmentId", s.AssessmentID).Msg("progress cache write failed")
	}

	if b := s.svc.broadcaster; b != nil {
		b.BroadcastToSession(s.AssessmentID, "completion_update", map[string]interface{}{
			"assessmentId":          s.AssessmentID,
			"percentage":            result.Percentage,
			"missingRequiredFields": result.MissingRequiredFields,
			"skippedFields":         skipped.Keys(),
		})
	}
	return result
}

// SessionManager opens and closes editing sessions, one per assessment.
type SessionManager struct {
	svc       *AssessmentService
	snapshots cache.SnapshotCache
	log       zerolog.Logger
	interval  time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager creates a new session manager. interval <= 0 uses the
// autosave default.
func NewSessionManager(svc *AssessmentService, snapshots cache.SnapshotCache, interval time.Duration, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		svc:       svc,
		snapshots: snapshots,
		log:       log.With().Str("component", "session").Logger(),
		interval:  interval,
		sessions:  make(map[string]*Session),
	}
}

// Start opens an editing session for an assessment, starting its autosave
// coordinator. One active editor per assessment: a second Start for the
// same assessment returns the existing session.
func (m *SessionManager) Start(ctx context.Context, assessmentID, clinicianID string) (*Session, error) {
	m.mu.Lock()
	if existing, ok := m.sessions[assessmentID]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.mu.Unlock()

	record, err := m.svc.Get(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := workflow.GuardEdit(record.Status); err != nil {
		return nil, err
	}

	answers := record.Answers.Clone()
	if answers == nil {
		answers = make(model.AssessmentAnswers)
	}

	session := &Session{
		AssessmentID: assessmentID,
		ClinicianID:  clinicianID,
		svc:          m.svc,
		snapshots:    m.snapshots,
		log:          m.log,
		status:       record.Status,
		answers:      answers,
		atype:        record.Type,
	}
	session.coord = autosave.New(session.autosaveTick, m.interval, m.log, func(consecutive int) {
		if b := m.svc.broadcaster; b != nil {
			b.BroadcastToSession(assessmentID, "autosave_warning", map[string]interface{}{
				"assessmentId":        assessmentID,
				"consecutiveFailures": consecutive,
				"message":             fmt.Sprintf("autosave has failed %d times in a row; recent changes may not be saved", consecutive),
			})
		}
	})

	m.mu.Lock()
	if existing, ok := m.sessions[assessmentID]; ok {
		// Lost the race to another Start for the same assessment
		m.mu.Unlock()
		return existing, nil
	}
	m.sessions[assessmentID] = session
	m.mu.Unlock()

	session.coord.Start(ctx)
	m.log.Info().Str("assessmentId", assessmentID).Str("clinicianId", clinicianID).Msg("editing session started")
	return session, nil
}

// Get returns the open session for an assessment.
func (m *SessionManager) Get(assessmentID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[assessmentID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Invalidate syncs a lifecycle transition into the open session for an
// assessment, if any. When the new status is still editable the session
// keeps running with the refreshed status; otherwise the session ends and
// its autosave coordinator stops.
func (m *SessionManager) Invalidate(assessmentID string, status model.AssessmentStatus) {
	m.mu.Lock()
	session, ok := m.sessions[assessmentID]
	m.mu.Unlock()
	if !ok {
		return
	}

	session.mu.Lock()
	session.status = status
	session.mu.Unlock()

	if workflow.GuardEdit(status) != nil {
		m.End(assessmentID)
	}
}

// End closes the session and cancels its autosave coordinator exactly
// once. Deterministic teardown: by the time End returns, no further
// autosave for this session can fire.
func (m *SessionManager) End(assessmentID string) {
	m.mu.Lock()
	session, ok := m.sessions[assessmentID]
	if ok {
		delete(m.sessions, assessmentID)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	session.coord.Stop()
	m.log.Info().Str("assessmentId", assessmentID).Msg("editing session ended")
}
