package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"careassess/internal/groups"
	"careassess/internal/model"
	"careassess/internal/service"
	"careassess/internal/transport/rest/middleware"
	"careassess/internal/workflow"
)

// AssessmentHandler handles assessment endpoints
type AssessmentHandler struct {
	svc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

// UpdateAnswersRequest is the request body for answer patches
type UpdateAnswersRequest struct {
	Answers model.AssessmentAnswers `json:"answers"`
}

// GroupSelectionRequest is the request body for checkbox group toggles
type GroupSelectionRequest struct {
	GroupID  string `json:"groupId"`
	FieldKey string `json:"fieldKey"`
	Selected bool   `json:"selected"`
}

// ReviewRequest is the request body for a reviewer decision
type ReviewRequest struct {
	Decision model.ReviewDecision `json:"decision"`
	Comments string               `json:"comments"`
}

// CloseRequest is the request body for closing an editable record
type CloseRequest struct {
	Status model.AssessmentStatus `json:"status"`
}

// Create handles POST /v1/assessments
func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var seed service.DraftSeed
	if err := json.NewDecoder(r.Body).Decode(&seed); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	seed.ClinicianID = userID

	record, err := h.svc.Create(r.Context(), seed)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// Get handles GET /v1/assessments/{assessmentId}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	record, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// ListByPatient handles GET /v1/patients/{patientId}/assessments
func (h *AssessmentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	records, err := h.svc.ListByPatient(r.Context(), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assessments": records})
}

// UpdateAnswers handles PUT /v1/assessments/{assessmentId}/answers
func (h *AssessmentHandler) UpdateAnswers(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	var req UpdateAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, completion, err := h.svc.UpdateAnswers(r.Context(), id, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessment": record,
		"completion": completion,
	})
}

// ApplyGroupSelection handles PUT /v1/assessments/{assessmentId}/groups
func (h *AssessmentHandler) ApplyGroupSelection(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	var req GroupSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, completion, err := h.svc.ApplyGroupSelection(r.Context(), id, req.GroupID, req.FieldKey, req.Selected)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessment": record,
		"completion": completion,
	})
}

// Autosave handles PUT /v1/assessments/{assessmentId}/autosave
func (h *AssessmentHandler) Autosave(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	var req UpdateAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Autosave(r.Context(), id, req.Answers); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"autosaved": true})
}

// Completion handles GET /v1/assessments/{assessmentId}/completion
func (h *AssessmentHandler) Completion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	result, err := h.svc.Completion(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Submit handles POST /v1/assessments/{assessmentId}/submit
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	record, err := h.svc.Submit(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Review handles POST /v1/assessments/{assessmentId}/review
func (h *AssessmentHandler) Review(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]
	reviewerID := middleware.GetUserID(r.Context())
	if reviewerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Decision != model.DecisionApprove && req.Decision != model.DecisionReject {
		writeError(w, http.StatusBadRequest, "decision must be APPROVE or REJECT")
		return
	}

	record, err := h.svc.Review(r.Context(), id, reviewerID, req.Decision, req.Comments)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Close handles POST /v1/assessments/{assessmentId}/close
func (h *AssessmentHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	var req CloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status != model.StatusLocked && req.Status != model.StatusCompleted {
		writeError(w, http.StatusBadRequest, "status must be LOCKED or COMPLETED")
		return
	}

	record, err := h.svc.Close(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /v1/assessments/{assessmentId}
func (h *AssessmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// CarePlanSeed handles GET /v1/assessments/{assessmentId}/careplan-seed
func (h *AssessmentHandler) CarePlanSeed(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	draft, err := h.svc.CarePlanSeed(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// writeServiceError maps service and workflow errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &vErr),
		errors.Is(err, groups.ErrUnknownGroup),
		errors.Is(err, groups.ErrNotAMember):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, workflow.ErrReadOnlyAssessment),
		errors.Is(err, workflow.ErrIncompleteAssessment),
		errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, service.ErrDuplicateEditableAssessment):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
