package model

import "time"

// AssessmentStatus is the lifecycle state of an assessment record
type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "DRAFT"     // Editable, initial
	StatusSubmitted AssessmentStatus = "SUBMITTED" // Immutable, pending review
	StatusApproved  AssessmentStatus = "APPROVED"  // Terminal, immutable
	StatusRejected  AssessmentStatus = "REJECTED"  // Editable again, carries reviewer comments
	StatusLocked    AssessmentStatus = "LOCKED"    // Terminal, closed outside review
	StatusCompleted AssessmentStatus = "COMPLETED" // Terminal, closed outside review
)

// Editable reports whether answers may be mutated in this status.
func (s AssessmentStatus) Editable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Terminal reports whether no further transition leaves this status.
func (s AssessmentStatus) Terminal() bool {
	return s == StatusApproved || s == StatusLocked || s == StatusCompleted
}

// ReviewDecision is a reviewer's verdict on a submitted assessment
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "APPROVE"
	DecisionReject  ReviewDecision = "REJECT"
)

// AssessmentRecord is the persisted aggregate for one assessment
type AssessmentRecord struct {
	ID               string            `json:"id" bson:"_id,omitempty"`
	PatientID        string            `json:"patientId" bson:"patientId"`
	EpisodeID        string            `json:"episodeId" bson:"episodeId"`
	ClinicianID      string            `json:"clinicianId" bson:"clinicianId"`
	Type             AssessmentType    `json:"assessmentType" bson:"assessmentType"`
	AssessmentDate   string            `json:"assessmentDate" bson:"assessmentDate"`
	Status           AssessmentStatus  `json:"status" bson:"status"`
	Answers          AssessmentAnswers `json:"answers" bson:"answers"`
	ReviewerComments string            `json:"reviewerComments,omitempty" bson:"reviewerComments,omitempty"`
	ReviewedBy       string            `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time        `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	LastAutosavedAt  *time.Time        `json:"lastAutosavedAt,omitempty" bson:"lastAutosavedAt,omitempty"`
	CreatedAt        time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// CompletionResult reports how complete the applicable required subset is.
// Percentage is 100 exactly when MissingRequiredFields is empty. Derived
// state: recomputed on every mutation, cached only for display.
type CompletionResult struct {
	Percentage            int      `json:"percentage"`
	MissingRequiredFields []string `json:"missingRequiredFields"`
}

// Complete reports whether every applicable required field is filled.
func (c CompletionResult) Complete() bool {
	return len(c.MissingRequiredFields) == 0
}
