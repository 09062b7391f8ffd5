package model

import "time"

// CarePlanDiagnosis is one diagnosis row carried into the care-plan seed
type CarePlanDiagnosis struct {
	Code     string `json:"code"`
	Severity string `json:"severity,omitempty"`
}

// CarePlanDraft is the one-way projection handed to the care-plan
// collaborator at submission time. The engine never mutates it after
// handoff; absent source answers leave target fields empty.
type CarePlanDraft struct {
	AssessmentID     string              `json:"assessmentId"`
	PatientID        string              `json:"patientId"`
	EpisodeID        string              `json:"episodeId"`
	AssessmentType   AssessmentType      `json:"assessmentType"`
	PrimaryDiagnosis *CarePlanDiagnosis  `json:"primaryDiagnosis,omitempty"`
	OtherDiagnoses   []CarePlanDiagnosis `json:"otherDiagnoses,omitempty"`
	FunctionalStatus map[string]string   `json:"functionalStatus,omitempty"`
	RiskFactors      []string            `json:"riskFactors,omitempty"`
	AssistanceNeeds  map[string]string   `json:"assistanceNeeds,omitempty"`
	GeneratedAt      time.Time           `json:"generatedAt"`
}
