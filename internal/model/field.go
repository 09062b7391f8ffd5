package model

// ValueKind defines the value domain of a field
type ValueKind string

const (
	ValueKindEnum          ValueKind = "ENUM"           // Closed option list
	ValueKindText          ValueKind = "TEXT"           // Free text
	ValueKindNumber        ValueKind = "NUMBER"         // Numeric entry
	ValueKindBoolean       ValueKind = "BOOLEAN"        // Checkbox
	ValueKindStructuredMap ValueKind = "STRUCTURED_MAP" // Sub-keyed entries
)

// Section groups fields on the instrument
type Section string

const (
	SectionDemographics   Section = "demographics"
	SectionPayment        Section = "payment"
	SectionDiagnoses      Section = "diagnoses"
	SectionRiskFactors    Section = "risk_factors"
	SectionSensory        Section = "sensory"
	SectionIntegumentary  Section = "integumentary"
	SectionRespiratory    Section = "respiratory"
	SectionCardiac        Section = "cardiac"
	SectionElimination    Section = "elimination"
	SectionNeuroBehavior  Section = "neuro_behavioral"
	SectionFunctional     Section = "functional"
	SectionMedications    Section = "medications"
	SectionCareManagement Section = "care_management"
	SectionEmergentCare   Section = "emergent_care"
	SectionAdmission      Section = "admission"
	SectionDischarge      Section = "discharge"
)

// AssessmentType identifies the timepoint the instrument is collected at
type AssessmentType string

const (
	AssessmentTypeSOC       AssessmentType = "SOC"       // Start of care
	AssessmentTypeROC       AssessmentType = "ROC"       // Resumption of care
	AssessmentTypeRecert    AssessmentType = "RECERT"    // Recertification
	AssessmentTypeDischarge AssessmentType = "DISCHARGE" // Discharge from agency
)

// FieldSpec is the canonical schema entry for one instrument field.
// Specs are static configuration loaded once at process start.
type FieldSpec struct {
	Key      string    `json:"key"`
	Section  Section   `json:"section"`
	Kind     ValueKind `json:"kind"`
	Required bool      `json:"required"`
	// RequiredFor narrows Required to specific assessment types.
	// Empty means required for every type (when Required is set).
	RequiredFor []AssessmentType `json:"requiredFor,omitempty"`
	// Options is the closed value domain for ENUM fields
	Options []string `json:"options,omitempty"`
	// SubKeys enumerates the entries of a STRUCTURED_MAP field
	SubKeys []string `json:"subKeys,omitempty"`
	// Default is the prefill value for new drafts, empty when none
	Default string `json:"default,omitempty"`
	// GroupID links BOOLEAN fields into a mutually-exclusive checkbox group
	GroupID string `json:"groupId,omitempty"`
}

// RequiredForType reports whether the field counts as required when the
// instrument is collected for the given assessment type.
func (f *FieldSpec) RequiredForType(t AssessmentType) bool {
	if !f.Required {
		return false
	}
	if len(f.RequiredFor) == 0 {
		return true
	}
	for _, rt := range f.RequiredFor {
		if rt == t {
			return true
		}
	}
	return false
}

// ExclusiveGroup is a checkbox group where the designated "none" member
// and the other members cannot be selected together.
type ExclusiveGroup struct {
	ID      string   `json:"id"`
	Members []string `json:"members"` // Includes the none member
	NoneKey string   `json:"noneKey"`
}

// Siblings returns the member keys other than the given one.
func (g *ExclusiveGroup) Siblings(key string) []string {
	siblings := make([]string, 0, len(g.Members)-1)
	for _, m := range g.Members {
		if m != key {
			siblings = append(siblings, m)
		}
	}
	return siblings
}

// Contains reports whether key is a member of the group.
func (g *ExclusiveGroup) Contains(key string) bool {
	for _, m := range g.Members {
		if m == key {
			return true
		}
	}
	return false
}
