package skiplogic

import "careassess/internal/model"

// Rule marks a group of dependent fields inapplicable when its trigger
// condition holds. Rules are independent: no rule's trigger is ever made
// skippable by another rule, so evaluation order does not matter. A
// predicate must treat missing or empty trigger values as not satisfied,
// so sections never collapse before the clinician reaches them.
type Rule struct {
	Name     string
	Triggers []string
	When     func(values []model.AnswerValue) bool
	Skips    []string
}

// single builds a rule with one trigger field.
func single(name, trigger string, pred func(model.AnswerValue) bool, skips ...string) Rule {
	return Rule{
		Name:     name,
		Triggers: []string{trigger},
		When: func(values []model.AnswerValue) bool {
			return pred(values[0])
		},
		Skips: skips,
	}
}

// optionIn matches an ENUM answer against the given codes. An unanswered
// trigger never matches.
func optionIn(codes ...string) func(model.AnswerValue) bool {
	return func(v model.AnswerValue) bool {
		if v.Option == "" {
			return false
		}
		for _, c := range codes {
			if v.Option == c {
				return true
			}
		}
		return false
	}
}

// phqItems are the full-instrument depression items gated by the 2-item
// pre-screen
var phqItems = []string{
	"M1730_PHQ_SLEEP",
	"M1730_PHQ_TIRED",
	"M1730_PHQ_APPETITE",
	"M1730_PHQ_FAILURE",
	"M1730_PHQ_CONCENTRATION",
	"M1730_PHQ_MOVING",
	"M1730_PHQ_SELF_HARM",
	"M1730_PHQ_TOTAL",
}

// ruleTable is the declarative skip-logic table for the instrument.
var ruleTable = []Rule{
	single("no_pressure_ulcer", "M1306_UNHEALED_PRESSURE_ULCER", optionIn("0"),
		"M1311_STAGE2_COUNT",
		"M1311_STAGE3_COUNT",
		"M1311_STAGE4_COUNT",
		"M1311_UNSTAGEABLE_DRESSING_COUNT",
		"M1311_UNSTAGEABLE_ESCHAR_COUNT",
		"M1311_UNSTAGEABLE_DEEP_TISSUE_COUNT",
		"M1320_MOST_PROBLEMATIC_STATUS",
		"M1322_STAGE1_COUNT",
		"M1324_MOST_PROBLEMATIC_STAGE",
	),
	// "2" is present-but-unobservable: count and status cannot be assessed
	single("no_observable_stasis_ulcer", "M1330_STASIS_ULCER", optionIn("0", "2"),
		"M1332_STASIS_ULCER_COUNT",
		"M1334_STASIS_ULCER_STATUS",
	),
	single("no_observable_surgical_wound", "M1340_SURGICAL_WOUND", optionIn("0", "2"),
		"M1342_SURGICAL_WOUND_STATUS",
	),
	single("no_pain_reported", "M1240_PAIN_SCREEN", optionIn("0"),
		"M1242_PAIN_FREQUENCY",
	),
	single("no_heart_failure_symptoms", "M1500_HEART_FAILURE_SYMPTOMS", optionIn("0", "2", "NA"),
		"M1510_NO_ACTION",
		"M1510_PHYSICIAN_CONTACTED",
		"M1510_ADVISED_EMERGENCY",
		"M1510_PARAMETERS_IMPLEMENTED",
		"M1510_MEDS_CHANGED",
		"M1510_OTHER",
	),
	// "0" continent, "2" catheterized: timing does not apply either way
	single("urinary_timing_not_applicable", "M1610_URINARY_INCONTINENCE", optionIn("0", "2"),
		"M1615_INCONTINENCE_TIMING",
	),
	{
		Name: "depression_prescreen_negative",
		Triggers: []string{
			"M1730_PHQ_INTEREST",
			"M1730_PHQ_DEPRESSED",
		},
		// Both pre-screen items must be answered; an incomplete screen
		// never collapses the remaining items
		When: func(values []model.AnswerValue) bool {
			if values[0].Number == nil || values[1].Number == nil {
				return false
			}
			return *values[0].Number+*values[1].Number < 3
		},
		Skips: phqItems,
	},
	single("no_drug_regimen", "M2001_DRUG_REGIMEN_REVIEW", optionIn("9"),
		"M2003_MEDICATION_FOLLOWUP",
		"M2005_MEDICATION_INTERVENTION",
		"M2010_HIGH_RISK_DRUG_EDUCATION",
		"M2020_ORAL_MED_MANAGEMENT",
		"M2020_ORAL_MED_MANAGEMENT_PRIOR",
		"M2030_INJECTABLE_MED_MANAGEMENT",
		"M2030_INJECTABLE_MED_MANAGEMENT_PRIOR",
	),
	single("no_drug_issues_found", "M2001_DRUG_REGIMEN_REVIEW", optionIn("0"),
		"M2003_MEDICATION_FOLLOWUP",
	),
	single("no_emergent_care", "M2301_EMERGENT_CARE_USE", optionIn("0"),
		"M2310_MEDICATION_REACTION",
		"M2310_FALL_INJURY",
		"M2310_RESPIRATORY",
		"M2310_CARDIAC",
		"M2310_HYPOGLYCEMIA",
		"M2310_GI_BLEED",
		"M2310_OTHER",
		"M2310_REASON_UNKNOWN",
	),
	// Discharge block is inapplicable for admission-type assessments
	single("not_a_discharge", "M0100_ASSESSMENT_REASON", optionIn("1", "3", "4", "5"),
		"M0903_LAST_HOME_VISIT_DATE",
		"M0906_DISCHARGE_DATE",
		"M2410_INPATIENT_FACILITY",
		"M2420_DISCHARGE_DISPOSITION",
		"M2430_HOSPITALIZATION_REASON",
	),
	// Admission block is inapplicable at discharge
	single("not_an_admission", "M0100_ASSESSMENT_REASON", optionIn("9"),
		"M0104_REFERRAL_DATE",
		"M0110_EPISODE_TIMING",
		"M1000_LTC_FACILITY",
		"M1000_SNF",
		"M1000_SHORT_STAY_HOSPITAL",
		"M1000_LTC_HOSPITAL",
		"M1000_IPF",
		"M1000_IRF",
		"M1000_OTHER",
		"M1000_NONE",
		"M1005_INPATIENT_DISCHARGE_DATE",
	),
}

// Rules exposes the table for introspection.
func Rules() []Rule {
	return ruleTable
}
