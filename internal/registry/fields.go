package registry

import "careassess/internal/model"

// Constructors keep the table below one line per field.

func enum(key string, section model.Section, required bool, options ...string) model.FieldSpec {
	return model.FieldSpec{Key: key, Section: section, Kind: model.ValueKindEnum, Required: required, Options: options}
}

func enumFor(key string, section model.Section, types []model.AssessmentType, options ...string) model.FieldSpec {
	return model.FieldSpec{Key: key, Section: section, Kind: model.ValueKindEnum, Required: true, RequiredFor: types, Options: options}
}

func text(key string, section model.Section, required bool) model.FieldSpec {
	return model.FieldSpec{Key: key, Section: section, Kind: model.ValueKindText, Required: required}
}

func textFor(key string, section model.Section, types []model.AssessmentType) model.FieldSpec {
	return model.FieldSpec{Key: key, Section: section, Kind: model.ValueKindText, Required: true, RequiredFor: types}
}

func num(key string, section model.Section, required bool) model.FieldSpec {
	return model.FieldSpec{Key: key, Section: section, Kind: model.ValueKindNumber, Required: required}
}

func check(key string, section model.Section, groupID string) model.FieldSpec {
	return model.FieldSpec{Key: key, Section: section, Kind: model.ValueKindBoolean, GroupID: groupID}
}

func smap(key string, section model.Section, required bool, subKeys ...string) model.FieldSpec {
	return model.FieldSpec{Key: key, Section: section, Kind: model.ValueKindStructuredMap, Required: required, SubKeys: subKeys}
}

func withDefault(f model.FieldSpec, d string) model.FieldSpec {
	f.Default = d
	return f
}

var (
	admissionTypes = []model.AssessmentType{model.AssessmentTypeSOC, model.AssessmentTypeROC}
	episodeTypes   = []model.AssessmentType{model.AssessmentTypeSOC, model.AssessmentTypeROC, model.AssessmentTypeRecert}
	dischargeOnly  = []model.AssessmentType{model.AssessmentTypeDischarge}
)

// instrumentFields returns the full field schema in instrument order.
// Keys follow the OASIS item numbering; scale options are the item's
// response codes.
func instrumentFields() []model.FieldSpec {
	fields := []model.FieldSpec{
		// Demographics / administrative
		text("M0018_NPI", model.SectionDemographics, false),
		text("M0020_PATIENT_ID", model.SectionDemographics, true),
		textFor("M0030_SOC_DATE", model.SectionDemographics, episodeTypes),
		textFor("M0032_ROC_DATE", model.SectionDemographics, []model.AssessmentType{model.AssessmentTypeROC}),
		text("M0040_FIRST_NAME", model.SectionDemographics, true),
		text("M0040_MI", model.SectionDemographics, false),
		text("M0040_LAST_NAME", model.SectionDemographics, true),
		text("M0050_STATE", model.SectionDemographics, true),
		text("M0060_ZIP", model.SectionDemographics, true),
		text("M0063_MEDICARE_NUM", model.SectionDemographics, false),
		text("M0064_SSN", model.SectionDemographics, false),
		text("M0065_MEDICAID_NUM", model.SectionDemographics, false),
		text("M0066_BIRTH_DATE", model.SectionDemographics, true),
		enum("M0069_GENDER", model.SectionDemographics, true, "1", "2"),
		enum("M0080_DISCIPLINE", model.SectionDemographics, true, "1", "2", "3", "4"),
		text("M0090_INFO_COMPLETED_DATE", model.SectionDemographics, true),
		withDefault(enum("M0100_ASSESSMENT_REASON", model.SectionDemographics, true, "1", "3", "4", "5", "9"), "1"),
		text("M0102_PHYSICIAN_ORDER_DATE", model.SectionDemographics, false),
		textFor("M0104_REFERRAL_DATE", model.SectionAdmission, admissionTypes),
		enumFor("M0110_EPISODE_TIMING", model.SectionAdmission, episodeTypes, "1", "2", "UK", "NA"),

		// Payment sources (checkbox group, "none" member)
		check("M0150_MEDICARE_FFS", model.SectionPayment, GroupPaymentSources),
		check("M0150_MEDICARE_HMO", model.SectionPayment, GroupPaymentSources),
		check("M0150_MEDICAID_FFS", model.SectionPayment, GroupPaymentSources),
		check("M0150_MEDICAID_HMO", model.SectionPayment, GroupPaymentSources),
		check("M0150_WORKERS_COMP", model.SectionPayment, GroupPaymentSources),
		check("M0150_PRIVATE_INS", model.SectionPayment, GroupPaymentSources),
		check("M0150_SELF_PAY", model.SectionPayment, GroupPaymentSources),
		check("M0150_OTHER", model.SectionPayment, GroupPaymentSources),
		check("M0150_NONE", model.SectionPayment, GroupPaymentSources),

		// Inpatient history (admission only)
		check("M1000_LTC_FACILITY", model.SectionAdmission, GroupInpatientSources),
		check("M1000_SNF", model.SectionAdmission, GroupInpatientSources),
		check("M1000_SHORT_STAY_HOSPITAL", model.SectionAdmission, GroupInpatientSources),
		check("M1000_LTC_HOSPITAL", model.SectionAdmission, GroupInpatientSources),
		check("M1000_IPF", model.SectionAdmission, GroupInpatientSources),
		check("M1000_IRF", model.SectionAdmission, GroupInpatientSources),
		check("M1000_OTHER", model.SectionAdmission, GroupInpatientSources),
		check("M1000_NONE", model.SectionAdmission, GroupInpatientSources),
		text("M1005_INPATIENT_DISCHARGE_DATE", model.SectionAdmission, false),

		// Diagnoses
		text("M1021_PRIMARY_DX", model.SectionDiagnoses, true),
		enum("M1021_PRIMARY_SEVERITY", model.SectionDiagnoses, true, "0", "1", "2", "3", "4"),
		text("M1023_OTHER_DX_1", model.SectionDiagnoses, false),
		enum("M1023_OTHER_SEVERITY_1", model.SectionDiagnoses, false, "0", "1", "2", "3", "4"),
		text("M1023_OTHER_DX_2", model.SectionDiagnoses, false),
		enum("M1023_OTHER_SEVERITY_2", model.SectionDiagnoses, false, "0", "1", "2", "3", "4"),
		text("M1023_OTHER_DX_3", model.SectionDiagnoses, false),
		enum("M1023_OTHER_SEVERITY_3", model.SectionDiagnoses, false, "0", "1", "2", "3", "4"),
		text("M1023_OTHER_DX_4", model.SectionDiagnoses, false),
		enum("M1023_OTHER_SEVERITY_4", model.SectionDiagnoses, false, "0", "1", "2", "3", "4"),
		text("M1023_OTHER_DX_5", model.SectionDiagnoses, false),
		enum("M1023_OTHER_SEVERITY_5", model.SectionDiagnoses, false, "0", "1", "2", "3", "4"),
		check("M1028_PVD_PAD", model.SectionDiagnoses, GroupActiveConditions),
		check("M1028_DIABETES", model.SectionDiagnoses, GroupActiveConditions),
		check("M1028_NONE", model.SectionDiagnoses, GroupActiveConditions),

		// Hospitalization risk (checkbox group, "none" member)
		check("M1033_HISTORY_OF_FALLS", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_WEIGHT_LOSS", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_MULTIPLE_HOSP", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_MULTIPLE_ED", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_MENTAL_DECLINE", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_REPORTED_EXHAUSTION", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_POLYPHARMACY", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_FALL_RISK", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_OTHER", model.SectionRiskFactors, GroupHospRisk),
		check("M1033_NONE", model.SectionRiskFactors, GroupHospRisk),

		// Sensory status
		enum("M1200_VISION", model.SectionSensory, true, "0", "1", "2"),
		enum("M1210_HEARING", model.SectionSensory, false, "0", "1", "2", "3", "UK"),
		enum("M1220_VERBAL_UNDERSTANDING", model.SectionSensory, false, "0", "1", "2", "3", "4", "UK"),
		enum("M1230_SPEECH", model.SectionSensory, true, "0", "1", "2", "3", "4", "5"),
		enum("M1240_PAIN_SCREEN", model.SectionSensory, true, "0", "1", "2"),
		enum("M1242_PAIN_FREQUENCY", model.SectionSensory, true, "0", "1", "2", "3", "4"),

		// Integumentary: pressure ulcer chain
		enum("M1306_UNHEALED_PRESSURE_ULCER", model.SectionIntegumentary, true, "0", "1"),
		num("M1311_STAGE2_COUNT", model.SectionIntegumentary, true),
		num("M1311_STAGE3_COUNT", model.SectionIntegumentary, true),
		num("M1311_STAGE4_COUNT", model.SectionIntegumentary, true),
		num("M1311_UNSTAGEABLE_DRESSING_COUNT", model.SectionIntegumentary, true),
		num("M1311_UNSTAGEABLE_ESCHAR_COUNT", model.SectionIntegumentary, true),
		num("M1311_UNSTAGEABLE_DEEP_TISSUE_COUNT", model.SectionIntegumentary, true),
		enum("M1320_MOST_PROBLEMATIC_STATUS", model.SectionIntegumentary, true, "0", "1", "2", "3", "NA"),
		num("M1322_STAGE1_COUNT", model.SectionIntegumentary, true),
		enum("M1324_MOST_PROBLEMATIC_STAGE", model.SectionIntegumentary, true, "1", "2", "3", "4", "NA"),
		// Stasis ulcer chain
		enum("M1330_STASIS_ULCER", model.SectionIntegumentary, true, "0", "1", "2"),
		num("M1332_STASIS_ULCER_COUNT", model.SectionIntegumentary, true),
		enum("M1334_STASIS_ULCER_STATUS", model.SectionIntegumentary, true, "1", "2", "3"),
		// Surgical wound chain
		enum("M1340_SURGICAL_WOUND", model.SectionIntegumentary, true, "0", "1", "2"),
		enum("M1342_SURGICAL_WOUND_STATUS", model.SectionIntegumentary, true, "0", "1", "2", "3"),
		enum("M1350_SKIN_LESION", model.SectionIntegumentary, false, "0", "1"),

		// Respiratory
		enum("M1400_DYSPNEA", model.SectionRespiratory, true, "0", "1", "2", "3", "4"),
		check("M1410_OXYGEN", model.SectionRespiratory, GroupRespTreatments),
		check("M1410_VENTILATOR", model.SectionRespiratory, GroupRespTreatments),
		check("M1410_CPAP_BIPAP", model.SectionRespiratory, GroupRespTreatments),
		check("M1410_NONE", model.SectionRespiratory, GroupRespTreatments),

		// Cardiac
		enum("M1500_HEART_FAILURE_SYMPTOMS", model.SectionCardiac, true, "0", "1", "2", "NA"),
		check("M1510_NO_ACTION", model.SectionCardiac, ""),
		check("M1510_PHYSICIAN_CONTACTED", model.SectionCardiac, ""),
		check("M1510_ADVISED_EMERGENCY", model.SectionCardiac, ""),
		check("M1510_PARAMETERS_IMPLEMENTED", model.SectionCardiac, ""),
		check("M1510_MEDS_CHANGED", model.SectionCardiac, ""),
		check("M1510_OTHER", model.SectionCardiac, ""),

		// Elimination status
		enum("M1600_UTI_TREATED", model.SectionElimination, true, "0", "1", "2", "NA"),
		enum("M1610_URINARY_INCONTINENCE", model.SectionElimination, true, "0", "1", "2"),
		enum("M1615_INCONTINENCE_TIMING", model.SectionElimination, true, "0", "1", "2", "3", "4", "5"),
		enum("M1620_BOWEL_INCONTINENCE", model.SectionElimination, true, "0", "1", "2", "3", "4", "5", "NA", "UK"),
		enum("M1630_OSTOMY", model.SectionElimination, true, "0", "1", "2"),

		// Neuro / emotional / behavioral
		enum("M1700_COGNITIVE_FUNCTIONING", model.SectionNeuroBehavior, true, "0", "1", "2", "3", "4"),
		enum("M1710_CONFUSION_FREQUENCY", model.SectionNeuroBehavior, true, "0", "1", "2", "3", "4", "NA"),
		enum("M1720_ANXIOUS", model.SectionNeuroBehavior, true, "0", "1", "2", "3", "NA"),
		// Depression screening: 2-item pre-screen gates the remaining items
		num("M1730_PHQ_INTEREST", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_DEPRESSED", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_SLEEP", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_TIRED", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_APPETITE", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_FAILURE", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_CONCENTRATION", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_MOVING", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_SELF_HARM", model.SectionNeuroBehavior, true),
		num("M1730_PHQ_TOTAL", model.SectionNeuroBehavior, true),
		check("M1740_MEMORY_DEFICIT", model.SectionNeuroBehavior, GroupBehaviors),
		check("M1740_IMPAIRED_DECISIONS", model.SectionNeuroBehavior, GroupBehaviors),
		check("M1740_VERBAL_DISRUPTION", model.SectionNeuroBehavior, GroupBehaviors),
		check("M1740_PHYSICAL_AGGRESSION", model.SectionNeuroBehavior, GroupBehaviors),
		check("M1740_DISRUPTIVE_BEHAVIOR", model.SectionNeuroBehavior, GroupBehaviors),
		check("M1740_DELUSIONS", model.SectionNeuroBehavior, GroupBehaviors),
		check("M1740_NONE", model.SectionNeuroBehavior, GroupBehaviors),
		enum("M1745_BEHAVIOR_FREQUENCY", model.SectionNeuroBehavior, true, "0", "1", "2", "3", "4", "5"),

		// ADL / IADL functional status, current and prior columns
		enum("M1800_GROOMING", model.SectionFunctional, true, "0", "1", "2", "3"),
		enum("M1800_GROOMING_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3"),
		enum("M1810_DRESS_UPPER", model.SectionFunctional, true, "0", "1", "2", "3"),
		enum("M1810_DRESS_UPPER_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3"),
		enum("M1820_DRESS_LOWER", model.SectionFunctional, true, "0", "1", "2", "3"),
		enum("M1820_DRESS_LOWER_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3"),
		enum("M1830_BATHING", model.SectionFunctional, true, "0", "1", "2", "3", "4", "5", "6"),
		enum("M1830_BATHING_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3", "4", "5", "6"),
		enum("M1840_TOILET_TRANSFER", model.SectionFunctional, true, "0", "1", "2", "3", "4"),
		enum("M1840_TOILET_TRANSFER_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3", "4"),
		enum("M1845_TOILETING_HYGIENE", model.SectionFunctional, true, "0", "1", "2", "3"),
		enum("M1845_TOILETING_HYGIENE_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3"),
		enum("M1850_TRANSFERRING", model.SectionFunctional, true, "0", "1", "2", "3", "4", "5"),
		enum("M1850_TRANSFERRING_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3", "4", "5"),
		enum("M1860_AMBULATION", model.SectionFunctional, true, "0", "1", "2", "3", "4", "5", "6"),
		enum("M1860_AMBULATION_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3", "4", "5", "6"),
		enum("M1870_FEEDING", model.SectionFunctional, true, "0", "1", "2", "3", "4", "5"),
		enum("M1870_FEEDING_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3", "4", "5"),
		enum("M1880_MEAL_PREP", model.SectionFunctional, true, "0", "1", "2"),
		enum("M1880_MEAL_PREP_PRIOR", model.SectionFunctional, false, "0", "1", "2"),
		enum("M1890_PHONE_USE", model.SectionFunctional, true, "0", "1", "2", "3", "4", "5", "NA"),
		enum("M1890_PHONE_USE_PRIOR", model.SectionFunctional, false, "0", "1", "2", "3", "4", "5", "NA"),
		enum("M1910_FALL_RISK_ASSESSMENT", model.SectionFunctional, true, "0", "1", "2"),

		// Self-care performance (GG0130), current and discharge-goal columns
		enum("GG0130_A_EATING", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0130_A_EATING_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0130_B_ORAL_HYGIENE", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0130_B_ORAL_HYGIENE_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0130_C_TOILETING_HYGIENE", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0130_C_TOILETING_HYGIENE_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0130_E_SHOWER_SELF", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0130_E_SHOWER_SELF_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0130_F_DRESS_UPPER", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0130_F_DRESS_UPPER_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0130_G_DRESS_LOWER", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0130_G_DRESS_LOWER_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0130_H_FOOTWEAR", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0130_H_FOOTWEAR_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),

		// Mobility performance (GG0170), current and discharge-goal columns
		enum("GG0170_A_ROLL", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_A_ROLL_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_B_SIT_TO_LYING", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_B_SIT_TO_LYING_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_C_LYING_TO_SITTING", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_C_LYING_TO_SITTING_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_D_SIT_TO_STAND", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_D_SIT_TO_STAND_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_E_CHAIR_TRANSFER", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_E_CHAIR_TRANSFER_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_F_TOILET_TRANSFER", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_F_TOILET_TRANSFER_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_I_WALK_10_FEET", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_I_WALK_10_FEET_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_J_WALK_50_FEET", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_J_WALK_50_FEET_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_K_WALK_150_FEET", model.SectionFunctional, true, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_K_WALK_150_FEET_GOAL", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06"),
		enum("GG0170_L_UNEVEN_SURFACES", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_M_ONE_STEP", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_N_FOUR_STEPS", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06", "07", "09", "88"),
		enum("GG0170_R_WHEEL_50_FEET", model.SectionFunctional, false, "01", "02", "03", "04", "05", "06", "07", "09", "88"),

		// Medications
		enum("M2001_DRUG_REGIMEN_REVIEW", model.SectionMedications, true, "0", "1", "9"),
		enum("M2003_MEDICATION_FOLLOWUP", model.SectionMedications, true, "0", "1"),
		enum("M2005_MEDICATION_INTERVENTION", model.SectionMedications, true, "0", "1", "9"),
		enum("M2010_HIGH_RISK_DRUG_EDUCATION", model.SectionMedications, true, "0", "1", "NA"),
		enum("M2020_ORAL_MED_MANAGEMENT", model.SectionMedications, true, "0", "1", "2", "3", "NA"),
		enum("M2020_ORAL_MED_MANAGEMENT_PRIOR", model.SectionMedications, false, "0", "1", "2", "3", "NA"),
		enum("M2030_INJECTABLE_MED_MANAGEMENT", model.SectionMedications, true, "0", "1", "2", "3", "NA"),
		enum("M2030_INJECTABLE_MED_MANAGEMENT_PRIOR", model.SectionMedications, false, "0", "1", "2", "3", "NA"),

		// Care management
		smap("M2102_ASSISTANCE_TYPES", model.SectionCareManagement, true,
			"adl", "iadl", "medication", "procedures", "equipment", "supervision", "advocacy"),
		enum("M2110_ASSISTANCE_FREQUENCY", model.SectionCareManagement, true, "1", "2", "3", "4", "5", "UK"),

		// Emergent care
		enum("M2301_EMERGENT_CARE_USE", model.SectionEmergentCare, true, "0", "1", "2", "UK"),
		check("M2310_MEDICATION_REACTION", model.SectionEmergentCare, ""),
		check("M2310_FALL_INJURY", model.SectionEmergentCare, ""),
		check("M2310_RESPIRATORY", model.SectionEmergentCare, ""),
		check("M2310_CARDIAC", model.SectionEmergentCare, ""),
		check("M2310_HYPOGLYCEMIA", model.SectionEmergentCare, ""),
		check("M2310_GI_BLEED", model.SectionEmergentCare, ""),
		check("M2310_OTHER", model.SectionEmergentCare, ""),
		check("M2310_REASON_UNKNOWN", model.SectionEmergentCare, ""),

		// Discharge block (required for discharge assessments only)
		textFor("M0903_LAST_HOME_VISIT_DATE", model.SectionDischarge, dischargeOnly),
		textFor("M0906_DISCHARGE_DATE", model.SectionDischarge, dischargeOnly),
		enumFor("M2410_INPATIENT_FACILITY", model.SectionDischarge, dischargeOnly, "1", "2", "3", "4", "NA"),
		enumFor("M2420_DISCHARGE_DISPOSITION", model.SectionDischarge, dischargeOnly, "1", "2", "3", "4", "UK"),
		enum("M2430_HOSPITALIZATION_REASON", model.SectionDischarge, false,
			"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "UK"),
	}
	return fields
}

// Group identifiers
const (
	GroupPaymentSources   = "payment_sources"
	GroupInpatientSources = "inpatient_sources"
	GroupActiveConditions = "active_conditions"
	GroupHospRisk         = "hospitalization_risk"
	GroupRespTreatments   = "respiratory_treatments"
	GroupBehaviors        = "behaviors"
)

// exclusiveGroups declares every mutually-exclusive checkbox group with
// its designated "none of the above" member.
func exclusiveGroups() []model.ExclusiveGroup {
	return []model.ExclusiveGroup{
		{
			ID:      GroupPaymentSources,
			NoneKey: "M0150_NONE",
			Members: []string{
				"M0150_MEDICARE_FFS", "M0150_MEDICARE_HMO", "M0150_MEDICAID_FFS",
				"M0150_MEDICAID_HMO", "M0150_WORKERS_COMP", "M0150_PRIVATE_INS",
				"M0150_SELF_PAY", "M0150_OTHER", "M0150_NONE",
			},
		},
		{
			ID:      GroupInpatientSources,
			NoneKey: "M1000_NONE",
			Members: []string{
				"M1000_LTC_FACILITY", "M1000_SNF", "M1000_SHORT_STAY_HOSPITAL",
				"M1000_LTC_HOSPITAL", "M1000_IPF", "M1000_IRF", "M1000_OTHER",
				"M1000_NONE",
			},
		},
		{
			ID:      GroupActiveConditions,
			NoneKey: "M1028_NONE",
			Members: []string{"M1028_PVD_PAD", "M1028_DIABETES", "M1028_NONE"},
		},
		{
			ID:      GroupHospRisk,
			NoneKey: "M1033_NONE",
			Members: []string{
				"M1033_HISTORY_OF_FALLS", "M1033_WEIGHT_LOSS", "M1033_MULTIPLE_HOSP",
				"M1033_MULTIPLE_ED", "M1033_MENTAL_DECLINE", "M1033_REPORTED_EXHAUSTION",
				"M1033_POLYPHARMACY", "M1033_FALL_RISK", "M1033_OTHER", "M1033_NONE",
			},
		},
		{
			ID:      GroupRespTreatments,
			NoneKey: "M1410_NONE",
			Members: []string{"M1410_OXYGEN", "M1410_VENTILATOR", "M1410_CPAP_BIPAP", "M1410_NONE"},
		},
		{
			ID:      GroupBehaviors,
			NoneKey: "M1740_NONE",
			Members: []string{
				"M1740_MEMORY_DEFICIT", "M1740_IMPAIRED_DECISIONS", "M1740_VERBAL_DISRUPTION",
				"M1740_PHYSICAL_AGGRESSION", "M1740_DISRUPTIVE_BEHAVIOR", "M1740_DELUSIONS",
				"M1740_NONE",
			},
		},
	}
}
