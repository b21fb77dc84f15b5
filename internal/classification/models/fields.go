package models

// BoolField describes one named boolean profile field. The normalizer uses
// Set to build a profile from the caller's flag bag; the context-dependent
// resolver uses Get to test factors by name. Keeping both directions in one
// table guarantees a factor can never reference a field the normalizer does
// not accept.
type BoolField struct {
	Name string
	Set  func(*SystemProfile, bool)
	Get  func(SystemProfile) bool
}

// boolFields is the single registry of boolean profile fields, keyed by the
// wire name used in ClassifyRequest.profile and in context-decision data.
var boolFields = []BoolField{
	// Prohibited practices (Article 5)
	{"subliminal_manipulation", func(p *SystemProfile, v bool) { p.Prohibited.SubliminalManipulation = v }, func(p SystemProfile) bool { return p.Prohibited.SubliminalManipulation }},
	{"exploits_vulnerabilities", func(p *SystemProfile, v bool) { p.Prohibited.ExploitsVulnerabilities = v }, func(p SystemProfile) bool { return p.Prohibited.ExploitsVulnerabilities }},
	{"social_scoring", func(p *SystemProfile, v bool) { p.Prohibited.SocialScoring = v }, func(p SystemProfile) bool { return p.Prohibited.SocialScoring }},
	{"realtime_biometric_identification", func(p *SystemProfile, v bool) { p.Prohibited.RealTimeBiometricID = v }, func(p SystemProfile) bool { return p.Prohibited.RealTimeBiometricID }},
	{"workplace_emotion_recognition", func(p *SystemProfile, v bool) { p.Prohibited.EmotionRecognitionWork = v }, func(p SystemProfile) bool { return p.Prohibited.EmotionRecognitionWork }},
	{"sensitive_biometric_categorization", func(p *SystemProfile, v bool) { p.Prohibited.BiometricCategorization = v }, func(p SystemProfile) bool { return p.Prohibited.BiometricCategorization }},
	{"untargeted_facial_scraping", func(p *SystemProfile, v bool) { p.Prohibited.FacialImageScraping = v }, func(p SystemProfile) bool { return p.Prohibited.FacialImageScraping }},

	// Annex III categories
	{"remote_biometric_identification", func(p *SystemProfile, v bool) { p.Categories.RemoteBiometricID = v }, func(p SystemProfile) bool { return p.Categories.RemoteBiometricID }},
	{"biometric_inference", func(p *SystemProfile, v bool) { p.Categories.BiometricInference = v }, func(p SystemProfile) bool { return p.Categories.BiometricInference }},
	{"emotion_recognition", func(p *SystemProfile, v bool) { p.Categories.EmotionRecognition = v }, func(p SystemProfile) bool { return p.Categories.EmotionRecognition }},
	{"infrastructure_safety_component", func(p *SystemProfile, v bool) { p.Categories.InfrastructureSafety = v }, func(p SystemProfile) bool { return p.Categories.InfrastructureSafety }},
	{"road_traffic_management", func(p *SystemProfile, v bool) { p.Categories.RoadTrafficManagement = v }, func(p SystemProfile) bool { return p.Categories.RoadTrafficManagement }},
	{"utility_supply", func(p *SystemProfile, v bool) { p.Categories.UtilitySupply = v }, func(p SystemProfile) bool { return p.Categories.UtilitySupply }},
	{"education_admission", func(p *SystemProfile, v bool) { p.Categories.EducationAdmission = v }, func(p SystemProfile) bool { return p.Categories.EducationAdmission }},
	{"learning_assessment", func(p *SystemProfile, v bool) { p.Categories.LearningAssessment = v }, func(p SystemProfile) bool { return p.Categories.LearningAssessment }},
	{"exam_monitoring", func(p *SystemProfile, v bool) { p.Categories.ExamMonitoring = v }, func(p SystemProfile) bool { return p.Categories.ExamMonitoring }},
	{"recruitment_screening", func(p *SystemProfile, v bool) { p.Categories.RecruitmentScreening = v }, func(p SystemProfile) bool { return p.Categories.RecruitmentScreening }},
	{"promotion_termination_decisions", func(p *SystemProfile, v bool) { p.Categories.PromotionTermination = v }, func(p SystemProfile) bool { return p.Categories.PromotionTermination }},
	{"work_monitoring", func(p *SystemProfile, v bool) { p.Categories.WorkMonitoring = v }, func(p SystemProfile) bool { return p.Categories.WorkMonitoring }},
	{"credit_scoring", func(p *SystemProfile, v bool) { p.Categories.CreditScoring = v }, func(p SystemProfile) bool { return p.Categories.CreditScoring }},
	{"benefits_eligibility", func(p *SystemProfile, v bool) { p.Categories.BenefitsEligibility = v }, func(p SystemProfile) bool { return p.Categories.BenefitsEligibility }},
	{"emergency_dispatch", func(p *SystemProfile, v bool) { p.Categories.EmergencyDispatch = v }, func(p SystemProfile) bool { return p.Categories.EmergencyDispatch }},
	{"insurance_risk_pricing", func(p *SystemProfile, v bool) { p.Categories.InsuranceRiskPricing = v }, func(p SystemProfile) bool { return p.Categories.InsuranceRiskPricing }},
	{"crime_risk_assessment", func(p *SystemProfile, v bool) { p.Categories.CrimeRiskAssessment = v }, func(p SystemProfile) bool { return p.Categories.CrimeRiskAssessment }},
	{"evidence_evaluation", func(p *SystemProfile, v bool) { p.Categories.EvidenceEvaluation = v }, func(p SystemProfile) bool { return p.Categories.EvidenceEvaluation }},
	{"law_enforcement_profiling", func(p *SystemProfile, v bool) { p.Categories.LawEnforcementProfiling = v }, func(p SystemProfile) bool { return p.Categories.LawEnforcementProfiling }},
	{"visa_asylum_examination", func(p *SystemProfile, v bool) { p.Categories.VisaAsylumExamination = v }, func(p SystemProfile) bool { return p.Categories.VisaAsylumExamination }},
	{"border_risk_assessment", func(p *SystemProfile, v bool) { p.Categories.BorderRiskAssessment = v }, func(p SystemProfile) bool { return p.Categories.BorderRiskAssessment }},
	{"judicial_decision_support", func(p *SystemProfile, v bool) { p.Categories.JudicialSupport = v }, func(p SystemProfile) bool { return p.Categories.JudicialSupport }},
	{"dispute_resolution", func(p *SystemProfile, v bool) { p.Categories.DisputeResolution = v }, func(p SystemProfile) bool { return p.Categories.DisputeResolution }},

	// Deployment context
	{"denies_service_access", func(p *SystemProfile, v bool) { p.Context.DeniesServiceAccess = v }, func(p SystemProfile) bool { return p.Context.DeniesServiceAccess }},
	{"affects_legal_rights", func(p *SystemProfile, v bool) { p.Context.AffectsLegalRights = v }, func(p SystemProfile) bool { return p.Context.AffectsLegalRights }},
	{"fully_automated", func(p *SystemProfile, v bool) { p.Context.FullyAutomated = v }, func(p SystemProfile) bool { return p.Context.FullyAutomated }},
	{"uses_special_category_data", func(p *SystemProfile, v bool) { p.Context.UsesSpecialCategoryData = v }, func(p SystemProfile) bool { return p.Context.UsesSpecialCategoryData }},
	{"involves_natural_persons", func(p *SystemProfile, v bool) { p.Context.InvolvesNaturalPersons = v }, func(p SystemProfile) bool { return p.Context.InvolvesNaturalPersons }},
	{"vulnerable_groups", func(p *SystemProfile, v bool) { p.Context.VulnerableGroups = v }, func(p SystemProfile) bool { return p.Context.VulnerableGroups }},
	{"interacts_with_humans", func(p *SystemProfile, v bool) { p.Context.InteractsWithHumans = v }, func(p SystemProfile) bool { return p.Context.InteractsWithHumans }},
	{"generates_synthetic_content", func(p *SystemProfile, v bool) { p.Context.GeneratesSyntheticContent = v }, func(p SystemProfile) bool { return p.Context.GeneratesSyntheticContent }},

	// Exemptions (Article 6(3))
	{"narrow_procedural_task", func(p *SystemProfile, v bool) { p.Exemptions.NarrowProceduralTask = v }, func(p SystemProfile) bool { return p.Exemptions.NarrowProceduralTask }},
	{"improves_completed_human_activity", func(p *SystemProfile, v bool) { p.Exemptions.ImprovesCompletedHumanActivity = v }, func(p SystemProfile) bool { return p.Exemptions.ImprovesCompletedHumanActivity }},
	{"pattern_detection_only", func(p *SystemProfile, v bool) { p.Exemptions.PatternDetectionOnly = v }, func(p SystemProfile) bool { return p.Exemptions.PatternDetectionOnly }},
	{"preparatory_task_only", func(p *SystemProfile, v bool) { p.Exemptions.PreparatoryTaskOnly = v }, func(p SystemProfile) bool { return p.Exemptions.PreparatoryTaskOnly }},

	// Obligation triggers
	{"uses_gpai_model", func(p *SystemProfile, v bool) { p.Triggers.UsesGpaiModel = v }, func(p SystemProfile) bool { return p.Triggers.UsesGpaiModel }},
	{"gpai_systemic_risk", func(p *SystemProfile, v bool) { p.Triggers.GpaiSystemicRisk = v }, func(p SystemProfile) bool { return p.Triggers.GpaiSystemicRisk }},
	{"processes_personal_data", func(p *SystemProfile, v bool) { p.Triggers.ProcessesPersonalData = v }, func(p SystemProfile) bool { return p.Triggers.ProcessesPersonalData }},
	{"processes_payments", func(p *SystemProfile, v bool) { p.Triggers.ProcessesPayments = v }, func(p SystemProfile) bool { return p.Triggers.ProcessesPayments }},
	{"critical_ict_provider", func(p *SystemProfile, v bool) { p.Triggers.CriticalIctProvider = v }, func(p SystemProfile) bool { return p.Triggers.CriticalIctProvider }},
}

var boolFieldIndex = func() map[string]BoolField {
	idx := make(map[string]BoolField, len(boolFields))
	for _, f := range boolFields {
		idx[f.Name] = f
	}
	return idx
}()

// LookupBoolField returns the registered field for a wire name.
func LookupBoolField(name string) (BoolField, bool) {
	f, ok := boolFieldIndex[name]
	return f, ok
}

// FieldValue reads a named boolean field from a profile. Unregistered names
// read as false, the permissive default for unknown facts.
func FieldValue(p SystemProfile, name string) bool {
	f, ok := boolFieldIndex[name]
	if !ok {
		return false
	}
	return f.Get(p)
}

// ActiveFlags returns every true boolean field keyed by wire name, plus the
// derived financial_entity flag. Obligation applicability conditions filter
// against this map.
func ActiveFlags(p SystemProfile) map[string]bool {
	out := make(map[string]bool)
	for _, f := range boolFields {
		if f.Get(p) {
			out[f.Name] = true
		}
	}
	if p.InstitutionType.IsFinancialEntity() {
		out["financial_entity"] = true
	}
	return out
}
