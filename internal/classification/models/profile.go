package models

// SystemProfile is the canonical, immutable description of one AI system for
// one classification call. It is constructed once by the normalizer from the
// caller's flag bag and never mutated afterwards.
//
// Invariants:
//   - All boolean flags default to false ("unknown" never triggers a rule)
//   - Role is a valid Role; InstitutionType may be any non-empty string
//   - UseCaseID may be empty when the caller has not picked a use case yet
type SystemProfile struct {
	Role            Role
	InstitutionType InstitutionType
	UseCaseID       string

	Prohibited ProhibitedFlags
	Categories CategoryFlags
	Context    ContextFlags
	Exemptions ExemptionFlags
	Triggers   TriggerFlags
}

// ProhibitedFlags covers the Article 5 absolute prohibitions. Any true flag
// short-circuits classification to TierProhibited.
type ProhibitedFlags struct {
	SubliminalManipulation  bool
	ExploitsVulnerabilities bool
	SocialScoring           bool
	RealTimeBiometricID     bool
	EmotionRecognitionWork  bool
	BiometricCategorization bool
	FacialImageScraping     bool
}

// Any reports whether at least one prohibited practice is flagged.
func (f ProhibitedFlags) Any() bool {
	return f.SubliminalManipulation || f.ExploitsVulnerabilities || f.SocialScoring ||
		f.RealTimeBiometricID || f.EmotionRecognitionWork || f.BiometricCategorization ||
		f.FacialImageScraping
}

// CategoryFlags covers the Annex III high-risk sub-categories, grouped into
// the eight statutory buckets the matcher reports on.
type CategoryFlags struct {
	// Biometrics (Annex III 1)
	RemoteBiometricID  bool
	BiometricInference bool
	EmotionRecognition bool

	// Critical infrastructure (Annex III 2)
	InfrastructureSafety  bool
	RoadTrafficManagement bool
	UtilitySupply         bool

	// Education (Annex III 3)
	EducationAdmission bool
	LearningAssessment bool
	ExamMonitoring     bool

	// Employment (Annex III 4)
	RecruitmentScreening bool
	PromotionTermination bool
	WorkMonitoring       bool

	// Essential services (Annex III 5)
	CreditScoring        bool
	BenefitsEligibility  bool
	EmergencyDispatch    bool
	InsuranceRiskPricing bool

	// Law enforcement (Annex III 6)
	CrimeRiskAssessment     bool
	EvidenceEvaluation      bool
	LawEnforcementProfiling bool

	// Migration and border control (Annex III 7)
	VisaAsylumExamination bool
	BorderRiskAssessment  bool

	// Administration of justice (Annex III 8)
	JudicialSupport   bool
	DisputeResolution bool
}

// ContextFlags carry the deployment-context facts the context-dependent
// resolver and transparency rules consult.
type ContextFlags struct {
	DeniesServiceAccess       bool
	AffectsLegalRights        bool
	FullyAutomated            bool
	UsesSpecialCategoryData   bool
	InvolvesNaturalPersons    bool
	VulnerableGroups          bool
	InteractsWithHumans       bool
	GeneratesSyntheticContent bool
}

// ExemptionFlags carry the Article 6(3) carve-outs that can downgrade an
// otherwise high-risk match. They never apply to prohibited practices.
type ExemptionFlags struct {
	NarrowProceduralTask           bool
	ImprovesCompletedHumanActivity bool
	PatternDetectionOnly           bool
	PreparatoryTaskOnly            bool
}

// Any reports whether at least one exemption is flagged.
func (f ExemptionFlags) Any() bool {
	return f.NarrowProceduralTask || f.ImprovesCompletedHumanActivity ||
		f.PatternDetectionOnly || f.PreparatoryTaskOnly
}

// TriggerFlags activate obligation buckets beyond the primary AI-risk
// regulation (general-purpose models, payments, personal data).
type TriggerFlags struct {
	UsesGpaiModel         bool
	GpaiSystemicRisk      bool
	ProcessesPersonalData bool
	ProcessesPayments     bool
	CriticalIctProvider   bool
}
