package engine

import (
	"regent/internal/classification/models"
)

// categoryBucket is one named Annex III grouping. A bucket is "hit" when any
// of its sub-category flags is set.
type categoryBucket struct {
	name string
	ref  string
	hit  func(models.CategoryFlags) bool
}

var categoryBuckets = []categoryBucket{
	{"biometrics", "Annex III(1)", func(c models.CategoryFlags) bool {
		return c.RemoteBiometricID || c.BiometricInference || c.EmotionRecognition
	}},
	{"critical infrastructure", "Annex III(2)", func(c models.CategoryFlags) bool {
		return c.InfrastructureSafety || c.RoadTrafficManagement || c.UtilitySupply
	}},
	{"education and vocational training", "Annex III(3)", func(c models.CategoryFlags) bool {
		return c.EducationAdmission || c.LearningAssessment || c.ExamMonitoring
	}},
	{"employment and worker management", "Annex III(4)", func(c models.CategoryFlags) bool {
		return c.RecruitmentScreening || c.PromotionTermination || c.WorkMonitoring
	}},
	{"essential private and public services", "Annex III(5)", func(c models.CategoryFlags) bool {
		return c.CreditScoring || c.BenefitsEligibility || c.EmergencyDispatch || c.InsuranceRiskPricing
	}},
	{"law enforcement", "Annex III(6)", func(c models.CategoryFlags) bool {
		return c.CrimeRiskAssessment || c.EvidenceEvaluation || c.LawEnforcementProfiling
	}},
	{"migration, asylum and border control", "Annex III(7)", func(c models.CategoryFlags) bool {
		return c.VisaAsylumExamination || c.BorderRiskAssessment
	}},
	{"administration of justice", "Annex III(8)", func(c models.CategoryFlags) bool {
		return c.JudicialSupport || c.DisputeResolution
	}},
}

// BucketMatch names one hit Annex III bucket and its statutory reference.
type BucketMatch struct {
	Name string `json:"name"`
	Ref  string `json:"reference"`
}

// MatchCategories checks every Annex III bucket independently. Multiple
// simultaneous hits are all reported; the resulting tier is high_risk
// regardless of how many buckets fired (there is no tier above high_risk
// below prohibited).
func MatchCategories(p models.SystemProfile) []BucketMatch {
	var matches []BucketMatch
	for _, b := range categoryBuckets {
		if b.hit(p.Categories) {
			matches = append(matches, BucketMatch{Name: b.name, Ref: b.ref})
		}
	}
	return matches
}
