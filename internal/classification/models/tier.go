package models

// RiskTier is the resolved risk classification of an AI system.
//
// Exactly one tier is assigned per evaluation. TierProhibited wins over every
// other signal; TierExemptFromHighRisk is deliberately distinct from
// TierMinimalRisk so a downgraded Annex III match never looks like an
// organically minimal-risk system.
type RiskTier string

const (
	TierProhibited         RiskTier = "prohibited"
	TierHighRisk           RiskTier = "high_risk"
	TierLimitedRisk        RiskTier = "limited_risk"
	TierMinimalRisk        RiskTier = "minimal_risk"
	TierContextDependent   RiskTier = "context_dependent"
	TierExemptFromHighRisk RiskTier = "exempt_from_high_risk"
)

// IsValid checks if the tier is one of the supported enum values.
func (t RiskTier) IsValid() bool {
	switch t {
	case TierProhibited, TierHighRisk, TierLimitedRisk, TierMinimalRisk,
		TierContextDependent, TierExemptFromHighRisk:
		return true
	}
	return false
}

func (t RiskTier) String() string {
	return string(t)
}

// Role identifies the operator's position in the AI value chain.
type Role string

const (
	RoleProvider            Role = "provider"
	RoleDeployer            Role = "deployer"
	RoleProviderAndDeployer Role = "provider_and_deployer"
	RoleImporter            Role = "importer"
	RoleDistributor         Role = "distributor"
)

// IsValid checks if the role is one of the supported enum values.
func (r Role) IsValid() bool {
	switch r {
	case RoleProvider, RoleDeployer, RoleProviderAndDeployer, RoleImporter, RoleDistributor:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// InstitutionType categorizes the organization operating the AI system.
// The list is extensible: unknown values are kept verbatim so sectoral
// obligation filtering can match on them later.
type InstitutionType string

const (
	InstitutionBank            InstitutionType = "bank"
	InstitutionInsurer         InstitutionType = "insurer"
	InstitutionPaymentProvider InstitutionType = "payment_provider"
	InstitutionAssetManager    InstitutionType = "asset_manager"
	InstitutionCryptoProvider  InstitutionType = "crypto_provider"
	InstitutionOther           InstitutionType = "other"
)

// IsFinancialEntity reports whether the institution falls under the
// operational-resilience regulation's scope.
func (t InstitutionType) IsFinancialEntity() bool {
	switch t {
	case InstitutionBank, InstitutionInsurer, InstitutionPaymentProvider,
		InstitutionAssetManager, InstitutionCryptoProvider:
		return true
	}
	return false
}
