// File: internal/taxonomy/dimensions.go
package taxonomy

import "github.com/shopspring/decimal"

// FundingSourceType narrows a query to the kind of organization expected
// to provide the funding.
type FundingSourceType string

const (
	SourceTypeGovernmentGrant       FundingSourceType = "GOVERNMENT_GRANT"
	SourceTypePrivateFoundation     FundingSourceType = "PRIVATE_FOUNDATION"
	SourceTypeCorporateCSR          FundingSourceType = "CORPORATE_CSR"
	SourceTypeMultilateralAgency    FundingSourceType = "MULTILATERAL_AGENCY"
	SourceTypeEUProgram             FundingSourceType = "EU_PROGRAM"
	SourceTypeNGOIntermediary       FundingSourceType = "NGO_INTERMEDIARY"
	SourceTypeCrowdfunding          FundingSourceType = "CROWDFUNDING"
	SourceTypeImpactInvestor        FundingSourceType = "IMPACT_INVESTOR"
	SourceTypeBilateralDonor        FundingSourceType = "BILATERAL_DONOR"
	SourceTypeCommunityFoundation   FundingSourceType = "COMMUNITY_FOUNDATION"
	SourceTypeReligiousInstitution  FundingSourceType = "RELIGIOUS_INSTITUTION"
	SourceTypeAcademicInstitution   FundingSourceType = "ACADEMIC_INSTITUTION"
)

func AllFundingSourceTypes() []FundingSourceType {
	return []FundingSourceType{
		SourceTypeGovernmentGrant, SourceTypePrivateFoundation, SourceTypeCorporateCSR,
		SourceTypeMultilateralAgency, SourceTypeEUProgram, SourceTypeNGOIntermediary,
		SourceTypeCrowdfunding, SourceTypeImpactInvestor, SourceTypeBilateralDonor,
		SourceTypeCommunityFoundation, SourceTypeReligiousInstitution, SourceTypeAcademicInstitution,
	}
}

func (f FundingSourceType) IsValid() bool {
	_, ok := sourceTypeKeywords[f]
	return ok
}

var sourceTypeKeywords = map[FundingSourceType]string{
	SourceTypeGovernmentGrant:      "government grant program",
	SourceTypePrivateFoundation:    "private foundation grant",
	SourceTypeCorporateCSR:         "corporate social responsibility funding",
	SourceTypeMultilateralAgency:   "multilateral agency funding",
	SourceTypeEUProgram:            "EU funding program",
	SourceTypeNGOIntermediary:      "NGO intermediary grant",
	SourceTypeCrowdfunding:         "crowdfunding campaign",
	SourceTypeImpactInvestor:       "impact investment fund",
	SourceTypeBilateralDonor:       "bilateral donor agency",
	SourceTypeCommunityFoundation:  "community foundation grant",
	SourceTypeReligiousInstitution: "faith-based funding program",
	SourceTypeAcademicInstitution:  "academic institution grant",
}

// FundingMechanism describes the financial instrument used to deliver funds.
type FundingMechanism string

const (
	MechanismGrant             FundingMechanism = "GRANT"
	MechanismLoan              FundingMechanism = "LOAN"
	MechanismMatchingFund      FundingMechanism = "MATCHING_FUND"
	MechanismScholarship       FundingMechanism = "SCHOLARSHIP"
	MechanismFellowship        FundingMechanism = "FELLOWSHIP"
	MechanismInKindDonation    FundingMechanism = "IN_KIND_DONATION"
	MechanismTaxCredit         FundingMechanism = "TAX_CREDIT"
	MechanismPrizeCompetition  FundingMechanism = "PRIZE_COMPETITION"
)

func AllFundingMechanisms() []FundingMechanism {
	return []FundingMechanism{
		MechanismGrant, MechanismLoan, MechanismMatchingFund, MechanismScholarship,
		MechanismFellowship, MechanismInKindDonation, MechanismTaxCredit, MechanismPrizeCompetition,
	}
}

func (m FundingMechanism) IsValid() bool {
	_, ok := mechanismKeywords[m]
	return ok
}

var mechanismKeywords = map[FundingMechanism]string{
	MechanismGrant:            "non-repayable grant",
	MechanismLoan:             "low-interest loan",
	MechanismMatchingFund:     "matching fund",
	MechanismScholarship:      "scholarship award",
	MechanismFellowship:       "fellowship stipend",
	MechanismInKindDonation:   "in-kind donation",
	MechanismTaxCredit:        "tax credit incentive",
	MechanismPrizeCompetition: "prize competition award",
}

// ProjectScale buckets the expected award size, each with an associated
// decimal amount range.
type ProjectScale string

const (
	ScaleMicro    ProjectScale = "MICRO"
	ScaleSmall    ProjectScale = "SMALL"
	ScaleMedium   ProjectScale = "MEDIUM"
	ScaleLarge    ProjectScale = "LARGE"
	ScaleFlagship ProjectScale = "FLAGSHIP"
)

func AllProjectScales() []ProjectScale {
	return []ProjectScale{ScaleMicro, ScaleSmall, ScaleMedium, ScaleLarge, ScaleFlagship}
}

func (p ProjectScale) IsValid() bool {
	_, ok := scaleRanges[p]
	return ok
}

// ScaleRange is the inclusive [Min, Max] USD-equivalent award range for a
// ProjectScale, at two decimal places. A Max of zero means unbounded.
type ScaleRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

var scaleRanges = map[ProjectScale]ScaleRange{
	ScaleMicro:    {Min: decimal.RequireFromString("0.00"), Max: decimal.RequireFromString("5000.00")},
	ScaleSmall:    {Min: decimal.RequireFromString("5000.00"), Max: decimal.RequireFromString("50000.00")},
	ScaleMedium:   {Min: decimal.RequireFromString("50000.00"), Max: decimal.RequireFromString("500000.00")},
	ScaleLarge:    {Min: decimal.RequireFromString("500000.00"), Max: decimal.RequireFromString("5000000.00")},
	ScaleFlagship: {Min: decimal.RequireFromString("5000000.00"), Max: decimal.RequireFromString("0.00")},
}

// Range returns the USD-equivalent range associated with p.
func (p ProjectScale) Range() ScaleRange {
	return scaleRanges[p]
}

var scaleKeywords = map[ProjectScale]string{
	ScaleMicro:    "micro-grant",
	ScaleSmall:    "small grant",
	ScaleMedium:   "mid-size grant",
	ScaleLarge:    "large grant",
	ScaleFlagship: "flagship funding program",
}

// BeneficiaryPopulation names the group the funded work is meant to serve.
type BeneficiaryPopulation string

const (
	BeneficiaryChildren           BeneficiaryPopulation = "CHILDREN"
	BeneficiaryYouth              BeneficiaryPopulation = "YOUTH"
	BeneficiaryWomen              BeneficiaryPopulation = "WOMEN"
	BeneficiaryElderly            BeneficiaryPopulation = "ELDERLY"
	BeneficiaryPeopleWithDisabilities BeneficiaryPopulation = "PEOPLE_WITH_DISABILITIES"
	BeneficiaryRefugees           BeneficiaryPopulation = "REFUGEES"
	BeneficiaryRuralCommunities   BeneficiaryPopulation = "RURAL_COMMUNITIES"
	BeneficiaryUrbanPoor          BeneficiaryPopulation = "URBAN_POOR"
	BeneficiaryEthnicMinorities   BeneficiaryPopulation = "ETHNIC_MINORITIES"
	BeneficiaryEntrepreneurs      BeneficiaryPopulation = "ENTREPRENEURS"
	BeneficiarySmallFarmers       BeneficiaryPopulation = "SMALL_FARMERS"
	BeneficiaryStudents           BeneficiaryPopulation = "STUDENTS"
	BeneficiaryResearchers        BeneficiaryPopulation = "RESEARCHERS"
	BeneficiaryArtists            BeneficiaryPopulation = "ARTISTS"
	BeneficiaryVeterans           BeneficiaryPopulation = "VETERANS"
	BeneficiaryUnemployed         BeneficiaryPopulation = "UNEMPLOYED"
	BeneficiaryLGBTQCommunities   BeneficiaryPopulation = "LGBTQ_COMMUNITIES"
	BeneficiaryGeneralPublic      BeneficiaryPopulation = "GENERAL_PUBLIC"
)

func AllBeneficiaryPopulations() []BeneficiaryPopulation {
	return []BeneficiaryPopulation{
		BeneficiaryChildren, BeneficiaryYouth, BeneficiaryWomen, BeneficiaryElderly,
		BeneficiaryPeopleWithDisabilities, BeneficiaryRefugees, BeneficiaryRuralCommunities,
		BeneficiaryUrbanPoor, BeneficiaryEthnicMinorities, BeneficiaryEntrepreneurs,
		BeneficiarySmallFarmers, BeneficiaryStudents, BeneficiaryResearchers, BeneficiaryArtists,
		BeneficiaryVeterans, BeneficiaryUnemployed, BeneficiaryLGBTQCommunities, BeneficiaryGeneralPublic,
	}
}

func (b BeneficiaryPopulation) IsValid() bool {
	_, ok := beneficiaryKeywords[b]
	return ok
}

var beneficiaryKeywords = map[BeneficiaryPopulation]string{
	BeneficiaryChildren:               "children",
	BeneficiaryYouth:                  "youth",
	BeneficiaryWomen:                  "women",
	BeneficiaryElderly:                "the elderly",
	BeneficiaryPeopleWithDisabilities: "people with disabilities",
	BeneficiaryRefugees:               "refugees",
	BeneficiaryRuralCommunities:       "rural communities",
	BeneficiaryUrbanPoor:              "the urban poor",
	BeneficiaryEthnicMinorities:       "ethnic minorities",
	BeneficiaryEntrepreneurs:          "entrepreneurs",
	BeneficiarySmallFarmers:           "small farmers",
	BeneficiaryStudents:               "students",
	BeneficiaryResearchers:            "researchers",
	BeneficiaryArtists:                "artists",
	BeneficiaryVeterans:               "military veterans",
	BeneficiaryUnemployed:             "the unemployed",
	BeneficiaryLGBTQCommunities:       "LGBTQ communities",
	BeneficiaryGeneralPublic:          "the general public",
}

// RecipientOrganizationType narrows a query to the legal form of the entity
// eligible to receive the funding.
type RecipientOrganizationType string

const (
	RecipientNonprofit          RecipientOrganizationType = "NONPROFIT"
	RecipientNGO                RecipientOrganizationType = "NGO"
	RecipientSocialEnterprise   RecipientOrganizationType = "SOCIAL_ENTERPRISE"
	RecipientForProfitSME       RecipientOrganizationType = "FOR_PROFIT_SME"
	RecipientStartup            RecipientOrganizationType = "STARTUP"
	RecipientMunicipality       RecipientOrganizationType = "MUNICIPALITY"
	RecipientSchool             RecipientOrganizationType = "SCHOOL"
	RecipientUniversity         RecipientOrganizationType = "UNIVERSITY"
	RecipientHospital           RecipientOrganizationType = "HOSPITAL"
	RecipientCooperative        RecipientOrganizationType = "COOPERATIVE"
	RecipientIndividual         RecipientOrganizationType = "INDIVIDUAL"
	RecipientCommunityGroup     RecipientOrganizationType = "COMMUNITY_GROUP"
	RecipientReligiousOrg       RecipientOrganizationType = "RELIGIOUS_ORGANIZATION"
	RecipientResearchInstitute  RecipientOrganizationType = "RESEARCH_INSTITUTE"
)

func AllRecipientOrganizationTypes() []RecipientOrganizationType {
	return []RecipientOrganizationType{
		RecipientNonprofit, RecipientNGO, RecipientSocialEnterprise, RecipientForProfitSME,
		RecipientStartup, RecipientMunicipality, RecipientSchool, RecipientUniversity,
		RecipientHospital, RecipientCooperative, RecipientIndividual, RecipientCommunityGroup,
		RecipientReligiousOrg, RecipientResearchInstitute,
	}
}

func (r RecipientOrganizationType) IsValid() bool {
	_, ok := recipientKeywords[r]
	return ok
}

var recipientKeywords = map[RecipientOrganizationType]string{
	RecipientNonprofit:         "nonprofit organizations",
	RecipientNGO:               "non-governmental organizations",
	RecipientSocialEnterprise:  "social enterprises",
	RecipientForProfitSME:      "small and medium enterprises",
	RecipientStartup:           "startups",
	RecipientMunicipality:      "local municipalities",
	RecipientSchool:            "schools",
	RecipientUniversity:        "universities",
	RecipientHospital:          "hospitals",
	RecipientCooperative:       "cooperatives",
	RecipientIndividual:        "individuals",
	RecipientCommunityGroup:    "community groups",
	RecipientReligiousOrg:      "religious organizations",
	RecipientResearchInstitute: "research institutes",
}

// QueryLanguage is the closed set of languages a generated query can be
// rendered in.
type QueryLanguage string

const (
	LanguageEnglish    QueryLanguage = "en"
	LanguageBulgarian  QueryLanguage = "bg"
	LanguageGerman     QueryLanguage = "de"
	LanguageFrench     QueryLanguage = "fr"
	LanguageSpanish    QueryLanguage = "es"
	LanguageRomanian   QueryLanguage = "ro"
	LanguageGreek      QueryLanguage = "el"
	LanguageSerbian    QueryLanguage = "sr"
	LanguageTurkish    QueryLanguage = "tr"
)

func AllQueryLanguages() []QueryLanguage {
	return []QueryLanguage{
		LanguageEnglish, LanguageBulgarian, LanguageGerman, LanguageFrench, LanguageSpanish,
		LanguageRomanian, LanguageGreek, LanguageSerbian, LanguageTurkish,
	}
}

func (l QueryLanguage) IsValid() bool {
	_, ok := languageNames[l]
	return ok
}

var languageNames = map[QueryLanguage]string{
	LanguageEnglish:   "English",
	LanguageBulgarian: "Bulgarian",
	LanguageGerman:    "German",
	LanguageFrench:    "French",
	LanguageSpanish:   "Spanish",
	LanguageRomanian:  "Romanian",
	LanguageGreek:     "Greek",
	LanguageSerbian:   "Serbian",
	LanguageTurkish:   "Turkish",
}
