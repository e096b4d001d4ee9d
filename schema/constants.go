package schema

// Custom string types for type safety.
type (
	// ShortName is the canonical metric code used in vector strings (e.g. "AV").
	ShortName string

	// Tier represents one of the three CVSS computation tiers.
	Tier string

	// OutputMode represents the format of the output.
	OutputMode string

	// Severity represents the qualitative rating of a score.
	Severity string
)

// Metric short names, as they appear in vectors.
const (
	AccessVector               ShortName = "AV"
	AccessComplexity           ShortName = "AC"
	Authentication             ShortName = "Au"
	ConfidentialityImpact      ShortName = "C"
	IntegrityImpact            ShortName = "I"
	AvailabilityImpact         ShortName = "A"
	Exploitability             ShortName = "E"
	RemediationLevel           ShortName = "RL"
	ReportConfidence           ShortName = "RC"
	CollateralDamagePotential  ShortName = "CDP"
	TargetDistribution         ShortName = "TD"
	ConfidentialityRequirement ShortName = "CR"
	IntegrityRequirement       ShortName = "IR"
	AvailabilityRequirement    ShortName = "AR"
)

// All tiers supported, in scoring order.
const (
	BaseTier          Tier = "base"
	TemporalTier      Tier = "temporal"
	EnvironmentalTier Tier = "environmental"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	PDFOut     OutputMode = "pdf"
)

// Severity ratings, NVD CVSS v2 bands.
const (
	LowSeverity    Severity = "Low"
	MediumSeverity Severity = "Medium"
	HighSeverity   Severity = "High"
)

// AllTiers lists every tier in the order scores build on each other.
var AllTiers = []Tier{BaseTier, TemporalTier, EnvironmentalTier}

// BaseShortNames is the fixed order of the base vector.
var BaseShortNames = []ShortName{AccessVector, AccessComplexity, Authentication, ConfidentialityImpact, IntegrityImpact, AvailabilityImpact}

// TemporalShortNames is the fixed order of the temporal vector.
var TemporalShortNames = []ShortName{Exploitability, RemediationLevel, ReportConfidence}

// EnvironmentalShortNames is the fixed order of the environmental vector.
var EnvironmentalShortNames = []ShortName{CollateralDamagePotential, TargetDistribution, ConfidentialityRequirement, IntegrityRequirement, AvailabilityRequirement}

// ShortNamesFor returns the fixed vector order for a tier.
func ShortNamesFor(tier Tier) []ShortName {
	switch tier {
	case TemporalTier:
		return TemporalShortNames
	case EnvironmentalTier:
		return EnvironmentalShortNames
	default:
		return BaseShortNames
	}
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
	PDFOut:     {},
}

// ValidTiers lists all valid tiers.
var ValidTiers = map[Tier]struct{}{
	BaseTier:          {},
	TemporalTier:      {},
	EnvironmentalTier: {},
}
