package schema

import (
	"fmt"
	"strings"
)

// Lower bounds of the NVD CVSS v2 severity bands.
const (
	MediumSeverityMin = 4.0
	HighSeverityMin   = 7.0
)

// SeverityBands lists the NVD CVSS v2 ranges from lowest to highest.
var SeverityBands = []SeverityBand{
	{Severity: LowSeverity, Min: 0.0, Max: 3.9},
	{Severity: MediumSeverity, Min: MediumSeverityMin, Max: 6.9},
	{Severity: HighSeverity, Min: HighSeverityMin, Max: 10.0},
}

// GetSeverity returns the qualitative rating of a score.
func GetSeverity(score float64) Severity {
	switch {
	case score >= HighSeverityMin:
		return HighSeverity
	case score >= MediumSeverityMin:
		return MediumSeverity
	default:
		return LowSeverity
	}
}

// ParseTier converts user input such as "Temporal" or "env" into a Tier.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base", "b":
		return BaseTier, nil
	case "temporal", "t":
		return TemporalTier, nil
	case "environmental", "env", "e":
		return EnvironmentalTier, nil
	default:
		return "", fmt.Errorf("invalid tier %q (expected base, temporal or environmental)", s)
	}
}

// Title returns the upper-case heading of a tier, e.g. "BASE".
func (t Tier) Title() string {
	return strings.ToUpper(string(t))
}

// Display returns the capitalized tier name, e.g. "Temporal".
func (t Tier) Display() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}
