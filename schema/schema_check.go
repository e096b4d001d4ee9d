package schema

// CheckResult holds the results of a policy check.
type CheckResult struct {
	Passed       bool             `json:"passed"`
	Vector       string           `json:"vector"`
	CheckedTiers []Tier           `json:"checked_tiers"`
	Thresholds   map[Tier]float64 `json:"thresholds"`
	Scores       map[Tier]float64 `json:"scores"`
	Failures     []CheckFailure   `json:"failures"`
}

// CheckFailure represents a tier whose score exceeded its threshold.
type CheckFailure struct {
	Tier      Tier     `json:"tier"`
	Score     float64  `json:"score"`
	Threshold float64  `json:"threshold"`
	Severity  Severity `json:"severity"`
}
