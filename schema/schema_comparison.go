package schema

// ComparisonDetail holds the before and after score of one tier and their delta.
type ComparisonDetail struct {
	Tier           Tier     `json:"tier"`
	BeforeScore    float64  `json:"before_score"`
	AfterScore     float64  `json:"after_score"`
	Delta          float64  `json:"delta"` // AfterScore - BeforeScore (Positive means worse)
	BeforeSeverity Severity `json:"before_severity"`
	AfterSeverity  Severity `json:"after_severity"`
}

// MetricChange is a metric whose selection differs between the two vectors.
type MetricChange struct {
	ShortName ShortName `json:"short_name"`
	Name      string    `json:"name"`
	Before    string    `json:"before"` // Empty when the tier was not supplied
	After     string    `json:"after"`
}

// ComparisonSummary has high-level deltas and counts.
type ComparisonSummary struct {
	ChangedMetrics int `json:"changed_metrics"`
	WorsenedTiers  int `json:"worsened_tiers"`
	ImprovedTiers  int `json:"improved_tiers"`
}

// ComparisonResult holds the comparison details and summary.
type ComparisonResult struct {
	Before  string             `json:"before"`
	After   string             `json:"after"`
	Details []ComparisonDetail `json:"details"`
	Changes []MetricChange     `json:"changes"`
	Summary ComparisonSummary  `json:"summary"`
}
