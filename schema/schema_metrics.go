package schema

// CatalogOption is one selectable value of a metric.
type CatalogOption struct {
	Label       string  `json:"label"`
	Code        string  `json:"code"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
	Default     bool    `json:"default"`
}

// CatalogMetric describes a metric and its options.
type CatalogMetric struct {
	Name      string          `json:"name"`
	ShortName ShortName       `json:"short_name"`
	Options   []CatalogOption `json:"options"`
}

// CatalogTier groups the metrics of one tier.
type CatalogTier struct {
	Tier    Tier            `json:"tier"`
	Formula string          `json:"formula"`
	Metrics []CatalogMetric `json:"metrics"`
}

// MetricsRenderModel contains all processed data needed for displaying the metric catalog.
type MetricsRenderModel struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Version     string         `json:"version"`
	Tiers       []CatalogTier  `json:"tiers"`
	Severities  []SeverityBand `json:"severities"`
}

// SeverityBand is the score range of a severity rating.
type SeverityBand struct {
	Severity Severity `json:"severity"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
}
