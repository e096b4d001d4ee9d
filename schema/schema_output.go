package schema

// BatchEntry is the outcome of scoring one line of a batch.
type BatchEntry struct {
	Line          int      `json:"line"`
	Input         string   `json:"input"`
	Vector        string   `json:"vector,omitempty"`
	Base          *float64 `json:"base,omitempty"`
	Temporal      *float64 `json:"temporal,omitempty"`
	Environmental *float64 `json:"environmental,omitempty"`
	Severity      Severity `json:"severity,omitempty"` // Severity of the highest tier scored
	Error         string   `json:"error,omitempty"`
}

// BatchSummary counts the outcomes of a batch.
type BatchSummary struct {
	Total   int     `json:"total"`
	Scored  int     `json:"scored"`
	Failed  int     `json:"failed"`
	MaxBase float64 `json:"max_base"`
}

// BatchResult holds every entry of a batch in input order.
type BatchResult struct {
	Entries []BatchEntry `json:"entries"`
	Summary BatchSummary `json:"summary"`
}

// FinalScore returns the score of the highest tier that was scored.
func (e BatchEntry) FinalScore() (float64, bool) {
	for _, s := range []*float64{e.Environmental, e.Temporal, e.Base} {
		if s != nil {
			return *s, true
		}
	}
	return 0, false
}
