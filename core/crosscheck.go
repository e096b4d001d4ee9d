package core

import (
	"fmt"

	"github.com/huangsam/cvss2/schema"
	gocvss20 "github.com/pandatix/go-cvss/20"
)

// GoCVSSOracle scores vectors with github.com/pandatix/go-cvss.
type GoCVSSOracle struct{}

// Name implements contract.OracleScorer.
func (GoCVSSOracle) Name() string { return "github.com/pandatix/go-cvss" }

// Scores implements contract.OracleScorer.
func (GoCVSSOracle) Scores(vector string, tiers []schema.Tier) (map[schema.Tier]float64, error) {
	parsed, err := gocvss20.ParseVector(vector)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", vector, err)
	}

	scores := make(map[schema.Tier]float64, len(tiers))
	for _, tier := range tiers {
		switch tier {
		case schema.BaseTier:
			scores[tier] = parsed.BaseScore()
		case schema.TemporalTier:
			scores[tier] = parsed.TemporalScore()
		case schema.EnvironmentalTier:
			scores[tier] = parsed.EnvironmentalScore()
		}
	}
	return scores, nil
}
