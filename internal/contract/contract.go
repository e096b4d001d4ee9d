// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/schema"
)

// MetricSelector chooses metric values for the requested tiers.
// This allows the interactive flow to be tested without a terminal.
type MetricSelector interface {
	// Select returns one live Metric per catalog entry of each tier.
	// Metrics in prefill seed the initial choices.
	Select(ctx context.Context, cat *cvss.Catalog, tiers []schema.Tier, prefill *cvss.Vulnerability) ([]*cvss.Metric, error)
}

// OracleScorer scores a vector with an independent implementation.
type OracleScorer interface {
	// Name identifies the implementation in reports.
	Name() string

	// Scores returns the final score of every requested tier.
	Scores(vector string, tiers []schema.Tier) (map[schema.Tier]float64, error)
}
