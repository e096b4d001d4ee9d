package contract

import (
	"context"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/schema"
	"github.com/stretchr/testify/mock"
)

// MockMetricSelector is a mock implementation of MetricSelector for testing.
type MockMetricSelector struct {
	mock.Mock
}

var _ MetricSelector = &MockMetricSelector{} // Compile-time check

// Select implements the MetricSelector interface.
func (m *MockMetricSelector) Select(ctx context.Context, cat *cvss.Catalog, tiers []schema.Tier, prefill *cvss.Vulnerability) ([]*cvss.Metric, error) {
	args := m.Called(ctx, cat, tiers, prefill)
	metrics, _ := args.Get(0).([]*cvss.Metric)
	return metrics, args.Error(1)
}

// MockOracleScorer is a mock implementation of OracleScorer for testing.
type MockOracleScorer struct {
	mock.Mock
}

var _ OracleScorer = &MockOracleScorer{} // Compile-time check

// Name implements the OracleScorer interface.
func (m *MockOracleScorer) Name() string {
	return m.Called().String(0)
}

// Scores implements the OracleScorer interface.
func (m *MockOracleScorer) Scores(vector string, tiers []schema.Tier) (map[schema.Tier]float64, error) {
	args := m.Called(vector, tiers)
	scores, _ := args.Get(0).(map[schema.Tier]float64)
	return scores, args.Error(1)
}
