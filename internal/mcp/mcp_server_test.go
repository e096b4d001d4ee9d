package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	mcp_internal "github.com/huangsam/cvss2/internal/mcp"
	"github.com/huangsam/cvss2/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	baseCfg := &contract.Config{
		Catalog:   cvss.DefaultCatalog(),
		Precision: contract.DefaultPrecision,
		Thresholds: map[schema.Tier]float64{
			schema.BaseTier:          contract.DefaultThreshold,
			schema.TemporalTier:      contract.DefaultThreshold,
			schema.EnvironmentalTier: contract.DefaultThreshold,
		},
	}
	s := mcp_internal.NewMCPServer(baseCfg, "test")

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestScoreVectorTool(t *testing.T) {
	t.Run("scores every supplied tier", func(t *testing.T) {
		res := callTool(t, "score_vector", map[string]any{
			"vector": "AV:N/AC:L/Au:N/C:N/I:N/A:C/E:F/RL:OF/RC:C/CDP:H/TD:H/CR:M/IR:M/AR:H",
		})
		require.False(t, res.IsError, resultText(t, res))

		var report schema.ScoreReport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
		require.Len(t, report.Tiers, 3)
		assert.Equal(t, 7.8, report.Tiers[0].Score)
		assert.Equal(t, 6.4, report.Tiers[1].Score)
		assert.Equal(t, 9.2, report.Tiers[2].Score)
	})

	t.Run("complete with tiers and verify", func(t *testing.T) {
		res := callTool(t, "score_vector", map[string]any{
			"vector":   "AV:N/AC:L/Au:N/C:C/I:C/A:C",
			"tiers":    "temporal, environmental",
			"complete": true,
			"verify":   true,
		})
		require.False(t, res.IsError, resultText(t, res))

		var report schema.ScoreReport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
		require.Len(t, report.Tiers, 2)
		assert.Equal(t, schema.TemporalTier, report.Tiers[0].Tier)
		require.NotNil(t, report.Verification)
		assert.True(t, report.Verification.Agrees)
	})

	t.Run("missing vector", func(t *testing.T) {
		res := callTool(t, "score_vector", map[string]any{"vector": ""})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "vector is required")
	})

	t.Run("malformed vector", func(t *testing.T) {
		res := callTool(t, "score_vector", map[string]any{"vector": "AV:N/AC:L"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "scoring failed")
	})

	t.Run("invalid tier", func(t *testing.T) {
		res := callTool(t, "score_vector", map[string]any{"vector": "AV:N/AC:L/Au:N/C:C/I:C/A:C", "tiers": "final"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid tiers")
	})
}

func TestScoreSelectionsTool(t *testing.T) {
	res := callTool(t, "score_selections", map[string]any{
		"selections": map[string]any{"AV": "N", "AC": "L", "Au": "N", "C": "C", "I": "C", "A": "C"},
	})
	require.False(t, res.IsError, resultText(t, res))
	var report schema.ScoreReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.Equal(t, "AV:N/AC:L/Au:N/C:C/I:C/A:C", report.Vector)
	assert.Equal(t, 10.0, report.Tiers[0].Score)

	res = callTool(t, "score_selections", map[string]any{
		"selections": map[string]any{"AV": "Q", "AC": "L", "Au": "N", "C": "C", "I": "C", "A": "C"},
	})
	assert.True(t, res.IsError)

	res = callTool(t, "score_selections", map[string]any{
		"selections": map[string]any{"AV": "", "AC": "L", "Au": "N", "C": "C", "I": "C", "A": "C"},
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid selection")

	res = callTool(t, "score_selections", map[string]any{"selections": map[string]any{"AV": 1}})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "must be a string")

	res = callTool(t, "score_selections", map[string]any{})
	assert.True(t, res.IsError)
}

func TestListMetricsTool(t *testing.T) {
	res := callTool(t, "list_metrics", nil)
	require.False(t, res.IsError)

	var model schema.MetricsRenderModel
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &model))
	assert.Equal(t, "2.10", model.Version)
	require.Len(t, model.Tiers, 3)
	assert.Len(t, model.Tiers[0].Metrics, 6)
}

func TestCompareVectorsTool(t *testing.T) {
	res := callTool(t, "compare_vectors", map[string]any{
		"before": "AV:L/AC:H/Au:M/C:N/I:N/A:N",
		"after":  "AV:N/AC:L/Au:N/C:C/I:C/A:C",
	})
	require.False(t, res.IsError, resultText(t, res))

	var result schema.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	require.Len(t, result.Details, 1)
	assert.Equal(t, 10.0, result.Details[0].Delta)
	assert.Equal(t, 6, result.Summary.ChangedMetrics)

	res = callTool(t, "compare_vectors", map[string]any{"before": "AV:N"})
	assert.True(t, res.IsError)
}

func TestCheckVectorTool(t *testing.T) {
	res := callTool(t, "check_vector", map[string]any{"vector": "AV:N/AC:L/Au:N/C:C/I:C/A:C"})
	require.False(t, res.IsError, resultText(t, res))
	var result schema.CheckResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	assert.False(t, result.Passed)

	res = callTool(t, "check_vector", map[string]any{
		"vector":     "AV:N/AC:L/Au:N/C:C/I:C/A:C",
		"thresholds": "base:10",
	})
	require.False(t, res.IsError, resultText(t, res))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	assert.True(t, result.Passed)

	res = callTool(t, "check_vector", map[string]any{"vector": "AV:N/AC:L/Au:N/C:C/I:C/A:C", "thresholds": "base"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid thresholds")
}
