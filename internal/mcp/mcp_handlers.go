package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/huangsam/cvss2/core"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// requestConfig clones the base config and applies the shared tool arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.Complete = request.GetBool("complete", cfg.Complete)
	cfg.Verify = request.GetBool("verify", cfg.Verify)

	if raw := request.GetString("tiers", ""); raw != "" {
		cfg.Tiers = nil
		for part := range strings.SplitSeq(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			tier, err := schema.ParseTier(part)
			if err != nil {
				return nil, err
			}
			cfg.Tiers = append(cfg.Tiers, tier)
		}
	}
	return cfg, nil
}

func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreVector(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vector := request.GetString("vector", "")
	if strings.TrimSpace(vector) == "" {
		return mcp.NewToolResultError("vector is required"), nil
	}
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid tiers: %v", err)), nil
	}

	report, err := core.GetScoreReport(ctx, cfg, vector)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return toolResultJSON(report)
}

func (h *toolHandler) handleScoreSelections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["selections"].(map[string]any)
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("selections must be a non-empty object of short name to code"), nil
	}
	selections := make(map[schema.ShortName]string, len(raw))
	for short, code := range raw {
		s, ok := code.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("code of %s must be a string", short)), nil
		}
		selections[schema.ShortName(short)] = s
	}

	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid tiers: %v", err)), nil
	}
	report, err := core.GetSelectionsReport(ctx, cfg, selections)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return toolResultJSON(report)
}

func (h *toolHandler) handleListMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResultJSON(core.BuildMetricsRenderModel(h.baseCfg.Catalog))
}

func (h *toolHandler) handleCompareVectors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	before := request.GetString("before", "")
	after := request.GetString("after", "")
	if before == "" || after == "" {
		return mcp.NewToolResultError("before and after are required"), nil
	}
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid tiers: %v", err)), nil
	}

	result, err := core.GetComparisonResult(ctx, cfg, before, after)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return toolResultJSON(result)
}

func (h *toolHandler) handleCheckVector(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vector := request.GetString("vector", "")
	if vector == "" {
		return mcp.NewToolResultError("vector is required"), nil
	}
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid tiers: %v", err)), nil
	}
	if raw := request.GetString("thresholds", ""); raw != "" {
		overrides, err := contract.ParseThresholdsString(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid thresholds: %v", err)), nil
		}
		if cfg.Thresholds == nil {
			cfg.Thresholds = make(map[schema.Tier]float64, len(overrides))
		}
		maps.Copy(cfg.Thresholds, overrides)
	}

	result, err := core.GetCheckResult(ctx, cfg, vector)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}
	return toolResultJSON(result)
}
