// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/cvss2/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the CVSS MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"CVSS v2 Scoring Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	tiersOpt := mcp.WithString("tiers",
		mcp.Description("Comma-separated tiers to score (base, temporal, environmental). Defaults to every tier in the input."))

	// --- 1. Tool: score_vector ---
	s.AddTool(mcp.NewTool("score_vector",
		mcp.WithDescription("Score a CVSS v2 vector such as AV:N/AC:L/Au:N/C:C/I:C/A:C, with optional temporal and environmental parts."),
		mcp.WithString("vector", mcp.Description("The CVSS v2 vector to score."), mcp.Required()),
		tiersOpt,
		mcp.WithBoolean("complete", mcp.Description("Fill missing temporal and environmental metrics with their defaults.")),
		mcp.WithBoolean("verify", mcp.Description("Cross-check the scores with an independent implementation.")),
	), h.handleScoreVector)

	// --- 2. Tool: score_selections ---
	s.AddTool(mcp.NewTool("score_selections",
		mcp.WithDescription("Score a vulnerability given as metric short name to value code pairs, e.g. {\"AV\": \"N\", \"AC\": \"L\"}."),
		mcp.WithObject("selections", mcp.Description("Map of metric short name to value code."), mcp.Required()),
		tiersOpt,
		mcp.WithBoolean("complete", mcp.Description("Fill missing temporal and environmental metrics with their defaults.")),
	), h.handleScoreSelections)

	// --- 3. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List every metric, its values, codes and weights, grouped by tier."),
	), h.handleListMetrics)

	// --- 4. Tool: compare_vectors ---
	s.AddTool(mcp.NewTool("compare_vectors",
		mcp.WithDescription("Compare two CVSS v2 vectors and report per-tier score deltas and changed metrics."),
		mcp.WithString("before", mcp.Description("The vector before the change."), mcp.Required()),
		mcp.WithString("after", mcp.Description("The vector after the change."), mcp.Required()),
		tiersOpt,
	), h.handleCompareVectors)

	// --- 5. Tool: check_vector ---
	s.AddTool(mcp.NewTool("check_vector",
		mcp.WithDescription("Check whether every tier score of a vector stays at or below its threshold."),
		mcp.WithString("vector", mcp.Description("The CVSS v2 vector to check."), mcp.Required()),
		mcp.WithString("thresholds", mcp.Description("Threshold overrides such as 'base:7,temporal:6.5'.")),
		tiersOpt,
	), h.handleCheckVector)

	return s
}

// StartMCPServer starts the CVSS MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, version string) error {
	s := NewMCPServer(baseCfg, version)
	return server.ServeStdio(s)
}
