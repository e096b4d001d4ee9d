package cmd

import (
	"github.com/huangsam/cvss2/core"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the metric catalog and the equations.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display every metric, its values and weights, and the scoring equations",
	Long: `Show the metric catalog used for scoring, grouped by tier.

For each metric the values are listed with their vector code, weight and meaning.
The value marked with * is the default that --complete fills in. Each tier ends
with its equation, followed by the NVD severity bands.

A custom catalog can be given with --catalog.

Examples:
  # Show the built-in catalog
  cvss2 metrics

  # Export it as CSV
  cvss2 metrics --output csv --output-file metrics.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
