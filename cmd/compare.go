package cmd

import (
	"github.com/huangsam/cvss2/core"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd shows how a change of metric values moves the scores.
var compareCmd = &cobra.Command{
	Use:   "compare <before> <after>",
	Short: "Compare the scores of two vectors.",
	Long: `Score two vectors and show the per-tier deltas and the metrics whose value changed.

A positive delta means the after vector scores worse. Without tier flags every tier
both vectors supply is compared.

Examples:
  # What a vendor fix does to the temporal score
  cvss2 compare AV:N/AC:L/Au:N/C:C/I:C/A:C/E:F/RL:U/RC:C AV:N/AC:L/Au:N/C:C/I:C/A:C/E:F/RL:OF/RC:C

  # Export the deltas
  cvss2 compare --output csv --output-file delta.csv AV:L/AC:H/Au:M/C:P/I:N/A:N AV:N/AC:H/Au:M/C:P/I:N/A:N`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, args[0], args[1]); err != nil {
			contract.LogFatal("Cannot compare vectors", err)
		}
	},
}
