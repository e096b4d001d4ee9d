package cmd

import (
	"os"
	"strings"

	"github.com/huangsam/cvss2/core"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/internal/prompt"
	"github.com/spf13/cobra"
)

// scoreCmd scores one vulnerability vector.
var scoreCmd = &cobra.Command{
	Use:   "score <vector>",
	Short: "Score a CVSS v2 vulnerability vector.",
	Long: `Parse a vulnerability vector and print its base, temporal and environmental scores.

The vector lists the base metrics in order, optionally followed by the temporal
metrics and then the environmental metrics. NVD style parentheses are accepted.

Without tier flags every tier present in the vector is scored. Requesting a tier the
vector does not supply is an error unless --complete fills it with defaults.

Examples:
  # Base score
  cvss2 score AV:N/AC:L/Au:N/C:C/I:C/A:C

  # All tiers with metric and formula tables
  cvss2 score --verbose "AV:N/AC:L/Au:N/C:N/I:N/A:C/E:F/RL:OF/RC:C/CDP:H/TD:H/CR:M/IR:M/AR:H"

  # Environmental score of a base vector, defaults elsewhere
  cvss2 score -e --complete AV:N/AC:L/Au:N/C:C/I:C/A:C

  # Cross-check against an independent implementation
  cvss2 score --verify AV:L/AC:H/Au:M/C:N/I:N/A:N

  # Export a PDF report
  cvss2 score --output pdf --output-file report.pdf AV:N/AC:L/Au:N/C:C/I:C/A:C`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteScore(rootCtx, cfg, strings.Join(args, "")); err != nil {
			contract.LogFatal("Cannot score vector", err)
		}
	},
}

// interactiveCmd lets the user pick metric values in the terminal.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Choose metric values interactively and score them.",
	Long: `Walk through every metric of the requested tiers and choose a value for each.

Base metrics are always asked for, since every tier builds on them, unless --vector
supplies them. Tiers that were not asked for take their default values.

Keys: up/down to move, enter to choose, left to go back, d for the default, q to quit.

Examples:
  # Base score
  cvss2 interactive

  # Environmental score, base metrics pre-filled
  cvss2 interactive -e --vector AV:N/AC:L/Au:N/C:C/I:C/A:C`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		selector := prompt.NewSelector(os.Stdin, os.Stderr)
		if err := core.ExecuteInteractive(rootCtx, cfg, selector); err != nil {
			contract.LogFatal("Cannot run interactive scoring", err)
		}
	},
}
