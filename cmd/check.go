package cmd

import (
	"strings"

	"github.com/huangsam/cvss2/core"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <vector>",
	Short: "Enforce score thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Score a vector and fail with a non-zero exit code when any requested tier
scores above its threshold.

Default thresholds: 6.9 for every tier, so any High severity score fails.
Thresholds can also be set in the config file under thresholds.base,
thresholds.temporal and thresholds.environmental.

Examples:
  # Gate on the default thresholds
  cvss2 check AV:N/AC:L/Au:N/C:P/I:N/A:N

  # Custom thresholds per tier
  cvss2 check --all --complete --thresholds-override "base:7,temporal:6.5,environmental:8" AV:N/AC:L/Au:N/C:C/I:C/A:C`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, strings.Join(args, "")); err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}
