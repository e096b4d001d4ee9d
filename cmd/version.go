package cmd

import (
	"runtime"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cvss2.",
	Long: `Display version information including build details and the CVSS equations version.

Useful for:
- Debugging compatibility issues
- Verifying correct binary installation
- Reporting bugs with version details`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("cvss2 CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  CVSS:    %s\n", cvss.V210{}.Version())
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
