package cmd

import (
	"io"
	"os"

	"github.com/huangsam/cvss2/core"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/spf13/cobra"
)

// batchCmd scores a list of vectors.
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Score one vector per line of a file or stdin.",
	Long: `Score every vector of a file, one per line, in order. Reads stdin when no file is given.

Blank lines and lines starting with '#' are skipped. A line that cannot be scored is
reported with its error and does not stop the batch.

Examples:
  # Score a list of vectors
  cvss2 batch vectors.txt

  # Pipe vectors and keep the results in Parquet
  cat vectors.txt | cvss2 batch --complete --all --output parquet --output-file scores.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		var r io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				contract.LogFatal("Cannot open batch file", err)
			}
			defer func() { _ = f.Close() }()
			r = f
		}
		if err := core.ExecuteBatch(rootCtx, cfg, r); err != nil {
			contract.LogFatal("Cannot score batch", err)
		}
	},
}
