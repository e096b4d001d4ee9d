// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"

	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
	"golang.org/x/term"
)

// Width bounds of the description column in text tables.
const (
	minDescriptionWidth = 20
	maxDescriptionWidth = 80
)

// getMaxDescriptionWidth calculates the maximum width for option descriptions in table output
// based on terminal width and the fixed columns of a tier table.
func getMaxDescriptionWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Metric + Evaluation + Score columns with borders and padding
	baseWidth := 70

	available := termWidth - baseWidth
	if available < minDescriptionWidth {
		return minDescriptionWidth
	}
	if available > maxDescriptionWidth {
		return maxDescriptionWidth
	}
	return available
}

// severityLabel renders the severity of a score for tables.
func severityLabel(score float64, cfg *contract.Config) string {
	label := contract.GetPlainLabel(score)
	if cfg.UseColors {
		label = contract.GetColorLabel(score)
	}
	if cfg.UseEmojis {
		label = contract.SeverityEmoji(score) + " " + label
	}
	return label
}

// tierHeading returns the display heading of a tier, e.g. "Base".
func tierHeading(tier schema.Tier, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.HeaderColor.Sprint(tier.Display())
	}
	return tier.Display()
}

// unsupportedOutput reports an output mode that a command cannot produce.
func unsupportedOutput(mode schema.OutputMode, what string) error {
	return fmt.Errorf("output format %s is not supported for %s", mode, what)
}
