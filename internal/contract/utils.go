package contract

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/cvss2/schema"
	"github.com/lmittmann/tint"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // HighColor represents standard danger.
	MediumColor = color.New(color.FgYellow)          // MediumColor represents standard caution, not bold.
	LowColor    = color.New(color.FgCyan)            // LowColor represents informational / low-priority signal.
	HeaderColor = color.New(color.Bold)
)

// GetPlainLabel returns the severity label of a score. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	return string(schema.GetSeverity(score))
}

// GetColorLabel returns a colored severity label for console output (table).
func GetColorLabel(score float64) string {
	sev := schema.GetSeverity(score)
	switch sev {
	case schema.HighSeverity:
		return HighColor.Sprint(sev)
	case schema.MediumSeverity:
		return MediumColor.Sprint(sev)
	default:
		return LowColor.Sprint(sev)
	}
}

// SeverityEmoji returns a marker for the severity of a score.
func SeverityEmoji(score float64) string {
	switch schema.GetSeverity(score) {
	case schema.HighSeverity:
		return "🔴"
	case schema.MediumSeverity:
		return "🟡"
	default:
		return "🟢"
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// InitLogger installs a tint handler on stderr as the default slog logger.
// Stdout is reserved for results.
func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

// ParseLogLevel parses "debug", "info", "warn" or "error". Empty means DefaultLogLevel.
func ParseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		s = DefaultLogLevel
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid --log-level value: %w", err)
	}
	return level, nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	slog.Warn(msg, "error", err)
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
