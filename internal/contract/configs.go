package contract

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	DefaultThreshold = 6.9 // Top of the Medium band, so High scores fail a check
	DefaultLogLevel  = "warn"
)

// validate is a singleton validator instance.
var validate = validator.New()

// ThresholdsRawInput holds severity gate definitions from the YAML config file.
type ThresholdsRawInput struct {
	Base          *float64 `mapstructure:"base"`
	Temporal      *float64 `mapstructure:"temporal"`
	Environmental *float64 `mapstructure:"environmental"`
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	// Tiers is the explicit tier request. Empty means every tier present in the input.
	Tiers    []schema.Tier
	Complete bool
	Verbose  bool
	Verify   bool

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseEmojis  bool
	UseColors  bool
	LogLevel   slog.Level

	// Catalog is the metric catalog used for every request.
	Catalog     *cvss.Catalog
	CatalogPath string

	// Vector is the prefilled base vector for interactive mode.
	Vector string

	// Thresholds is a mapping of [Tier] = maximum accepted score
	Thresholds map[schema.Tier]float64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output     string `mapstructure:"output" validate:"oneof=text csv json parquet pdf"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision" validate:"min=1,max=4"`
	Width      int    `mapstructure:"width" validate:"min=0"`
	Emoji      string `mapstructure:"emoji"`
	Color      string `mapstructure:"color"`
	LogLevel   string `mapstructure:"log-level" validate:"omitempty,oneof=debug info warn error"`
	Catalog    string `mapstructure:"catalog"`

	// --- Tier selection flags ---
	Base          bool `mapstructure:"base"`
	Temporal      bool `mapstructure:"temporal"`
	Environmental bool `mapstructure:"environmental"`
	All           bool `mapstructure:"all"`

	// --- Fields from scoreCmd.Flags() ---
	Complete bool `mapstructure:"complete"`
	Verbose  bool `mapstructure:"verbose"`
	Verify   bool `mapstructure:"verify"`

	// --- Fields from interactiveCmd.Flags() ---
	Vector string `mapstructure:"vector"`

	// --- Fields from checkCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Severity gates from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Tiers = slices.Clone(c.Tiers)
	if c.Thresholds != nil {
		clone.Thresholds = make(map[schema.Tier]float64, len(c.Thresholds))
		maps.Copy(clone.Thresholds, c.Thresholds)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	input.Output = strings.ToLower(strings.TrimSpace(input.Output))
	input.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if err := validate.Struct(input); err != nil {
		return formatValidationError(err)
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTiers(cfg, input); err != nil {
		return err
	}
	if err := processCatalog(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// formatValidationError turns validator errors into a flag-oriented message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("invalid value %v for %s (rule %s=%s)", fe.Value(), flagName(fe.Field()), fe.Tag(), fe.Param())
}

// flagName maps a ConfigRawInput field name to its flag.
func flagName(field string) string {
	switch field {
	case "OutputFile":
		return "--output-file"
	case "LogLevel":
		return "--log-level"
	default:
		return "--" + strings.ToLower(field)
	}
}

// validateSimpleInputs processes and validates the output-related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Precision = input.Precision
	cfg.Complete = input.Complete
	cfg.Verbose = input.Verbose
	cfg.Verify = input.Verify
	cfg.Vector = strings.TrimSpace(input.Vector)

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	cfg.Output = schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, pdf", input.Output)
	}
	if (cfg.Output == schema.ParquetOut || cfg.Output == schema.PDFOut) && cfg.OutputFile == "" {
		return fmt.Errorf("--output %s requires --output-file", cfg.Output)
	}
	return nil
}

// processTiers turns the tier flags into the requested tier list.
func processTiers(cfg *Config, input *ConfigRawInput) error {
	cfg.Tiers = nil
	if input.All {
		cfg.Tiers = slices.Clone(schema.AllTiers)
		return nil
	}
	flags := map[schema.Tier]bool{
		schema.BaseTier:          input.Base,
		schema.TemporalTier:      input.Temporal,
		schema.EnvironmentalTier: input.Environmental,
	}
	for _, tier := range schema.AllTiers {
		if flags[tier] {
			cfg.Tiers = append(cfg.Tiers, tier)
		}
	}
	return nil
}

// processCatalog loads the catalog named by --catalog, or the built-in one.
func processCatalog(cfg *Config, input *ConfigRawInput) error {
	cfg.CatalogPath = strings.TrimSpace(input.Catalog)
	if cfg.CatalogPath == "" {
		cfg.Catalog = cvss.DefaultCatalog()
		return nil
	}
	f, err := os.Open(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("could not open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	cat, err := cvss.LoadCatalog(f)
	if err != nil {
		return fmt.Errorf("could not load catalog %s: %w", cfg.CatalogPath, err)
	}
	cfg.Catalog = cat
	return nil
}

// processThresholds converts the raw threshold input into the final cfg.Thresholds map.
// Defaults to DefaultThreshold for every tier.
// Command-line --thresholds-override flag takes precedence over config file settings.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := map[schema.Tier]float64{
		schema.BaseTier:          DefaultThreshold,
		schema.TemporalTier:      DefaultThreshold,
		schema.EnvironmentalTier: DefaultThreshold,
	}

	if input.Thresholds.Base != nil {
		thresholds[schema.BaseTier] = *input.Thresholds.Base
	}
	if input.Thresholds.Temporal != nil {
		thresholds[schema.TemporalTier] = *input.Thresholds.Temporal
	}
	if input.Thresholds.Environmental != nil {
		thresholds[schema.EnvironmentalTier] = *input.Thresholds.Environmental
	}

	if input.ThresholdsStr != "" {
		parsed, err := ParseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	for tier, threshold := range thresholds {
		if threshold < 0.0 || threshold > 10.0 {
			return fmt.Errorf("threshold for tier %s must be between 0.0 and 10.0 (received %.2f)", tier, threshold)
		}
	}

	cfg.Thresholds = thresholds
	return nil
}

// ParseThresholdsString parses "base:7,temporal:6.5" into a threshold map.
func ParseThresholdsString(s string) (map[schema.Tier]float64, error) {
	thresholds := make(map[schema.Tier]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'tier:value'", part)
		}

		tier, err := schema.ParseTier(keyValue[0])
		if err != nil {
			return nil, err
		}

		valueStr := strings.TrimSpace(keyValue[1])
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for tier %s: %w", valueStr, tier, err)
		}
		thresholds[tier] = value
	}

	return thresholds, nil
}
