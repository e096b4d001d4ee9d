// Package cmd defines the command-line interface for cvss2.
package cmd

import (
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().BoolP("base", "b", false, "Score the base tier")
	rootCmd.PersistentFlags().BoolP("temporal", "t", false, "Score the temporal tier")
	rootCmd.PersistentFlags().BoolP("environmental", "e", false, "Score the environmental tier")
	rootCmd.PersistentFlags().BoolP("all", "a", false, "Score every tier")
	rootCmd.PersistentFlags().Bool("complete", false, "Fill missing temporal and environmental metrics with their defaults")
	rootCmd.PersistentFlags().Bool("verbose", false, "Print per-tier metric and formula tables")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or pdf")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for weights and intermediate values")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Prefix severity labels with an emoji (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a custom metric catalog in YAML")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("verify", false, "Cross-check scores with an independent CVSS implementation")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of interactiveCmd to Viper
	interactiveCmd.Flags().String("vector", "", "Base vector that pre-fills the base metrics")
	if err := viper.BindPFlags(interactiveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding interactive flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("thresholds-override", "", "Score thresholds for CI/CD gating (format: 'base:7,temporal:6.5,environmental:8')")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}
}
