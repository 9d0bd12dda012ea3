package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/refstyles/internal/refstyles"
)

var lintCmd = &cobra.Command{
	Use:   "lint [PATTERN...]",
	Short: "Check settings files for styles that render badly",
	Long: `Decode the styles in each settings file matching the patterns (default: the
configured settings file) and report empty values, values that break the
generated CSS, multi-glyph characters, invalid colors and duplicates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLint(cmd, args)
	},
}

func init() {
	f := lintCmd.Flags()
	f.Bool("strict", false, "Exit 1 on warnings too (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (reflinter) suffix on issues")
}

func runLint(cmd *cobra.Command, args []string) error {
	lintConfig := buildLintConfig(args)

	lintResult, err := refstyles.Lint(lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := refstyles.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		refstyles.WriteOutput(cmd.OutOrStdout(), lintResult, format, lintConfig)
	}

	// Exit code logic - "Soft Gate" approach
	if lintResult.ErrorCount > 0 || (lintConfig.Strict && lintResult.WarningCount > 0) {
		os.Exit(1)
	}
	return nil
}
