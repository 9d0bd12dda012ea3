package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yacobolo/refstyles/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "refstyles",
	Short: "Style page references by prefix, suffix or substring",
	Long: `Manage reference styles stored in the host's plugin settings and render
them into the stylesheet the host injects.
Each style matches page names by prefix, suffix or substring and can
prepend a glyph and recolor the matched reference.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		setupLogger(cmd)
		return nil
	},
	// Default behavior: render when no subcommand is given.
	RunE:          runRender,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", defaultConfigFile, "Config file path")
	pf.String("settings", "", "Host plugin settings file (default "+defaultSettingsPath+")")
	pf.String("settings-key", "", "Settings field holding the styles (default blockStyles)")
	pf.String("style-key", "", "Key the stylesheet is registered under")
	pf.String("log-level", "", "Log level: debug|info|warn|error")

	rootCmd.Flags().String("output", "", "Stylesheet output file (default "+defaultOutputPath+")")
	rootCmd.Flags().Bool("stdout", false, "Print the stylesheet instead of writing it")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogger attaches a zerolog logger to the command context.
// --verbose lowers the default level to debug.
func setupLogger(cmd *cobra.Command) {
	cfg := logging.DefaultConfig()
	if getBoolWithFallback("verbose", "verbose", false) {
		cfg.Level = zerolog.DebugLevel
	}
	cfg.Level = logging.ParseLevel(getStringWithFallback("log-level", "log.level", ""), cfg.Level)
	cfg.Format = getStringWithFallback("log-format", "log.format", cfg.Format)
	cfg.Out = cmd.ErrOrStderr()

	cmd.SetContext(logging.WithContext(cmd.Context(), logging.New(cfg)))
}
