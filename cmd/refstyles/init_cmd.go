package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .refstyles.yaml config file",
	Long:  `Create a .refstyles.yaml configuration file in the current directory with sensible defaults.`,
	// Skip config loading so a broken config file can be replaced.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# refstyles configuration

verbose: false
color: false

# Host plugin settings
host:
  settings: ~/.logseq/settings/logseq-reference-styles.json
  settings-key: blockStyles
  style-key: logseq-reference-styles-style

# Stylesheet rendering
render:
  output: reference-styles.css

# Logging (stderr)
log:
  level: warn              # debug | info | warn | error
  format: console          # console | json

# Linting settings
lint:
  paths:
    - "~/.logseq/settings/*.json"
  strict: false
  output-format: issues    # issues | summary | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
