package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/refstyles/internal/refstyles"
)

var k = koanf.New(".")

const (
	defaultConfigFile   = ".refstyles.yaml"
	defaultSettingsPath = "~/.logseq/settings/logseq-reference-styles.json"
	defaultOutputPath   = "reference-styles.css"
)

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence; only flags that were explicitly set,
	// so flag defaults never shadow file or env values)
	fs := cmd.Flags()
	provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (REFSTYLES_* prefix)
	if err := k.Load(env.Provider("REFSTYLES_", ".", func(s string) string {
		// REFSTYLES_HOST_SETTINGS -> host.settings
		// REFSTYLES_LOG_LEVEL -> log.level
		// REFSTYLES_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "REFSTYLES_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// hostConfig locates the host's settings file and stylesheet target.
type hostConfig struct {
	SettingsPath string
	SettingsKey  string
	StyleKey     string
	OutputPath   string
}

// buildHostConfig constructs the host adapter configuration from koanf state.
func buildHostConfig() hostConfig {
	return hostConfig{
		SettingsPath: expandHome(getStringWithFallback("settings", "host.settings", defaultSettingsPath)),
		SettingsKey:  getStringWithFallback("settings-key", "host.settings-key", refstyles.DefaultSettingsKey),
		StyleKey:     getStringWithFallback("style-key", "host.style-key", refstyles.DefaultStyleKey),
		OutputPath:   expandHome(getStringWithFallback("output", "render.output", defaultOutputPath)),
	}
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig(args []string) refstyles.LintConfig {
	var scanPaths []string
	switch {
	case len(args) > 0:
		scanPaths = args
	case len(k.Strings("lint.paths")) > 0:
		scanPaths = k.Strings("lint.paths")
	default:
		scanPaths = []string{buildHostConfig().SettingsPath}
	}
	for i, p := range scanPaths {
		scanPaths[i] = expandHome(p)
	}

	return refstyles.LintConfig{
		ScanPaths:          scanPaths,
		SettingsKey:        getStringWithFallback("settings-key", "host.settings-key", refstyles.DefaultSettingsKey),
		Verbose:            getBoolWithFallback("verbose", "verbose", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
