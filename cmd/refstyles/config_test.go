package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/refstyles/internal/refstyles"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetKoanf()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".refstyles.yaml")
	configContent := `
verbose: true

host:
  settings: /graph/settings.json
  settings-key: styles
  style-key: my-style

render:
  output: out/styles.css

lint:
  strict: true
  max-issues-per-linter: 5
  paths:
    - "graphs/**/*.json"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "/graph/settings.json", k.String("host.settings"))
	assert.Equal(t, "styles", k.String("host.settings-key"))
	assert.Equal(t, "out/styles.css", k.String("render.output"))
	assert.True(t, k.Bool("lint.strict"))
	assert.Equal(t, 5, k.Int("lint.max-issues-per-linter"))

	hc := buildHostConfig()
	assert.Equal(t, hostConfig{
		SettingsPath: "/graph/settings.json",
		SettingsKey:  "styles",
		StyleKey:     "my-style",
		OutputPath:   "out/styles.css",
	}, hc)

	lc := buildLintConfig(nil)
	assert.Equal(t, []string{"graphs/**/*.json"}, lc.ScanPaths)
	assert.Equal(t, "styles", lc.SettingsKey)
	assert.True(t, lc.Strict)
	assert.Equal(t, 5, lc.MaxIssuesPerLinter)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath("/nonexistent/.refstyles.yaml"))

	hc := buildHostConfig()
	assert.True(t, strings.HasSuffix(hc.SettingsPath, filepath.Join(".logseq", "settings", "logseq-reference-styles.json")))
	assert.NotContains(t, hc.SettingsPath, "~")
	assert.Equal(t, refstyles.DefaultSettingsKey, hc.SettingsKey)
	assert.Equal(t, refstyles.DefaultStyleKey, hc.StyleKey)
	assert.Equal(t, defaultOutputPath, hc.OutputPath)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".refstyles.yaml")
	configContent := `
host:
  settings: from-file.json
lint:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("REFSTYLES_HOST_SETTINGS", "from-env.json")
	t.Setenv("REFSTYLES_LINT_STRICT", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env.json", buildHostConfig().SettingsPath)
	assert.True(t, k.Bool("lint.strict"))
}

func TestBuildLintConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildLintConfig([]string{"a.json"})
	assert.Equal(t, []string{"a.json"}, config.ScanPaths)
	assert.Equal(t, refstyles.DefaultSettingsKey, config.SettingsKey)
	assert.False(t, config.Strict)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)

	resetKoanf()
	config = buildLintConfig(nil)
	assert.Equal(t, []string{buildHostConfig().SettingsPath}, config.ScanPaths)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "x.json"), expandHome("~/x.json"))
	assert.Equal(t, "~user/x.json", expandHome("~user/x.json"))
	assert.Equal(t, "/abs/x.json", expandHome("/abs/x.json"))
}

func TestStyleCommands(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.json")
	base := []string{"--config", filepath.Join(dir, "none.yaml"), "--settings", settings}
	run := func(args ...string) string {
		t.Helper()
		out, err := execute(t, append(args, base...)...)
		require.NoError(t, err)
		return out
	}

	out := run("list")
	assert.Contains(t, out, "No styles defined")

	id := strings.TrimSpace(run("add", "--value", "Book: ", "--selector", "suffix", "--character", "📚"))
	require.NotEmpty(t, id)

	out = run("list")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Suffix")
	assert.Contains(t, out, `"Book: "`)

	run("set", id, "--text-color", "#336699")

	blob, err := refstyles.FileSettings{Path: settings}.Load()
	require.NoError(t, err)
	styles, _, err := refstyles.DecodeCollection(blob)
	require.NoError(t, err)
	assert.Equal(t, refstyles.StyleEntry{
		Value:     "Book: ",
		Selector:  refstyles.SelectorSuffix,
		Character: "📚",
		Color:     "#336699",
	}, styles[id])

	out = run("render", "--stdout")
	assert.Contains(t, out, "/* "+refstyles.DefaultStyleKey+" */")
	assert.Contains(t, out, "data-ref$='book_ '")
	assert.Contains(t, out, "color: #336699!important;")

	run("rm", id)
	out = run("list")
	assert.Contains(t, out, "No styles defined")

	_, err = execute(t, append([]string{"rm", "missing"}, base...)...)
	assert.ErrorIs(t, err, refstyles.ErrStyleNotFound)
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settings,
		[]byte(`{"blockStyles":"{\"old\":{\"prefix\":\"Book: \"},\"new\":{\"value\":\"x\",\"selector\":\"*\"}}"}`), 0644))
	args := []string{"migrate", "--config", filepath.Join(dir, "none.yaml"), "--settings", settings}

	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 1 of 2 styles")

	out, err = execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "already use the current shape")
}

func TestInitCommand(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+defaultConfigFile)

	resetKoanf()
	require.NoError(t, loadConfigFromPath(filepath.Join(dir, defaultConfigFile)))
	assert.Equal(t, "blockStyles", k.String("host.settings-key"))
	assert.Equal(t, "reference-styles.css", k.String("render.output"))

	_, err = execute(t, "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--force")
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--config", "/nonexistent.yaml")
	require.NoError(t, err)
	assert.Equal(t, "refstyles dev\n", out)
}
