package refstyles

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSettings writes a host settings file holding styles as the blob.
func writeSettings(t *testing.T, path string, styles map[string]any) {
	t.Helper()
	blob, err := json.Marshal(styles)
	require.NoError(t, err)
	data, err := json.MarshalIndent(map[string]string{DefaultSettingsKey: string(blob)}, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func linters(issues []Issue) map[string]string {
	out := make(map[string]string)
	for _, issue := range issues {
		out[issue.StyleID+"/"+issue.FromLinter] = issue.Severity
	}
	return out
}

func TestLintFile(t *testing.T) {
	tests := []struct {
		name   string
		styles map[string]any
		want   map[string]string // "id/linter" -> severity
	}{
		{
			name: "clean",
			styles: map[string]any{
				"a": map[string]string{"value": "Party: ", "selector": "^", "character": "🎉", "color": "#ff00aa"},
				"b": map[string]string{"value": "Done", "selector": "$", "color": "rebeccapurple"},
			},
			want: map[string]string{},
		},
		{
			name: "empty value",
			styles: map[string]any{
				"a": map[string]string{"value": "", "selector": "*"},
			},
			want: map[string]string{"a/refvalue": SeverityError},
		},
		{
			name: "quote in value",
			styles: map[string]any{
				"a": map[string]string{"value": "it's", "selector": "^"},
			},
			want: map[string]string{"a/refquote": SeverityError},
		},
		{
			name: "newline in character",
			styles: map[string]any{
				"a": map[string]string{"value": "x", "selector": "^", "character": "a\nb"},
			},
			want: map[string]string{"a/refquote": SeverityError, "a/refglyph": SeverityWarning},
		},
		{
			name: "long glyph",
			styles: map[string]any{
				"a": map[string]string{"value": "x", "selector": "^", "character": "ab"},
			},
			want: map[string]string{"a/refglyph": SeverityWarning},
		},
		{
			name: "flag emoji is one glyph",
			styles: map[string]any{
				"a": map[string]string{"value": "x", "selector": "^", "character": "🇳🇱"},
			},
			want: map[string]string{},
		},
		{
			name: "bad color",
			styles: map[string]any{
				"a": map[string]string{"value": "x", "selector": "^", "color": "blu"},
			},
			want: map[string]string{"a/refcolor": SeverityWarning},
		},
		{
			name: "duplicate",
			styles: map[string]any{
				"a": map[string]string{"value": "x", "selector": "^"},
				"b": map[string]string{"value": "x", "selector": "^"},
				"c": map[string]string{"value": "x", "selector": "$"},
			},
			want: map[string]string{"b/refduplicate": SeverityWarning},
		},
		{
			name: "legacy",
			styles: map[string]any{
				"a": map[string]string{"prefix": "Book: "},
			},
			want: map[string]string{"a/reflegacy": SeverityInfo},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			writeSettings(t, path, tt.styles)

			issues, checked := LintFile(path, "")
			assert.Equal(t, len(tt.styles), checked)
			assert.Equal(t, tt.want, linters(issues))
		})
	}
}

func TestLintFile_Undecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"blockStyles":"{\"a\":{\"character\":\"x\"}}"}`), 0644))

	issues, checked := LintFile(path, "")
	assert.Zero(t, checked)
	require.Len(t, issues, 1)
	assert.Equal(t, LinterShape, issues[0].FromLinter)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, 1, issues[0].Pos.Line)
}

func TestLintFile_Position(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := "{\n  \"disabled\": false,\n  \"blockStyles\": \"{\\\"abc\\\":{\\\"value\\\":\\\"\\\",\\\"selector\\\":\\\"^\\\"}}\"\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	issues, _ := LintFile(path, "")
	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Pos.Line)
	assert.Equal(t, 22, issues[0].Pos.Column)
	assert.Equal(t, "abc", issues[0].StyleID)
	require.Len(t, issues[0].SourceLines, 1)
	assert.Contains(t, issues[0].SourceLines[0], `"blockStyles"`)
}

func TestLint_Globs(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, filepath.Join(dir, "graphs", "work.json"), map[string]any{
		"a": map[string]string{"value": "", "selector": "^"},
	})
	writeSettings(t, filepath.Join(dir, "graphs", "home", "home.json"), map[string]any{
		"b": map[string]string{"value": "x", "selector": "^", "color": "nope"},
	})
	writeSettings(t, filepath.Join(dir, "graphs", "work.json.bak"), map[string]any{
		"c": map[string]string{"value": ""},
	})

	result, err := Lint(LintConfig{ScanPaths: []string{filepath.Join(dir, "graphs", "**", "*.json*")}})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.Equal(t, 2, result.StylesChecked)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
}

func TestLint_Limits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeSettings(t, path, map[string]any{
		"a": map[string]string{"value": "", "selector": "^"},
		"b": map[string]string{"value": "", "selector": "$"},
		"c": map[string]string{"value": "", "selector": "*"},
	})

	result, err := Lint(LintConfig{ScanPaths: []string{path}, MaxIssuesPerLinter: 2})
	require.NoError(t, err)
	assert.Len(t, result.Issues, 2)
	assert.Equal(t, 1, result.TruncatedCount)
	assert.Equal(t, 2, result.ErrorCount)
}

func TestDeduplicateSameIssues(t *testing.T) {
	issues := []Issue{{Text: "x"}, {Text: "x"}, {Text: "y"}, {Text: "x"}}
	got := deduplicateSameIssues(issues, 2)
	assert.Equal(t, []Issue{{Text: "x"}, {Text: "x"}, {Text: "y"}}, got)
}

func TestIsCSSColor(t *testing.T) {
	valid := []string{"#fff", "#FFAA00", "#ffaa0080", "red", "RebeccaPurple", "inherit", "currentColor",
		"rgb(1, 2, 3)", "hsla(10, 50%, 50%, .5)", "var(--ls-link-text-color)"}
	for _, c := range valid {
		assert.True(t, IsCSSColor(c), c)
	}

	invalid := []string{"#ggg", "blu", "rgb(1,2,3", "12px"}
	for _, c := range invalid {
		assert.False(t, IsCSSColor(c), c)
	}
}

func TestCheckTokenization(t *testing.T) {
	assert.Empty(t, checkTokenization("a", StyleEntry{Value: "Foo: [x] *y*", Selector: SelectorPrefix, Character: "🎉"}))
	assert.NotEmpty(t, checkTokenization("a", StyleEntry{Value: `back\`, Selector: SelectorPrefix}))
	assert.NotEmpty(t, checkTokenization("a", StyleEntry{Value: "x", Selector: SelectorPrefix, Character: "'"}))
}
