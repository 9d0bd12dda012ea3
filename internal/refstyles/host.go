package refstyles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSettings stores the styles blob as a string field of a JSON plugin
// settings file. Other fields in the file are preserved on save.
type FileSettings struct {
	Path string
	Key  string // defaults to DefaultSettingsKey
}

func (s FileSettings) key() string {
	if s.Key == "" {
		return DefaultSettingsKey
	}
	return s.Key
}

func (s FileSettings) readFields() (map[string]json.RawMessage, error) {
	fields := make(map[string]json.RawMessage)

	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return fields, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	if len(data) == 0 {
		return fields, nil
	}

	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedSettings, s.Path, err)
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	return fields, nil
}

// Load returns the styles blob, or "{}" when the file or field is missing.
func (s FileSettings) Load() (string, error) {
	fields, err := s.readFields()
	if err != nil {
		return "", err
	}

	raw, ok := fields[s.key()]
	if !ok {
		return "{}", nil
	}

	var blob string
	if err := json.Unmarshal(raw, &blob); err != nil {
		return "", fmt.Errorf("%w: field %q is not a string: %w", ErrMalformedSettings, s.key(), err)
	}
	if blob == "" {
		return "{}", nil
	}
	return blob, nil
}

// Save writes blob into the styles field.
func (s FileSettings) Save(blob string) error {
	fields, err := s.readFields()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode settings field: %w", err)
	}
	fields[s.key()] = encoded

	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings file: %w", err)
	}
	return writeFileAtomic(s.Path, append(data, '\n'))
}

// FileStyleSink writes the registered stylesheet to a file.
type FileStyleSink struct {
	Path string
}

// ProvideStyle replaces the file contents with css under a key banner.
func (s FileStyleSink) ProvideStyle(key, css string) error {
	content := fmt.Sprintf("/* %s */\n%s\n", key, css)
	return writeFileAtomic(s.Path, []byte(content))
}

// writeFileAtomic writes via a temp file in the target directory and renames it.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// NopUI ignores visibility requests.
type NopUI struct{}

// HideMainUI implements UI.
func (NopUI) HideMainUI(bool) error { return nil }

// FuncUI adapts a function to UI.
type FuncUI func(restoreEditingCursor bool) error

// HideMainUI implements UI.
func (f FuncUI) HideMainUI(restoreEditingCursor bool) error {
	return f(restoreEditingCursor)
}
