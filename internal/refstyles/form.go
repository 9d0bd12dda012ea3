package refstyles

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettingsStore loads and saves the persisted settings blob.
type SettingsStore interface {
	Load() (string, error)
	Save(blob string) error
}

// StyleProvider registers a stylesheet with the host under a key.
type StyleProvider interface {
	ProvideStyle(key, css string) error
}

// UI controls the visibility of the settings form.
type UI interface {
	HideMainUI(restoreEditingCursor bool) error
}

// Form owns the style collection. Every mutation persists the full
// collection and re-registers the aggregate stylesheet.
type Form struct {
	store    SettingsStore
	provider StyleProvider
	ui       UI

	styles   StyleCollection
	styleKey string
	newID    func() string
	defaults StyleEntry
	log      zerolog.Logger
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithStyleKey overrides the key the stylesheet is registered under.
func WithStyleKey(key string) FormOption {
	return func(f *Form) { f.styleKey = key }
}

// WithIDGenerator replaces the UUID generator used by Add.
func WithIDGenerator(gen func() string) FormOption {
	return func(f *Form) { f.newID = gen }
}

// WithDefaultEntry sets the entry inserted by Add.
func WithDefaultEntry(entry StyleEntry) FormOption {
	return func(f *Form) { f.defaults = entry }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) FormOption {
	return func(f *Form) { f.log = log }
}

// NewForm loads persisted styles, migrating legacy entries, and registers
// the initial stylesheet. A migrated collection is saved exactly once.
func NewForm(store SettingsStore, provider StyleProvider, ui UI, opts ...FormOption) (*Form, error) {
	f := &Form{
		store:    store,
		provider: provider,
		ui:       ui,
		styleKey: DefaultStyleKey,
		newID:    uuid.NewString,
		defaults: DefaultEntry,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Form) load() error {
	blob, err := f.store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	styles, migrated, err := DecodeCollection(blob)
	if err != nil {
		return err
	}
	f.styles = styles
	f.log.Debug().Int("styles", len(styles)).Bool("migrated", migrated).Msg("loaded styles")

	if migrated {
		if err := f.save(); err != nil {
			return err
		}
		f.log.Info().Msg("migrated legacy prefix styles")
	}

	return f.provide()
}

// Reload re-reads the store, replacing the in-memory collection.
func (f *Form) Reload() error {
	return f.load()
}

// Styles returns a copy of the current collection.
func (f *Form) Styles() StyleCollection {
	return f.styles.Clone()
}

// IDs returns style ids in lexical order.
func (f *Form) IDs() []string {
	return f.styles.IDs()
}

// Get returns the entry stored under id.
func (f *Form) Get(id string) (StyleEntry, bool) {
	entry, ok := f.styles[id]
	return entry, ok
}

// CSS returns the aggregate stylesheet for the current collection.
func (f *Form) CSS() string {
	return GenerateAll(f.styles)
}

// Add inserts the default entry under a fresh id.
func (f *Form) Add() (string, error) {
	id := f.newID()
	for {
		if _, taken := f.styles[id]; !taken {
			break
		}
		id = f.newID()
	}

	f.styles[id] = f.defaults
	f.log.Debug().Str("id", id).Msg("added style")
	return id, f.commit()
}

// Update replaces the entry stored under id.
func (f *Form) Update(id string, entry StyleEntry) error {
	if _, ok := f.styles[id]; !ok {
		return fmt.Errorf("%w: %s", ErrStyleNotFound, id)
	}
	if !entry.Selector.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSelector, entry.Selector)
	}

	f.styles[id] = entry
	f.log.Debug().Str("id", id).Str("value", entry.Value).Msg("updated style")
	return f.commit()
}

// Delete removes the entry stored under id.
func (f *Form) Delete(id string) error {
	if _, ok := f.styles[id]; !ok {
		return fmt.Errorf("%w: %s", ErrStyleNotFound, id)
	}

	delete(f.styles, id)
	f.log.Debug().Str("id", id).Msg("deleted style")
	return f.commit()
}

// Close hides the form and returns focus to the editor.
func (f *Form) Close() error {
	return f.ui.HideMainUI(true)
}

func (f *Form) commit() error {
	if err := f.save(); err != nil {
		return err
	}
	return f.provide()
}

func (f *Form) save() error {
	blob, err := EncodeCollection(f.styles)
	if err != nil {
		return err
	}
	if err := f.store.Save(blob); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (f *Form) provide() error {
	if err := f.provider.ProvideStyle(f.styleKey, f.CSS()); err != nil {
		return fmt.Errorf("provide style: %w", err)
	}
	return nil
}
