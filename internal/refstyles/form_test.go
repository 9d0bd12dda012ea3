package refstyles

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory SettingsStore recording every save.
type memoryStore struct {
	blob    string
	saves   []string
	loadErr error
	saveErr error
}

func (s *memoryStore) Load() (string, error) {
	return s.blob, s.loadErr
}

func (s *memoryStore) Save(blob string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.blob = blob
	s.saves = append(s.saves, blob)
	return nil
}

// recordingProvider remembers every registered stylesheet.
type recordingProvider struct {
	keys []string
	css  []string
}

func (p *recordingProvider) ProvideStyle(key, css string) error {
	p.keys = append(p.keys, key)
	p.css = append(p.css, css)
	return nil
}

func (p *recordingProvider) last() string {
	if len(p.css) == 0 {
		return ""
	}
	return p.css[len(p.css)-1]
}

type recordingUI struct {
	calls []bool
}

func (u *recordingUI) HideMainUI(restore bool) error {
	u.calls = append(u.calls, restore)
	return nil
}

// sequenceIDs returns the given ids in order.
func sequenceIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func newTestForm(t *testing.T, blob string, opts ...FormOption) (*Form, *memoryStore, *recordingProvider, *recordingUI) {
	t.Helper()
	store := &memoryStore{blob: blob}
	provider := &recordingProvider{}
	ui := &recordingUI{}
	form, err := NewForm(store, provider, ui, opts...)
	require.NoError(t, err)
	return form, store, provider, ui
}

func TestNewForm_MigratesLegacyOnce(t *testing.T) {
	form, store, provider, _ := newTestForm(t,
		`{"old":{"prefix":"Book: ","character":"📚","color":"#aa0000"},"new":{"value":"x","selector":"$"}}`)

	want := StyleCollection{
		"old": {Value: "Book: ", Selector: SelectorPrefix, Character: "📚", Color: "#aa0000"},
		"new": {Value: "x", Selector: SelectorSuffix},
	}
	assert.Equal(t, want, form.Styles())

	require.Len(t, store.saves, 1)
	saved, migrated, err := DecodeCollection(store.saves[0])
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, want, saved)

	require.Len(t, provider.css, 1)
	assert.Equal(t, DefaultStyleKey, provider.keys[0])
	assert.Equal(t, GenerateAll(want), provider.last())
}

func TestNewForm_CurrentShapeNotSaved(t *testing.T) {
	_, store, provider, _ := newTestForm(t, `{"a":{"value":"x","selector":"^"}}`)

	assert.Empty(t, store.saves)
	assert.Len(t, provider.css, 1)
}

func TestNewForm_Errors(t *testing.T) {
	_, err := NewForm(&memoryStore{blob: "{broken"}, &recordingProvider{}, NopUI{})
	assert.ErrorIs(t, err, ErrMalformedSettings)

	loadErr := errors.New("disk gone")
	_, err = NewForm(&memoryStore{loadErr: loadErr}, &recordingProvider{}, NopUI{})
	assert.ErrorIs(t, err, loadErr)

	saveErr := errors.New("read only")
	_, err = NewForm(&memoryStore{blob: `{"a":{"prefix":"p"}}`, saveErr: saveErr}, &recordingProvider{}, NopUI{})
	assert.ErrorIs(t, err, saveErr)
}

func TestForm_Add(t *testing.T) {
	form, store, provider, _ := newTestForm(t, `{"taken":{"value":"x","selector":"^"}}`,
		WithIDGenerator(sequenceIDs("taken", "fresh")), WithStyleKey("custom"))

	id, err := form.Add()
	require.NoError(t, err)
	assert.Equal(t, "fresh", id)

	entry, ok := form.Get(id)
	require.True(t, ok)
	assert.Equal(t, DefaultEntry, entry)
	assert.Equal(t, StyleEntry{Value: "Party: ", Selector: SelectorPrefix, Character: "🎉"}, entry)

	require.Len(t, store.saves, 1)
	assert.Contains(t, store.saves[0], `"fresh"`)
	assert.Equal(t, "custom", provider.keys[len(provider.keys)-1])
	assert.Equal(t, form.CSS(), provider.last())
}

func TestForm_AddProducesUnusedIDs(t *testing.T) {
	form, _, _, _ := newTestForm(t, `{}`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, err := form.Add()
		require.NoError(t, err)
		assert.False(t, seen[id], "id %s reused", id)
		seen[id] = true
	}
	assert.Len(t, form.IDs(), 20)
}

func TestForm_Update(t *testing.T) {
	form, store, provider, _ := newTestForm(t, `{"a":{"value":"x","selector":"^"}}`)

	updated := StyleEntry{Value: "Done", Selector: SelectorSuffix, Character: "✅", Color: "green"}
	require.NoError(t, form.Update("a", updated))

	got, _ := form.Get("a")
	assert.Equal(t, updated, got)
	require.Len(t, store.saves, 1)
	assert.Contains(t, provider.last(), "data-ref$='done'")

	err := form.Update("missing", updated)
	assert.ErrorIs(t, err, ErrStyleNotFound)

	err = form.Update("a", StyleEntry{Value: "x", Selector: "="})
	assert.ErrorIs(t, err, ErrInvalidSelector)
	assert.Len(t, store.saves, 1)
}

func TestForm_DeleteLeavesOthersUntouched(t *testing.T) {
	blob := `{"a":{"value":"A","selector":"^","character":"1"},"b":{"value":"B","selector":"$","color":"#010203"},"c":{"value":"C","selector":"*"}}`
	form, store, _, _ := newTestForm(t, blob)
	before := form.Styles()

	require.NoError(t, form.Delete("b"))

	after := form.Styles()
	assert.Len(t, after, 2)
	assert.NotContains(t, after, "b")
	assert.Equal(t, before["a"], after["a"])
	assert.Equal(t, before["c"], after["c"])

	saved, _, err := DecodeCollection(store.blob)
	require.NoError(t, err)
	assert.Equal(t, after, saved)

	assert.ErrorIs(t, form.Delete("b"), ErrStyleNotFound)
}

func TestForm_StylesIsACopy(t *testing.T) {
	form, _, _, _ := newTestForm(t, `{"a":{"value":"A","selector":"^"}}`)

	styles := form.Styles()
	delete(styles, "a")
	_, ok := form.Get("a")
	assert.True(t, ok)
}

func TestForm_Close(t *testing.T) {
	form, _, _, ui := newTestForm(t, `{}`)

	require.NoError(t, form.Close())
	assert.Equal(t, []bool{true}, ui.calls)
}

func TestForm_Reload(t *testing.T) {
	form, store, provider, _ := newTestForm(t, `{}`)

	store.blob = `{"z":{"value":"Z","selector":"*"}}`
	require.NoError(t, form.Reload())

	assert.Equal(t, []string{"z"}, form.IDs())
	assert.Equal(t, GenerateAll(form.Styles()), provider.last())
}

func TestForm_ProvideErrorIsWrapped(t *testing.T) {
	failing := providerFunc(func(string, string) error { return fmt.Errorf("host closed") })
	_, err := NewForm(&memoryStore{blob: "{}"}, failing, NopUI{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provide style")
}

type providerFunc func(key, css string) error

func (f providerFunc) ProvideStyle(key, css string) error { return f(key, css) }
