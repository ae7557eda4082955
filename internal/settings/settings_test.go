package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickward/twospace"
	"github.com/patrickward/twospace/internal/hotkey"
	"github.com/patrickward/twospace/internal/settings"
)

func TestOpen_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()

	st, err := settings.Open(filepath.Join(tmp, "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), st.Snapshot())
}

func TestOpen_PersistedValuesWinPerKey(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data.json")

	// a data.json written by another host loads as YAML
	err := os.WriteFile(path, []byte(`{"runOnSave": false, "hotkeyText": "Ctrl+Shift+B"}`), 0644)
	require.NoError(t, err)

	st, err := settings.Open(path)
	require.NoError(t, err)

	got := st.Snapshot()
	assert.False(t, got.RunOnSave)
	assert.Equal(t, "Ctrl+Shift+B", got.HotkeyText)
	assert.True(t, got.AllowHotkey)
	assert.True(t, got.ExcludeCodeBlocks)
	assert.True(t, got.ExcludeFrontMatter)
}

func TestOpen_InvalidFile(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runOnSave: [nope"), 0644))

	_, err := settings.Open(path)
	assert.Error(t, err)
}

func TestStore_SetPersists(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "settings.yaml")

	st, err := settings.Open(path)
	require.NoError(t, err)

	require.NoError(t, st.Set("exclude-code-blocks", "false"))
	require.NoError(t, st.Set("hotkeyText", "Alt+H"))

	reopened, err := settings.Open(path)
	require.NoError(t, err)
	got := reopened.Snapshot()
	assert.False(t, got.ExcludeCodeBlocks)
	assert.Equal(t, "Alt+H", got.HotkeyText)
	assert.True(t, got.ExcludeFrontMatter)
}

func TestStore_SetErrors(t *testing.T) {
	t.Parallel()
	st := settings.NewMemoryStore(settings.Default())

	err := st.Set("colour", "blue")
	assert.ErrorIs(t, err, settings.ErrUnknownSetting)

	err = st.Set("runOnSave", "sometimes")
	assert.Error(t, err)
	assert.True(t, st.Snapshot().RunOnSave)
}

func TestStore_FailedWriteKeepsSettings(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "config")

	st, err := settings.Open(filepath.Join(dir, "settings.yaml"))
	require.NoError(t, err)

	// a file where the settings directory should be
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0644))

	err = st.Set("runOnSave", "false")
	assert.Error(t, err)
	assert.True(t, st.Snapshot().RunOnSave)

	assert.Error(t, st.Reset())
	assert.Equal(t, settings.Default(), st.Snapshot())
}

func TestStore_Reset(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "settings.yaml")

	st, err := settings.Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Set("allow_hotkey", "no"))
	assert.False(t, st.Snapshot().AllowHotkey)

	require.NoError(t, st.Reset())
	assert.Equal(t, settings.Default(), st.Snapshot())

	reopened, err := settings.Open(path)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), reopened.Snapshot())
}

func TestSettings_Derived(t *testing.T) {
	t.Parallel()
	s := settings.Default()
	s.ExcludeFrontMatter = false

	assert.Equal(t, twospace.Options{ExcludeCodeBlocks: true}, s.RewriteOptions())
	assert.Equal(t, hotkey.Hotkey{Modifiers: []string{"ctrl", "alt"}, Key: "space"}, s.Hotkey())
	assert.Contains(t, s.Fields(), [2]string{"excludeFrontMatter", "false"})
}
