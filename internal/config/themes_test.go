package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/twinpane/internal/config/loader"
)

func TestTheme_Definitions(t *testing.T) {
	s := mustParse(t, `{
		"schemaVersion": 9,
		"theme": {
			"currentThemeId": "ocean",
			"themes": [
				{"id": "ocean", "name": "Ocean", "baseThemeId": "builtin/dark", "colors": {"bg": "#001020", "sel": "#80FFFFFF", "bad": "blue", "num": 5}},
				{"id": "ocean", "baseThemeId": "builtin/light"},
				{"id": "builtin/mine", "baseThemeId": "builtin/light"},
				{"id": "orphan", "baseThemeId": "sunset"},
				{"baseThemeId": "builtin/light"},
				42
			]
		}
	}`)
	th := s.Theme
	assert.Equal(t, "ocean", th.CurrentThemeID)
	require.Len(t, th.Themes, 1)
	assert.Equal(t, ThemeDefinition{
		ID:          "ocean",
		Name:        "Ocean",
		BaseThemeID: ThemeDark,
		Colors:      map[string]uint32{"bg": 0xFF001020, "sel": 0x80FFFFFF},
	}, th.Themes[0])
}

func TestIsBuiltinTheme(t *testing.T) {
	assert.True(t, IsBuiltinTheme(ThemeHighContrast))
	assert.False(t, IsBuiltinTheme("builtin/sepia"))
	assert.False(t, IsBuiltinTheme(""))
}

func writeTheme(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadThemeDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "b.theme.json", `{"id": "second", "baseThemeId": "builtin/light"}`)
	writeTheme(t, dir, "a.THEME.JSON", `{"id": "first", "baseThemeId": "builtin/dark", "colors": {"text": "#FFFFFF"}}`)
	writeTheme(t, dir, "c.theme.json", `{"id": "first", "baseThemeId": "builtin/light"}`)
	writeTheme(t, dir, "d.theme.json", `{"id": "broken",`)
	writeTheme(t, dir, "e.theme.json", `{"id": "nobase"}`)
	writeTheme(t, dir, "notes.json", `{"id": "ignored", "baseThemeId": "builtin/light"}`)
	writeTheme(t, dir, "huge.theme.json", `{"id": "huge", "baseThemeId": "builtin/light", "pad": "`+strings.Repeat("x", MaxThemeFileSize)+`"}`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.theme.json"), 0o755))

	themes, err := LoadThemeDefinitions(loader.DefaultFS(), dir, discardLogger())
	require.NoError(t, err)
	require.Len(t, themes, 2)
	assert.Equal(t, "first", themes[0].ID)
	assert.Equal(t, ThemeDark, themes[0].BaseThemeID)
	assert.Equal(t, uint32(0xFFFFFFFF), themes[0].Colors["text"])
	assert.Equal(t, "second", themes[1].ID)
}

func TestLoadThemeDefinitions_MissingDirectory(t *testing.T) {
	themes, err := LoadThemeDefinitionsFromDirectory(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Empty(t, themes)
}

func TestLoadThemeDefinitions_EmptyDirectory(t *testing.T) {
	themes, err := LoadThemeDefinitions(loader.DefaultFS(), t.TempDir(), nil)
	assert.NoError(t, err)
	assert.Empty(t, themes)
}

func TestLoadThemeDefinitions_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err := LoadThemeDefinitions(loader.DefaultFS(), file, discardLogger())
	assert.Error(t, err)
}
