package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

func TestShortcuts_LegacyAndCurrentFormatsAgree(t *testing.T) {
	legacy := parseAtVersion(t, 4, `{
		"shortcuts": {"functionBar": [{"vk": 65, "modifiers": 1, "commandId": "cmd/copy"}]}
	}`)
	current := mustParse(t, `{
		"schemaVersion": 9,
		"shortcuts": {"functionBar": [{"vk": "A", "ctrl": true, "commandId": "cmd/copy"}]}
	}`)

	want := []ShortcutBinding{{VK: 65, Modifiers: ModCtrl, CommandID: "cmd/copy"}}
	require.NotNil(t, legacy.Shortcuts)
	require.NotNil(t, current.Shortcuts)
	assert.Equal(t, want, legacy.Shortcuts.FunctionBar)
	assert.Equal(t, want, current.Shortcuts.FunctionBar)
}

func TestShortcuts_LegacyModifiers(t *testing.T) {
	s := parseAtVersion(t, 4, `{
		"shortcuts": {
			"folderView": [
				{"vk": 116, "modifiers": 6, "commandId": "cmd/refresh"},
				{"vk": 13, "commandId": "cmd/open"},
				{"vk": 300, "commandId": "cmd/tooBig"},
				{"vk": 65, "modifiers": 8, "commandId": "cmd/badMask"},
				{"vk": "A", "commandId": "cmd/alreadySymbolic"},
				{"vk": 66, "modifiers": 1, "commandId": "notACommand"}
			]
		}
	}`)
	require.NotNil(t, s.Shortcuts)
	assert.Equal(t, []ShortcutBinding{
		{VK: 0x74, Modifiers: ModAlt | ModShift, CommandID: "cmd/refresh"},
		{VK: 0x0D, CommandID: "cmd/open"},
	}, s.Shortcuts.FolderView)
}

func TestShortcuts_CurrentFormat(t *testing.T) {
	s := mustParse(t, `{
		"schemaVersion": 9,
		"shortcuts": {
			"functionBar": [
				{"vk": "F5", "commandId": "cmd/copy"},
				{"vk": "f6", "alt": true, "shift": true, "commandId": "cmd/move"},
				{"vk": 116, "ctrl": true, "commandId": "cmd/numericStillWorks"},
				{"vk": "A", "modifiers": 1, "commandId": "cmd/mixedFormat"},
				{"vk": "Hyper", "commandId": "cmd/unknownKey"},
				{"vk": "B", "commandId": "copy"},
				{"vk": "B"},
				"cmd/notAnObject"
			]
		}
	}`)
	require.NotNil(t, s.Shortcuts)
	assert.Equal(t, []ShortcutBinding{
		{VK: 0x74, CommandID: "cmd/copy"},
		{VK: 0x75, Modifiers: ModAlt | ModShift, CommandID: "cmd/move"},
		{VK: 0x74, Modifiers: ModCtrl, CommandID: "cmd/numericStillWorks"},
	}, s.Shortcuts.FunctionBar)
	assert.Empty(t, s.Shortcuts.FolderView)
}

func TestMigrateNumericShortcuts_KeepsOtherMembers(t *testing.T) {
	section, err := jsonvalue.ParseString(`{"functionBar": [{"vk": 112, "modifiers": 0, "commandId": "cmd/help"}], "note": "kept"}`)
	require.NoError(t, err)

	out, keep := migrateNumericShortcuts(section, discardLogger())
	require.True(t, keep)

	note, ok := out.Get("note")
	require.True(t, ok)
	text, _ := note.Str()
	assert.Equal(t, "kept", text)

	bar, ok := out.ArrayAt("functionBar")
	require.True(t, ok)
	require.Equal(t, 1, bar.Len())
	first, _ := bar.Index(0)
	vk, _ := first.Get("vk")
	name, _ := vk.Str()
	assert.Equal(t, "F1", name)
	_, hasCtrl := first.Get("ctrl")
	assert.False(t, hasCtrl)
}

func TestMarshalShortcuts(t *testing.T) {
	s := NewSettings()
	s.Shortcuts = &ShortcutsSettings{
		FolderView: []ShortcutBinding{{VK: 'C', Modifiers: ModCtrl | ModShift, CommandID: "cmd/copyPath"}},
	}
	text, err := jsonvalue.Serialize(BuildDocument(s))
	require.NoError(t, err)
	assert.Equal(t,
		`{"schemaVersion":9,"shortcuts":{"folderView":[{"vk":"C","ctrl":true,"shift":true,"commandId":"cmd/copyPath"}]}}`,
		text)

	s.Shortcuts = &ShortcutsSettings{}
	_, ok := BuildDocument(s).Get("shortcuts")
	assert.False(t, ok)
}
