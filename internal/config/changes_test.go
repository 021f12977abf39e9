package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/twinpane/internal/config/notify"
	"github.com/dshills/twinpane/internal/config/watcher"
)

func TestDiffSettings(t *testing.T) {
	old := NewSettings()
	startup := StartupSettings{ShowSplash: false, RestoreLastSession: true}
	old.Startup = &startup

	cur := NewSettings()
	cur.Theme.CurrentThemeID = ThemeDark
	cur.Startup = &startup
	menu := DefaultMainMenuState()
	cur.MainMenu = &menu

	changes := DiffSettings(old, cur, "src")
	require.Len(t, changes, 1, "unchanged and still-default sections are skipped")
	assert.Equal(t, "theme", changes[0].Section)
	assert.Equal(t, notify.ChangeSet, changes[0].Type)
	assert.True(t, changes[0].OldValue.IsNull())
	assert.Equal(t, "src", changes[0].Source)

	changes = DiffSettings(cur, nil, "src")
	var sections []string
	for _, c := range changes {
		assert.Equal(t, notify.ChangeDelete, c.Type)
		sections = append(sections, c.Section)
	}
	assert.Equal(t, []string{"theme", "startup"}, sections)

	assert.Empty(t, DiffSettings(nil, nil, ""))
}

func TestStore_WatchChanges(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	n := notify.New()

	changes := make(chan notify.Change, 32)
	n.SubscribeSection("theme", func(c notify.Change) { changes <- c })

	w, err := s.WatchChanges(NewSettings(), n, watcher.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	in := NewSettings()
	in.Theme.CurrentThemeID = ThemeLight
	require.NoError(t, s.Save(in))

	select {
	case c := <-changes:
		assert.Equal(t, notify.ChangeSet, c.Type)
		id, _ := c.NewValue.Get("currentThemeId")
		text, _ := id.Str()
		assert.Equal(t, ThemeLight, text)
	case <-time.After(3 * time.Second):
		t.Fatal("no theme change delivered")
	}

	require.NoError(t, os.Remove(s.Paths().Primary()))
	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Type == notify.ChangeDelete {
				assert.Equal(t, "theme", c.Section)
				return
			}
		case <-deadline:
			t.Fatal("no theme reset delivered")
		}
	}
}
