package config

import (
	"sync"

	"github.com/dshills/twinpane/internal/config/notify"
	"github.com/dshills/twinpane/internal/config/watcher"
	"github.com/dshills/twinpane/internal/jsonvalue"
)

// SectionNames lists the document sections in the order saves write them.
var SectionNames = []string{
	"windows", "theme", "plugins", "extensions", "shortcuts", "cache", "folders",
	"monitor", "mainMenu", "startup", "connections", "fileOperations", "compareDirectories",
}

// DiffSettings returns one change per section whose stored form differs
// between old and cur. A nil aggregate counts as all defaults.
func DiffSettings(old, cur *Settings, source string) []notify.Change {
	if old == nil {
		old = NewSettings()
	}
	if cur == nil {
		cur = NewSettings()
	}
	before, after := BuildDocument(old), BuildDocument(cur)

	var changes []notify.Change
	for _, section := range SectionNames {
		ov, hadOld := before.Get(section)
		nv, hasNew := after.Get(section)
		switch {
		case !hadOld && !hasNew:
			continue
		case hadOld && hasNew && jsonvalue.Equal(ov, nv):
			continue
		case !hasNew:
			changes = append(changes, notify.Change{
				Section: section, Type: notify.ChangeDelete, OldValue: ov, Source: source,
			})
		default:
			changes = append(changes, notify.Change{
				Section: section, Type: notify.ChangeSet, OldValue: ov, NewValue: nv, Source: source,
			})
		}
	}
	return changes
}

// WatchChanges reloads the settings whenever the primary file changes and
// publishes the sections that differ from the previous state to n. current
// is the state the caller already holds. A reload that finds no usable file
// publishes a ChangeReload before the per-section deletions; a failed reload
// publishes nothing.
func (s *Store) WatchChanges(current *Settings, n *notify.Notifier, opts ...watcher.Option) (*watcher.Watcher, error) {
	var mu sync.Mutex
	source := s.paths.Primary()
	return s.Watch(func(settings *Settings, status Status, err error) {
		mu.Lock()
		defer mu.Unlock()

		switch status {
		case StatusFailed:
			s.logger.Warn("settings reload failed", "path", source, "error", err)
			return
		case StatusNotFound:
			n.NotifyReload(source)
		}
		for _, c := range DiffSettings(current, settings, source) {
			n.Notify(c)
		}
		current = settings
	}, opts...)
}
