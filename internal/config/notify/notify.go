// Package notify delivers settings changes to subscribers, either for every
// section or for one named section.
package notify

import (
	"sort"
	"sync"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// ChangeType represents the type of settings change.
type ChangeType int

const (
	// ChangeSet indicates a section was added or its stored form changed.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a section no longer differs from its defaults.
	ChangeDelete

	// ChangeReload indicates the file was reloaded but could not be used,
	// so every section was reset to its defaults.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one section change.
type Change struct {
	// Section is the root key of the changed section. Empty for reloads.
	Section string

	// Type is the type of change.
	Type ChangeType

	// OldValue and NewValue are the section as it is stored on disk. A
	// section at its defaults is null.
	OldValue jsonvalue.Value
	NewValue jsonvalue.Value

	// Source identifies where the change came from, usually a file path.
	Source string
}

// Observer is called when a change occurs.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	global   map[uint64]Observer
	sections map[string]map[uint64]Observer
	nextID   uint64
	closed   bool
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{
		global:   make(map[uint64]Observer),
		sections: make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.global[id] = observer
	return &Subscription{id: id, notifier: n}
}

// SubscribeSection registers an observer for changes to one section.
// Reloads are delivered to section observers too.
func (n *Notifier) SubscribeSection(section string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.sections[section] == nil {
		n.sections[section] = make(map[uint64]Observer)
	}
	n.sections[section][id] = observer
	return &Subscription{id: id, notifier: n}
}

// Notify delivers change to every matching observer, in subscription
// order, on the calling goroutine.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	type entry struct {
		id  uint64
		obs Observer
	}
	var matched []entry
	for id, obs := range n.global {
		matched = append(matched, entry{id, obs})
	}
	for section, observers := range n.sections {
		if change.Type != ChangeReload && section != change.Section {
			continue
		}
		for id, obs := range observers {
			matched = append(matched, entry{id, obs})
		}
	}
	n.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].id < matched[j].id })
	for _, e := range matched {
		e.obs(change)
	}
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close drops every subscription. Later notifications are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	clear(n.global)
	clear(n.sections)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)
	for section, observers := range n.sections {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.sections, section)
		}
	}
}
