package episodemap

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"ripmap/internal/catalog"
)

// Entry is one episode binding as yielded by Items.
type Entry struct {
	Episode catalog.Episode
	Target  Target
}

// EpisodeMap associates episodes with the disc content they will be ripped
// from. Each target is bound to at most one episode, and every projection
// (Keys, Values, Items, All) yields episodes in ascending number order no
// matter the order entries were assigned. The zero value is ready to use.
//
// EpisodeMap performs no locking; callers serialize access to an instance.
type EpisodeMap struct {
	entries map[catalog.EpisodeKey]Entry
}

// New returns an empty map.
func New() *EpisodeMap {
	return &EpisodeMap{}
}

// Len returns the number of mapped episodes.
func (m *EpisodeMap) Len() int {
	return len(m.entries)
}

// Get returns the target bound to episode.
func (m *EpisodeMap) Get(episode catalog.Episode) (Target, bool) {
	entry, ok := m.entries[episode.Key()]
	return entry.Target, ok
}

// Contains reports whether episode is mapped.
func (m *EpisodeMap) Contains(episode catalog.Episode) bool {
	_, ok := m.entries[episode.Key()]
	return ok
}

// Set binds episode to target. Re-binding an episode to the target it
// already holds is a no-op.
func (m *EpisodeMap) Set(episode catalog.Episode, target Target) error {
	if err := target.Validate(); err != nil {
		return err
	}
	target = target.normalized()
	if owner, ok := m.EpisodeFor(target); ok && owner.Key() != episode.Key() {
		return fmt.Errorf("%w: %s is mapped to %s", ErrDuplicateTarget, target, owner.Label())
	}
	if m.entries == nil {
		m.entries = make(map[catalog.EpisodeKey]Entry)
	}
	m.entries[episode.Key()] = Entry{Episode: episode, Target: target}
	return nil
}

// Delete removes the binding for episode.
func (m *EpisodeMap) Delete(episode catalog.Episode) error {
	if _, ok := m.entries[episode.Key()]; !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, episode.Label())
	}
	delete(m.entries, episode.Key())
	return nil
}

// Clear removes every binding, typically after a rescan invalidates them.
func (m *EpisodeMap) Clear() {
	clear(m.entries)
}

// EpisodeFor returns the episode bound to target, if any.
func (m *EpisodeMap) EpisodeFor(target Target) (catalog.Episode, bool) {
	target = target.normalized()
	for _, entry := range m.entries {
		if entry.Target == target {
			return entry.Episode, true
		}
	}
	return catalog.Episode{}, false
}

// Update merges every binding of other into m. The merge is validated in
// full first so a rejected update leaves m untouched.
func (m *EpisodeMap) Update(other *EpisodeMap) error {
	if other == nil || other.Len() == 0 {
		return nil
	}
	staged := m.clone()
	for _, entry := range other.Items() {
		if err := staged.Set(entry.Episode, entry.Target); err != nil {
			return err
		}
	}
	m.entries = staged.entries
	return nil
}

func (m *EpisodeMap) clone() *EpisodeMap {
	out := &EpisodeMap{entries: make(map[catalog.EpisodeKey]Entry, len(m.entries))}
	for k, v := range m.entries {
		out.entries[k] = v
	}
	return out
}

// Items returns every binding in ascending episode number order.
func (m *EpisodeMap) Items() []Entry {
	items := make([]Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		items = append(items, entry)
	}
	slices.SortStableFunc(items, func(a, b Entry) int {
		return compareEpisodes(a.Episode, b.Episode)
	})
	return items
}

// Keys returns the mapped episodes in ascending number order.
func (m *EpisodeMap) Keys() []catalog.Episode {
	items := m.Items()
	keys := make([]catalog.Episode, len(items))
	for i, entry := range items {
		keys[i] = entry.Episode
	}
	return keys
}

// Values returns the targets in ascending episode number order.
func (m *EpisodeMap) Values() []Target {
	items := m.Items()
	values := make([]Target, len(items))
	for i, entry := range items {
		values[i] = entry.Target
	}
	return values
}

// All iterates bindings in ascending episode number order.
func (m *EpisodeMap) All() iter.Seq2[catalog.Episode, Target] {
	return func(yield func(catalog.Episode, Target) bool) {
		for _, entry := range m.Items() {
			if !yield(entry.Episode, entry.Target) {
				return
			}
		}
	}
}

func (m *EpisodeMap) String() string {
	var b strings.Builder
	b.WriteString("EpisodeMap{\n")
	for _, entry := range m.Items() {
		fmt.Fprintf(&b, "%s: %s,\n", entry.Episode.Label(), entry.Target)
	}
	b.WriteString("}")
	return b.String()
}

// compareEpisodes orders by number; program and season only break ties so
// the order stays total for maps spanning seasons.
func compareEpisodes(a, b catalog.Episode) int {
	if a.Number != b.Number {
		return a.Number - b.Number
	}
	if a.Season != b.Season {
		return a.Season - b.Season
	}
	return strings.Compare(a.Program, b.Program)
}
