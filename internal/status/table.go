package status

import (
	"sort"
	"sync"

	"github.com/nerrad567/shellybar/internal/render"
)

// Entry is one device's current state in the table.
type Entry struct {
	// ID is the device identifier the entry is keyed by.
	ID string

	// Raw is the most recent status payload for the device. It must
	// not be mutated after being stored.
	Raw map[string]any

	// Fragment caches the rendered output for Raw when the writer has
	// already rendered it. Nil means the publisher renders on demand.
	Fragment *render.Fragment
}

// Table is a mutex-guarded map of device entries, safe for concurrent
// use by both producers and the publisher.
type Table struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Upsert replaces or inserts the entry for id.
func (t *Table) Upsert(id string, e Entry) {
	e.ID = id

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = e
}

// MergeField sets one field of the raw payload for id, creating an
// empty entry when the device has not been seen yet. The previous
// payload map is copied, not modified, so snapshots taken before the
// merge stay consistent. A cached fragment survives the merge.
func (t *Table) MergeField(id, field string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.entries[id]
	merged := make(map[string]any, len(prev.Raw)+1)
	for k, v := range prev.Raw {
		merged[k] = v
	}
	merged[field] = value

	t.entries[id] = Entry{ID: id, Raw: merged, Fragment: prev.Fragment}
}

// Snapshot returns the current entries ordered by device identifier.
// The returned slice is owned by the caller; entry payloads must still
// be treated as read-only.
func (t *Table) Snapshot() []Entry {
	t.mu.Lock()
	entries := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, e)
	}
	t.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// Len reports the number of devices currently in the table.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
