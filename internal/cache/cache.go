// Package cache is a keyed in-memory store for server-fetched data. It
// models the remote-data cache explicitly: namespaced keys, stale marking
// by prefix, and prefix snapshots that can be restored verbatim after a
// failed optimistic mutation.
//
// Values are treated as immutable once stored. Every update must store a
// freshly constructed value; callers never mutate a cached value in
// place. Snapshots rely on that discipline to restore by reference.
package cache

import (
	"fmt"
	"strings"
	"sync"
)

const keySep = "\x1f"

// Key builds a namespaced cache key from its parts. Parts may be any
// printable value; ints and strings are the common cases.
func Key(parts ...any) string {
	segs := make([]string, len(parts))
	for i, p := range parts {
		segs[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(segs, keySep)
}

type entry struct {
	value any
	stale bool
}

// Store is a mutex-guarded keyed store shared by all services in a
// process. The zero value is not usable; construct with New.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
}

func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Get returns the cached value for key. A stale entry is still returned
// (keep-previous-data policy); the stale flag tells the caller a refetch
// is due.
func (s *Store) Get(key string) (value any, ok bool, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false, false
	}
	return e.value, true, e.stale
}

// Set stores value under key and clears any stale mark.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value}
}

// Delete removes key from the store.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Keys returns every key currently in the store, stale or not.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// GetPrefix returns every live value under the prefix, keyed by its
// full key. Stale entries are included.
func (s *Store) GetPrefix(prefix ...any) map[string]any {
	p := Key(prefix...)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any)
	for k, e := range s.entries {
		if hasPrefix(k, p) {
			out[k] = e.value
		}
	}
	return out
}

// InvalidatePrefix marks every entry under the prefix stale. Entries stay
// readable until the next Set; readers use the stale flag to refetch.
func (s *Store) InvalidatePrefix(prefix ...any) {
	p := Key(prefix...)
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if hasPrefix(k, p) {
			e.stale = true
			s.entries[k] = e
		}
	}
}

// UpdatePrefix applies fn to every live entry under the prefix. fn must
// return a new value, not mutate the given one; returning the input
// unchanged leaves the entry as is. The keys of every visited entry are
// returned so callers can log or assert the touched set.
func (s *Store) UpdatePrefix(fn func(key string, value any) any, prefix ...any) []string {
	p := Key(prefix...)
	s.mu.Lock()
	defer s.mu.Unlock()
	var touched []string
	for k, e := range s.entries {
		if !hasPrefix(k, p) {
			continue
		}
		touched = append(touched, k)
		e.value = fn(k, e.value)
		s.entries[k] = e
	}
	return touched
}

// Snapshot is a restorable copy of a key range taken before an optimistic
// patch. Restoring puts every captured entry back exactly as it was and
// removes entries created under the range after the snapshot.
type Snapshot struct {
	prefix  string
	entries map[string]entry
}

// SnapshotPrefix captures every entry under the prefix.
func (s *Store) SnapshotPrefix(prefix ...any) *Snapshot {
	p := Key(prefix...)
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &Snapshot{prefix: p, entries: make(map[string]entry)}
	for k, e := range s.entries {
		if hasPrefix(k, p) {
			snap.entries[k] = e
		}
	}
	return snap
}

// Restore reverts the snapshot's key range to its captured state.
func (s *Store) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if hasPrefix(k, snap.prefix) {
			if _, captured := snap.entries[k]; !captured {
				delete(s.entries, k)
			}
		}
	}
	for k, e := range snap.entries {
		s.entries[k] = e
	}
}

// hasPrefix matches whole key segments, so Key("applications", 1) does
// not match keys under Key("applications", 12).
func hasPrefix(key, prefix string) bool {
	if key == prefix {
		return true
	}
	return strings.HasPrefix(key, prefix+keySep)
}
