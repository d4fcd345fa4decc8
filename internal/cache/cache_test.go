package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	s := New()

	_, ok, _ := s.Get(Key("applications", 1))
	assert.False(t, ok)

	s.Set(Key("applications", 1), "page-1")
	v, ok, stale := s.Get(Key("applications", 1))
	require.True(t, ok)
	assert.False(t, stale)
	assert.Equal(t, "page-1", v)
}

func TestStore_InvalidatePrefix(t *testing.T) {
	s := New()
	s.Set(Key("applications", 1, "page", 0), "a")
	s.Set(Key("applications", 1, "page", 20), "b")
	s.Set(Key("dashboard", "stats", 1), "c")

	s.InvalidatePrefix("applications")

	// Stale entries stay readable (keep-previous-data policy).
	v, ok, stale := s.Get(Key("applications", 1, "page", 0))
	require.True(t, ok)
	assert.True(t, stale)
	assert.Equal(t, "a", v)

	_, _, stale = s.Get(Key("dashboard", "stats", 1))
	assert.False(t, stale)

	// A fresh Set clears the stale mark.
	s.Set(Key("applications", 1, "page", 0), "a2")
	_, _, stale = s.Get(Key("applications", 1, "page", 0))
	assert.False(t, stale)
}

func TestStore_PrefixMatchesWholeSegments(t *testing.T) {
	s := New()
	s.Set(Key("applications", 1), "one")
	s.Set(Key("applications", 12), "twelve")

	s.InvalidatePrefix("applications", 1)

	_, _, stale := s.Get(Key("applications", 1))
	assert.True(t, stale)
	_, _, stale = s.Get(Key("applications", 12))
	assert.False(t, stale, "prefix must not match across segment boundaries")
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := New()
	s.Set(Key("applications", 1, "page", 0), "before-a")
	s.Set(Key("applications", 1, "page", 20), "before-b")
	s.Set(Key("dashboard", "stats", 1), "stats")

	snap := s.SnapshotPrefix("applications")

	s.Set(Key("applications", 1, "page", 0), "patched-a")
	s.Delete(Key("applications", 1, "page", 20))
	s.Set(Key("applications", 1, "page", 40), "created-after-snapshot")

	s.Restore(snap)

	v, ok, _ := s.Get(Key("applications", 1, "page", 0))
	require.True(t, ok)
	assert.Equal(t, "before-a", v)

	v, ok, _ = s.Get(Key("applications", 1, "page", 20))
	require.True(t, ok)
	assert.Equal(t, "before-b", v)

	_, ok, _ = s.Get(Key("applications", 1, "page", 40))
	assert.False(t, ok, "entries created after the snapshot must be removed")

	v, ok, _ = s.Get(Key("dashboard", "stats", 1))
	require.True(t, ok)
	assert.Equal(t, "stats", v, "entries outside the snapshot range are untouched")
}

func TestStore_RestorePreservesStaleMark(t *testing.T) {
	s := New()
	s.Set(Key("applications", 1), "v")
	s.InvalidatePrefix("applications")

	snap := s.SnapshotPrefix("applications")
	s.Set(Key("applications", 1), "patched")
	s.Restore(snap)

	v, ok, stale := s.Get(Key("applications", 1))
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.True(t, stale, "restore must bring back the entry exactly as captured")
}

func TestStore_UpdatePrefix(t *testing.T) {
	s := New()
	s.Set(Key("applications", 1), 10)
	s.Set(Key("applications", 2), 20)
	s.Set(Key("other"), 99)

	touched := s.UpdatePrefix(func(_ string, v any) any {
		return v.(int) + 1
	}, "applications")

	assert.Len(t, touched, 2)
	v, _, _ := s.Get(Key("applications", 1))
	assert.Equal(t, 11, v)
	v, _, _ = s.Get(Key("other"))
	assert.Equal(t, 99, v)
}

func TestStore_GetPrefix(t *testing.T) {
	s := New()
	s.Set(Key("applications", 1), "a")
	s.Set(Key("applications", 2), "b")
	s.Set(Key("dashboard"), "c")

	values := s.GetPrefix("applications")
	assert.Len(t, values, 2)
	assert.Equal(t, "a", values[Key("applications", 1)])
}
