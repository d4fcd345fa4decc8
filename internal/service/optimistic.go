package service

import (
	"context"

	"edgeos-client/internal/cache"
)

// optimisticMutation is the capture-before-mutate contract every review
// submission follows: snapshot the namespace, apply the optimistic
// patch, dispatch the call, restore the snapshot if the call fails, and
// invalidate dependent namespaces on settle regardless of outcome.
type optimisticMutation struct {
	// namespace is the key prefix the patch may touch; it bounds both
	// the snapshot and the rollback.
	namespace []any
	// patch applies the optimistic cache writes. It runs strictly
	// before the call is dispatched.
	patch func()
	// call performs the network mutation.
	call func(ctx context.Context) error
	// invalidate lists the key prefixes marked stale once the call has
	// settled, forcing a fresh read on next access.
	invalidate [][]any
}

// runOptimistic executes the mutation. The returned error is the call's
// error, after rollback and invalidation have completed.
func runOptimistic(ctx context.Context, store *cache.Store, m optimisticMutation) error {
	snapshot := store.SnapshotPrefix(m.namespace...)
	if m.patch != nil {
		m.patch()
	}

	err := m.call(ctx)
	if err != nil {
		store.Restore(snapshot)
	}
	for _, prefix := range m.invalidate {
		store.InvalidatePrefix(prefix...)
	}
	return err
}
