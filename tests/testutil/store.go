package testutil

import (
	"testing"

	"github.com/chrono-app/chrono/internal/store"
)

// NewTestSnapshot creates an in-memory SnapshotStore with all migrations
// applied. It automatically closes the store when the test completes.
func NewTestSnapshot(t *testing.T) *store.SnapshotStore {
	t.Helper()

	s, err := store.NewSnapshotStore(":memory:")
	if err != nil {
		t.Fatalf("creating test snapshot store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test snapshot store: %v", err)
		}
	})

	return s
}
