package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"doc2dash/internal/index"
)

// MustOpenIndex opens an index.Store in a temp directory and registers cleanup.
func MustOpenIndex(t testing.TB) *index.Store {
	t.Helper()

	store, err := index.Open(context.Background(), filepath.Join(t.TempDir(), index.FileName))
	if err != nil {
		t.Fatalf("index.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
