package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStore creates a store backed by a throwaway Badger database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(Options{Path: t.TempDir()})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
