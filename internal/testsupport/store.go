package testsupport

import (
	"testing"

	"cleancut/internal/config"
	"cleancut/internal/store"
)

// MustOpenStore opens the analysis store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
