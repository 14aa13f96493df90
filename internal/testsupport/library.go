package testsupport

import (
	"io"
	"log/slog"
	"testing"

	"lyrix/internal/config"
	"lyrix/internal/library"
	"lyrix/internal/library/sqlitekv"
)

// MustOpenStore opens a sqlitekv.Store under the config's data directory and
// registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *sqlitekv.Store {
	t.Helper()

	store, err := sqlitekv.Open(cfg.Paths.DataDir)
	if err != nil {
		t.Fatalf("sqlitekv.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenLibrary opens a library backed by a fresh sqlite store.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Library {
	t.Helper()

	lib, err := library.Open(MustOpenStore(t, cfg), DiscardLogger())
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	return lib
}

// DiscardLogger returns a logger whose output goes nowhere.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
