package sqlitekv_test

import (
	"errors"
	"path/filepath"
	"testing"

	"lyrix/internal/library/sqlitekv"
)

func mustOpen(t *testing.T, dir string) *sqlitekv.Store {
	t.Helper()
	store, err := sqlitekv.Open(dir)
	if err != nil {
		t.Fatalf("sqlitekv.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGetRemove(t *testing.T) {
	store := mustOpen(t, t.TempDir())

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set("lyrics_a", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("lyrics_a", "two"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	value, ok, err := store.Get("lyrics_a")
	if err != nil || !ok || value != "two" {
		t.Fatalf("expected %q, got %q (ok=%v err=%v)", "two", value, ok, err)
	}

	if err := store.Remove("lyrics_a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := store.Get("lyrics_a"); ok {
		t.Fatal("expected key removed")
	}
	if err := store.Remove("lyrics_a"); err != nil {
		t.Fatalf("removing an absent key must not fail: %v", err)
	}
}

func TestListKeysMatchesPrefixLiterally(t *testing.T) {
	store := mustOpen(t, t.TempDir())

	for _, key := range []string{"lyrics_one", "lyrics_two", "lyricsXthree", "builtin_songs"} {
		if err := store.Set(key, "{}"); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	keys, err := store.ListKeys("lyrics_")
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}
	// The underscore in the prefix must not act as a LIKE wildcard.
	if len(keys) != 2 || keys[0] != "lyrics_one" || keys[1] != "lyrics_two" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := sqlitekv.Open(dir)
	if err != nil {
		t.Fatalf("sqlitekv.Open: %v", err)
	}
	if err := store.Set("lyrics_keep", "payload"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := mustOpen(t, dir)
	value, ok, err := reopened.Get("lyrics_keep")
	if err != nil || !ok || value != "payload" {
		t.Fatalf("expected persisted value, got %q (ok=%v err=%v)", value, ok, err)
	}
}

func TestSecondSessionIsRejected(t *testing.T) {
	dir := t.TempDir()
	_ = mustOpen(t, dir)

	_, err := sqlitekv.Open(dir)
	if !errors.Is(err, sqlitekv.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	// The lock file stays next to the database.
	if _, statErr := filepath.Glob(filepath.Join(dir, "library.lock")); statErr != nil {
		t.Fatalf("lock file glob: %v", statErr)
	}
}
