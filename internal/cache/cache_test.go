package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func readTree(t *testing.T, root string) map[string][]byte {
	t.Helper()
	out := map[string][]byte{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = data
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"__init__.py":   "BRLCAD_VERSION = \"7.38.2\"\n",
		"bu.py":         "# wrapper bu\n",
		"extra/notes.d": "nested\n",
	})

	store := NewStore(filepath.Join(t.TempDir(), "cache", "_bindings"))
	if store.Exists() {
		t.Fatal("store must not exist before Persist")
	}
	if err := store.Persist(src); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}
	if !store.Exists() {
		t.Fatal("store must exist after Persist")
	}

	dst := filepath.Join(t.TempDir(), "_bindings")
	if err := store.Restore(dst); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	want := readTree(t, src)
	got := readTree(t, dst)
	if len(got) != len(want) {
		t.Fatalf("expected %d files after restore, got %d", len(want), len(got))
	}
	for name, data := range want {
		if !bytes.Equal(got[name], data) {
			t.Errorf("file %s differs after cache round trip", name)
		}
	}
}

func TestPersistReplacesOldContents(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "_bindings"))

	first := t.TempDir()
	writeTree(t, first, map[string]string{"stale.py": "old\n"})
	if err := store.Persist(first); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	second := t.TempDir()
	writeTree(t, second, map[string]string{"bu.py": "new\n"})
	if err := store.Persist(second); err != nil {
		t.Fatalf("second Persist() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(store.Dir(), "stale.py")); !os.IsNotExist(err) {
		t.Error("stale cache entry must be gone after Persist")
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "bu.py")); err != nil {
		t.Errorf("new cache entry missing: %v", err)
	}
}

func TestRestoreWithoutCacheFails(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent"))
	if err := store.Restore(t.TempDir()); err == nil {
		t.Fatal("expected error restoring from missing cache")
	}
}
