package brlcad

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// fakeInstall lays out a minimal BRL-CAD install tree: include/ plus the
// version component files under include/conf.
func fakeInstall(t *testing.T, major, minor, patch string) string {
	t.Helper()
	prefix := t.TempDir()
	confDir := filepath.Join(prefix, "include", "conf")
	if err := os.MkdirAll(confDir, 0o750); err != nil {
		t.Fatalf("mkdir conf: %v", err)
	}
	files := map[string]string{"MAJOR": major, "MINOR": minor, "PATCH": patch}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(confDir, name), []byte(content+"\n"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return prefix
}

func TestDiscoverConfiguredPrefix(t *testing.T) {
	prefix := fakeInstall(t, "7", "38", "2")

	info, err := Discover(context.Background(), prefix)
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if info.Prefix != prefix {
		t.Errorf("expected prefix %s, got: %s", prefix, info.Prefix)
	}
	if info.Version != "7.38.2" {
		t.Errorf("expected version 7.38.2, got: %s", info.Version)
	}
}

func TestDiscoverEnvPrefix(t *testing.T) {
	prefix := fakeInstall(t, "7", "40", "0")
	t.Setenv(EnvPrefix, prefix)

	info, err := Discover(context.Background(), "")
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if info.Prefix != prefix {
		t.Errorf("expected prefix from %s, got: %s", EnvPrefix, info.Prefix)
	}
}

func TestDiscoverRejectsPrefixWithoutHeaders(t *testing.T) {
	if _, err := Discover(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error for prefix without include tree")
	}
}

func TestResolveHeader(t *testing.T) {
	info := &Info{Prefix: "/usr/brlcad"}

	if got := info.ResolveHeader("include/bu.h"); got != "/usr/brlcad/include/bu.h" {
		t.Errorf("relative header not resolved against prefix: %s", got)
	}
	if got := info.ResolveHeader("/tmp/custom.h"); got != "/tmp/custom.h" {
		t.Errorf("absolute header must pass through unchanged: %s", got)
	}
}

func TestVersionFromConfFilesMissing(t *testing.T) {
	prefix := t.TempDir()
	if err := os.MkdirAll(filepath.Join(prefix, "include"), 0o750); err != nil {
		t.Fatalf("mkdir include: %v", err)
	}
	if _, err := versionFromConfFiles(prefix); err == nil {
		t.Fatal("expected error when conf files are absent")
	}
}
