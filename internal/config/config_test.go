package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brlbind.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
libraries:
  - name: bu
    headers: [include/bu.h]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Output.Directory != "./_bindings" {
		t.Errorf("expected default output directory, got: %s", cfg.Output.Directory)
	}
	if cfg.Generator.Command != "ctypesgen" {
		t.Errorf("expected default generator command, got: %s", cfg.Generator.Command)
	}
	if cfg.Cache.Dir == "" {
		t.Error("expected default cache dir to be set")
	}
	if cfg.Libraries[0].Output != "bu.py" {
		t.Errorf("expected default wrapper name bu.py, got: %s", cfg.Libraries[0].Output)
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("BRLBIND_TEST_PREFIX", "/opt/brlcad")

	path := writeConfig(t, `
brlcad:
  prefix: ${BRLBIND_TEST_PREFIX}
libraries:
  - name: bu
    headers: [include/bu.h]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.BRLCAD.Prefix != "/opt/brlcad" {
		t.Errorf("expected expanded prefix, got: %s", cfg.BRLCAD.Prefix)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateAcceptsOrderedLibraries(t *testing.T) {
	cfg := &Config{Libraries: []Library{
		{Name: "bu", Headers: []string{"include/bu.h"}},
		{Name: "bn", Headers: []string{"include/bn.h"}, Deps: []string{"bu"}},
		{Name: "rt", Headers: []string{"include/raytrace.h"}, Deps: []string{"bu", "bn"}},
	}}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrNoLibraries) {
		t.Errorf("expected ErrNoLibraries, got: %v", err)
	}
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	cfg := &Config{Libraries: []Library{
		{Name: "bu", Headers: []string{"a.h"}},
		{Name: "bu", Headers: []string{"b.h"}},
	}}
	if err := cfg.Validate(); !errors.Is(err, ErrDuplicateLibrary) {
		t.Errorf("expected ErrDuplicateLibrary, got: %v", err)
	}
}

func TestValidateRejectsMissingHeaders(t *testing.T) {
	cfg := &Config{Libraries: []Library{{Name: "bu"}}}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingHeaders) {
		t.Errorf("expected ErrMissingHeaders, got: %v", err)
	}
}

func TestValidateRejectsUnknownDependency(t *testing.T) {
	cfg := &Config{Libraries: []Library{
		{Name: "bn", Headers: []string{"bn.h"}, Deps: []string{"bu"}},
	}}
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownDependency) {
		t.Errorf("expected ErrUnknownDependency, got: %v", err)
	}
}

func TestValidateRejectsOutOfOrderDependency(t *testing.T) {
	cfg := &Config{Libraries: []Library{
		{Name: "bn", Headers: []string{"bn.h"}, Deps: []string{"bu"}},
		{Name: "bu", Headers: []string{"bu.h"}},
	}}
	if err := cfg.Validate(); !errors.Is(err, ErrDependencyOrder) {
		t.Errorf("expected ErrDependencyOrder, got: %v", err)
	}
}

func TestValidateRejectsCycle(t *testing.T) {
	cfg := &Config{Libraries: []Library{
		{Name: "a", Headers: []string{"a.h"}, Deps: []string{"b"}},
		{Name: "b", Headers: []string{"b.h"}, Deps: []string{"a"}},
	}}
	if err := cfg.Validate(); !errors.Is(err, ErrDependencyCycle) {
		t.Errorf("expected ErrDependencyCycle, got: %v", err)
	}
}

func TestValidateRejectsSelfDependency(t *testing.T) {
	cfg := &Config{Libraries: []Library{
		{Name: "a", Headers: []string{"a.h"}, Deps: []string{"a"}},
	}}
	if err := cfg.Validate(); !errors.Is(err, ErrDependencyCycle) {
		t.Errorf("expected ErrDependencyCycle, got: %v", err)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brlbind.yaml")
	if err := Init(path, false); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := Init(path, false); err == nil {
		t.Fatal("expected error when config exists and force is false")
	}
	if err := Init(path, true); err != nil {
		t.Fatalf("Init(force) failed: %v", err)
	}

	// The example must load and validate cleanly.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(example) failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(example) failed: %v", err)
	}
}
