// Package manifest builds the aggregate bindings index file. The index
// declares the discovered BRL-CAD version as a constant and exports every
// generated wrapper module, version constant first. It is rewritten after
// every generation pass because dependent wrappers import earlier modules
// through the index.
package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/brlbind/internal/util/sets"
)

// VersionConstant is the name the index exports the BRL-CAD version under.
const VersionConstant = "BRLCAD_VERSION"

// FileName is the index file written into the bindings directory.
const FileName = "__init__.py"

// Manifest is the aggregate index state: the native library version and the
// wrapped libraries in generation order.
type Manifest struct {
	version   string
	libraries []string
	seen      sets.Set[string]
}

// New creates an empty manifest for the given BRL-CAD version.
func New(version string) *Manifest {
	return &Manifest{version: version, seen: sets.New[string]()}
}

// Version returns the BRL-CAD version the manifest was created with.
func (m *Manifest) Version() string { return m.version }

// Add appends a generated library, preserving insertion order. Adding the
// same name twice is a no-op.
func (m *Manifest) Add(library string) {
	if m.seen.Has(library) {
		return
	}
	m.seen.Add(library)
	m.libraries = append(m.libraries, library)
}

// Libraries returns the generated library names in insertion order.
func (m *Manifest) Libraries() []string {
	return append([]string{}, m.libraries...)
}

// Exports returns the full export list: the version constant first, then the
// libraries in insertion order.
func (m *Manifest) Exports() []string {
	return append([]string{VersionConstant}, m.libraries...)
}

// Render produces the index file contents. Identical manifest state renders
// to byte-identical output.
func (m *Manifest) Render() ([]byte, error) {
	exports, err := json.Marshal(m.Exports())
	if err != nil {
		return nil, fmt.Errorf("marshal export list: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# Code generated by brlbind. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "%s = %s\n", VersionConstant, strconv.Quote(m.version))
	fmt.Fprintf(&buf, "__all__ = %s\n", exports)
	return buf.Bytes(), nil
}

// Write renders the manifest into dir under its canonical file name.
func (m *Manifest) Write(dir string) error {
	data, err := m.Render()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads a previously written index file back into a Manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse reconstructs a Manifest from index file contents.
func Parse(data []byte) (*Manifest, error) {
	var version string
	var exports []string
	haveVersion, haveExports := false, false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, VersionConstant+" = "):
			raw := strings.TrimPrefix(line, VersionConstant+" = ")
			v, err := strconv.Unquote(raw)
			if err != nil {
				return nil, fmt.Errorf("malformed version constant: %w", err)
			}
			version = v
			haveVersion = true
		case strings.HasPrefix(line, "__all__ = "):
			raw := strings.TrimPrefix(line, "__all__ = ")
			if err := json.Unmarshal([]byte(raw), &exports); err != nil {
				return nil, fmt.Errorf("malformed export list: %w", err)
			}
			haveExports = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}
	if !haveVersion || !haveExports {
		return nil, fmt.Errorf("manifest is missing %s or __all__", VersionConstant)
	}
	if len(exports) == 0 || exports[0] != VersionConstant {
		return nil, fmt.Errorf("export list must start with %s", VersionConstant)
	}

	m := New(version)
	for _, lib := range exports[1:] {
		m.Add(lib)
	}
	return m, nil
}
