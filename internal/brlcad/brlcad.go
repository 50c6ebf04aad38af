// Package brlcad locates an installed BRL-CAD and reports its version.
// Generation needs two things from the native installation: a prefix to
// resolve relative header paths against, and the version string that the
// aggregate bindings index exports.
package brlcad

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/brlbind/internal/logfields"
)

// Info describes a discovered BRL-CAD installation.
type Info struct {
	Prefix  string
	Version string
}

// ConfigTool is the helper shipped with BRL-CAD installations.
const ConfigTool = "brlcad-config"

// EnvPrefix overrides installation probing when set.
const EnvPrefix = "BRLCAD_PREFIX"

var defaultPrefixes = []string{"/usr/brlcad", "/opt/brlcad", "/usr/local/brlcad", "/usr"}

// Discover resolves the BRL-CAD installation. An explicitly configured prefix
// wins; otherwise the BRLCAD_PREFIX environment variable, brlcad-config on
// PATH, and finally the usual install locations are probed.
func Discover(ctx context.Context, configuredPrefix string) (*Info, error) {
	prefix, err := resolvePrefix(ctx, configuredPrefix)
	if err != nil {
		return nil, err
	}

	version, err := resolveVersion(ctx, prefix)
	if err != nil {
		return nil, err
	}

	slog.Debug("Discovered BRL-CAD installation",
		logfields.Path(prefix), logfields.BrlcadVersion(version))
	return &Info{Prefix: prefix, Version: version}, nil
}

func resolvePrefix(ctx context.Context, configured string) (string, error) {
	if configured != "" {
		if !isInstallRoot(configured) {
			return "", fmt.Errorf("configured BRL-CAD prefix not usable: %s", configured)
		}
		return configured, nil
	}

	if env := os.Getenv(EnvPrefix); env != "" {
		if !isInstallRoot(env) {
			return "", fmt.Errorf("%s points at an unusable prefix: %s", EnvPrefix, env)
		}
		return env, nil
	}

	if path, err := exec.LookPath(ConfigTool); err == nil {
		out, err := exec.CommandContext(ctx, path, "--prefix").Output()
		if err == nil {
			if prefix := strings.TrimSpace(string(out)); isInstallRoot(prefix) {
				return prefix, nil
			}
		}
	}

	for _, candidate := range defaultPrefixes {
		if isInstallRoot(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no BRL-CAD installation found (set brlcad.prefix or %s)", EnvPrefix)
}

// isInstallRoot accepts any directory that carries an include tree. A bare
// prefix without headers cannot feed the generator anyway.
func isInstallRoot(prefix string) bool {
	info, err := os.Stat(filepath.Join(prefix, "include"))
	return err == nil && info.IsDir()
}

// resolveVersion asks brlcad-config first and falls back to the version
// component files under include/conf that BRL-CAD installs.
func resolveVersion(ctx context.Context, prefix string) (string, error) {
	for _, tool := range []string{filepath.Join(prefix, "bin", ConfigTool), ConfigTool} {
		if _, err := exec.LookPath(tool); err != nil {
			continue
		}
		out, err := exec.CommandContext(ctx, tool, "--version").Output()
		if err != nil {
			continue
		}
		if version := strings.TrimSpace(string(out)); version != "" {
			return version, nil
		}
	}

	return versionFromConfFiles(prefix)
}

func versionFromConfFiles(prefix string) (string, error) {
	parts := make([]string, 0, 3)
	for _, name := range []string{"MAJOR", "MINOR", "PATCH"} {
		data, err := os.ReadFile(filepath.Join(prefix, "include", "conf", name))
		if err != nil {
			return "", fmt.Errorf("cannot determine BRL-CAD version under %s: %w", prefix, err)
		}
		parts = append(parts, strings.TrimSpace(string(data)))
	}
	return strings.Join(parts, "."), nil
}

// ResolveHeader turns a configured header path into an absolute one, resolving
// relative paths against the installation prefix.
func (i *Info) ResolveHeader(header string) string {
	if filepath.IsAbs(header) {
		return header
	}
	return filepath.Join(i.Prefix, header)
}

// IncludeDir returns the installation's top level include directory.
func (i *Info) IncludeDir() string {
	return filepath.Join(i.Prefix, "include")
}
