package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	BRLCAD    BRLCADConfig    `yaml:"brlcad"`
	Cache     CacheConfig     `yaml:"cache"`
	Output    OutputConfig    `yaml:"output"`
	Generator GeneratorConfig `yaml:"generator"`
	Libraries []Library       `yaml:"libraries"`
}

// Library describes one native library to wrap. Libraries are generated in
// declaration order, so every dependency must be declared before its dependents.
type Library struct {
	Name    string   `yaml:"name"`
	Headers []string `yaml:"headers"`
	Deps    []string `yaml:"deps,omitempty"`
	Output  string   `yaml:"output,omitempty"` // Wrapper file name, defaults to <name>.py
}

// BRLCADConfig locates the native BRL-CAD installation.
type BRLCADConfig struct {
	Prefix string `yaml:"prefix,omitempty"` // Installation root, empty means probe
}

// CacheConfig controls reuse of a previously generated bindings directory.
type CacheConfig struct {
	Reuse bool   `yaml:"reuse"` // Reinstall from the cache directory when it exists
	Dir   string `yaml:"dir,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// GeneratorConfig describes the external binding generator invocation.
type GeneratorConfig struct {
	Command    string   `yaml:"command,omitempty"`
	ExtraFlags []string `yaml:"extra_flags,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Output.Directory == "" {
		c.Output.Directory = "./_bindings"
	}
	if c.Generator.Command == "" {
		c.Generator.Command = "ctypesgen"
	}
	if c.Cache.Dir == "" {
		if cacheRoot, err := os.UserCacheDir(); err == nil {
			c.Cache.Dir = filepath.Join(cacheRoot, "brlbind", "_bindings")
		} else {
			c.Cache.Dir = filepath.Join(os.TempDir(), "brlbind", "_bindings")
		}
	}
	for i := range c.Libraries {
		if c.Libraries[i].Output == "" {
			c.Libraries[i].Output = c.Libraries[i].Name + ".py"
		}
	}
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

const exampleConfig = `# brlbind configuration
# Generates language bindings for an installed BRL-CAD by driving an external
# header-to-binding generator, one pass per library, in dependency order.

brlcad:
  # Installation root. Leave empty to probe BRLCAD_PREFIX, brlcad-config and
  # the usual install locations.
  prefix: ""

cache:
  # Reinstall from the cached bindings directory instead of regenerating.
  # Useful while developing higher level features; a full regeneration is slow.
  reuse: false

output:
  directory: ./_bindings

generator:
  command: ctypesgen
  extra_flags: []

# Declaration order is the generation order: list every dependency before the
# libraries that depend on it.
libraries:
  - name: bu
    headers: [include/bu.h]
  - name: bn
    headers: [include/bn.h]
    deps: [bu]
  - name: rt
    headers: [include/raytrace.h]
    deps: [bu, bn]
`
