// Package config loads and writes wren.yml, the description of every schema
// set a project builds.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file wren looks for in the working directory.
const DefaultPath = "wren.yml"

var (
	// ErrNoTargets is returned when a config declares no targets.
	ErrNoTargets = errors.New("no targets configured")
	// ErrUnknownTarget is returned when a requested target is not declared.
	ErrUnknownTarget = errors.New("unknown target")
)

// Config represents wren.yml
type Config struct {
	Flatc    FlatcConfig `yaml:"flatc" mapstructure:"flatc"`
	Staging  string      `yaml:"staging" mapstructure:"staging"`
	LogLevel string      `yaml:"log_level" mapstructure:"log_level"`
	Targets  []Target    `yaml:"targets" mapstructure:"targets"`
}

// FlatcConfig locates the compiler binary
type FlatcConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	Download bool   `yaml:"download" mapstructure:"download"`
	Platform string `yaml:"platform" mapstructure:"platform"`
	URL      string `yaml:"url,omitempty" mapstructure:"url"`
}

// Target is one schema tree compiled into one output directory
type Target struct {
	Name       string `yaml:"name" mapstructure:"name"`
	Input      string `yaml:"input" mapstructure:"input"`
	Output     string `yaml:"output" mapstructure:"output"`
	Lang       string `yaml:"lang" mapstructure:"lang"`
	PascalCase bool   `yaml:"pascalcase" mapstructure:"pascalcase"`
	Flatten    bool   `yaml:"flatten" mapstructure:"flatten"`
}

// Default returns the configuration written by 'wren init': the packet
// schemas shared with the network layer and the world schemas used by the
// client, both compiled to C#.
func Default() *Config {
	return &Config{
		Flatc: FlatcConfig{
			Path:     "bin/flatc",
			Download: true,
			Platform: "linux",
		},
		Staging:  "temp",
		LogLevel: "warn",
		Targets: []Target{
			{
				Name:   "packet",
				Input:  "Schemas/packet",
				Output: "Network/bin/packet_schemas",
				Lang:   "csharp",
			},
			{
				Name:   "world",
				Input:  "Schemas/world",
				Output: "Client/bin/world_schemas",
				Lang:   "csharp",
			},
		},
	}
}

// Load reads the config at path. Scalar settings can be overridden with
// WREN_* environment variables, e.g. WREN_FLATC_PATH or WREN_STAGING.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found. Run 'wren init' to create one", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("WREN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("flatc.path", def.Flatc.Path)
	v.SetDefault("flatc.download", def.Flatc.Download)
	v.SetDefault("flatc.platform", def.Flatc.Platform)
	v.SetDefault("flatc.url", "")
	v.SetDefault("staging", def.Staging)
	v.SetDefault("log_level", def.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i := range cfg.Targets {
		if cfg.Targets[i].Lang == "" {
			cfg.Targets[i].Lang = "cpp"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks that every target is complete and uniquely named
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTargets
	}

	seen := make(map[string]bool, len(c.Targets))
	for i, t := range c.Targets {
		if t.Name == "" {
			return fmt.Errorf("target %d: name is required", i+1)
		}
		if seen[t.Name] {
			return fmt.Errorf("target %q declared twice", t.Name)
		}
		seen[t.Name] = true

		if t.Input == "" {
			return fmt.Errorf("target %q: input is required", t.Name)
		}
		if t.Output == "" {
			return fmt.Errorf("target %q: output is required", t.Name)
		}
	}

	if c.Flatc.Path == "" {
		return fmt.Errorf("flatc.path is required")
	}
	return nil
}

// Select returns the targets named in names, in config order. No names
// selects every target.
func (c *Config) Select(names ...string) ([]Target, error) {
	if len(names) == 0 {
		return c.Targets, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []Target
	for _, t := range c.Targets {
		if want[t.Name] {
			out = append(out, t)
			delete(want, t.Name)
		}
	}

	for _, n := range names {
		if want[n] {
			return nil, fmt.Errorf("%w %q", ErrUnknownTarget, n)
		}
	}
	return out, nil
}

// Save writes cfg to path as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	header := "# wren build configuration. See 'wren build --help'.\n"
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}
