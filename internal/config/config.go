// Package config loads .skemadiff.toml, the optional per-project settings
// file of the command-line tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the settings file looked up from the working directory upward.
const FileName = ".skemadiff.toml"

type Config struct {
	Output Output `toml:"output"`
	Diff   Diff   `toml:"diff"`
	Input  Input  `toml:"input"`
}

type Output struct {
	Format       string `toml:"format"`
	Color        string `toml:"color"`
	Lang         string `toml:"lang"`
	BreakingOnly bool   `toml:"breaking_only"`
}

type Diff struct {
	MaxDepth int `toml:"max_depth"`
	// FailOnBreaking makes the tool exit with status 2 when any change is
	// breaking.
	FailOnBreaking bool `toml:"fail_on_breaking"`
}

type Input struct {
	Format  string `toml:"format"`
	Strict  bool   `toml:"strict"`
	CRDKind string `toml:"crd_kind"`
}

// Default is the configuration used when no file is found.
func Default() Config {
	return Config{
		Output: Output{Format: "json", Color: "auto", Lang: "en"},
		Input:  Input{Format: "auto"},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default. Keys the file leaves out keep their
// defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("diff", "max_depth") && cfg.Diff.MaxDepth <= 0 {
		return Config{}, fmt.Errorf("%s: [diff].max_depth must be positive", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest settings file. It returns Default
// when none exists.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if err := oneOf("[output].format", c.Output.Format, "json", "text"); err != nil {
		return err
	}
	if err := oneOf("[output].color", c.Output.Color, "auto", "on", "off"); err != nil {
		return err
	}
	if err := oneOf("[input].format", c.Input.Format, "auto", "json", "yaml", "yml"); err != nil {
		return err
	}
	if c.Diff.MaxDepth < 0 {
		return fmt.Errorf("[diff].max_depth must not be negative")
	}
	return nil
}

func oneOf(key, v string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), v)
}
