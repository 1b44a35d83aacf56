// Package config loads obsgen.toml, the optional per-module configuration
// file. Everything has a default; a missing file means a default run.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"obsgen/internal/diag"
)

// FileName is the configuration file searched for from the working
// directory upward.
const FileName = "obsgen.toml"

// Config is the root of obsgen.toml.
type Config struct {
	Generator Generator      `toml:"generator"`
	Messenger Messenger      `toml:"messenger"`
	Suppress  []SuppressRule `toml:"suppress"`
}

// Generator controls the pipeline run.
type Generator struct {
	// Packages are go/packages load patterns; default ./...
	Packages []string `toml:"packages"`
	// MinGoVersion overrides the language gate's floor. Must not be lower
	// than the built-in minimum.
	MinGoVersion string `toml:"min_go"`
	// MaxDiagnostics caps collected diagnostics per run.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Cache toggles the fingerprint disk cache.
	Cache *bool `toml:"cache"`
	// Verbose enables debug logging without the CLI flag.
	Verbose bool `toml:"verbose"`
}

// Messenger controls recipient wiring defaults.
type Messenger struct {
	// RequireRegistration upgrades malformed-handler findings on recipient
	// types from warnings to blocking errors, so a Receive method that
	// silently fails to register cannot slip through.
	RequireRegistration bool `toml:"require_registration"`
}

// SuppressRule is one [[suppress]] entry. Justification is mandatory.
type SuppressRule struct {
	Code          string `toml:"code"`
	Path          string `toml:"path"`
	Justification string `toml:"justification"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Generator: Generator{
			Packages:       []string{"./..."},
			MaxDiagnostics: 256,
		},
	}
}

// Load reads and validates one configuration file.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Newf("%s: unknown key %q", path, undecoded[0].String())
	}
	if len(cfg.Generator.Packages) == 0 {
		cfg.Generator.Packages = []string{"./..."}
	}
	if cfg.Generator.MaxDiagnostics <= 0 {
		cfg.Generator.MaxDiagnostics = 256
	}
	if err := cfg.validate(); err != nil {
		return Config{}, errors.Wrapf(err, "validate %s", path)
	}
	return cfg, nil
}

// Find walks from dir toward the filesystem root looking for obsgen.toml
// and loads the first one found. ok is false when no file exists, which is
// not an error.
func Find(dir string) (cfg Config, ok bool, err error) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, false, err
	}
	for {
		candidate := filepath.Join(cur, FileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			cfg, err = Load(candidate)
			return cfg, err == nil, err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return Default(), false, nil
		}
		cur = parent
	}
}

func (c Config) validate() error {
	for i, s := range c.Suppress {
		if s.Code == "" {
			return errors.Newf("suppress[%d]: code is required", i)
		}
		if diag.ParseCodeID(s.Code) == diag.UnknownCode {
			return errors.Newf("suppress[%d]: unknown code %q", i, s.Code)
		}
		if s.Justification == "" {
			return errors.Newf("suppress[%d] (%s): justification is required", i, s.Code)
		}
	}
	return nil
}

// Suppressions converts the raw rules into diag suppressions. Load already
// rejected unknown codes.
func (c Config) Suppressions() []diag.Suppression {
	out := make([]diag.Suppression, 0, len(c.Suppress))
	for _, s := range c.Suppress {
		code := diag.ParseCodeID(s.Code)
		if code == diag.UnknownCode {
			continue
		}
		out = append(out, diag.Suppression{
			Code:          code,
			PathGlob:      s.Path,
			Justification: s.Justification,
		})
	}
	return out
}

// CacheEnabled reports the effective cache toggle (default on).
func (c Config) CacheEnabled() bool {
	return c.Generator.Cache == nil || *c.Generator.Cache
}
