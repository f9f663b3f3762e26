// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/locator"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

const (
	_environment = "LOCATOR_ENVIRONMENT"
	_baseFile    = "base.yaml"
	_envFile     = ".env"
	_devEnv      = "development"
)

// Config is the configuration of a locator host.
type Config struct {
	Discovery DiscoveryConfig `yaml:"discovery"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DiscoveryConfig controls what Discover scans.
type DiscoveryConfig struct {
	// IncludeExternal loads the plugins of Dir before scanning.
	IncludeExternal bool `yaml:"include_external"`

	// Dir is the deployment directory searched for plugins. Empty means
	// the directory of the executable.
	Dir string `yaml:"dir"`

	// Pattern is the glob plugin file names must match.
	Pattern string `yaml:"pattern"`
}

// LoggingConfig controls the zap logger built by BuildLogger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Encoding    string `yaml:"encoding"`
	Development bool   `yaml:"development"`
}

// MetricsConfig controls the Prometheus observer.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Discovery: DiscoveryConfig{Pattern: locator.DefaultPattern},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load reads YAML documents from rs, in order, over the defaults.
func Load(rs ...io.Reader) (Config, error) {
	cfg := Default()
	for _, r := range rs {
		if err := decode(r, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.validate()
}

// LoadFiles reads the YAML files at paths, in order, over the defaults.
func LoadFiles(paths ...string) (Config, error) {
	cfg := Default()
	for _, path := range paths {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.validate()
}

// LoadDir loads dir/.env if present, then dir/base.yaml and
// dir/<environment>.yaml if present.
func LoadDir(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, _envFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", _envFile, err)
	}

	cfg := Default()
	for _, name := range []string{_baseFile, Environment() + ".yaml"} {
		err := decodeFile(filepath.Join(dir, name), &cfg)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.validate()
}

// Environment returns the name of the current environment.
func Environment() string {
	if env := os.Getenv(_environment); env != "" {
		return env
	}
	return _devEnv
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := decode(f, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decode(r io.Reader, cfg *Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	data = []byte(os.Expand(string(data), expandEnv))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("couldn't decode config: %w", err)
	}
	return nil
}

// expandEnv resolves VAR or VAR:-default against the environment.
func expandEnv(s string) string {
	name, def, hasDefault := strings.Cut(s, ":-")
	if v, ok := os.LookupEnv(name); ok && (v != "" || !hasDefault) {
		return v
	}
	return def
}

func (c Config) validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("logging.encoding: unknown encoding %q", c.Logging.Encoding)
	}
	if c.Discovery.Pattern != "" {
		if _, err := filepath.Match(c.Discovery.Pattern, ""); err != nil {
			return fmt.Errorf("discovery.pattern: %w", err)
		}
	}
	return nil
}

// BuildLogger builds the zap logger described by c.Logging.
func (c Config) BuildLogger(opts ...zap.Option) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Logging.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.Encoding = c.Logging.Encoding
	return zc.Build(opts...)
}

// Loader returns a locator.DirLoader over units and the plugins of the
// configured deployment directory.
func (c DiscoveryConfig) Loader(units ...locator.Unit) *locator.DirLoader {
	return locator.NewLoader(c.Dir, units...).WithPattern(c.Pattern)
}

// Options returns the discovery options described by c.
func (c DiscoveryConfig) Options() []locator.DiscoverOption {
	return []locator.DiscoverOption{locator.IncludeExternal(c.IncludeExternal)}
}
