// SPDX-License-Identifier: MIT

// Package config loads gfcount settings and the series catalog from YAML,
// environment variables (prefix GFCOUNT_) and bound command-line flags.
//
// Example file:
//
//	threshold: 0.001
//	form_threshold: 1e-5
//	max_condition: 1e13
//	root_strategy: square-free
//	log_level: info
//	series:
//	  - name: separated
//	    pattern: "(00*1)*"
//	    numerator: ["1", "-1"]
//	    denominator: ["1", "-1", "-1"]
//
// Coefficient lists are indexed by degree; entries are rational strings
// ("3", "-1/2"). Overflow maps an index to a rational string.
//
// Errors (sentinel):
//
//	– ErrInvalid      for every rejected value; the message names the field.
//	– ErrUnknownSeries from Config.Lookup.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/gfcount"
	"github.com/katalvlaran/gfcount/closedform"
	"github.com/katalvlaran/gfcount/matrix"
	"github.com/katalvlaran/gfcount/poly"
	"github.com/katalvlaran/gfcount/roots"
	"github.com/katalvlaran/gfcount/series"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid indicates a configuration value outside its domain.
	ErrInvalid = errors.New("config: invalid value")

	// ErrUnknownSeries indicates a catalog lookup by a name that is not present.
	ErrUnknownSeries = errors.New("config: unknown series")
)

// EnvPrefix is the prefix of environment overrides, e.g. GFCOUNT_THRESHOLD.
const EnvPrefix = "GFCOUNT"

// Viper keys.
const (
	KeyThreshold     = "threshold"
	KeyFormThreshold = "form_threshold"
	KeyMaxCondition  = "max_condition"
	KeyRootStrategy  = "root_strategy"
	KeyLogLevel      = "log_level"
	KeySeries        = "series"
)

// Series is one catalog entry: a named pattern with its generating function.
type Series struct {
	Name        string            `mapstructure:"name" yaml:"name"`
	Pattern     string            `mapstructure:"pattern" yaml:"pattern"`
	Numerator   []string          `mapstructure:"numerator" yaml:"numerator"`
	Denominator []string          `mapstructure:"denominator" yaml:"denominator"`
	Overflow    map[string]string `mapstructure:"overflow" yaml:"overflow,omitempty"`
}

// Config is the full configuration.
type Config struct {
	Threshold     float64  `mapstructure:"threshold" yaml:"threshold"`
	FormThreshold float64  `mapstructure:"form_threshold" yaml:"form_threshold"`
	MaxCondition  float64  `mapstructure:"max_condition" yaml:"max_condition"`
	RootStrategy  string   `mapstructure:"root_strategy" yaml:"root_strategy"`
	LogLevel      string   `mapstructure:"log_level" yaml:"log_level"`
	Series        []Series `mapstructure:"series" yaml:"series"`
}

// Default returns the built-in configuration with the default catalog.
func Default() *Config {
	return &Config{
		Threshold:     closedform.DefaultThreshold,
		FormThreshold: closedform.DefaultFormThreshold,
		MaxCondition:  matrix.DefaultMaxCondition,
		RootStrategy:  roots.StrategySquareFree.String(),
		LogLevel:      logrus.InfoLevel.String(),
		Series:        Catalog(),
	}
}

// NewViper returns a viper instance with defaults and environment
// overrides installed. Callers may bind flags to it before FromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyThreshold, d.Threshold)
	v.SetDefault(KeyFormThreshold, d.FormThreshold)
	v.SetDefault(KeyMaxCondition, d.MaxCondition)
	v.SetDefault(KeyRootStrategy, d.RootStrategy)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path (YAML) over the defaults. An empty path uses defaults and
// environment only. A file without a series list gets the default catalog.
func Load(path string) (*Config, error) {
	return FromViper(NewViper(), path)
}

// FromViper reads path into v (when non-empty), decodes and validates.
func FromViper(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if len(cfg.Series) == 0 {
		cfg.Series = Catalog()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}

// Validate checks every field and every catalog entry.
func (c *Config) Validate() error {
	if !(c.Threshold > 0) {
		return invalid(KeyThreshold, "must be positive, got %g", c.Threshold)
	}
	if !(c.FormThreshold > 0) {
		return invalid(KeyFormThreshold, "must be positive, got %g", c.FormThreshold)
	}
	if !(c.MaxCondition > 1) {
		return invalid(KeyMaxCondition, "must exceed 1, got %g", c.MaxCondition)
	}
	if _, err := roots.ParseStrategy(c.RootStrategy); err != nil {
		return invalid(KeyRootStrategy, "%v", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return invalid(KeyLogLevel, "%v", err)
	}

	names := make(map[string]bool, len(c.Series))
	patterns := make(map[string]bool, len(c.Series))
	for i, s := range c.Series {
		field := fmt.Sprintf("%s[%d]", KeySeries, i)
		if s.Name == "" || s.Pattern == "" {
			return invalid(field, "name and pattern are required")
		}
		if names[s.Name] {
			return invalid(field, "duplicate name %q", s.Name)
		}
		if patterns[s.Pattern] {
			return invalid(field, "duplicate pattern %q", s.Pattern)
		}
		names[s.Name], patterns[s.Pattern] = true, true
		if _, err := s.Entry(); err != nil {
			return invalid(field, "%v", err)
		}
	}

	return nil
}

// Strategy returns the parsed root strategy.
func (c *Config) Strategy() roots.Strategy {
	s, _ := roots.ParseStrategy(c.RootStrategy)
	return s
}

// Level returns the parsed log level (Info when unparsable).
func (c *Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return l
}

// Options translates the numeric settings into Enumerator options.
func (c *Config) Options() []gfcount.Option {
	return []gfcount.Option{
		gfcount.WithThreshold(c.Threshold),
		gfcount.WithFormThreshold(c.FormThreshold),
		gfcount.WithMaxCondition(c.MaxCondition),
		gfcount.WithRootStrategy(c.Strategy()),
	}
}

// Lookup finds a catalog entry by name.
func (c *Config) Lookup(name string) (Series, error) {
	for _, s := range c.Series {
		if s.Name == name {
			return s, nil
		}
	}

	return Series{}, fmt.Errorf("%w: %q", ErrUnknownSeries, name)
}

// Rationalizer builds a pattern-keyed table from the catalog.
func (c *Config) Rationalizer() (gfcount.StaticRationalizer, error) {
	out := make(gfcount.StaticRationalizer, len(c.Series))
	for _, s := range c.Series {
		e, err := s.Entry()
		if err != nil {
			return nil, fmt.Errorf("config: series %q: %w", s.Name, err)
		}
		out[s.Pattern] = e
	}

	return out, nil
}

// Entry parses the coefficient strings into a generating function.
func (s Series) Entry() (gfcount.Entry, error) {
	num, err := poly.Parse(s.Numerator)
	if err != nil {
		return gfcount.Entry{}, fmt.Errorf("numerator: %w", err)
	}
	den, err := poly.Parse(s.Denominator)
	if err != nil {
		return gfcount.Entry{}, fmt.Errorf("denominator: %w", err)
	}
	if den.IsZero() {
		return gfcount.Entry{}, fmt.Errorf("denominator: %w", series.ErrZeroDenominator)
	}

	ov := make(series.Overflow, len(s.Overflow))
	for k, v := range s.Overflow {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || n < 0 {
			return gfcount.Entry{}, fmt.Errorf("overflow index %q is not a non-negative integer", k)
		}
		c, ok := new(big.Rat).SetString(strings.TrimSpace(v))
		if !ok {
			return gfcount.Entry{}, fmt.Errorf("overflow[%d] = %q is not a rational", n, v)
		}
		ov[n] = c
	}

	return gfcount.Entry{Rational: series.NewRational(num, den), Overflow: ov}, nil
}
