// SPDX-License-Identifier: MIT
package config_test

import (
	"path/filepath"
	"testing"

	"github.com/katalvlaran/gfcount"
	"github.com/katalvlaran/gfcount/config"
	"github.com/katalvlaran/gfcount/roots"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, roots.StrategySquareFree, cfg.Strategy())
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
	assert.Len(t, cfg.Series, 6)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GFCOUNT_THRESHOLD", "0.01")
	t.Setenv("GFCOUNT_ROOT_STRATEGY", "companion")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Threshold)
	assert.Equal(t, roots.StrategyCompanion, cfg.Strategy())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gfcount.yaml")
	want := config.Default()
	want.LogLevel = "debug"
	want.Series = want.Series[4:]
	require.NoError(t, config.Save(path, want))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*config.Config){
		"threshold":     func(c *config.Config) { c.Threshold = 0 },
		"formThreshold": func(c *config.Config) { c.FormThreshold = -1 },
		"maxCondition":  func(c *config.Config) { c.MaxCondition = 1 },
		"strategy":      func(c *config.Config) { c.RootStrategy = "bisection" },
		"logLevel":      func(c *config.Config) { c.LogLevel = "loud" },
		"duplicateName": func(c *config.Config) { c.Series[1].Name = c.Series[0].Name },
		"missingName":   func(c *config.Config) { c.Series[0].Name = "" },
		"badCoeff":      func(c *config.Config) { c.Series[0].Numerator = []string{"x"} },
		"zeroDen":       func(c *config.Config) { c.Series[0].Denominator = []string{"0"} },
		"badOverflow":   func(c *config.Config) { c.Series[5].Overflow = map[string]string{"-1": "2"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestLookup(t *testing.T) {
	cfg := config.Default()
	s, err := cfg.Lookup("compositions")
	require.NoError(t, err)
	assert.Equal(t, "(11*)*", s.Pattern)

	_, err = cfg.Lookup("nothing")
	require.ErrorIs(t, err, config.ErrUnknownSeries)
}

func TestRationalizer_Catalog(t *testing.T) {
	cfg := config.Default()
	rz, err := cfg.Rationalizer()
	require.NoError(t, err)
	e, err := gfcount.New(rz, cfg.Options()...)
	require.NoError(t, err)

	cases := map[string][]int64{
		"(00*1)*":                      {1, 0, 1, 1, 2, 3, 5, 8},
		"a*b*c*(dd)*|e":                {1, 4, 7, 13, 22, 34, 50, 70},
		"(11*)*":                       {1, 1, 2, 4, 8, 16, 32, 64},
		"11*11*11*11*11*":              {0, 0, 0, 0, 0, 1, 5, 15},
		"1*(22)*(333)*(4444)*(55555)*": {1, 1, 2, 3, 5, 7, 10, 13},
	}
	for pattern, want := range cases {
		seq, err := e.ExactCoefficients(pattern)
		require.NoError(t, err)
		var got []int64
		for v := range seq {
			got = append(got, v.Int64())
			if len(got) == len(want) {
				break
			}
		}
		assert.Equal(t, want, got, pattern)
	}
}
