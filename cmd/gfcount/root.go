// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"strings"

	"github.com/katalvlaran/gfcount"
	"github.com/katalvlaran/gfcount/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by all subcommands once the configuration is loaded.
type app struct {
	v      *viper.Viper
	path   string
	cfg    *config.Config
	logger *logrus.Logger
	enum   *gfcount.Enumerator
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}
	d := config.Default()

	root := &cobra.Command{
		Use:   "gfcount",
		Short: "Exact and closed-form word counts of rational generating functions",
		Long: `gfcount extracts the coefficients of the generating functions in its
catalog, exactly by series inversion or through a closed form built from
the roots of the denominator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.path, "config", "", "configuration file (YAML)")
	flags.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	flags.Float64("threshold", d.Threshold, "root clustering distance")
	flags.String("root-strategy", d.RootStrategy, "root finder: square-free or companion")
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyThreshold, flags.Lookup("threshold"))
	_ = a.v.BindPFlag(config.KeyRootStrategy, flags.Lookup("root-strategy"))

	root.AddCommand(
		newExactCmd(a),
		newClosedFormCmd(a),
		newCheckCmd(a),
		newInitConfigCmd(),
	)

	return root
}

func (a *app) load(logOut io.Writer) error {
	cfg, err := config.FromViper(a.v, a.path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = setupLogger(logOut, cfg.Level())

	rz, err := cfg.Rationalizer()
	if err != nil {
		return err
	}
	opts := append(cfg.Options(), gfcount.WithLogger(a.logger))
	a.enum, err = gfcount.New(rz, opts...)
	if err != nil {
		return err
	}
	a.logger.WithFields(logrus.Fields{
		"config": a.path,
		"series": len(cfg.Series),
	}).Debug("configuration loaded")

	return nil
}

func setupLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(level)

	return logger
}

// series resolves a catalog name, falling back to a literal pattern.
func (a *app) series(name string) (config.Series, error) {
	s, err := a.cfg.Lookup(name)
	if err == nil {
		return s, nil
	}
	for _, c := range a.cfg.Series {
		if strings.TrimSpace(name) == c.Pattern {
			return c, nil
		}
	}

	return config.Series{}, err
}
