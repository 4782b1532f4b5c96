// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/katalvlaran/gfcount/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func newExactCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "exact NAME",
		Short: "Print the first exact coefficients of a catalog series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.series(args[0])
			if err != nil {
				return err
			}
			seq, err := a.enum.ExactCoefficients(s.Pattern)
			if err != nil {
				return err
			}
			out := make([]string, 0, count)
			for v := range seq {
				if len(out) == count {
					break
				}
				out = append(out, v.String())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))

			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of coefficients")

	return cmd
}

// formReport is the YAML rendering of a closed form.
type formReport struct {
	Name      string      `yaml:"name"`
	Pattern   string      `yaml:"pattern"`
	Form      string      `yaml:"form"`
	LaTeX     string      `yaml:"latex"`
	Condition float64     `yaml:"condition"`
	Roots     []rootEntry `yaml:"roots,omitempty"`
}

type rootEntry struct {
	Value        string `yaml:"value"`
	Multiplicity int    `yaml:"multiplicity"`
}

func newClosedFormCmd(a *app) *cobra.Command {
	var (
		latex  bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "closed-form NAME",
		Short: "Print the closed form of a catalog series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.series(args[0])
			if err != nil {
				return err
			}
			_, solver, err := a.enum.ExtractCoefficientsAlgebraically(s.Pattern)
			if err != nil {
				return err
			}
			form := solver.AlgebraicForm(a.cfg.FormThreshold)

			switch format {
			case "text":
				text := form.String()
				if latex {
					text = form.LaTeX()
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			case "yaml":
				rep := formReport{
					Name:      s.Name,
					Pattern:   s.Pattern,
					Form:      form.String(),
					LaTeX:     form.LaTeX(),
					Condition: solver.Condition(),
				}
				if an := solver.Analysis(); an != nil {
					for _, c := range an.Clusters {
						rep.Roots = append(rep.Roots, rootEntry{
							Value:        fmt.Sprintf("%.6g", c.Value),
							Multiplicity: c.Multiplicity,
						})
					}
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err = enc.Encode(rep); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
		},
	}
	cmd.Flags().BoolVar(&latex, "latex", false, "render LaTeX instead of plain text")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")

	return cmd
}

// checkResult is the outcome of comparing one series.
type checkResult struct {
	name     string
	mismatch int // first failing index, -1 when all agree
	exact    string
	closed   float64
}

func newCheckCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare exact and closed-form coefficients for every catalog series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := make([]checkResult, len(a.cfg.Series))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.NumCPU())
			for i, s := range a.cfg.Series {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					r, err := a.check(s, count)
					if err != nil {
						return fmt.Errorf("%s: %w", s.Name, err)
					}
					results[i] = r

					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := 0
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.mismatch < 0 {
					fmt.Fprintf(out, "ok   %s\n", r.name)
					continue
				}
				failed++
				fmt.Fprintf(out, "FAIL %s: n=%d exact=%s closed=%.6g\n", r.name, r.mismatch, r.exact, r.closed)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d series disagree", failed, len(results))
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of coefficients to compare")

	return cmd
}

func (a *app) check(s config.Series, count int) (checkResult, error) {
	res := checkResult{name: s.Name, mismatch: -1}
	exact, err := a.enum.ExactCoefficients(s.Pattern)
	if err != nil {
		return res, err
	}
	f, _, err := a.enum.ExtractCoefficientsAlgebraically(s.Pattern)
	if err != nil {
		return res, err
	}

	n := 0
	for v := range exact {
		if n == count {
			break
		}
		got := f(n)
		if !v.IsInt64() || float64(v.Int64()) != math.Round(got) {
			res.mismatch, res.exact, res.closed = n, v.String(), got
			break
		}
		n++
	}
	a.logger.WithField("series", s.Name).WithField("checked", n).Debug("check finished")

	return res, nil
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config PATH",
		Short: "Write the default configuration to PATH",
		Args:  cobra.ExactArgs(1),
		// the file is written before any configuration exists
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.Default()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "wrote", args[0])

			return err
		},
	}
}
