/*
Copyright 2025 The pathway-optimizer Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// pathopt plans multi-decade technology deployment pathways that minimize
// discounted system cost under emission-reduction targets.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/industrial-decarb/pathway-optimizer/internal/loader"
	"github.com/industrial-decarb/pathway-optimizer/internal/logging"
	"github.com/industrial-decarb/pathway-optimizer/internal/metrics"
	"github.com/industrial-decarb/pathway-optimizer/internal/optimizer"
	"github.com/industrial-decarb/pathway-optimizer/internal/report"
	"github.com/industrial-decarb/pathway-optimizer/pkg/config"
	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
	"github.com/industrial-decarb/pathway-optimizer/pkg/solver"
)

var (
	flagConfig      string
	flagOut         string
	flagVerbosity   int
	flagMetricsAddr string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pathopt",
		Short:         "Cost-optimal technology deployment pathways under emission targets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "run configuration file (YAML)")
	root.PersistentFlags().StringVarP(&flagOut, "out", "o", ".", "output directory for report CSVs")
	root.PersistentFlags().IntVarP(&flagVerbosity, "verbosity", "v", 0, "log verbosity (0=info, 1=debug, 2=trace)")
	root.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	root.AddCommand(newSolveCmd(), newSweepCmd(), newMACCCmd())
	return root
}

// setup loads the run configuration and constructs the engine with logging
// and metrics wired in.
func setup(cmd *cobra.Command) (*optimizer.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	log := logging.NewLogger(flagVerbosity)
	opts := []optimizer.Option{optimizer.WithLogger(log)}

	if flagMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, optimizer.WithMetrics(metrics.New(reg)))
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(flagMetricsAddr, mux); err != nil {
				log.Error(err, "metrics server stopped")
			}
		}()
	}

	engine, err := optimizer.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	cmd.SetContext(logging.IntoContext(cmd.Context(), log))
	return engine, nil
}

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <scenario.yaml>",
		Short: "Solve a single pathway scenario and write deployment reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := setup(cmd)
			if err != nil {
				return err
			}
			in, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pathway, err := engine.Run(ctx, in)
			if err != nil {
				return err
			}
			if pathway.Status != solver.StatusOptimal {
				fmt.Fprintf(cmd.OutOrStdout(), "solve finished: %s\n", pathway.Status)
				return nil
			}

			if err := writeReports(flagOut, pathway); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "optimal (backend %s, objective %g, %s)\n",
				pathway.Backend, pathway.Objective, pathway.SolveTime)
			return nil
		},
	}
}

func newSweepCmd() *cobra.Command {
	var ratesFlag string
	var parallelism int
	cmd := &cobra.Command{
		Use:   "sweep <scenario.yaml>",
		Short: "Run a discount-rate sensitivity sweep",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := setup(cmd)
			if err != nil {
				return err
			}
			rates, err := parseRates(ratesFlag)
			if err != nil {
				return err
			}
			in, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for _, r := range engine.Sweep(ctx, in, rates, parallelism) {
				switch {
				case r.Err != nil:
					fmt.Fprintf(cmd.OutOrStdout(), "rate %g: error: %v\n", r.DiscountRate, r.Err)
				case r.Pathway.Status != solver.StatusOptimal:
					fmt.Fprintf(cmd.OutOrStdout(), "rate %g: %s\n", r.DiscountRate, r.Pathway.Status)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "rate %g: objective %g\n", r.DiscountRate, r.Pathway.Objective)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ratesFlag, "rates", "0.03,0.05,0.07", "comma-separated discount rates")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "max concurrent runs (0 = unbounded)")
	return cmd
}

func newMACCCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "macc <scenario.yaml>",
		Short: "Write the marginal abatement cost curve for a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := setup(cmd)
			if err != nil {
				return err
			}
			in, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			points, err := engine.MACC(in, year)
			if err != nil {
				return err
			}
			f, err := os.Create(filepath.Join(flagOut, "macc.csv"))
			if err != nil {
				return err
			}
			defer f.Close()
			return report.WriteMACC(f, points)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year to evaluate (required)")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func writeReports(dir string, p *core.Pathway) error {
	deployment, err := os.Create(filepath.Join(dir, "deployment.csv"))
	if err != nil {
		return err
	}
	defer deployment.Close()
	if err := report.WriteDeployment(deployment, p); err != nil {
		return err
	}

	summary, err := os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		return err
	}
	defer summary.Close()
	return report.WriteSummary(summary, p)
}

func parseRates(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	rates := make([]float64, 0, len(parts))
	for _, p := range parts {
		r, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", p, err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}
