package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/linfeas/linfeas/alt"
	"github.com/linfeas/linfeas/explain"
	"github.com/linfeas/linfeas/solver"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by all subcommands, once flags and config were read.
type app struct {
	cfg    config
	logger *slog.Logger
	stdout io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		a          app
		configPath string
		flagCfg    config
	)
	a.stdout = stdout
	root := &cobra.Command{
		Use:           "linfeas",
		Short:         "Decides the feasibility of linear constraint systems",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("max-inequalities") {
				cfg.MaxInequalities = flagCfg.MaxInequalities
			}
			if flags.Changed("workers") {
				cfg.Workers = flagCfg.Workers
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = flagCfg.LogLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = flagCfg.LogFormat
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.logger, err = cfg.logger(stderr)
			return err
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", defaultConfigPath, "path to the YAML configuration file")
	pf.IntVar(&flagCfg.MaxInequalities, "max-inequalities", solver.DefaultMaxInequalities, "ceiling on the number of inequalities during elimination")
	pf.IntVar(&flagCfg.Workers, "workers", 1, "number of files solved concurrently")
	pf.StringVar(&flagCfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&flagCfg.LogFormat, "log-format", "text", "log format (text, json)")

	var check bool
	solveCmd := &cobra.Command{
		Use:   "solve FILE...",
		Short: "Solves each formula and prints a witness when it is feasible",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solveFiles(cmd, args, check)
		},
	}
	solveCmd.Flags().BoolVar(&check, "check", false, "check witnesses against the original constraints")

	explainCmd := &cobra.Command{
		Use:   "explain FILE",
		Short: "Prints a minimal infeasible subset of each alternative of an infeasible formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.explainFile(args[0])
		},
	}

	printCmd := &cobra.Command{
		Use:   "print FILE",
		Short: "Prints the alternatives of a formula, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printFile(args[0])
		},
	}

	root.AddCommand(solveCmd, explainCmd, printCmd)
	return root
}

func parseFile(path string) (alt.Formula, error) {
	f, err := os.Open(path)
	if err != nil {
		return alt.Formula{}, fmt.Errorf("could not open %q: %v", path, err)
	}
	defer f.Close()
	form, err := alt.Parse(f)
	if err != nil {
		return alt.Formula{}, fmt.Errorf("could not parse formula in %q: %v", path, err)
	}
	return form, nil
}

// solveFiles solves the given files concurrently and prints their results in order.
func (a *app) solveFiles(cmd *cobra.Command, paths []string, check bool) error {
	outputs := make([]bytes.Buffer, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(a.cfg.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return a.solveFile(&outputs[i], path, check)
		})
	}
	err := g.Wait()
	for i := range outputs {
		if _, werr := outputs[i].WriteTo(a.stdout); werr != nil {
			return fmt.Errorf("could not write output: %v", werr)
		}
	}
	return err
}

func (a *app) solveFile(w io.Writer, path string, check bool) error {
	fmt.Fprintf(w, "c solving %s\n", path)
	f, err := parseFile(path)
	if err != nil {
		return err
	}
	logger := a.logger.With(slog.String("file", path))
	res, err := f.Solve(a.cfg.solverOptions(logger))
	if err != nil && !errors.Is(err, solver.ErrResourceExhausted) {
		return fmt.Errorf("could not solve %q: %w", path, err)
	}
	if err != nil {
		fmt.Fprintf(w, "c %v\n", err)
	}
	if res.Status == solver.Sat {
		fmt.Fprintf(w, "c alternative %d/%d\n", res.Alternative+1, f.Len())
	}
	if err := res.Write(w); err != nil {
		return err
	}
	if check && res.Status == solver.Sat {
		violations, err := explain.Check(f.Alternatives()[res.Alternative], res.Model)
		if err != nil {
			return fmt.Errorf("could not check witness for %q: %v", path, err)
		}
		for _, v := range violations {
			fmt.Fprintf(w, "c unverified: %v\n", v)
		}
		if len(violations) == 0 {
			fmt.Fprintf(w, "c witness verified\n")
		}
	}
	return nil
}

func (a *app) explainFile(path string) error {
	f, err := parseFile(path)
	if err != nil {
		return err
	}
	opts := explain.Options{MaxInequalities: a.cfg.MaxInequalities, Logger: a.logger}
	cores, err := explain.Cores(f, opts)
	if errors.Is(err, explain.ErrFeasible) {
		fmt.Fprintf(a.stdout, "s SATISFIABLE\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not explain %q: %w", path, err)
	}
	fmt.Fprintf(a.stdout, "s UNSATISFIABLE\n")
	for i, core := range cores {
		fmt.Fprintf(a.stdout, "c alternative %d: %v\n", i+1, core)
	}
	return nil
}

func (a *app) printFile(path string) error {
	f, err := parseFile(path)
	if err != nil {
		return err
	}
	if params := f.Parameters(); len(params) != 0 {
		fmt.Fprintf(a.stdout, "param")
		for i, p := range params {
			sep := ","
			if i == 0 {
				sep = ""
			}
			fmt.Fprintf(a.stdout, "%s %s", sep, p)
		}
		fmt.Fprintf(a.stdout, ";\n")
	}
	if f.Len() == 0 {
		fmt.Fprintf(a.stdout, "false\n")
	}
	for _, sys := range f.Alternatives() {
		fmt.Fprintf(a.stdout, "%v\n", sys)
	}
	return nil
}
