package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/govalues/bigint"
	"github.com/govalues/bigint/internal/batch"
	"github.com/govalues/bigint/internal/calc"
	"github.com/govalues/bigint/internal/config"
	"github.com/govalues/bigint/internal/history"
)

var notations = []string{config.NotationInfix, config.NotationPostfix}

type evalOptions struct {
	file     string
	notation string
	workers  int
}

func newEvalCmd(a *app) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval [flags] [expression...]",
		Short: "Evaluate expressions",
		Long: `Eval evaluates each argument as one expression.
Without arguments, expressions are read one per line from --file or stdin.
Blank lines and lines starting with '#' are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, a, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read expressions from file ('-' for stdin)")
	cmd.Flags().StringVar(&opts.notation, "notation", "", "expression notation ("+strings.Join(notations, "|")+")")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "number of parallel workers (default from config)")
	return cmd
}

func runEval(cmd *cobra.Command, a *app, opts *evalOptions, args []string) error {
	notation := a.cfg.Notation
	if opts.notation != "" {
		notation = strings.ToLower(opts.notation)
	}
	eval, err := calc.NewEvaluator(notation, a.log)
	if err != nil {
		return err
	}

	var jobs []batch.Job
	switch {
	case len(args) > 0 && opts.file != "":
		return fmt.Errorf("expressions and --file are mutually exclusive")
	case len(args) > 0:
		jobs = batch.FromArgs(args)
	case opts.file != "" && opts.file != "-":
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("opening expressions: %w", err)
		}
		defer f.Close()
		if jobs, err = batch.Read(f); err != nil {
			return fmt.Errorf("%s: %w", opts.file, err)
		}
	default:
		if jobs, err = batch.Read(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no expressions to evaluate")
	}

	workers := a.cfg.WorkerLimit()
	if opts.workers > 0 {
		workers = opts.workers
	}
	results, err := batch.NewRunner(eval, workers, a.log).Run(cmd.Context(), jobs)
	if err != nil {
		return err
	}
	a.printer(cmd).Results(results)

	if err := a.record(cmd, results); err != nil {
		a.log.WithError(err).Warn("failed to record history")
	}

	ok, failed := batch.Summary(results)
	a.log.WithFields(logrus.Fields{"ok": ok, "failed": failed, "notation": notation}).Debug("evaluation finished")
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(results))
	}
	return nil
}

func (a *app) record(cmd *cobra.Command, results []batch.Result) error {
	store, err := a.openHistory()
	if err != nil || store == nil {
		return err
	}
	defer store.Close()
	for _, res := range results {
		rec := history.Record{Expr: res.Expr}
		if res.Failed() {
			rec.Error = res.Err.Error()
		} else {
			rec.Result = bigint.NullBigInteger{BigInteger: res.Value, Valid: true}
		}
		if _, err := store.Add(cmd.Context(), rec); err != nil {
			return err
		}
	}
	return nil
}
