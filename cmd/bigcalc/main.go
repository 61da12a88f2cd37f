package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/govalues/bigint/internal/config"
	"github.com/govalues/bigint/internal/history"
	"github.com/govalues/bigint/internal/render"
)

// app holds state shared by all subcommands.
type app struct {
	configPath string
	color      string
	logDebug   bool
	logTrace   bool

	cfg config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:           "bigcalc",
		Short:         "Arbitrary-precision integer calculator",
		Long:          `bigcalc evaluates integer expressions of any size with + - * / % ^ and !`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to "+config.FileName+" (default: search upward from the working directory)")
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().BoolVar(&a.logDebug, "debug", false, "set logging level to debug")
	rootCmd.PersistentFlags().BoolVar(&a.logTrace, "trace", false, "set logging level to trace")

	rootCmd.AddCommand(newEvalCmd(a))
	rootCmd.AddCommand(newReplCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, ".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.color != "" {
		cfg.Color = strings.ToLower(a.color)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(cfg.Level())
	if a.logDebug {
		a.log.SetLevel(logrus.DebugLevel)
	}
	if a.logTrace {
		a.log.SetLevel(logrus.TraceLevel)
	}
	a.log.WithFields(logrus.Fields{
		"config":   cfg.Path,
		"notation": cfg.Notation,
		"workers":  cfg.WorkerLimit(),
	}).Debug("configuration loaded")
	return nil
}

func (a *app) printer(cmd *cobra.Command) *render.Printer {
	return render.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), render.Options{
		Color: render.UseColor(a.cfg.Color, cmd.OutOrStdout()),
		Group: a.cfg.Group,
	})
}

// openHistory opens the configured history store.
// It returns nil without error when history is disabled.
func (a *app) openHistory() (*history.Store, error) {
	if a.cfg.History == "" {
		return nil, nil
	}
	return history.Open(a.cfg.History, a.log)
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
