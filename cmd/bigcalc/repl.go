package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/govalues/bigint/internal/calc"
	"github.com/govalues/bigint/internal/repl"
)

func newReplCmd(a *app) *cobra.Command {
	var notation string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if notation == "" {
				notation = a.cfg.Notation
			}
			eval, err := calc.NewEvaluator(strings.ToLower(notation), a.log)
			if err != nil {
				return err
			}
			opts := repl.Options{Group: a.cfg.Group, Log: a.log}
			store, err := a.openHistory()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				opts.Recorder = store
			}
			return repl.Run(cmd.Context(), eval, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&notation, "notation", "", "expression notation ("+strings.Join(notations, "|")+")")
	return cmd
}
