package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/govalues/bigint/internal/config"
	"github.com/govalues/bigint/internal/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage evaluation history",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "history database (default from config)")

	open := func() (*history.Store, error) {
		if dbPath != "" {
			a.cfg.History = dbPath
		}
		store, err := a.openHistory()
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, fmt.Errorf("history is disabled: set history in %s, %sHISTORY or --db", config.FileName, config.EnvPrefix)
		}
		return store, nil
	}

	var limit, width int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent evaluations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()
			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			a.printer(cmd).History(records, width)
			return nil
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of records to show (0 for all)")
	listCmd.Flags().IntVar(&width, "width", 40, "maximum expression width")

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write history as MessagePack",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating export: %w", err)
				}
				defer f.Close()
				w = f
			}
			n, err := store.Export(cmd.Context(), w)
			if err != nil {
				return err
			}
			a.log.WithField("records", n).Info("history exported")
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Append records from a MessagePack export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening export: %w", err)
				}
				defer f.Close()
				r = f
			}
			n, err := store.Import(cmd.Context(), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records\n", n)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()
			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records\n", n)
			return nil
		},
	}

	cmd.AddCommand(listCmd, exportCmd, importCmd, clearCmd)
	return cmd
}
