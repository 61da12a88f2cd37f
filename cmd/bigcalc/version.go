package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is the bigcalc release. It can be overridden at build time via -ldflags.
var Version = "0.1.0-dev"

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Module    string `json:"module,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show bigcalc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := versionPayload{
				Tool:      "bigcalc",
				Version:   Version,
				GoVersion: runtime.Version(),
			}
			if info, ok := debug.ReadBuildInfo(); ok {
				payload.Module = info.Main.Path
			}
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			case "pretty":
				name := color.New(color.FgCyan, color.Bold)
				ver := color.New(color.FgYellow, color.Bold)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", name.Sprint(payload.Tool), ver.Sprint(payload.Version), payload.GoVersion)
				return nil
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
