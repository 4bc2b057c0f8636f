// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/equilibrium-team/tweekit-go/internal/history"
	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent tool calls recorded with --history",
		Long: `History lists the most recent remote tool calls, newest first. Calls are
only recorded when history is enabled with --history, the history.enabled
config key or TWEEKIT_HISTORY_ENABLED.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := history.Open(a.cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			p := a.printer()
			if asJSON {
				p.Format = types.OutputJSON
			}
			if entries == nil {
				entries = []types.HistoryEntry{}
			}
			if ok, err := p.Encode(entries); ok {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.stdout, "No history recorded.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(a.stdout, "%s  %-11s %-6s %s -> %s  %s",
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Tool, e.Status,
					e.Input, orDash(e.OutFmt), e.Duration)
				if e.Error != "" {
					fmt.Fprintf(a.stdout, "  %s", e.Error)
				}
				fmt.Fprintln(a.stdout)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output entries as JSON")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
