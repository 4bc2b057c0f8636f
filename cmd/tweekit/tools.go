// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/equilibrium-team/tweekit-go/internal/mcpclient"
)

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools exposed by the MCP server",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := a.credentials()
			if err != nil {
				return err
			}
			return a.withSession(cmd.Context(), creds, func(ctx context.Context, s *mcpclient.Session) error {
				tools, err := s.ListTools(ctx)
				if err != nil {
					return err
				}
				if ok, err := a.printer().Encode(tools); ok {
					return err
				}
				for _, t := range tools {
					if t.Description == "" {
						fmt.Fprintln(a.stdout, t.Name)
						continue
					}
					fmt.Fprintf(a.stdout, "%s\t%s\n", t.Name, t.Description)
				}
				return nil
			})
		},
	}
}
