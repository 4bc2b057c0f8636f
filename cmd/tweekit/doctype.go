// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/equilibrium-team/tweekit-go/internal/convert"
	"github.com/equilibrium-team/tweekit-go/internal/options"
	"github.com/equilibrium-team/tweekit-go/internal/payload"
)

func newDoctypeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctype [extension]",
		Short: "Show the document type for an extension, or list supported inputs",
		Long: `Doctype calls the TweekIT doctype tool. With an extension (e.g. "pdf") it
reports the document type the server assigns to it; without one it lists
every supported input format.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w: doctype takes at most one extension, got %d", options.ErrInvalidArguments, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := ""
			if len(args) == 1 {
				ext = args[0]
			}
			creds, err := a.credentials()
			if err != nil {
				return err
			}
			req := payload.NewDoctypeRequest(ext, creds)
			return a.withRunner(cmd.Context(), creds, func(ctx context.Context, r *convert.Runner) error {
				return r.Doctype(ctx, req)
			})
		},
	}
}
