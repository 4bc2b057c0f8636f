// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/equilibrium-team/tweekit-go/internal/convert"
	"github.com/equilibrium-team/tweekit-go/internal/options"
	"github.com/equilibrium-team/tweekit-go/internal/payload"
)

func newConvertURLCmd(a *app) *cobra.Command {
	opts := options.Default()
	cmd := &cobra.Command{
		Use:   "convert-url --url <url> --outfmt <format>",
		Short: "Convert a document the server downloads from a URL",
		Long: `Convert-url asks the TweekIT convert_url tool to download a document from
a direct URL and convert it. Nothing is read locally. Use --inext when the
server cannot infer the input format from the URL or its content type.`,
		Example: `  tweekit convert-url --url https://example.com/brochure.pdf --outfmt png --page 1`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.ValidateURL(); err != nil {
				return err
			}
			creds, err := a.credentials()
			if err != nil {
				return err
			}
			req := payload.NewURLConversionRequest(opts, creds)
			return a.withRunner(cmd.Context(), creds, func(ctx context.Context, r *convert.Runner) error {
				return r.ConvertURL(ctx, req, opts.Save)
			})
		},
	}
	opts.BindURLFlags(cmd.Flags())
	return cmd
}
