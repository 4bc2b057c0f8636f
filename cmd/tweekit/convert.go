// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/equilibrium-team/tweekit-go/internal/convert"
	"github.com/equilibrium-team/tweekit-go/internal/options"
	"github.com/equilibrium-team/tweekit-go/internal/payload"
)

func newConvertCmd(a *app) *cobra.Command {
	opts := options.Default()
	cmd := &cobra.Command{
		Use:   "convert --file <path> --outfmt <format>",
		Short: "Convert a local file with the remote convert tool",
		Long: `Convert reads a local file, base64-encodes it and sends it to the TweekIT
convert tool together with the requested output format. The input
extension is taken from the file name ("bin" when it has none).

The tools exposed by the server are listed first as a diagnostic. The
result is printed as "Conversion result: ..." on success; a failure
reported by the server is printed as "Conversion failed: ..." and the
command exits with status 1.`,
		Example: `  tweekit convert --file report.docx --outfmt pdf
  tweekit convert --file photo.png --outfmt jpg --width 800 --save out/photo.jpg
  tweekit convert --file scan.pdf --outfmt png --page 2 --save s3://media/scan-p2.png`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConvert(cmd, &opts)
		},
	}
	opts.BindFlags(cmd.Flags())
	return cmd
}

// runConvert is the quickstart flow shared by convert and the bare root
// command: validate, resolve credentials, read the file, then connect.
func (a *app) runConvert(cmd *cobra.Command, opts *options.Options) error {
	if err := opts.Complete(cmd.Flags()); err != nil {
		return err
	}
	creds, err := a.credentials()
	if err != nil {
		return err
	}
	req, err := payload.NewConversionRequest(*opts, creds)
	if err != nil {
		return err
	}
	return a.withRunner(cmd.Context(), creds, func(ctx context.Context, r *convert.Runner) error {
		return r.Quickstart(ctx, req, opts.File, opts.Save)
	})
}
