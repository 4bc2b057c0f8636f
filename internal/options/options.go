// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package options parses the conversion flags shared by the convert and
// convert-url commands. Flags are flat --key value pairs; the last value of
// a repeated flag wins.
package options

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"
)

// ErrInvalidArguments is returned (wrapped) for any malformed or incomplete
// argument list.
var ErrInvalidArguments = errors.New("invalid arguments")

const defaultPage = 1

// Options is the structured form of the conversion flags.
type Options struct {
	File    string
	OutFmt  string
	Width   int
	Height  int
	Page    int
	BgColor string

	// Crop box in source pixels; all zero means no crop.
	X1, Y1, X2, Y2 int

	// NoRasterize asks the server to skip rasterization when possible.
	NoRasterize bool

	// Alpha controls alpha preservation for raster output. It is only
	// forwarded when the flag was given explicitly.
	Alpha    bool
	AlphaSet bool

	// Save is an optional destination for the converted output: a local
	// path or an s3://bucket/key URL.
	Save string

	// URL and InExt are used by convert-url instead of File.
	URL   string
	InExt string
}

// Default returns Options with the documented defaults: page 1, alpha on,
// everything else zero.
func Default() Options {
	return Options{Page: defaultPage, Alpha: true}
}

// BindFlags registers the file-based conversion flags on fs, writing into o.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.File, "file", o.File, "path to the document to convert (required)")
	o.bindCommon(fs)
}

// BindURLFlags registers the URL-based conversion flags on fs, writing into o.
func (o *Options) BindURLFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.URL, "url", o.URL, "direct download URL of the source document (required)")
	fs.StringVar(&o.InExt, "inext", o.InExt, "override the detected input extension (e.g. pdf)")
	o.bindCommon(fs)
}

func (o *Options) bindCommon(fs *pflag.FlagSet) {
	fs.StringVar(&o.OutFmt, "outfmt", o.OutFmt, "desired output format, e.g. txt, pdf, png (required)")
	fs.IntVar(&o.Width, "width", o.Width, "optional width for image resizing")
	fs.IntVar(&o.Height, "height", o.Height, "optional height for image resizing")
	fs.IntVar(&o.Page, "page", o.Page, "page to convert for multi-page documents")
	fs.StringVar(&o.BgColor, "bgcolor", o.BgColor, "background color for transparent images (hex RGB)")
	fs.IntVar(&o.X1, "x1", o.X1, "left crop coordinate in source pixels")
	fs.IntVar(&o.Y1, "y1", o.Y1, "top crop coordinate in source pixels")
	fs.IntVar(&o.X2, "x2", o.X2, "right crop coordinate in source pixels")
	fs.IntVar(&o.Y2, "y2", o.Y2, "bottom crop coordinate in source pixels")
	fs.Var((*boolValue)(&o.NoRasterize), "no-rasterize", "ask the server to skip rasterization when supported")
	fs.Var((*boolValue)(&o.Alpha), "alpha", "preserve alpha transparency in raster output")
	fs.StringVar(&o.Save, "save", o.Save, "write the converted output to a path or s3://bucket/key")
}

// MarkSet records which optional flags were given explicitly. Call it after
// fs has been parsed.
func (o *Options) MarkSet(fs *pflag.FlagSet) {
	o.AlphaSet = fs.Changed("alpha")
}

// Complete finishes a parsed file-based flag set: it records explicitly set
// flags and validates the result.
func (o *Options) Complete(fs *pflag.FlagSet) error {
	o.MarkSet(fs)
	return o.Validate()
}

// boolValue is a boolean flag that takes its value as the next argument
// (--alpha false) like every other flag, instead of pflag's bare --flag form.
type boolValue bool

func (b *boolValue) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*b = boolValue(v)
	return nil
}

func (b *boolValue) String() string { return strconv.FormatBool(bool(*b)) }

func (b *boolValue) Type() string { return "true|false" }

// Validate reports a missing --file or --outfmt.
func (o Options) Validate() error {
	if o.File == "" {
		return fmt.Errorf("%w: --file is required", ErrInvalidArguments)
	}
	return o.validateCommon()
}

// ValidateURL reports a missing --url or --outfmt.
func (o Options) ValidateURL() error {
	if o.URL == "" {
		return fmt.Errorf("%w: --url is required", ErrInvalidArguments)
	}
	return o.validateCommon()
}

func (o Options) validateCommon() error {
	if o.OutFmt == "" {
		return fmt.Errorf("%w: --outfmt is required", ErrInvalidArguments)
	}
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("%w: --width and --height must not be negative", ErrInvalidArguments)
	}
	return nil
}

// Parse converts a flat --key value argument list into Options and
// validates it. Every failure matches ErrInvalidArguments. It is the
// standalone form of the convert flags; the cobra commands bind the same
// flags with BindFlags and finish with Complete.
func Parse(args []string) (Options, error) {
	o := Default()
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o.BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Options{}, WrapFlagError(err)
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("%w: unexpected argument %q; use --flag value pairs", ErrInvalidArguments, fs.Arg(0))
	}
	if err := o.Complete(fs); err != nil {
		return Options{}, err
	}
	return o, nil
}

// WrapFlagError tags a flag parsing error as ErrInvalidArguments. It is
// also installed as the cobra flag error handler.
func WrapFlagError(err error) error {
	if err == nil || errors.Is(err, ErrInvalidArguments) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
}
