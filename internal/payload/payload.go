// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package payload loads source documents and builds the argument objects
// for the remote TweekIT tools. Files are read fully into memory; the
// service targets documents small enough for that.
package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/equilibrium-team/tweekit-go/internal/options"
	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

// defaultExtension is sent when the source file has no extension.
const defaultExtension = "bin"

var (
	// ErrFileNotFound is returned (wrapped) when the source file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrIO is returned (wrapped) for any other failure reading the source file.
	ErrIO = errors.New("i/o error")
)

// EncodeFile reads the file at path and returns its contents as standard
// base64 text.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}
		return "", fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// InputExtension returns the extension of path without the leading dot, or
// "bin" when the path has none. A dotfile such as ".profile" has no extension.
func InputExtension(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return defaultExtension
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return defaultExtension
	}
	return ext
}

// NewConversionRequest reads opts.File and builds the convert tool payload.
func NewConversionRequest(opts options.Options, creds types.Credentials) (types.ConversionRequest, error) {
	blob, err := EncodeFile(opts.File)
	if err != nil {
		return types.ConversionRequest{}, err
	}

	req := types.ConversionRequest{
		APIKey:          creds.APIKey,
		APISecret:       creds.APISecret,
		InputExtension:  InputExtension(opts.File),
		OutputFormat:    opts.OutFmt,
		FileDataBase64:  blob,
		Width:           opts.Width,
		Height:          opts.Height,
		Page:            opts.Page,
		BackgroundColor: opts.BgColor,
		X1:              opts.X1,
		Y1:              opts.Y1,
		X2:              opts.X2,
		Y2:              opts.Y2,
		NoRasterize:     opts.NoRasterize,
	}
	if opts.AlphaSet {
		alpha := opts.Alpha
		req.Alpha = &alpha
	}
	return req, nil
}

// NewURLConversionRequest builds the convert_url tool payload. Nothing is
// read locally; the server downloads opts.URL itself.
func NewURLConversionRequest(opts options.Options, creds types.Credentials) types.URLConversionRequest {
	return types.URLConversionRequest{
		APIKey:          creds.APIKey,
		APISecret:       creds.APISecret,
		URL:             opts.URL,
		OutputFormat:    opts.OutFmt,
		InputExtension:  strings.TrimPrefix(opts.InExt, "."),
		Width:           opts.Width,
		Height:          opts.Height,
		Page:            opts.Page,
		BackgroundColor: opts.BgColor,
	}
}

// NewDoctypeRequest builds the doctype tool payload. An empty extension
// asks for every supported input format.
func NewDoctypeRequest(ext string, creds types.Credentials) types.DoctypeRequest {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = types.AllDoctypes
	}
	return types.DoctypeRequest{
		APIKey:    creds.APIKey,
		APISecret: creds.APISecret,
		Extension: ext,
	}
}

// DecodedSize returns the number of bytes a base64 blob decodes to.
func DecodedSize(blob string) int {
	return base64.StdEncoding.DecodedLen(len(blob)) - strings.Count(blob[max(0, len(blob)-2):], "=")
}
