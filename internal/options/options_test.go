// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package options

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "required flags with defaults",
			args: []string{"--file", "a.pdf", "--outfmt", "txt"},
			want: Options{File: "a.pdf", OutFmt: "txt", Page: 1, Alpha: true},
		},
		{
			name: "all quickstart flags",
			args: []string{
				"--file", "photo.png", "--outfmt", "jpg",
				"--width", "640", "--height", "480", "--page", "3", "--bgcolor", "#FFFFFF",
			},
			want: Options{
				File: "photo.png", OutFmt: "jpg", Width: 640, Height: 480,
				Page: 3, BgColor: "#FFFFFF", Alpha: true,
			},
		},
		{
			name: "last value wins for duplicates",
			args: []string{"--file", "a.pdf", "--outfmt", "txt", "--outfmt", "png", "--page", "2", "--page", "5"},
			want: Options{File: "a.pdf", OutFmt: "png", Page: 5, Alpha: true},
		},
		{
			name: "flag order does not matter",
			args: []string{"--outfmt", "txt", "--width", "10", "--file", "b.docx"},
			want: Options{File: "b.docx", OutFmt: "txt", Width: 10, Page: 1, Alpha: true},
		},
		{
			name: "explicit alpha is recorded",
			args: []string{"--file", "a.png", "--outfmt", "jpg", "--alpha=false"},
			want: Options{File: "a.png", OutFmt: "jpg", Page: 1, Alpha: false, AlphaSet: true},
		},
		{
			name: "alpha takes a following value",
			args: []string{"--file", "a.png", "--outfmt", "png", "--alpha", "false"},
			want: Options{File: "a.png", OutFmt: "png", Page: 1, Alpha: false, AlphaSet: true},
		},
		{
			name: "explicit alpha true",
			args: []string{"--alpha", "true", "--file", "a.png", "--outfmt", "png"},
			want: Options{File: "a.png", OutFmt: "png", Page: 1, Alpha: true, AlphaSet: true},
		},
		{
			name: "no-rasterize takes a following value",
			args: []string{"--file", "a.pdf", "--outfmt", "png", "--no-rasterize", "false", "--no-rasterize", "1"},
			want: Options{File: "a.pdf", OutFmt: "png", Page: 1, Alpha: true, NoRasterize: true},
		},
		{
			name: "crop and save flags",
			args: []string{"--file", "a.png", "--outfmt", "png", "--x1", "1", "--y1", "2", "--x2", "30", "--y2", "40", "--no-rasterize", "true", "--save", "out.png"},
			want: Options{
				File: "a.png", OutFmt: "png", Page: 1, Alpha: true,
				X1: 1, Y1: 2, X2: 30, Y2: 40, NoRasterize: true, Save: "out.png",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{
			name:   "trailing flag without value",
			args:   []string{"--file", "a.pdf", "--outfmt"},
			errMsg: "outfmt",
		},
		{
			name:   "missing file",
			args:   []string{"--outfmt", "txt"},
			errMsg: "--file is required",
		},
		{
			name:   "missing outfmt",
			args:   []string{"--file", "a.pdf"},
			errMsg: "--outfmt is required",
		},
		{
			name:   "no arguments",
			args:   nil,
			errMsg: "--file is required",
		},
		{
			name:   "positional argument",
			args:   []string{"a.pdf", "--outfmt", "txt"},
			errMsg: "unexpected argument",
		},
		{
			name:   "unknown flag",
			args:   []string{"--file", "a.pdf", "--outfmt", "txt", "--colour", "red"},
			errMsg: "colour",
		},
		{
			name:   "non-integer width",
			args:   []string{"--file", "a.pdf", "--outfmt", "txt", "--width", "wide"},
			errMsg: "width",
		},
		{
			name:   "bool flag without value",
			args:   []string{"--file", "a.pdf", "--outfmt", "txt", "--alpha"},
			errMsg: "alpha",
		},
		{
			name:   "bool flag with non-bool value",
			args:   []string{"--file", "a.pdf", "--outfmt", "txt", "--no-rasterize", "maybe"},
			errMsg: "no-rasterize",
		},
		{
			name:   "negative height",
			args:   []string{"--file", "a.pdf", "--outfmt", "txt", "--height", "-5"},
			errMsg: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArguments)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateURL(t *testing.T) {
	o := Default()
	err := o.ValidateURL()
	assert.ErrorIs(t, err, ErrInvalidArguments)
	assert.Contains(t, err.Error(), "--url is required")

	o.URL = "https://example.com/a.pdf"
	err = o.ValidateURL()
	assert.ErrorIs(t, err, ErrInvalidArguments)
	assert.Contains(t, err.Error(), "--outfmt is required")

	o.OutFmt = "txt"
	assert.NoError(t, o.ValidateURL())
}

func TestBindURLFlags(t *testing.T) {
	o := Default()
	fs := pflag.NewFlagSet("convert-url", pflag.ContinueOnError)
	o.BindURLFlags(fs)

	require.NoError(t, fs.Parse([]string{"--url", "https://example.com/doc", "--inext", "pdf", "--outfmt", "txt"}))
	assert.Equal(t, "https://example.com/doc", o.URL)
	assert.Equal(t, "pdf", o.InExt)
	assert.Nil(t, fs.Lookup("file"), "convert-url must not accept --file")
}

func TestWrapFlagError(t *testing.T) {
	assert.NoError(t, WrapFlagError(nil))

	once := WrapFlagError(assert.AnError)
	assert.ErrorIs(t, once, ErrInvalidArguments)
	assert.Contains(t, once.Error(), assert.AnError.Error())

	twice := WrapFlagError(once)
	assert.Equal(t, once, twice)
}
