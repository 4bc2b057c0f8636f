// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionRequest is the argument object sent to the remote convert tool.
// It is built once per invocation and never mutated afterwards.
//
// The first nine fields form the payload every TweekIT client sends. The
// crop box, NoRasterize and Alpha are optional tool arguments and are only
// serialized when they differ from the server defaults.
type ConversionRequest struct {
	APIKey    string `json:"apiKey" yaml:"-"`
	APISecret string `json:"apiSecret" yaml:"-"`

	// InputExtension is the source file extension without the dot (e.g. "pdf").
	InputExtension string `json:"inext" yaml:"inext"`

	// OutputFormat is the requested output format (e.g. "txt", "png").
	OutputFormat string `json:"outfmt" yaml:"outfmt"`

	// FileDataBase64 is the source document, standard base64 encoded.
	FileDataBase64 string `json:"blob" yaml:"-"`

	Width           int    `json:"width" yaml:"width"`
	Height          int    `json:"height" yaml:"height"`
	Page            int    `json:"page" yaml:"page"`
	BackgroundColor string `json:"bgcolor" yaml:"bgcolor"`

	X1          int   `json:"x1,omitempty" yaml:"x1,omitempty"`
	Y1          int   `json:"y1,omitempty" yaml:"y1,omitempty"`
	X2          int   `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y2          int   `json:"y2,omitempty" yaml:"y2,omitempty"`
	NoRasterize bool  `json:"noRasterize,omitempty" yaml:"no_rasterize,omitempty"`
	Alpha       *bool `json:"alpha,omitempty" yaml:"alpha,omitempty"`
}

// URLConversionRequest is the argument object for the convert_url tool,
// which downloads the source document server-side before converting it.
type URLConversionRequest struct {
	APIKey    string `json:"apiKey" yaml:"-"`
	APISecret string `json:"apiSecret" yaml:"-"`

	URL          string `json:"url" yaml:"url"`
	OutputFormat string `json:"outfmt" yaml:"outfmt"`

	// InputExtension overrides the extension the server would infer from
	// the URL path or the response content type.
	InputExtension string `json:"inext,omitempty" yaml:"inext,omitempty"`

	Width           int    `json:"width" yaml:"width"`
	Height          int    `json:"height" yaml:"height"`
	Page            int    `json:"page" yaml:"page"`
	BackgroundColor string `json:"bgcolor" yaml:"bgcolor"`
}

// DoctypeRequest is the argument object for the doctype tool.
type DoctypeRequest struct {
	APIKey    string `json:"apiKey" yaml:"-"`
	APISecret string `json:"apiSecret" yaml:"-"`

	// Extension is the file extension to look up, or "*" for every
	// supported input format.
	Extension string `json:"extension" yaml:"extension"`
}

// Remote tool names exposed by the TweekIT MCP server.
const (
	ToolConvert    = "convert"
	ToolConvertURL = "convert_url"
	ToolDoctype    = "doctype"
)

// AllDoctypes is the doctype extension that lists every supported input.
const AllDoctypes = "*"
