// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/equilibrium-team/tweekit-go/internal/mcpclient"
	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

// ErrRemoteOperation is returned (wrapped) when the remote tool reports a
// failure. The message has already been printed to the error stream.
var ErrRemoteOperation = errors.New("remote operation failed")

// OutputKind names which part of a result was printed.
type OutputKind string

const (
	KindData       OutputKind = "data"
	KindStructured OutputKind = "structuredContent"
	KindContent    OutputKind = "content"
	KindNone       OutputKind = "none"
)

// Printer writes tool results. Results go to Out, failures and
// diagnostics to Err.
type Printer struct {
	Out    io.Writer
	Err    io.Writer
	Format types.OutputFormat
}

// blockView is the serialized form of a content block; raw bytes are
// reported by size only.
type blockView struct {
	Type     mcpclient.BlockType `json:"type" yaml:"type"`
	Text     string              `json:"text,omitempty" yaml:"text,omitempty"`
	MIMEType string              `json:"mimeType,omitempty" yaml:"mime_type,omitempty"`
	URI      string              `json:"uri,omitempty" yaml:"uri,omitempty"`
	Size     int                 `json:"size,omitempty" yaml:"size,omitempty"`
}

// SelectOutput picks exactly one of data, structured content and content,
// in that order of preference.
func SelectOutput(res *mcpclient.Result) (any, OutputKind) {
	switch {
	case res.Data != nil:
		return res.Data, KindData
	case res.StructuredContent != nil:
		return res.StructuredContent, KindStructured
	case len(res.Content) > 0:
		return res.Content, KindContent
	default:
		return nil, KindNone
	}
}

// Tools prints the diagnostic tool listing. In text mode it goes to Out;
// in machine-readable modes it goes to Err so Out stays parseable.
func (p *Printer) Tools(tools []mcpclient.Tool) {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	w := p.Out
	if p.format() != types.OutputText {
		w = p.Err
	}
	fmt.Fprintf(w, "Tools available: %v\n", names)
}

// Result prints res under label (e.g. "Conversion"). A failed result is
// printed to Err as "<label> failed: <message>" and yields an error
// matching ErrRemoteOperation.
func (p *Printer) Result(label string, res *mcpclient.Result) (OutputKind, error) {
	if msg, failed := res.Failure(); failed {
		fmt.Fprintf(p.Err, "%s failed: %s\n", label, msg)
		return KindNone, fmt.Errorf("%w: %s: %s", ErrRemoteOperation, strings.ToLower(label), msg)
	}

	value, kind := SelectOutput(res)
	if ok, err := p.Encode(serializable(value)); ok {
		return kind, err
	}
	_, err := fmt.Fprintf(p.Out, "%s result: %s\n", label, renderText(value))
	return kind, err
}

// Encode writes v to Out as JSON or YAML according to Format. It returns
// false in text mode and leaves the rendering to the caller.
func (p *Printer) Encode(v any) (bool, error) {
	switch p.format() {
	case types.OutputJSON:
		enc := json.NewEncoder(p.Out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case types.OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("marshaling result: %w", err)
		}
		_, err = p.Out.Write(data)
		return true, err
	default:
		return false, nil
	}
}

func (p *Printer) format() types.OutputFormat {
	if p.Format == "" {
		return types.OutputText
	}
	return p.Format
}

func serializable(v any) any {
	blocks, ok := v.([]mcpclient.Block)
	if !ok {
		return v
	}
	views := make([]blockView, len(blocks))
	for i, b := range blocks {
		views[i] = blockView{Type: b.Type, MIMEType: b.MIMEType, URI: b.URI, Size: len(b.Data)}
		if !b.Binary() {
			views[i].Text = b.Text
		}
	}
	return views
}

func renderText(v any) string {
	switch val := v.(type) {
	case nil:
		return "<empty>"
	case string:
		return val
	case []mcpclient.Block:
		parts := make([]string, len(val))
		for i, b := range val {
			parts[i] = b.String()
		}
		return strings.Join(parts, "\n")
	default:
		data, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
