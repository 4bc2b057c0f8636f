// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpclient

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BlockType identifies the kind of a content block.
type BlockType string

const (
	BlockText     BlockType = "text"
	BlockImage    BlockType = "image"
	BlockAudio    BlockType = "audio"
	BlockResource BlockType = "resource"
	BlockLink     BlockType = "resource_link"
)

// Block is one item of unstructured tool output.
type Block struct {
	Type     BlockType `json:"type" yaml:"type"`
	Text     string    `json:"text,omitempty" yaml:"text,omitempty"`
	MIMEType string    `json:"mimeType,omitempty" yaml:"mime_type,omitempty"`
	URI      string    `json:"uri,omitempty" yaml:"uri,omitempty"`
	Data     []byte    `json:"-" yaml:"-"`
}

// Binary reports whether the block carries raw bytes rather than text.
func (b Block) Binary() bool {
	return len(b.Data) > 0
}

// Bytes returns the block payload: the raw bytes for binary blocks, the
// text otherwise.
func (b Block) Bytes() []byte {
	if b.Binary() {
		return b.Data
	}
	return []byte(b.Text)
}

// String renders the block for humans. Binary payloads are summarized.
func (b Block) String() string {
	switch {
	case b.Binary():
		return fmt.Sprintf("<%s, %d bytes>", b.mime(), len(b.Data))
	case b.Type == BlockLink:
		return fmt.Sprintf("<link %s>", b.URI)
	default:
		return b.Text
	}
}

func (b Block) mime() string {
	if b.MIMEType != "" {
		return b.MIMEType
	}
	return "application/octet-stream"
}

// Result is the outcome of a tool call.
type Result struct {
	// IsError is set when the server flagged the call as failed.
	IsError bool

	// Data is the structured content with a lone {"result": x} wrapper
	// removed. It is nil when the tool returned no structured content.
	Data any

	// StructuredContent is the structured content exactly as received.
	StructuredContent any

	// Content is the unstructured output, in server order.
	Content []Block
}

func newResult(res *mcp.CallToolResult) *Result {
	r := &Result{
		IsError:           res.IsError,
		StructuredContent: res.StructuredContent,
		Data:              unwrapResult(res.StructuredContent),
	}
	for _, c := range res.Content {
		if b, ok := toBlock(c); ok {
			r.Content = append(r.Content, b)
		}
	}
	return r
}

// unwrapResult strips the {"result": x} envelope servers use to return
// non-object values as structured content.
func unwrapResult(sc any) any {
	m, ok := sc.(map[string]any)
	if !ok {
		return sc
	}
	if v, ok := m["result"]; ok && len(m) == 1 {
		return v
	}
	return sc
}

func toBlock(c mcp.Content) (Block, bool) {
	switch v := c.(type) {
	case *mcp.TextContent:
		return Block{Type: BlockText, Text: v.Text}, true
	case *mcp.ImageContent:
		return Block{Type: BlockImage, MIMEType: v.MIMEType, Data: v.Data}, true
	case *mcp.AudioContent:
		return Block{Type: BlockAudio, MIMEType: v.MIMEType, Data: v.Data}, true
	case *mcp.EmbeddedResource:
		if v.Resource == nil {
			return Block{}, false
		}
		return Block{
			Type:     BlockResource,
			URI:      v.Resource.URI,
			MIMEType: v.Resource.MIMEType,
			Text:     v.Resource.Text,
			Data:     v.Resource.Blob,
		}, true
	case *mcp.ResourceLink:
		return Block{Type: BlockLink, URI: v.URI, MIMEType: v.MIMEType, Text: v.Name}, true
	default:
		return Block{}, false
	}
}

// Failure reports whether the call failed and why. Besides the IsError
// flag, a structured payload with a non-empty top-level "error" string
// counts as a failure: the TweekIT server reports upstream HTTP errors that
// way without setting IsError.
func (r *Result) Failure() (string, bool) {
	if r.IsError {
		if msg := r.Text(); msg != "" {
			return msg, true
		}
		if msg, ok := structuredError(r.StructuredContent); ok {
			return msg, true
		}
		return "remote tool reported an error", true
	}
	return structuredError(r.StructuredContent)
}

func structuredError(sc any) (string, bool) {
	m, ok := sc.(map[string]any)
	if !ok {
		return "", false
	}
	msg, _ := m["error"].(string)
	if msg == "" {
		return "", false
	}
	if details, _ := m["details"].(string); details != "" {
		msg += ": " + details
	}
	return msg, true
}

// Text joins the text of all text blocks.
func (r *Result) Text() string {
	var parts []string
	for _, b := range r.Content {
		if b.Type == BlockText && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Primary returns the first binary block, or the first block of any kind
// when none is binary.
func (r *Result) Primary() (Block, bool) {
	for _, b := range r.Content {
		if b.Binary() {
			return b, true
		}
	}
	if len(r.Content) > 0 {
		return r.Content[0], true
	}
	return Block{}, false
}
