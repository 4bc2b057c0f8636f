// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpclient

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResult(t *testing.T) {
	res := newResult(&mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "hello"},
			&mcp.ImageContent{MIMEType: "image/png", Data: []byte{1, 2, 3}},
			&mcp.AudioContent{MIMEType: "audio/wav", Data: []byte{4}},
			&mcp.EmbeddedResource{Resource: &mcp.ResourceContents{URI: "file:///out.pdf", MIMEType: "application/pdf", Blob: []byte("%PDF")}},
			&mcp.EmbeddedResource{},
			&mcp.ResourceLink{URI: "https://example.com/out.txt", Name: "out.txt"},
		},
	})

	require.Len(t, res.Content, 5)
	assert.Equal(t, Block{Type: BlockText, Text: "hello"}, res.Content[0])
	assert.Equal(t, BlockImage, res.Content[1].Type)
	assert.Equal(t, BlockAudio, res.Content[2].Type)
	assert.Equal(t, Block{Type: BlockResource, URI: "file:///out.pdf", MIMEType: "application/pdf", Data: []byte("%PDF")}, res.Content[3])
	assert.Equal(t, BlockLink, res.Content[4].Type)
	assert.Nil(t, res.Data)
	assert.Nil(t, res.StructuredContent)
}

func TestUnwrapResult(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "wrapped list", in: map[string]any{"result": []any{"pdf", "png"}}, want: []any{"pdf", "png"}},
		{name: "wrapped scalar", in: map[string]any{"result": "ok"}, want: "ok"},
		{name: "plain object", in: map[string]any{"status": "ok"}, want: map[string]any{"status": "ok"}},
		{name: "result among other keys", in: map[string]any{"result": 1, "extra": 2}, want: map[string]any{"result": 1, "extra": 2}},
		{name: "non-object", in: []any{1, 2}, want: []any{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unwrapResult(tt.in))
		})
	}
}

func TestFailure(t *testing.T) {
	tests := []struct {
		name   string
		res    Result
		want   string
		failed bool
	}{
		{
			name: "success",
			res:  Result{Content: []Block{{Type: BlockText, Text: "done"}}},
		},
		{
			name:   "error flag with text",
			res:    Result{IsError: true, Content: []Block{{Type: BlockText, Text: "bad input"}, {Type: BlockText, Text: "try pdf"}}},
			want:   "bad input\ntry pdf",
			failed: true,
		},
		{
			name:   "error flag without content",
			res:    Result{IsError: true},
			want:   "remote tool reported an error",
			failed: true,
		},
		{
			name:   "error flag with structured error",
			res:    Result{IsError: true, StructuredContent: map[string]any{"error": "quota exceeded"}},
			want:   "quota exceeded",
			failed: true,
		},
		{
			name:   "structured error payload without flag",
			res:    Result{StructuredContent: map[string]any{"error": "HTTP 415 from TweekIT", "details": "unsupported format"}},
			want:   "HTTP 415 from TweekIT: unsupported format",
			failed: true,
		},
		{
			name: "empty structured error is not a failure",
			res:  Result{StructuredContent: map[string]any{"error": "", "status": "ok"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, failed := tt.res.Failure()
			assert.Equal(t, tt.failed, failed)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestBlockRendering(t *testing.T) {
	assert.Equal(t, "plain", Block{Type: BlockText, Text: "plain"}.String())
	assert.Equal(t, "<image/png, 3 bytes>", Block{Type: BlockImage, MIMEType: "image/png", Data: []byte{1, 2, 3}}.String())
	assert.Equal(t, "<application/octet-stream, 1 bytes>", Block{Type: BlockResource, Data: []byte{1}}.String())
	assert.Equal(t, "<link https://x/y>", Block{Type: BlockLink, URI: "https://x/y"}.String())

	assert.Equal(t, []byte("plain"), Block{Type: BlockText, Text: "plain"}.Bytes())
	assert.Equal(t, []byte{9}, Block{Type: BlockImage, Data: []byte{9}}.Bytes())
}

func TestPrimary(t *testing.T) {
	_, ok := (&Result{}).Primary()
	assert.False(t, ok)

	r := &Result{Content: []Block{
		{Type: BlockText, Text: "summary"},
		{Type: BlockImage, MIMEType: "image/png", Data: []byte{1}},
	}}
	b, ok := r.Primary()
	require.True(t, ok)
	assert.Equal(t, BlockImage, b.Type)

	r = &Result{Content: []Block{{Type: BlockText, Text: "only text"}}}
	b, ok = r.Primary()
	require.True(t, ok)
	assert.Equal(t, "only text", b.Text)
}
