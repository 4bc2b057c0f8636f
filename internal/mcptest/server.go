// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcptest runs an in-process MCP server exposing the TweekIT tools
// (convert, convert_url, doctype) for tests. Tool inputs are decoded into
// the same request types the client sends, so a payload with a missing or
// misspelled field is rejected by the server's schema validation.
package mcptest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

// Handlers supply the tool responses. A nil handler uses a canned success.
type Handlers struct {
	Convert    func(types.ConversionRequest) *mcp.CallToolResult
	ConvertURL func(types.URLConversionRequest) *mcp.CallToolResult
	Doctype    func(types.DoctypeRequest) *mcp.CallToolResult
}

// Call is one tool invocation received by the server.
type Call struct {
	Tool string
	Args any
}

// Server is a running test server.
type Server struct {
	// URL is the streamable HTTP endpoint.
	URL string

	srv *mcp.Server

	mu      sync.Mutex
	calls   []Call
	headers []http.Header
}

// NewServer starts a server on a local httptest listener and stops it when
// the test ends.
func NewServer(t testing.TB, h Handlers) *Server {
	t.Helper()

	s := &Server{srv: mcp.NewServer(&mcp.Implementation{Name: "tweekit-test", Version: "v0.0.1"}, nil)}
	s.register(h)

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.srv }, nil)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.headers = append(s.headers, r.Header.Clone())
		s.mu.Unlock()
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(func() {
		ts.CloseClientConnections()
		ts.Close()
	})

	s.URL = ts.URL
	return s
}

// NewInMemory builds a server without a listener. Use Connect to obtain a
// client transport.
func NewInMemory(h Handlers) *Server {
	s := &Server{srv: mcp.NewServer(&mcp.Implementation{Name: "tweekit-test", Version: "v0.0.1"}, nil)}
	s.register(h)
	return s
}

// Connect starts a server session over an in-memory pipe and returns the
// client end.
func (s *Server) Connect(ctx context.Context) (mcp.Transport, error) {
	clientT, serverT := mcp.NewInMemoryTransports()
	if _, err := s.srv.Connect(ctx, serverT, nil); err != nil {
		return nil, fmt.Errorf("connecting test server: %w", err)
	}
	return clientT, nil
}

func (s *Server) register(h Handlers) {
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        types.ToolConvert,
		Description: "Convert a base64 encoded document.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in types.ConversionRequest) (*mcp.CallToolResult, any, error) {
		s.record(types.ToolConvert, in)
		if h.Convert == nil {
			return Text(fmt.Sprintf("converted %s to %s", in.InputExtension, in.OutputFormat)), nil, nil
		}
		return h.Convert(in), nil, nil
	})

	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        types.ToolConvertURL,
		Description: "Download a document and convert it.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in types.URLConversionRequest) (*mcp.CallToolResult, any, error) {
		s.record(types.ToolConvertURL, in)
		if h.ConvertURL == nil {
			return Text(fmt.Sprintf("converted %s to %s", in.URL, in.OutputFormat)), nil, nil
		}
		return h.ConvertURL(in), nil, nil
	})

	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        types.ToolDoctype,
		Description: "List supported formats or map an extension to a document type.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in types.DoctypeRequest) (*mcp.CallToolResult, any, error) {
		s.record(types.ToolDoctype, in)
		if h.Doctype == nil {
			return Structured(map[string]any{"extension": in.Extension, "docType": "document"}), nil, nil
		}
		return h.Doctype(in), nil, nil
	})
}

func (s *Server) record(tool string, args any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Tool: tool, Args: args})
}

// Calls returns the tool invocations received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Headers returns the headers of every HTTP request received so far.
func (s *Server) Headers() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]http.Header(nil), s.headers...)
}

// Text returns a successful result with one text block.
func Text(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// Structured returns a successful result carrying structured content and
// its JSON rendering as text, the way MCP servers usually reply.
func Structured(v map[string]any) *mcp.CallToolResult {
	text, _ := json.Marshal(v)
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: v,
	}
}

// Image returns a successful result with one image block.
func Image(mimeType string, data []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.ImageContent{MIMEType: mimeType, Data: data}}}
}

// File returns a successful result with one embedded binary resource.
func File(uri, mimeType string, data []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.EmbeddedResource{
		Resource: &mcp.ResourceContents{URI: uri, MIMEType: mimeType, Blob: data},
	}}}
}

// Error returns a result flagged IsError with message as text.
func Error(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}
