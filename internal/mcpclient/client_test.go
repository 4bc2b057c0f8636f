// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibrium-team/tweekit-go/internal/httputil"
	"github.com/equilibrium-team/tweekit-go/internal/mcptest"
	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

var testCreds = types.Credentials{APIKey: "test-key", APISecret: "test-secret"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewDefaultsEndpoint(t *testing.T) {
	c := New(types.ServerConfig{}, "dev")
	assert.Equal(t, types.DefaultServerURL, c.Endpoint())

	c = New(types.ServerConfig{URL: "http://localhost:8080/mcp"}, "dev")
	assert.Equal(t, "http://localhost:8080/mcp", c.Endpoint())
}

func TestSessionOverStreamableHTTP(t *testing.T) {
	ctx := testContext(t)
	srv := mcptest.NewServer(t, mcptest.Handlers{})

	client := New(types.ServerConfig{URL: srv.URL, UserAgent: "tweekit-go/test"}, "test")
	session, err := client.Connect(ctx, testCreds)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx)
	require.NoError(t, err)
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{types.ToolConvert, types.ToolConvertURL, types.ToolDoctype}, names)

	res, err := session.CallTool(ctx, types.ToolConvert, types.ConversionRequest{
		APIKey:         testCreds.APIKey,
		APISecret:      testCreds.APISecret,
		InputExtension: "pdf",
		OutputFormat:   "txt",
		FileDataBase64: "aGVsbG8=",
		Page:           1,
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "converted pdf to txt", res.Text())

	calls := srv.Calls()
	require.Len(t, calls, 1)
	got, ok := calls[0].Args.(types.ConversionRequest)
	require.True(t, ok)
	assert.Equal(t, "aGVsbG8=", got.FileDataBase64)
	assert.Equal(t, "test-key", got.APIKey)

	headers := srv.Headers()
	require.NotEmpty(t, headers)
	for _, h := range headers {
		assert.Equal(t, "test-key", h.Get(httputil.HeaderAPIKey))
		assert.Equal(t, "test-secret", h.Get(httputil.HeaderAPISecret))
		assert.Equal(t, "tweekit-go/test", h.Get("User-Agent"))
	}
}

type recordingTransport struct {
	mu      sync.Mutex
	headers []http.Header
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.mu.Lock()
	rt.headers = append(rt.headers, req.Header.Clone())
	rt.mu.Unlock()
	return http.DefaultTransport.RoundTrip(req)
}

func TestWithRoundTripper(t *testing.T) {
	ctx := testContext(t)
	srv := mcptest.NewServer(t, mcptest.Handlers{})
	rt := &recordingTransport{}

	client := New(types.ServerConfig{URL: srv.URL}, "test", WithRoundTripper(rt))
	session, err := client.Connect(ctx, testCreds)
	require.NoError(t, err)
	defer session.Close()

	_, err = session.ListTools(ctx)
	require.NoError(t, err)

	rt.mu.Lock()
	defer rt.mu.Unlock()
	require.NotEmpty(t, rt.headers, "requests go through the configured round tripper")
	for _, h := range rt.headers {
		assert.Equal(t, "test-key", h.Get(httputil.HeaderAPIKey))
		assert.Equal(t, "test-secret", h.Get(httputil.HeaderAPISecret))
	}
}

func TestCallToolErrorResult(t *testing.T) {
	ctx := testContext(t)
	srv := mcptest.NewInMemory(mcptest.Handlers{
		Doctype: func(types.DoctypeRequest) *mcp.CallToolResult {
			return mcptest.Error("unsupported extension")
		},
	})
	transport, err := srv.Connect(ctx)
	require.NoError(t, err)

	session, err := New(types.ServerConfig{}, "test").ConnectTransport(ctx, transport)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, types.ToolDoctype, types.DoctypeRequest{
		APIKey: "k", APISecret: "s", Extension: "xyz",
	})
	require.NoError(t, err, "a tool-level failure is a result, not an error")
	assert.True(t, res.IsError)
	msg, failed := res.Failure()
	assert.True(t, failed)
	assert.Equal(t, "unsupported extension", msg)
}

func TestCallToolStructuredContent(t *testing.T) {
	ctx := testContext(t)
	srv := mcptest.NewInMemory(mcptest.Handlers{})
	transport, err := srv.Connect(ctx)
	require.NoError(t, err)

	session, err := New(types.ServerConfig{}, "test").ConnectTransport(ctx, transport)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, types.ToolDoctype, types.DoctypeRequest{
		APIKey: "k", APISecret: "s", Extension: "pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"extension": "pdf", "docType": "document"}, res.StructuredContent)
	assert.Equal(t, res.StructuredContent, res.Data)
}

func TestCallToolBinaryContent(t *testing.T) {
	ctx := testContext(t)
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	srv := mcptest.NewInMemory(mcptest.Handlers{
		Convert: func(types.ConversionRequest) *mcp.CallToolResult {
			return mcptest.Image("image/png", png)
		},
	})
	transport, err := srv.Connect(ctx)
	require.NoError(t, err)

	session, err := New(types.ServerConfig{}, "test").ConnectTransport(ctx, transport)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, types.ToolConvert, types.ConversionRequest{
		APIKey: "k", APISecret: "s", InputExtension: "jpg", OutputFormat: "png", Page: 1,
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, BlockImage, res.Content[0].Type)
	assert.Equal(t, png, res.Content[0].Data)
	assert.Nil(t, res.Data)
}

func TestCallToolRejectedPayload(t *testing.T) {
	ctx := testContext(t)
	srv := mcptest.NewInMemory(mcptest.Handlers{})
	transport, err := srv.Connect(ctx)
	require.NoError(t, err)

	session, err := New(types.ServerConfig{}, "test").ConnectTransport(ctx, transport)
	require.NoError(t, err)
	defer session.Close()

	// Missing required fields: the server rejects the arguments.
	res, err := session.CallTool(ctx, types.ToolConvert, map[string]any{"outfmt": "txt"})
	if err != nil {
		assert.ErrorIs(t, err, ErrConnection)
		return
	}
	assert.True(t, res.IsError)
}

func TestConnectFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := New(types.ServerConfig{URL: ts.URL}, "test")
	_, err := client.Connect(testContext(t), testCreds)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.Contains(t, err.Error(), ts.URL)
}

func TestConnectUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(types.ServerConfig{URL: url}, "test").Connect(testContext(t), testCreds)
	assert.ErrorIs(t, err, ErrConnection)
}
