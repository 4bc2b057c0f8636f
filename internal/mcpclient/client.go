// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpclient connects to a TweekIT MCP server over streamable HTTP
// and calls its tools. A Session is a single connection: callers must
// Close it when done, whether or not the calls succeeded.
package mcpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/equilibrium-team/tweekit-go/internal/httputil"
	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

const clientName = "tweekit-go"

// ErrConnection is returned (wrapped) when the session cannot be
// established or a request fails at the transport or protocol level.
var ErrConnection = errors.New("connection failure")

// Tool describes a remote operation.
type Tool struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Client opens sessions against one MCP endpoint.
type Client struct {
	sdk       *mcp.Client
	endpoint  string
	userAgent string

	// base is the round tripper under the header transport; nil means
	// http.DefaultTransport.
	base http.RoundTripper
}

// Option customizes a Client.
type Option func(*Client)

// WithRoundTripper sets the transport used beneath the credential headers.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// New creates a client for cfg.URL (types.DefaultServerURL when empty).
func New(cfg types.ServerConfig, version string, opts ...Option) *Client {
	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = types.DefaultServerURL
	}
	c := &Client{
		sdk:       mcp.NewClient(&mcp.Implementation{Name: clientName, Version: version}, nil),
		endpoint:  endpoint,
		userAgent: cfg.UserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the server URL this client connects to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Connect opens a session, sending creds as the ApiKey and ApiSecret
// headers on every HTTP request.
func (c *Client) Connect(ctx context.Context, creds types.Credentials) (*Session, error) {
	headers := httputil.AuthHeaders(creds.APIKey, creds.APISecret, c.userAgent)
	transport := &mcp.StreamableClientTransport{
		Endpoint:   c.endpoint,
		HTTPClient: httputil.NewClient(c.base, headers),
	}
	return c.ConnectTransport(ctx, transport)
}

// ConnectTransport opens a session over an arbitrary MCP transport.
func (c *Client) ConnectTransport(ctx context.Context, t mcp.Transport) (*Session, error) {
	logrus.WithField("endpoint", c.endpoint).Debug("connecting to MCP server")
	cs, err := c.sdk.Connect(ctx, t, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to %s: %w", ErrConnection, c.endpoint, err)
	}
	return &Session{cs: cs}, nil
}

// Session is a connected MCP session.
type Session struct {
	cs *mcp.ClientSession
}

// ListTools returns every tool the server exposes, following pagination.
func (s *Session) ListTools(ctx context.Context) ([]Tool, error) {
	var (
		tools  []Tool
		cursor string
	)
	for {
		res, err := s.cs.ListTools(ctx, &mcp.ListToolsParams{Cursor: cursor})
		if err != nil {
			return nil, fmt.Errorf("%w: listing tools: %w", ErrConnection, err)
		}
		for _, t := range res.Tools {
			tools = append(tools, Tool{Name: t.Name, Description: t.Description})
		}
		if res.NextCursor == "" {
			return tools, nil
		}
		cursor = res.NextCursor
	}
}

// CallTool invokes the named tool with args, which must marshal to a JSON
// object. A tool-level failure is not an error: it is reported through
// Result.IsError.
func (s *Session) CallTool(ctx context.Context, name string, args any) (*Result, error) {
	res, err := s.cs.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("%w: calling %s: %w", ErrConnection, name, err)
	}
	return newResult(res), nil
}

// Close ends the session.
func (s *Session) Close() error {
	return s.cs.Close()
}
