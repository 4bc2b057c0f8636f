package types

import "time"

// DefaultServerURL is the public TweekIT MCP endpoint.
const DefaultServerURL = "https://mcp.tweekit.com/mcp"

// ServerConfig holds settings for the connection to the MCP server.
type ServerConfig struct {
	// URL is the streamable HTTP endpoint of the MCP server.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Timeout bounds a whole invocation. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "tweekit-go/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Credentials holds the TweekIT API key pair. They are sent as the ApiKey
// and ApiSecret HTTP headers and repeated inside every tool payload.
type Credentials struct {
	APIKey    string
	APISecret string
}

// OutputFormat selects how results are rendered on stdout.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// S3Config holds settings for saving conversion output to S3-compatible
// object storage.
type S3Config struct {
	Region          string `json:"region" yaml:"region" mapstructure:"region"`
	Endpoint        string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	UsePathStyle    bool   `json:"use_path_style" yaml:"use_path_style" mapstructure:"use_path_style"`
	AccessKeyID     string `json:"-" yaml:"-" mapstructure:"access_key_id"`
	SecretAccessKey string `json:"-" yaml:"-" mapstructure:"secret_access_key"`
}

// HistoryConfig holds settings for the local conversion history.
type HistoryConfig struct {
	// Enabled turns on recording of remote tool calls.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default: <user config dir>/tweekit/history.db).
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all settings read from the config file, environment and flags.
type Config struct {
	Server   ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Output   OutputFormat  `json:"output" yaml:"output" mapstructure:"output"`
	LogLevel string        `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	S3       S3Config      `json:"s3" yaml:"s3" mapstructure:"s3"`
	History  HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
