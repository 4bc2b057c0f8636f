// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CallStatus is the outcome of a recorded tool call.
type CallStatus string

const (
	StatusOK     CallStatus = "ok"
	StatusFailed CallStatus = "failed"
)

// HistoryEntry records one remote tool call. Credentials and document
// contents are never part of an entry.
type HistoryEntry struct {
	ID int64 `json:"id" yaml:"id"`

	// Tool is the remote tool name (e.g. "convert").
	Tool string `json:"tool" yaml:"tool"`

	// Input is the local path or URL of the source document.
	Input string `json:"input" yaml:"input"`

	InputExt string `json:"inext,omitempty" yaml:"inext,omitempty"`
	OutFmt   string `json:"outfmt,omitempty" yaml:"outfmt,omitempty"`

	Status CallStatus `json:"status" yaml:"status"`
	Error  string     `json:"error,omitempty" yaml:"error,omitempty"`

	// InputBytes is the decoded size of the uploaded document.
	InputBytes int `json:"input_bytes" yaml:"input_bytes"`

	Duration  time.Duration `json:"duration" yaml:"duration"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}
