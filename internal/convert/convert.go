// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs conversions against a connected MCP session and
// prints their results. It owns no connection: callers connect, hand the
// session to a Runner, and close it afterwards.
package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/equilibrium-team/tweekit-go/internal/mcpclient"
	"github.com/equilibrium-team/tweekit-go/internal/payload"
	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

// Session is the part of an MCP session a Runner needs. *mcpclient.Session
// implements it.
type Session interface {
	ListTools(ctx context.Context) ([]mcpclient.Tool, error)
	CallTool(ctx context.Context, name string, args any) (*mcpclient.Result, error)
}

// Saver stores converted output at a destination.
type Saver interface {
	Save(ctx context.Context, dest string, data []byte, contentType string) error
}

// Recorder persists a record of each tool call.
type Recorder interface {
	Record(ctx context.Context, e types.HistoryEntry) error
}

// Runner drives one tool call and prints its outcome.
type Runner struct {
	Session Session
	Printer *Printer

	// Saver and Recorder are optional.
	Saver    Saver
	Recorder Recorder

	// now is stubbed in tests.
	now func() time.Time
}

// Quickstart lists the server's tools, calls convert with req, and prints
// the result. When save is non-empty the converted output is written there.
func (r *Runner) Quickstart(ctx context.Context, req types.ConversionRequest, input, save string) error {
	tools, err := r.Session.ListTools(ctx)
	if err != nil {
		return err
	}
	r.Printer.Tools(tools)

	logrus.WithFields(logrus.Fields{
		"inext":  req.InputExtension,
		"outfmt": req.OutputFormat,
		"bytes":  payload.DecodedSize(req.FileDataBase64),
	}).Info("calling convert")

	entry := types.HistoryEntry{
		Tool:       types.ToolConvert,
		Input:      input,
		InputExt:   req.InputExtension,
		OutFmt:     req.OutputFormat,
		InputBytes: payload.DecodedSize(req.FileDataBase64),
	}
	return r.call(ctx, "Conversion", types.ToolConvert, req, entry, save)
}

// ConvertURL calls convert_url with req and prints the result.
func (r *Runner) ConvertURL(ctx context.Context, req types.URLConversionRequest, save string) error {
	entry := types.HistoryEntry{
		Tool:     types.ToolConvertURL,
		Input:    req.URL,
		InputExt: req.InputExtension,
		OutFmt:   req.OutputFormat,
	}
	return r.call(ctx, "Conversion", types.ToolConvertURL, req, entry, save)
}

// Doctype calls doctype with req and prints the result.
func (r *Runner) Doctype(ctx context.Context, req types.DoctypeRequest) error {
	entry := types.HistoryEntry{
		Tool:     types.ToolDoctype,
		Input:    req.Extension,
		InputExt: req.Extension,
	}
	return r.call(ctx, "Doctype", types.ToolDoctype, req, entry, "")
}

func (r *Runner) call(ctx context.Context, label, tool string, args any, entry types.HistoryEntry, save string) error {
	start := r.clock()
	res, err := r.Session.CallTool(ctx, tool, args)
	entry.CreatedAt = start
	entry.Duration = r.clock().Sub(start)

	if err != nil {
		entry.Status, entry.Error = types.StatusFailed, err.Error()
		r.record(ctx, entry)
		return err
	}

	kind, err := r.Printer.Result(label, res)
	if err != nil {
		entry.Status, entry.Error = types.StatusFailed, err.Error()
		r.record(ctx, entry)
		return err
	}
	entry.Status = types.StatusOK
	r.record(ctx, entry)
	logrus.WithField("printed", kind).Debug("tool call succeeded")

	if save != "" {
		return r.save(ctx, res, save)
	}
	return nil
}

// save writes the primary content block to dest, or the structured result
// as JSON when the tool returned no content.
func (r *Runner) save(ctx context.Context, res *mcpclient.Result, dest string) error {
	if r.Saver == nil {
		return fmt.Errorf("no storage configured for %s", dest)
	}

	data, contentType, err := outputBytes(res)
	if err != nil {
		return err
	}
	if err := r.Saver.Save(ctx, dest, data, contentType); err != nil {
		return fmt.Errorf("saving output to %s: %w", dest, err)
	}
	fmt.Fprintf(r.Printer.Err, "Saved %d bytes to %s\n", len(data), dest)
	return nil
}

func outputBytes(res *mcpclient.Result) ([]byte, string, error) {
	if b, ok := res.Primary(); ok {
		ct := b.MIMEType
		if ct == "" && !b.Binary() {
			ct = "text/plain; charset=utf-8"
		}
		return b.Bytes(), ct, nil
	}
	value, kind := SelectOutput(res)
	if kind == KindNone {
		return nil, "", fmt.Errorf("result has no content to save")
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshaling result: %w", err)
	}
	return data, "application/json", nil
}

func (r *Runner) record(ctx context.Context, e types.HistoryEntry) {
	if r.Recorder == nil {
		return
	}
	if err := r.Recorder.Record(ctx, e); err != nil {
		logrus.WithError(err).Warn("could not record history entry")
	}
}

func (r *Runner) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}
