/*
Copyright The DrugBank Downloader Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logging

import (
	"context"
	"io"
	"log/slog"
)

// DebugEnabledFunc reports whether debug logging is enabled. It is a function
// because the setting is checked at log time, not when the logger is created.
type DebugEnabledFunc func() bool

// debugCheckHandler consults the debug setting for each record.
type debugCheckHandler struct {
	handler      slog.Handler
	debugEnabled DebugEnabledFunc
}

// Enabled implements slog.Handler.
func (h *debugCheckHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		if h.debugEnabled == nil {
			return false
		}
		return h.debugEnabled()
	}
	return true
}

// Handle implements slog.Handler.
func (h *debugCheckHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *debugCheckHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &debugCheckHandler{
		handler:      h.handler.WithAttrs(attrs),
		debugEnabled: h.debugEnabled,
	}
}

// WithGroup implements slog.Handler.
func (h *debugCheckHandler) WithGroup(name string) slog.Handler {
	return &debugCheckHandler{
		handler:      h.handler.WithGroup(name),
		debugEnabled: h.debugEnabled,
	}
}

// NewLogger creates a logger whose debug records are gated on debugEnabled.
// Timestamps are stripped so CLI diagnostics stay readable.
func NewLogger(out io.Writer, debugEnabled DebugEnabledFunc) *slog.Logger {
	baseHandler := slog.NewTextHandler(out, &slog.HandlerOptions{
		// Let all records through here; the wrapping handler does the
		// level filtering.
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})

	return slog.New(&debugCheckHandler{
		handler:      baseHandler,
		debugEnabled: debugEnabled,
	})
}
