package emojiextract

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger shared by fontfile.Parse and every Extractor
// built without WithLogger.
// Nothing is logged until it is called; nil brings back the silent logger.
//
// What goes where:
//   - [slog.LevelDebug]: "fontfile: loaded" with the font index, collection
//     size, glyph count and strike ppems; the glyph and strike totals Run
//     starts from; each emoji's codepoint names; a strike substituted for a
//     missing size
//   - [slog.LevelInfo]: the glyph each emoji resolved to and how, substring
//     matches with their candidates, every PNG written
//   - [slog.LevelWarn]: emoji with no glyph, glyphs missing from a strike,
//     empty records, non-PNG graphic types
//
// Example:
//
//	emojiextract.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package-wide logger.
// Sub-packages call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
