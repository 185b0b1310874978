package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger that writes to w and filters messages at
// the specified level. Timestamps ("HH:MM:SS.ms") are only reported at
// debug level, where they help read the request trace.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: level <= log.DebugLevel,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// httpTrace logs the registry request at debug level.
type httpTrace struct {
	logger *log.Logger
}

func (h httpTrace) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h httpTrace) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path,
		"status", status, "duration", d.Round(time.Millisecond))
}

func (h httpTrace) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

// stageTrace logs pipeline stage events at debug level.
type stageTrace struct {
	logger *log.Logger
}

func (h stageTrace) OnFetchStart(_ context.Context, crate string) {
	h.logger.Debug("fetch", "crate", crate)
}

func (h stageTrace) OnFetchComplete(_ context.Context, crate string, d time.Duration, err error) {
	h.logger.Debug("fetch done", "crate", crate, "duration", d.Round(time.Millisecond), "ok", err == nil)
}

func (h stageTrace) OnResolve(_ context.Context, crate, dest string, err error) {
	h.logger.Debug("resolve", "crate", crate, "link", dest, "ok", err == nil)
}

func (h stageTrace) OnDispatch(_ context.Context, url string, err error) {
	h.logger.Debug("dispatch", "url", url, "ok", err == nil)
}
