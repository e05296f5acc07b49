package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init configures the global slog default. Verbose enables debug-level
// output. If w is nil, os.Stderr is used; logs never go to stdout, which is
// reserved for report output (and for the MCP transport under `serve`).
func Init(verbose bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// New returns a logger with a "component" attribute for package-scoped
// logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
