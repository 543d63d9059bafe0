// Package llmctxlog configures the process-wide structured logger. Debug
// verbosity is keyed off -d or LLMCTX_DEBUG, following the teacher's
// slog adoption (internal/parser/languages.go) rather than the
// ripgrep-style fmt.Printf diagnostics the teacher's walker package used.
package llmctxlog

import (
	"log/slog"
	"os"
)

// EnvDebug enables debug-level logging when set to any non-empty value,
// independent of the -d flag.
const EnvDebug = "LLMCTX_DEBUG"

// Setup installs a text handler on stderr at Info level, or Debug level
// when debug is true or LLMCTX_DEBUG is set.
func Setup(debug bool) {
	level := slog.LevelInfo
	if debug || os.Getenv(EnvDebug) != "" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
