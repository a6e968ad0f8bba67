// Package logger provides verbose logging for the briefdesk CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr so operators can see what the optimistic
// stores dispatch to the webhook backend.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects verbose logs away from os.Stderr. Tests use
// this to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug logs dispatch-level detail.
func Debug(format string, args ...any) {
	logf("DEBUG", format, args...)
}

// Info logs noteworthy state changes.
func Info(format string, args ...any) {
	logf("INFO", format, args...)
}

// Warn logs degraded-mode conditions, such as falling back to the
// in-memory staging store.
func Warn(format string, args ...any) {
	logf("WARN", format, args...)
}

func logf(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}
