package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
)

// Ensure Reporter implements the interface.
var _ driving.StatusReporter = (*Reporter)(nil)

// DefaultStatusTTL is how long a status message stays visible.
const DefaultStatusTTL = 2800 * time.Millisecond

// Reporter holds the current short-lived status message. Every
// service reports success and failure through one Reporter so the
// CLI and TUI have a single surface to render.
type Reporter struct {
	mu    sync.RWMutex
	msg   string
	setAt time.Time
	ttl   time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewReporter creates a reporter with the default TTL.
func NewReporter() *Reporter {
	return &Reporter{
		ttl: DefaultStatusTTL,
		now: time.Now,
	}
}

// NewReporterWithClock creates a reporter with an injected clock and
// TTL. Used by tests.
func NewReporterWithClock(ttl time.Duration, now func() time.Time) *Reporter {
	return &Reporter{ttl: ttl, now: now}
}

// Report sets the current message.
func (r *Reporter) Report(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msg = msg
	r.setAt = r.now()
}

// Reportf sets the current message with formatting.
func (r *Reporter) Reportf(format string, args ...any) {
	r.Report(fmt.Sprintf(format, args...))
}

// Current returns the live message, or empty once the TTL elapsed.
func (r *Reporter) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.msg == "" || r.now().Sub(r.setAt) > r.ttl {
		return ""
	}
	return r.msg
}

// Clear drops the current message immediately.
func (r *Reporter) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msg = ""
}
