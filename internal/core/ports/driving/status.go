package driving

// StatusReporter surfaces short-lived human-readable messages. All
// services report success and failure through it uniformly; the
// current message expires after a TTL.
type StatusReporter interface {
	// Report sets the current message.
	Report(msg string)

	// Reportf sets the current message with formatting.
	Reportf(format string, args ...any)

	// Current returns the live message, or empty once expired.
	Current() string
}
