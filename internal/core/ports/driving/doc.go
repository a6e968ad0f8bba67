// Package driving defines the inbound ports: interfaces the CLI and
// TUI adapters use to drive the core services.
package driving
