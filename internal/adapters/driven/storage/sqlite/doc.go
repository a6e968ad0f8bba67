// Package sqlite provides the persistent staging store. Staged
// uploads are written to a local SQLite database so they survive
// restarts; schema changes run through embedded migrations.
package sqlite
