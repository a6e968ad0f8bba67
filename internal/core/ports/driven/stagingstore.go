package driven

import (
	"context"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

// StagingStore persists staged uploads so they survive restarts.
// The upload queue treats it as write-through; the in-memory queue
// remains the source of truth within a session.
type StagingStore interface {
	// Save stores or updates a staged entry.
	Save(ctx context.Context, up domain.PendingUpload) error

	// Delete removes a staged entry by its local token.
	Delete(ctx context.Context, id string) error

	// List returns all staged entries in insertion order.
	List(ctx context.Context) ([]domain.PendingUpload, error)
}
