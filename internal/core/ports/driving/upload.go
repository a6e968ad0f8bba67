package driving

import (
	"context"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

// UploadService stages local files and promotes them to persisted
// items through explicit commits. Commits are single-flight.
type UploadService interface {
	// Stage validates and stages a local file for the target topic
	// or category. Oversize files are rejected and never staged.
	Stage(path, target string) (domain.PendingUpload, error)

	// Unstage discards a staged entry without network interaction.
	Unstage(id string) error

	// List returns staged entries in insertion order.
	List() []domain.PendingUpload

	// Commit uploads a staged entry. On success the entry is removed
	// and the document collection for its target reloads; on failure
	// the entry stays staged.
	Commit(ctx context.Context, id string) error

	// InFlight reports whether a commit is currently running.
	InFlight() bool
}
