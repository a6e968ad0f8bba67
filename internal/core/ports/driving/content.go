package driving

import (
	"context"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

// Patch is a partial update keyed by wire field name (e.g. "status",
// "detail", "role"). Applied last-local-writer-wins.
type Patch map[string]any

// ContentService is the per-kind optimistic content store. Local
// mutations apply synchronously; remote writes are dispatched
// best-effort and never revert local state.
type ContentService interface {
	// Kind returns the content kind this store manages.
	Kind() domain.Kind

	// Load replaces the collection with the normalised remote fetch
	// for the topic. Any failure yields an empty collection.
	Load(ctx context.Context, topic string) []domain.Item

	// Topic returns the topic the collection currently belongs to.
	Topic() string

	// Items returns the latest local state of the collection.
	Items() []domain.Item

	// Get returns the latest local state of one item.
	Get(id string) (*domain.Item, error)

	// Filter returns the items whose key field contains the query,
	// case-insensitively. An empty query returns everything.
	Filter(query string) []domain.Item

	// Add validates the draft, appends it locally with a placeholder
	// id, and dispatches the remote create.
	Add(ctx context.Context, draft domain.Item) (domain.Item, error)

	// AddWithFile is Add for drafts whose answer is a staged file;
	// the create is dispatched multipart.
	AddWithFile(ctx context.Context, draft domain.Item, file domain.PendingUpload) (domain.Item, error)

	// Update merges the patch into the local item and dispatches the
	// remote field updates.
	Update(ctx context.Context, id string, patch Patch) error

	// Remove deletes the item locally and dispatches the remote
	// delete.
	Remove(ctx context.Context, id string) error

	// Clear discards the collection (topic switched or deleted).
	Clear()
}
