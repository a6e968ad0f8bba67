package driving

import (
	"context"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

// CatalogService manages the topic list with optimistic mutations.
type CatalogService interface {
	// Load fetches and normalises topics. Failure degrades to an
	// empty list plus a status message; Load never errors hard.
	Load(ctx context.Context) []domain.Topic

	// Topics returns the current local topic list.
	Topics() []domain.Topic

	// Add inserts a topic locally and dispatches the remote create.
	Add(ctx context.Context, name string) (domain.Topic, error)

	// Remove deletes a topic locally and dispatches the remote
	// delete. Removing the selected topic clears dependent state.
	Remove(ctx context.Context, name string) error

	// Select marks a topic active.
	Select(name string) error

	// Selected returns the active topic, or nil.
	Selected() *domain.Topic
}
