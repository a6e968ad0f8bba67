package driven

import (
	"context"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

// Backend is the remote automation store reached over HTTP. It is an
// opaque collection of named operations; responses are loosely typed
// and are handed to the normaliser as decoded JSON (any). Every
// operation may fail or return a malformed body; callers treat any
// error identically to "empty/failed".
type Backend interface {
	// ListTopics fetches the raw topic list payload.
	ListTopics(ctx context.Context) (any, error)

	// AddTopic creates a topic by name.
	AddTopic(ctx context.Context, name string) error

	// DeleteTopic removes a topic by name.
	DeleteTopic(ctx context.Context, name string) error

	// ListItems fetches the raw item list payload for a topic.
	ListItems(ctx context.Context, kind domain.Kind, topic string) (any, error)

	// SaveItem creates an item. When file is non-nil the request is
	// sent multipart with the staged file attached; otherwise JSON.
	// The decoded ack is returned when the backend provides one (it
	// may carry the server-assigned record).
	SaveItem(ctx context.Context, item domain.Item, file *domain.PendingUpload) (any, error)

	// UpdateItemField patches a single field of an item.
	UpdateItemField(ctx context.Context, kind domain.Kind, topic, id, field string, value any) error

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, kind domain.Kind, topic, id string) error

	// UploadFile commits a staged upload and returns the persisted
	// file identity assigned by the backend.
	UploadFile(ctx context.Context, up domain.PendingUpload) (UploadResult, error)

	// DeleteFile removes a committed document file.
	DeleteFile(ctx context.Context, target, fileName, fileURL string) error

	// TriggerEmbed fires the best-effort embedding refresh hook the
	// backend exposes after content saves. Errors are advisory only.
	TriggerEmbed(ctx context.Context) error
}

// UploadResult is the server-assigned identity of a committed upload.
type UploadResult struct {
	// FileURL is the storage URL assigned by the backend.
	FileURL string

	// FileName is the persisted name (may differ from the staged one).
	FileName string
}
