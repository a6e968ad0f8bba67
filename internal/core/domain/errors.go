package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or missing mandatory input.
	// Raised before any local or remote mutation takes place.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoTopicSelected indicates an operation that needs an active
	// topic was called without one.
	ErrNoTopicSelected = errors.New("no topic selected")

	// ErrFileTooLarge indicates a file exceeds MaxFileSize.
	// The file is never staged.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrUploadInFlight indicates a commit is already running.
	// Uploads are single-flight per queue.
	ErrUploadInFlight = errors.New("upload already in flight")

	// ErrBackendUnavailable indicates the webhook backend is not
	// configured. Operations degrade per the store policies.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrUnsupportedKind indicates an unknown content kind.
	ErrUnsupportedKind = errors.New("unsupported content kind")
)
