package domain

import "strings"

// MaxFileSize is the largest file accepted for staging (10 MiB).
// Oversize files are rejected before any network call.
const MaxFileSize = 10 * 1024 * 1024

// PendingUpload is a locally staged file awaiting an explicit commit.
// It exists only client-side and is destroyed by removal or by
// successful promotion into a committed Item.
type PendingUpload struct {
	// ID is a local-only token, never sent to the backend.
	ID string

	// Path is the local filesystem location of the staged file.
	Path string

	// DisplayName is the name the file will carry after upload.
	DisplayName string

	// SizeBytes is the file size recorded at staging time.
	SizeBytes int64

	// Target is the topic or document category the file belongs to.
	Target string
}

// Validate checks a staged entry before commit.
func (p PendingUpload) Validate() error {
	if strings.TrimSpace(p.Path) == "" || strings.TrimSpace(p.DisplayName) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(p.Target) == "" {
		return ErrNoTopicSelected
	}
	if p.SizeBytes > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}
