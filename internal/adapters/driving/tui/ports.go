// Package tui provides the interactive terminal user interface for
// briefdesk. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"errors"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog manages the topic list.
	Catalog driving.CatalogService

	// Stores holds one optimistic content store per kind.
	Stores map[domain.Kind]driving.ContentService

	// Uploads manages the staged upload queue.
	Uploads driving.UploadService

	// Reporter surfaces short-lived status messages.
	Reporter driving.StatusReporter
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return errors.New("catalog service is required")
	}
	if len(p.Stores) == 0 {
		return errors.New("at least one content store is required")
	}
	for kind, store := range p.Stores {
		if store == nil {
			return errors.New("content store for " + kind.String() + " is nil")
		}
	}
	if p.Uploads == nil {
		return errors.New("upload service is required")
	}
	if p.Reporter == nil {
		return errors.New("status reporter is required")
	}
	return nil
}
