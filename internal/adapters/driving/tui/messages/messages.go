// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewTopics is the topic catalog view.
	ViewTopics ViewType = iota
	// ViewItems is the per-topic content view.
	ViewItems
	// ViewUploads is the staged upload queue view.
	ViewUploads
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewTopics:
		return "topics"
	case ViewItems:
		return "items"
	case ViewUploads:
		return "uploads"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// TopicsLoaded carries the topic catalog from the service.
type TopicsLoaded struct {
	Topics []domain.Topic
}

// TopicChosen signals a topic was selected for the items view.
type TopicChosen struct {
	Name string
}

// ItemsLoaded carries one kind's collection for the active topic.
type ItemsLoaded struct {
	Kind  domain.Kind
	Topic string
	Items []domain.Item
}

// UploadsRefreshed carries the staged upload queue.
type UploadsRefreshed struct {
	Entries []domain.PendingUpload
}

// StatusTick drives the status bar's expiry refresh.
type StatusTick struct {
	At time.Time
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
