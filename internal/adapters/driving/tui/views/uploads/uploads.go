// Package uploads provides the staged upload queue view for the TUI.
package uploads

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
)

// View shows staged uploads and commits them on demand.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	uploads driving.UploadService

	entries  []domain.PendingUpload
	selected int

	width  int
	height int
}

// NewView creates a new uploads view.
func NewView(s *styles.Styles, km *keymap.KeyMap, uploads driving.UploadService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		uploads: uploads,
		width:   80,
		height:  24,
	}
}

// Init refreshes the queue.
func (v *View) Init() tea.Cmd {
	return v.refreshCmd()
}

func (v *View) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.UploadsRefreshed{Entries: v.uploads.List()}
	}
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Entries returns the currently displayed queue.
func (v *View) Entries() []domain.PendingUpload {
	return v.entries
}

func (v *View) selectedEntry() *domain.PendingUpload {
	if v.selected < 0 || v.selected >= len(v.entries) {
		return nil
	}
	entry := v.entries[v.selected]
	return &entry
}

// Update handles messages for the uploads view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.UploadsRefreshed:
		v.entries = msg.Entries
		if v.selected >= len(v.entries) {
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}

		case keymap.Matches(keyStr, v.keymap.Down):
			if v.selected < len(v.entries)-1 {
				v.selected++
			}

		case keymap.Matches(keyStr, v.keymap.Delete):
			entry := v.selectedEntry()
			if entry == nil {
				return v, nil
			}
			id := entry.ID
			return v, func() tea.Msg {
				if err := v.uploads.Unstage(id); err != nil {
					return messages.ErrorOccurred{Err: err}
				}
				return messages.UploadsRefreshed{Entries: v.uploads.List()}
			}

		case keymap.Matches(keyStr, v.keymap.Commit), keymap.Matches(keyStr, v.keymap.Select):
			entry := v.selectedEntry()
			if entry == nil {
				return v, nil
			}
			id := entry.ID
			return v, func() tea.Msg {
				if err := v.uploads.Commit(context.Background(), id); err != nil {
					return messages.ErrorOccurred{Err: err}
				}
				return messages.UploadsRefreshed{Entries: v.uploads.List()}
			}
		}
	}

	return v, nil
}

// View renders the staged upload queue.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Staged Uploads"))
	b.WriteString("\n\n")

	if len(v.entries) == 0 {
		b.WriteString(v.styles.Muted.Render("Nothing staged."))
		b.WriteString("\n")
	}

	for i, entry := range v.entries {
		line := fmt.Sprintf("%-30s %8d bytes  -> %s", entry.DisplayName, entry.SizeBytes, entry.Target)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if v.uploads.InFlight() {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render("Upload in progress..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("c/enter: commit | d: unstage | esc: back"))

	return b.String()
}
