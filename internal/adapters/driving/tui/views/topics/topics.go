// Package topics provides the topic catalog view for the TUI.
package topics

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
)

// View is the topic catalog: a navigable list plus an inline add input.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	catalog driving.CatalogService

	topics   []domain.Topic
	selected int
	adding   bool
	input    textinput.Model

	width  int
	height int
}

// NewView creates a new topics view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	input := textinput.New()
	input.Placeholder = "New topic name"
	input.CharLimit = 64

	return &View{
		styles:  s,
		keymap:  km,
		catalog: catalog,
		input:   input,
		width:   80,
		height:  24,
	}
}

// Init loads the catalog.
func (v *View) Init() tea.Cmd {
	return v.loadCmd()
}

// loadCmd fetches topics off the UI loop.
func (v *View) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.TopicsLoaded{Topics: v.catalog.Load(context.Background())}
	}
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Topics returns the currently displayed topics.
func (v *View) Topics() []domain.Topic {
	return v.topics
}

// Selected returns the highlighted topic, or nil when the list is empty.
func (v *View) Selected() *domain.Topic {
	if v.selected < 0 || v.selected >= len(v.topics) {
		return nil
	}
	topic := v.topics[v.selected]
	return &topic
}

// Adding reports whether the inline add input is active.
func (v *View) Adding() bool {
	return v.adding
}

// Update handles messages for the topics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.TopicsLoaded:
		v.topics = msg.Topics
		if v.selected >= len(v.topics) {
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		if v.adding {
			return v.updateAdding(msg)
		}
		return v.updateBrowsing(msg)
	}

	return v, nil
}

func (v *View) updateAdding(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.adding = false
		v.input.Reset()
		return v, nil

	case "enter":
		name := strings.TrimSpace(v.input.Value())
		v.adding = false
		v.input.Reset()
		if name == "" {
			return v, nil
		}
		return v, func() tea.Msg {
			// Failures land in the reporter; the reload shows the
			// optimistic state either way.
			_, _ = v.catalog.Add(context.Background(), name)
			return messages.TopicsLoaded{Topics: v.catalog.Topics()}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) updateBrowsing(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.topics)-1 {
			v.selected++
		}

	case keymap.Matches(keyStr, v.keymap.Add):
		v.adding = true
		v.input.Focus()
		return v, textinput.Blink

	case keymap.Matches(keyStr, v.keymap.Delete):
		topic := v.Selected()
		if topic == nil {
			return v, nil
		}
		name := topic.Name
		return v, func() tea.Msg {
			_ = v.catalog.Remove(context.Background(), name)
			return messages.TopicsLoaded{Topics: v.catalog.Topics()}
		}

	case keymap.Matches(keyStr, v.keymap.Select):
		topic := v.Selected()
		if topic == nil {
			return v, nil
		}
		name := topic.Name
		return v, func() tea.Msg {
			_ = v.catalog.Select(name)
			return messages.TopicChosen{Name: name}
		}
	}

	return v, nil
}

// View renders the topic catalog.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Topics"))
	b.WriteString("\n\n")

	if len(v.topics) == 0 {
		b.WriteString(v.styles.Muted.Render("No topics yet. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, topic := range v.topics {
		line := topic.Name
		if topic.Tag != "" {
			line = fmt.Sprintf("%s %s", topic.Name, v.styles.Tag.Render("["+topic.Tag+"]"))
		}
		if i == v.selected && !v.adding {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if v.adding {
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render(v.input.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter: open | a: add | d: delete | u: uploads | ?: help | q: quit"))

	return b.String()
}
