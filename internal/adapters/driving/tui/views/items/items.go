// Package items provides the per-topic content view for the TUI. It
// shows one kind at a time and cycles through the four kinds.
package items

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
	"github.com/custodia-labs/briefdesk-cli/internal/core/services"
)

// kindOrder is the tab cycling order.
var kindOrder = []domain.Kind{
	domain.KindQA,
	domain.KindCriticism,
	domain.KindDocument,
	domain.KindMember,
}

// View is the content browser for the active topic.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	stores   map[domain.Kind]driving.ContentService
	reporter driving.StatusReporter
	state    *services.ViewState

	kindIdx  int
	items    []domain.Item
	selected int
	input    textinput.Model

	width  int
	height int
}

// NewView creates a new items view.
func NewView(s *styles.Styles, km *keymap.KeyMap, stores map[domain.Kind]driving.ContentService, reporter driving.StatusReporter) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	input := textinput.New()
	input.CharLimit = 256

	state := services.NewViewState()
	state.SetMode(services.ModeBrowse)

	return &View{
		styles:   s,
		keymap:   km,
		stores:   stores,
		reporter: reporter,
		state:    state,
		input:    input,
		width:    80,
		height:   24,
	}
}

// Init is a no-op; loading happens when a topic is set.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// SetTopic activates a topic and loads the first kind's collection.
func (v *View) SetTopic(name string) tea.Cmd {
	v.state.SelectTopic(name)
	v.state.SetMode(services.ModeBrowse)
	v.kindIdx = 0
	v.items = nil
	v.selected = 0
	return v.loadCmd()
}

// Topic returns the active topic name.
func (v *View) Topic() string {
	return v.state.SelectedTopic()
}

// Kind returns the kind currently displayed.
func (v *View) Kind() domain.Kind {
	return kindOrder[v.kindIdx]
}

// Items returns the currently displayed collection.
func (v *View) Items() []domain.Item {
	return v.items
}

// Composing reports whether the inline compose input is active.
func (v *View) Composing() bool {
	return v.state.Mode() == services.ModeCompose
}

// loadCmd fetches the active kind's collection off the UI loop.
func (v *View) loadCmd() tea.Cmd {
	kind := v.Kind()
	topic := v.loadTopic()
	store := v.stores[kind]
	return func() tea.Msg {
		return messages.ItemsLoaded{
			Kind:  kind,
			Topic: topic,
			Items: store.Load(context.Background(), topic),
		}
	}
}

// loadTopic maps the active topic to the kind's collection scope.
// Members are a single global collection.
func (v *View) loadTopic() string {
	if v.Kind() == domain.KindMember {
		return "members"
	}
	return v.state.SelectedTopic()
}

// Update handles messages for the items view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ItemsLoaded:
		if msg.Kind != v.Kind() {
			return v, nil
		}
		v.items = msg.Items
		if v.selected >= len(v.items) {
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		if v.Composing() {
			return v.updateComposing(msg)
		}
		return v.updateBrowsing(msg)
	}

	return v, nil
}

func (v *View) updateComposing(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.state.SetMode(services.ModeBrowse)
		v.input.Reset()
		return v, nil

	case "enter":
		value := strings.TrimSpace(v.input.Value())
		v.state.SetMode(services.ModeBrowse)
		v.input.Reset()
		if value == "" {
			return v, nil
		}
		draft, ok := v.draftFor(value)
		if !ok {
			return v, nil
		}
		kind := v.Kind()
		store := v.stores[kind]
		return v, func() tea.Msg {
			if _, err := store.Add(context.Background(), draft); err != nil {
				return messages.ErrorOccurred{Err: err}
			}
			return messages.ItemsLoaded{Kind: kind, Topic: draft.Topic, Items: store.Items()}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// draftFor builds a minimal draft for the compose input. Only kinds
// the backend accepts client-side creates for are composable.
func (v *View) draftFor(value string) (domain.Item, bool) {
	switch v.Kind() {
	case domain.KindCriticism:
		return domain.Item{
			Topic: v.state.SelectedTopic(),
			Kind:  domain.KindCriticism,
			Criticism: &domain.CriticismFields{
				Title:    value,
				Severity: domain.SeverityMedium,
				Tag:      domain.TagCriticism,
				Status:   domain.StatusPending,
				Mode:     domain.AnswerText,
			},
		}, true
	case domain.KindMember:
		return domain.Item{
			Topic: "members",
			Kind:  domain.KindMember,
			Member: &domain.MemberFields{
				Name:   value,
				Level:  domain.LevelMember,
				Status: domain.MemberActive,
			},
		}, true
	default:
		if v.reporter != nil {
			v.reporter.Reportf("%s entries cannot be added here", v.Kind())
		}
		return domain.Item{}, false
	}
}

func (v *View) updateBrowsing(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		v.syncSelection()

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
		v.syncSelection()

	case keymap.Matches(keyStr, v.keymap.NextKind):
		v.kindIdx = (v.kindIdx + 1) % len(kindOrder)
		v.items = nil
		v.selected = 0
		return v, v.loadCmd()

	case keymap.Matches(keyStr, v.keymap.Toggle):
		if item := v.selectedItem(); item != nil {
			v.state.Toggle(item.ID)
		}

	case keymap.Matches(keyStr, v.keymap.Add):
		v.state.SetMode(services.ModeCompose)
		v.input.Placeholder = composePlaceholder(v.Kind())
		v.input.Focus()
		return v, textinput.Blink

	case keymap.Matches(keyStr, v.keymap.Delete):
		item := v.selectedItem()
		if item == nil {
			return v, nil
		}
		id := item.ID
		kind := v.Kind()
		topic := v.loadTopic()
		store := v.stores[kind]
		return v, func() tea.Msg {
			if err := store.Remove(context.Background(), id); err != nil {
				return messages.ErrorOccurred{Err: err}
			}
			return messages.ItemsLoaded{Kind: kind, Topic: topic, Items: store.Items()}
		}
	}

	return v, nil
}

func (v *View) selectedItem() *domain.Item {
	if v.selected < 0 || v.selected >= len(v.items) {
		return nil
	}
	item := v.items[v.selected]
	return &item
}

func (v *View) syncSelection() {
	if item := v.selectedItem(); item != nil {
		v.state.SelectItem(item.ID)
	}
}

// View renders the active kind's collection.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s / %s", v.state.SelectedTopic(), v.Kind())
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if len(v.items) == 0 {
		b.WriteString(v.styles.Muted.Render("No entries."))
		b.WriteString("\n")
	}

	for i, item := range v.items {
		line := v.summaryLine(item)
		if i == v.selected && !v.Composing() {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
		if v.state.IsOpen(item.ID) {
			b.WriteString(v.styles.Muted.Render(indent(v.detailBlock(item))))
			b.WriteString("\n")
		}
	}

	if v.Composing() {
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render(v.input.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("tab: next kind | space: expand | a: add | d: delete | esc: back"))

	return b.String()
}

// summaryLine renders the one-line listing for an item.
func (v *View) summaryLine(item domain.Item) string {
	switch item.Kind {
	case domain.KindQA:
		if item.QA != nil {
			return item.QA.Question
		}
	case domain.KindCriticism:
		if item.Criticism != nil {
			return fmt.Sprintf("%s (%s, %s)", item.Criticism.Title, item.Criticism.Severity, item.Criticism.Status)
		}
	case domain.KindDocument:
		if item.Document != nil {
			return item.Document.FileName
		}
	case domain.KindMember:
		if item.Member != nil {
			return fmt.Sprintf("%s (%s)", item.Member.Name, item.Member.Role)
		}
	}
	return "(empty)"
}

// detailBlock renders the expanded panel for an item.
func (v *View) detailBlock(item domain.Item) string {
	switch item.Kind {
	case domain.KindQA:
		if item.QA == nil {
			return ""
		}
		if item.QA.Mode == domain.AnswerDocument {
			return "Document: " + item.QA.DocumentURL
		}
		return strings.Join(item.QA.TextAnswers, "\n")
	case domain.KindCriticism:
		if item.Criticism == nil {
			return ""
		}
		lines := []string{item.Criticism.Detail}
		if item.Criticism.Source != "" {
			lines = append(lines, "Source: "+item.Criticism.Source)
		}
		if item.Criticism.Mode == domain.AnswerDocument {
			lines = append(lines, "Document: "+item.Criticism.DocumentURL)
		} else {
			lines = append(lines, item.Criticism.Notes...)
		}
		return strings.Join(lines, "\n")
	case domain.KindDocument:
		if item.Document == nil {
			return ""
		}
		return item.Document.FileURL
	case domain.KindMember:
		if item.Member == nil {
			return ""
		}
		return fmt.Sprintf("%s / %s / %s / %s", item.Member.Sector, item.Member.Phone, item.Member.Email, item.Member.Level)
	}
	return ""
}

func composePlaceholder(kind domain.Kind) string {
	switch kind {
	case domain.KindCriticism:
		return "Criticism title"
	case domain.KindMember:
		return "Member name"
	default:
		return "Not supported for " + kind.String()
	}
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
