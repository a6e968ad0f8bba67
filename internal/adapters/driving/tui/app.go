package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/views/items"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/views/topics"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/views/uploads"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// topicsView is the topic catalog view.
	topicsView *topics.View

	// itemsView is the per-topic content view.
	itemsView *items.View

	// uploadsView is the staged upload queue view.
	uploadsView *uploads.View

	// statusBar renders the live status message.
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		topicsView:  topics.NewView(s, km, ports.Catalog),
		itemsView:   items.NewView(s, km, ports.Stores, ports.Reporter),
		uploadsView: uploads.NewView(s, km, ports.Uploads),
		statusBar:   status.NewBar(s, km, ports.Reporter),
		currentView: messages.ViewTopics,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("briefdesk - Topic Briefings"),
		a.topicsView.Init(),
		a.statusBar.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.topicsView.SetDimensions(msg.Width, msg.Height)
		a.itemsView.SetDimensions(msg.Width, msg.Height)
		a.uploadsView.SetDimensions(msg.Width, msg.Height)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case messages.ViewChanged:
		return a.switchView(msg.View)

	case messages.TopicsLoaded:
		a.topicsView, cmd = a.topicsView.Update(msg)
		return a, cmd

	case messages.TopicChosen:
		a.currentView = messages.ViewItems
		a.statusBar.SetHints(a.keymap.ItemsHelp())
		return a, a.itemsView.SetTopic(msg.Name)

	case messages.ItemsLoaded:
		a.itemsView, cmd = a.itemsView.Update(msg)
		return a, cmd

	case messages.UploadsRefreshed:
		a.uploadsView, cmd = a.uploadsView.Update(msg)
		return a, cmd

	case messages.StatusTick:
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// updateKey routes key presses to the active view.
func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	keyStr := msg.String()

	// Global quit with ctrl+c
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	composing := (a.currentView == messages.ViewTopics && a.topicsView.Adding()) ||
		(a.currentView == messages.ViewItems && a.itemsView.Composing())
	if !composing {
		if keymap.Matches(keyStr, a.keymap.Help) {
			return a.switchView(messages.ViewHelp)
		}
		if keymap.Matches(keyStr, a.keymap.Uploads) && a.currentView != messages.ViewUploads {
			return a.switchView(messages.ViewUploads)
		}
	}

	switch a.currentView {
	case messages.ViewTopics:
		if keyStr == "q" && !a.topicsView.Adding() {
			return a, tea.Quit
		}
		a.topicsView, cmd = a.topicsView.Update(msg)
		return a, cmd

	case messages.ViewItems:
		if msg.Type == tea.KeyEsc && !a.itemsView.Composing() {
			return a.switchView(messages.ViewTopics)
		}
		a.itemsView, cmd = a.itemsView.Update(msg)
		return a, cmd

	case messages.ViewUploads:
		if msg.Type == tea.KeyEsc {
			return a.switchView(messages.ViewTopics)
		}
		a.uploadsView, cmd = a.uploadsView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || keyStr == "q" {
			return a.switchView(messages.ViewTopics)
		}
		return a, nil
	}

	return a, nil
}

// switchView activates a view and runs its initialisation.
func (a *App) switchView(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view
	switch view {
	case messages.ViewTopics:
		a.statusBar.SetHints(a.keymap.ShortHelp())
		return a, a.topicsView.Init()
	case messages.ViewItems:
		a.statusBar.SetHints(a.keymap.ItemsHelp())
		return a, nil
	case messages.ViewUploads:
		a.statusBar.SetHints(a.keymap.ShortHelp())
		return a, a.uploadsView.Init()
	case messages.ViewHelp:
		a.statusBar.SetHints(a.keymap.ShortHelp())
		return a, nil
	}
	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewTopics:
		body = a.topicsView.View()
	case messages.ViewItems:
		body = a.itemsView.View()
	case messages.ViewUploads:
		body = a.uploadsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.topicsView.View()
	}

	if a.err != nil {
		body += "\n" + a.styles.Error.Render("Error: "+a.err.Error())
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the keybinding reference.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("esc: back"))
	return b.String()
}
