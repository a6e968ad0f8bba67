// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
)

// tickInterval is how often the bar re-reads the reporter so expired
// messages disappear without user input.
const tickInterval = time.Second

// Bar displays the live status message and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	reporter driving.StatusReporter
	hints    []key.Binding
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap, reporter driving.StatusReporter) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		keymap:   km,
		reporter: reporter,
		hints:    km.ShortHelp(),
		width:    80,
	}
}

// Init starts the expiry tick loop.
func (b *Bar) Init() tea.Cmd {
	return TickCmd()
}

// TickCmd schedules the next status refresh tick.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return messages.StatusTick{At: t}
	})
}

// Update handles status bar messages.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(messages.StatusTick); ok {
		// Nothing to mutate; View re-reads the reporter. Keep ticking
		// so expiry shows up.
		return b, TickCmd()
	}
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the live reporter message.
func (b *Bar) renderLeft() string {
	if b.reporter != nil {
		if msg := b.reporter.Current(); msg != "" {
			return b.styles.Normal.Render(msg)
		}
	}
	return b.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, binding := range b.hints {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetHints sets the keybinding hints shown on the right.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
