// Package ui renders the interactive search widget: a query input, a
// result dropdown, and a profile detail modal, composed as a bubbletea
// model. All state transitions flow through the search controller's
// update stream; the model itself only routes keys and re-renders.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/userpeek/userpeek/internal/platform"
	"github.com/userpeek/userpeek/internal/search"
)

// AvatarResolver is the resolver surface the widget drives: batch
// prefetch after each result set, plus the lookup used for rendering.
// Satisfied by *avatar.Resolver.
type AvatarResolver interface {
	AvatarLookup
	Resolve(ctx context.Context, ids []int64)
}

// ProfileLinker builds the outbound profile link for a user id.
// Satisfied by *platform.Client.
type ProfileLinker interface {
	ProfileURL(id int64) string
}

// Config wires the widget's collaborators.
type Config struct {
	Controller *search.Controller
	Avatars    AvatarResolver
	Linker     ProfileLinker
	NoColor    bool
}

// Messages for the bubbletea event loop.
type (
	// controllerMsg delivers one update from the search controller.
	controllerMsg search.Update
	// streamClosedMsg signals the controller's stream has ended.
	streamClosedMsg struct{}
	// avatarsMsg signals a batch resolve finished (cache updated).
	avatarsMsg struct{}
)

// Widget is the bubbletea model for the search-and-select interaction.
type Widget struct {
	cfg      Config
	input    textinput.Model
	spin     spinner.Model
	dropdown search.Dropdown
	selected *platform.User
	cursor   int
	width    int
	height   int
	styles   Styles
	quitting bool
}

// New creates the widget model with the query input focused.
func New(cfg Config) *Widget {
	styles := GetStyles(cfg.NoColor)

	input := textinput.New()
	input.Placeholder = "Search users"
	input.Prompt = "🔍 "
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	return &Widget{
		cfg:    cfg,
		input:  input,
		spin:   spin,
		styles: styles,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (w *Widget) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		w.spin.Tick,
		w.waitForUpdate(),
	)
}

// waitForUpdate returns a command that blocks on the controller's
// update stream. Re-issued after every delivered update.
func (w *Widget) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		u, ok := <-w.cfg.Controller.Updates()
		if !ok {
			return streamClosedMsg{}
		}
		return controllerMsg(u)
	}
}

// resolveAvatars returns a command that prefetches thumbnails for ids.
// The resolver swallows failures, so this always completes.
func (w *Widget) resolveAvatars(ids []int64) tea.Cmd {
	return func() tea.Msg {
		w.cfg.Avatars.Resolve(context.Background(), ids)
		return avatarsMsg{}
	}
}

// Update implements tea.Model.
func (w *Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return w.handleKey(msg)

	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.input.Width = msg.Width - 8
		return w, nil

	case controllerMsg:
		w.dropdown.Apply(search.Update(msg))
		cmds := []tea.Cmd{w.waitForUpdate()}
		if msg.Kind == search.UpdateResults && len(msg.Users) > 0 {
			w.cursor = 0
			ids := make([]int64, len(msg.Users))
			for i, u := range msg.Users {
				ids[i] = u.ID
			}
			cmds = append(cmds, w.resolveAvatars(ids))
		}
		return w, tea.Batch(cmds...)

	case avatarsMsg:
		// Cache updated; re-render picks up resolved URLs.
		return w, nil

	case streamClosedMsg:
		return w, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		return w, cmd
	}

	return w, nil
}

// handleKey routes a keystroke. The modal captures input while open;
// otherwise keys go to navigation or the text input.
func (w *Widget) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		w.quitting = true
		w.cfg.Controller.Stop()
		return w, tea.Quit
	}

	if w.selected != nil {
		// Modal open: only dismissal is meaningful. Closing clears
		// the selection and nothing else.
		switch msg.String() {
		case "esc", "q", "enter":
			w.selected = nil
		}
		return w, nil
	}

	switch msg.String() {
	case "esc":
		if w.dropdown.Visible() {
			// Outside-click equivalent: hide the dropdown without
			// cancelling anything in flight.
			w.dropdown.Dismiss()
			return w, nil
		}
		w.quitting = true
		w.cfg.Controller.Stop()
		return w, tea.Quit

	case "up":
		if w.dropdown.State == search.StatePopulated {
			w.cursor--
			if w.cursor < 0 {
				w.cursor = len(w.dropdown.Users) - 1
			}
		}
		return w, nil

	case "down":
		if w.dropdown.State == search.StatePopulated {
			w.cursor++
			if w.cursor >= len(w.dropdown.Users) {
				w.cursor = 0
			}
		}
		return w, nil

	case "enter":
		if w.dropdown.State == search.StatePopulated && w.cursor < len(w.dropdown.Users) {
			user := w.dropdown.Users[w.cursor]
			w.selected = &user
			w.input.SetValue("")
			w.cursor = 0
			w.dropdown.Dismiss()
			// Resetting the query invalidates any in-flight cycle.
			w.cfg.Controller.SetQuery("")
			if !w.cfg.Avatars.Resolved(user.ID) {
				return w, w.resolveAvatars([]int64{user.ID})
			}
		}
		return w, nil
	}

	// Everything else edits the query.
	prev := w.input.Value()
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if w.input.Value() != prev {
		w.cfg.Controller.SetQuery(w.input.Value())
	}
	return w, cmd
}

// View implements tea.Model.
func (w *Widget) View() string {
	if w.quitting {
		return ""
	}

	if w.selected != nil {
		return renderModal(*w.selected,
			w.cfg.Avatars.URL(w.selected.ID),
			w.cfg.Linker.ProfileURL(w.selected.ID),
			w.styles, w.width, w.height)
	}

	sections := []string{w.input.View()}

	if w.dropdown.Visible() {
		panelWidth := w.width - 4
		if panelWidth < 30 {
			panelWidth = 30
		}
		sections = append(sections, renderDropdown(
			w.dropdown, w.cursor, w.cfg.Avatars, w.spin.View(), w.styles, panelWidth))
	}

	sections = append(sections, w.styles.Dim.Render("↑/↓ navigate · enter select · esc dismiss"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Selected returns the currently selected user, if any.
func (w *Widget) Selected() *platform.User {
	return w.selected
}

// Dropdown exposes the dropdown state for tests.
func (w *Widget) Dropdown() search.Dropdown {
	return w.dropdown
}

// Query returns the current query text.
func (w *Widget) Query() string {
	return w.input.Value()
}

// Run starts the widget under a bubbletea program on the alternate
// screen and blocks until the user quits.
func Run(cfg Config) error {
	program := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Ensure Widget implements tea.Model.
var _ tea.Model = (*Widget)(nil)
