// Package providers provides the provider readiness view for the TUI.
package providers

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
)

// ErrNoRegistry indicates that no provider registry was provided.
var ErrNoRegistry = errors.New("provider registry not available")

// View lists source providers and whether each is ready to contribute.
type View struct {
	styles   *styles.Styles
	registry driving.ProviderRegistry
	settings driving.SettingsService

	statuses []domain.ProviderStatus
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new providers view.
func NewView(s *styles.Styles, registry driving.ProviderRegistry, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		registry: registry,
		settings: settings,
	}
}

// Init initialises the view and loads provider statuses.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadProviders()
}

// loadProviders returns a command that resolves readiness against the
// configured credentials.
func (v *View) loadProviders() tea.Cmd {
	return func() tea.Msg {
		if v.registry == nil {
			return messages.ProvidersLoaded{Err: ErrNoRegistry}
		}

		var creds domain.Credentials
		if v.settings != nil {
			settings, err := v.settings.Get()
			if err != nil {
				return messages.ProvidersLoaded{Err: err}
			}
			creds = settings.Credentials
		}
		return messages.ProvidersLoaded{Statuses: v.registry.Status(creds)}
	}
}

// Update handles messages for the providers view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProvidersLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.statuses = msg.Statuses
		if v.selected >= len(v.statuses) {
			v.selected = 0
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.statuses)-1 {
			v.selected++
		}
	case "r":
		v.loading = true
		return v, v.loadProviders()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// View renders the providers view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Providers"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading providers..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case len(v.statuses) == 0:
		b.WriteString(v.styles.Muted.Render("No providers registered."))
		b.WriteString("\n")
	default:
		for i := range v.statuses {
			b.WriteString(v.renderStatus(i, &v.statuses[i]))
			b.WriteString("\n")
		}
		if d := v.selectedDescription(); d != "" {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(d))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [r] reload  [esc] back"))
	return b.String()
}

// renderStatus renders one provider line.
func (v *View) renderStatus(index int, st *domain.ProviderStatus) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	state := v.styles.Muted.Render("needs key")
	if st.Ready {
		state = v.styles.Success.Render("ready")
	}

	line := fmt.Sprintf("%s%-24s %-10s %s", indicator, st.Provider.Label, st.Provider.Group, state)
	if len(st.Backend) > 0 {
		line += v.styles.Muted.Render(" (" + joinNames(st.Backend) + ")")
	}
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

func (v *View) selectedDescription() string {
	if v.selected < 0 || v.selected >= len(v.statuses) {
		return ""
	}
	st := v.statuses[v.selected]
	if st.Ready || len(st.Provider.Credentials()) == 0 {
		return st.Provider.Description
	}
	return fmt.Sprintf("%s\nKeys: %s (trustsearch config set-key <name>)",
		st.Provider.Description, joinNames(st.Provider.Credentials()))
}

func joinNames(names []domain.CredentialName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Statuses returns the loaded provider statuses.
func (v *View) Statuses() []domain.ProviderStatus {
	return v.statuses
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
