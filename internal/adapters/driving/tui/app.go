package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/views/providers"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/logger"
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

	menuView      *menu.View
	searchView    *search.View
	providersView *providers.View

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
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingAggregator)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		searchView:    search.NewView(s, keymap.DefaultKeyMap(), ports.Aggregator, searchDefaults(ports)),
		providersView: providers.NewView(s, ports.Providers, ports.Settings),
		currentView:   messages.ViewMenu,
	}, nil
}

// searchDefaults reads the configured search options, falling back to the
// built-in defaults when settings are unavailable.
func searchDefaults(ports *Ports) domain.SearchSettings {
	if ports.Settings == nil {
		return domain.DefaultAppSettings().Search
	}
	settings, err := ports.Settings.Get()
	if err != nil || settings == nil {
		logger.Warn("tui: using default search settings: %v", err)
		return domain.DefaultAppSettings().Search
	}
	return settings.Search
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("trustsearch"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			a.err = a.searchView.Err()
		case messages.ViewProviders:
			a.providersView, cmd = a.providersView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.ProvidersLoaded:
		a.providersView, cmd = a.providersView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.SetDefaults(searchDefaults(a.ports))
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewProviders:
			return a, a.providersView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewProviders:
		a.providersView, cmd = a.providersView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewProviders:
		return a.providersView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Search:
  (type)      Enter a topic (3+ characters)
  enter       Submit search
  ctrl+w      Toggle web results
  ctrl+y      Toggle videos

Results:
  j/k, ↑/↓    Navigate results
  +/-         More or fewer items per section
  n           New search
  esc         Back to Menu

Providers:
  r           Reload readiness

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current topic input.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current sectioned results.
func (a *App) Results() domain.SectionedResults {
	return a.searchView.Results()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and propagates them to views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.providersView.SetDimensions(width, height)
}
