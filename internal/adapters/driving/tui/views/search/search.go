// Package search provides the topic search view for the TUI.
package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
)

// View represents the search view with topic input, sectioned results and
// status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TopicInput
	list      *list.SectionList
	statusbar *status.Bar

	aggregator driving.AggregationService
	ctx        context.Context

	options   status.Options
	lastQuery string

	width      int
	height     int
	ready      bool
	err        error
	searching  bool
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view starting from the given defaults.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	aggregator driving.AggregationService,
	defaults domain.SearchSettings,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewTopicInput(s),
		list:       list.NewSectionList(s),
		statusbar:  status.NewBar(s, km),
		aggregator: aggregator,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.SetDefaults(defaults)
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDefaults resets the search options to defaults.
func (v *View) SetDefaults(defaults domain.SearchSettings) {
	v.options = status.Options{
		MaxItems:      domain.ClampItemsPerSection(defaults.MaxItems),
		IncludeWeb:    defaults.IncludeWeb,
		IncludeVideos: defaults.IncludeVideos,
	}
	v.statusbar.SetOptions(v.options)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Forward to input component (cursor blink)
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.ToggleWeb):
		v.options.IncludeWeb = !v.options.IncludeWeb
		return v, v.optionsChanged()
	case keymap.Matches(keyStr, v.keymap.ToggleVideos):
		v.options.IncludeVideos = !v.options.IncludeVideos
		return v, v.optionsChanged()
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			if !v.input.Valid() {
				v.setError(ErrTopicTooShort)
				return v, nil
			}
			v.lastQuery = v.input.Value()
			return v, v.startSearch()
		}
		// Input mode: all other keys go to input
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(keyStr, v.keymap.More):
		return v, v.setMaxItems(v.options.MaxItems + 1)
	case keymap.Matches(keyStr, v.keymap.Less):
		return v, v.setMaxItems(v.options.MaxItems - 1)
	}
	return v, nil
}

// setMaxItems changes the per-section limit within bounds and re-runs the
// search when it changed.
func (v *View) setMaxItems(n int) tea.Cmd {
	n = domain.ClampItemsPerSection(n)
	if n == v.options.MaxItems {
		return nil
	}
	v.options.MaxItems = n
	return v.optionsChanged()
}

// optionsChanged updates the status bar and re-runs the last search when
// results are showing.
func (v *View) optionsChanged() tea.Cmd {
	v.statusbar.SetOptions(v.options)
	if v.focusInput || v.lastQuery == "" {
		return nil
	}
	return v.startSearch()
}

func (v *View) startSearch() tea.Cmd {
	v.err = nil
	v.searching = true
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage("")
	return v.performSearch(v.request())
}

// request builds the aggregation request for the current topic and options.
func (v *View) request() domain.AggregateRequest {
	return domain.AggregateRequest{
		Query:              v.lastQuery,
		MaxItemsPerSection: v.options.MaxItems,
		IncludeWeb:         v.options.IncludeWeb,
		IncludeVideo:       v.options.IncludeVideos,
	}
}

// performSearch runs the aggregation and reports the outcome.
func (v *View) performSearch(req domain.AggregateRequest) tea.Cmd {
	return func() tea.Msg {
		if v.aggregator == nil {
			return messages.ErrorOccurred{Err: ErrNoAggregator}
		}

		start := time.Now()
		results, err := v.aggregator.Aggregate(v.ctx, req)
		return messages.SearchCompleted{
			Request: req,
			Results: results,
			Elapsed: time.Since(start),
			Err:     err,
		}
	}
}

// handleSearchCompleted processes results. Results for a request other than
// the current one are stale and dropped.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Request != v.request() {
		return
	}
	v.searching = false

	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResults(msg.Results.TotalItems(), msg.Elapsed)
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.searching = false
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	parts := make([]string, 0, 8)
	parts = append(parts, v.styles.Title.Render("trustsearch"), "", v.input.View(), "")

	if v.err != nil {
		parts = append(parts, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.searching {
		parts = append(parts, v.styles.Muted.Render("Searching encyclopedias, journals and more..."))
	} else {
		parts = append(parts, v.list.View())
	}

	parts = append(parts, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Reserve space for header, input and status
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current input value.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input value.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current sectioned results.
func (v *View) Results() domain.SectionedResults {
	return v.list.Results()
}

// SelectedItem returns the highlighted item, or nil.
func (v *View) SelectedItem() *domain.CandidateItem {
	item, _ := v.list.SelectedItem()
	return item
}

// Options returns the current search options.
func (v *View) Options() status.Options {
	return v.options
}

// Searching reports whether a search is in flight.
func (v *View) Searching() bool {
	return v.searching
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to input mode with no results.
func (v *View) Reset() {
	v.focusInput = true
	v.searching = false
	v.input.Focus()
	v.input.SetValue("")
	v.lastQuery = ""
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
