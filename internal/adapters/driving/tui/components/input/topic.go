// Package input provides text input components for the TUI.
package input

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// charLimit bounds the topic length.
const charLimit = 256

// TopicInput wraps a bubbles textinput for entering a research topic.
type TopicInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewTopicInput creates a new topic input component.
func NewTopicInput(s *styles.Styles) *TopicInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Enter a topic, e.g. CRISPR gene editing"
	ti.Focus()
	ti.CharLimit = charLimit
	ti.Width = 50

	return &TopicInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the topic input.
func (t *TopicInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (t *TopicInput) Update(msg tea.Msg) (*TopicInput, tea.Cmd) {
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the topic input.
func (t *TopicInput) View() string {
	label := t.styles.Title.Render("Topic: ")
	field := t.styles.InputField.Render(t.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (t *TopicInput) Value() string {
	return t.textinput.Value()
}

// SetValue sets the input value.
func (t *TopicInput) SetValue(value string) {
	t.textinput.SetValue(value)
}

// Valid reports whether the trimmed topic is long enough to search.
func (t *TopicInput) Valid() bool {
	return utf8.RuneCountInString(strings.TrimSpace(t.Value())) >= domain.MinQueryLength
}

// Focus sets focus on the input.
func (t *TopicInput) Focus() tea.Cmd {
	return t.textinput.Focus()
}

// Blur removes focus from the input.
func (t *TopicInput) Blur() {
	t.textinput.Blur()
}

// Focused returns whether the input is focused.
func (t *TopicInput) Focused() bool {
	return t.textinput.Focused()
}

// SetWidth sets the width of the input.
func (t *TopicInput) SetWidth(width int) {
	t.width = width
	// Account for label and padding
	t.textinput.Width = max(width-12, 20)
}

// Width returns the current width.
func (t *TopicInput) Width() int {
	return t.width
}

// Reset clears the input.
func (t *TopicInput) Reset() {
	t.textinput.Reset()
}
