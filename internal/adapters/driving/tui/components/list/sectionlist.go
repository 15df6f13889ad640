// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// position locates one item inside the sectioned results.
type position struct {
	section int
	item    int
}

// SectionList displays sectioned results with a single cursor that moves
// across items of every section.
type SectionList struct {
	results   domain.SectionedResults
	positions []position
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewSectionList creates a new section list component.
func NewSectionList(s *styles.Styles) *SectionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SectionList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the section list.
func (l *SectionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *SectionList) Update(msg tea.Msg) (*SectionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the sections. Only the lines around the cursor that fit the
// height are shown.
func (l *SectionList) View() string {
	if len(l.results) == 0 {
		return l.styles.Muted.Render("No results")
	}

	lines, cursorLine := l.render()

	height := max(l.height, 3)
	if len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := max(cursorLine-height/3, 0)
	start = min(start, len(lines)-height)
	return strings.Join(lines[start:start+height], "\n")
}

// render returns every line and the index of the first line of the
// selected item.
func (l *SectionList) render() ([]string, int) {
	lines := make([]string, 0, l.Count()*3+len(l.results)*2)
	cursorLine := 0
	flat := 0

	for si, section := range l.results {
		if si > 0 {
			lines = append(lines, "")
		}
		header := fmt.Sprintf("%s (%d)", section.Label, len(section.Items))
		lines = append(lines, l.styles.Section.Render(header))

		if len(section.Items) == 0 {
			lines = append(lines, l.styles.Muted.Render("  (no results)"))
			continue
		}
		for ii := range section.Items {
			if flat == l.selected {
				cursorLine = len(lines)
			}
			lines = append(lines, l.renderItem(&section.Items[ii], flat == l.selected)...)
			flat++
		}
	}
	return lines, cursorLine
}

// renderItem formats one item as a title line, a metadata line with the
// score badge, and an optional snippet line.
func (l *SectionList) renderItem(item *domain.CandidateItem, selected bool) []string {
	indicator := "  "
	if selected {
		indicator = "> "
	}

	title := truncate(item.Title, max(l.width-6, 10))
	var titleLine string
	if selected {
		titleLine = l.styles.Selected.Render(indicator + title)
	} else {
		titleLine = l.styles.Normal.Render(indicator + title)
	}

	score := item.ScoreValue()
	meta := "    " + l.styles.Score(score).Render(fmt.Sprintf("%.0f/100", score)) +
		l.styles.Muted.Render(" · "+MetaLine(item))
	lines := []string{titleLine, meta}

	if item.URL != "" {
		lines = append(lines, "    "+l.styles.Link.Render(truncate(item.URL, max(l.width-6, 20))))
	}
	if selected && item.Snippet != "" {
		lines = append(lines, l.styles.Muted.Render("    "+truncate(item.Snippet, max(l.width-6, 20))))
	}
	return lines
}

// MetaLine describes an item's source, year and citations, e.g.
// "Crossref · 2021 · 140 citations".
func MetaLine(item *domain.CandidateItem) string {
	parts := []string{item.Source}
	if item.Meta.Year != nil {
		parts = append(parts, fmt.Sprintf("%d", *item.Meta.Year))
	}
	if item.Meta.Citations > 0 && item.Kind.IsScholarly() {
		parts = append(parts, fmt.Sprintf("%.0f citations", item.Meta.Citations))
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetResults replaces the results and moves the cursor to the first item.
func (l *SectionList) SetResults(results domain.SectionedResults) {
	l.results = results
	l.selected = 0
	l.positions = l.positions[:0]
	for si, section := range results {
		for ii := range section.Items {
			l.positions = append(l.positions, position{section: si, item: ii})
		}
	}
}

// Results returns the current results.
func (l *SectionList) Results() domain.SectionedResults {
	return l.results
}

// Selected returns the flat index of the selected item.
func (l *SectionList) Selected() int {
	return l.selected
}

// SelectedItem returns the selected item and its section label, or nil
// when there are no items.
func (l *SectionList) SelectedItem() (*domain.CandidateItem, string) {
	if l.selected < 0 || l.selected >= len(l.positions) {
		return nil, ""
	}
	p := l.positions[l.selected]
	section := &l.results[p.section]
	return &section.Items[p.item], section.Label
}

// MoveUp moves selection up.
func (l *SectionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SectionList) MoveDown() {
	if l.selected < len(l.positions)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SectionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items across all sections.
func (l *SectionList) Count() int {
	return len(l.positions)
}

// IsEmpty returns whether the list holds no items.
func (l *SectionList) IsEmpty() bool {
	return len(l.positions) == 0
}
