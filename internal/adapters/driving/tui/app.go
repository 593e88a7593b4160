// Package tui provides the interactive terminal search interface,
// following the Elm architecture via Bubbletea.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driving"
)

const resultLimit = 20

// styles holds the lipgloss styles used by the app.
type appStyles struct {
	title    lipgloss.Style
	prompt   lipgloss.Style
	result   lipgloss.Style
	selected lipgloss.Style
	source   lipgloss.Style
	errText  lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() appStyles {
	return appStyles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		result:   lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		source:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// resultsMsg carries search results back into the update loop.
type resultsMsg struct {
	query   string
	results []domain.SearchResult
}

// errMsg carries a search failure back into the update loop.
type errMsg struct {
	err error
}

// App is the TUI application model.
type App struct {
	search driving.SearchService
	ctx    context.Context

	input        textinput.Model
	styles       appStyles
	results      []domain.SearchResult
	query        string
	initialQuery string
	selected     int
	err          error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the search TUI over the given search service.
func NewApp(search driving.SearchService) *App {
	input := textinput.New()
	input.Placeholder = "Search your memory pack..."
	input.Focus()
	input.CharLimit = 256

	return &App{
		search: search,
		ctx:    context.Background(),
		input:  input,
		styles: defaultStyles(),
	}
}

// WithContext sets the context used for search calls.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// WithQuery pre-fills the input and runs the query on startup.
func (a *App) WithQuery(query string) {
	a.initialQuery = query
	a.input.SetValue(query)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.initialQuery != "" {
		return tea.Batch(textinput.Blink, a.searchCmd(a.initialQuery))
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case resultsMsg:
		a.query = msg.query
		a.results = msg.results
		a.selected = 0
		a.err = nil
		return a, nil

	case errMsg:
		a.err = msg.err
		a.results = nil
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if !a.input.Focused() {
				return a, tea.Quit
			}
		case "enter":
			query := a.input.Value()
			if query != "" {
				return a, a.searchCmd(query)
			}
			return a, nil
		case "esc":
			if a.input.Value() != "" || len(a.results) > 0 {
				a.input.SetValue("")
				a.results = nil
				a.query = ""
				a.err = nil
				a.input.Focus()
				return a, nil
			}
			return a, tea.Quit
		case "up", "k":
			if !a.input.Focused() && a.selected > 0 {
				a.selected--
				return a, nil
			}
		case "down", "j":
			if !a.input.Focused() && a.selected < len(a.results)-1 {
				a.selected++
				return a, nil
			}
		case "tab":
			if a.input.Focused() {
				a.input.Blur()
			} else {
				a.input.Focus()
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// searchCmd runs the query asynchronously.
func (a *App) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.search.Search(a.ctx, query, domain.SearchOptions{Limit: resultLimit})
		if err != nil {
			return errMsg{err: err}
		}
		return resultsMsg{query: query, results: results}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	s := a.styles.title.Render("mempack") + "\n\n"
	s += a.styles.prompt.Render("> ") + a.input.View() + "\n\n"

	switch {
	case a.err != nil:
		s += a.styles.errText.Render(fmt.Sprintf("Error: %v", a.err)) + "\n"
	case a.query != "" && len(a.results) == 0:
		s += a.styles.source.Render("No results.") + "\n"
	default:
		for i := range a.results {
			line := fmt.Sprintf("[%d] %s", i+1, a.results[i].Snippet)
			if i == a.selected && !a.input.Focused() {
				s += a.styles.selected.Render("▸ "+line) + "\n"
			} else {
				s += a.styles.result.Render("  "+line) + "\n"
			}
			s += a.styles.source.Render("    "+a.results[i].SourceRef) + "\n"
		}
	}

	s += "\n" + a.styles.help.Render("enter search · tab focus · ↑/↓ navigate · esc clear · q quit")
	return s
}

// Results returns the current result set. Used by tests.
func (a *App) Results() []domain.SearchResult {
	return a.results
}

// Selected returns the index of the highlighted result. Used by tests.
func (a *App) Selected() int {
	return a.selected
}
