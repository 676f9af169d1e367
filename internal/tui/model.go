// Package tui is the interactive terminal front-end: a search box over a
// scrollable list of company cards, re-rendered on every keystroke.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gcbaptista/mfg-search/model"
	"github.com/gcbaptista/mfg-search/services"
)

const noResultsText = "No results found."

// Model is the Bubble Tea model for the terminal search client.
type Model struct {
	client   services.Renderer
	input    textinput.Model
	viewport viewport.Model
	view     model.ViewModel
	summary  string
	ready    bool
}

// New creates a model showing the idle listing.
func New(client services.Renderer, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Search manufacturers"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		client:   client,
		input:    ti,
		viewport: vp,
		view:     client.Render(""),
		summary:  summary,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(RenderCards(m.view, m.viewport.Width))
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.view = m.client.Render(m.input.Value())
		m.viewport.SetContent(RenderCards(m.view, m.viewport.Width))
		m.viewport.GotoTop()
	}
	return m, cmd
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Manufacturer Search")
	summary := dimStyle.Render(m.summary)
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(StatusLine(m.view))
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

// ViewModel returns the view currently shown.
func (m Model) ViewModel() model.ViewModel {
	return m.view
}

// StatusLine describes the state of the result list in one line.
func StatusLine(vm model.ViewModel) string {
	switch vm.State {
	case model.ViewStateIdle:
		return fmt.Sprintf("%d companies", vm.Total)
	case model.ViewStateResults:
		if vm.Total == 1 {
			return "1 result"
		}
		return fmt.Sprintf("%d results", vm.Total)
	default:
		return noResultsText
	}
}

// RenderCards draws every card of the view, emphasized spans styled.
func RenderCards(vm model.ViewModel, width int) string {
	if vm.State.IsEmpty() {
		return noResultsText
	}

	cardStyle := lipgloss.NewStyle().MarginBottom(1)
	if width > 0 {
		cardStyle = cardStyle.Width(width)
	}

	var b strings.Builder
	for _, card := range vm.Cards {
		var lines []string
		lines = append(lines, renderSpans(card.Title, &titleStyle))
		lines = append(lines, dimStyle.Render(card.URL))
		for _, section := range card.Sections {
			lines = append(lines, labelStyle.Render(section.Label+":")+" "+renderSpans(section.Spans, nil))
		}
		b.WriteString(cardStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderSpans joins spans, styling plain ones with base when it is set.
func renderSpans(spans []model.Span, base *lipgloss.Style) string {
	var b strings.Builder
	for _, span := range spans {
		switch {
		case span.Highlight:
			b.WriteString(highlightStyle.Render(span.Text))
		case base != nil:
			b.WriteString(base.Render(span.Text))
		default:
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
