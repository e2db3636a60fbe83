package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"partituras/internal/domain"
)

// BrowsePort is the TUI-facing subset of the recommendation engine.
type BrowsePort interface {
	List() []domain.Document
	Get(id int64) (domain.Document, error)
	Similar(id int64, count int) ([]domain.Scored, error)
}

// Options configures the browser layout.
type Options struct {
	PageSize        int
	Recommendations int
}

type screen int

const (
	screenList screen = iota
	screenDetail
)

// Model is the Bubble Tea model for the score browser.
type Model struct {
	service BrowsePort
	opts    Options
	summary string
	status  string
	ready   bool

	screen screen
	scores []domain.Document
	pages  paginator.Model
	cursor int // index into scores

	// detail view
	current  domain.Document
	similar  []domain.Scored
	selected int
	history  []int64

	input    textinput.Model
	viewport viewport.Model
}

// New creates a new TUI model instance.
func New(service BrowsePort, summary string, opts Options) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = 5
	}
	if opts.Recommendations <= 0 {
		opts.Recommendations = 5
	}

	ti := textinput.New()
	ti.Prompt = "id> "
	ti.Placeholder = "press / and type a score id"
	ti.CharLimit = 19
	ti.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return errors.New("digits only")
		}
		return nil
	}

	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.PerPage = opts.PageSize

	scores := service.List()
	pg.SetTotalPages(len(scores))

	return Model{
		service:  service,
		opts:     opts,
		summary:  summary,
		status:   "Enter opens a score, / jumps to an id, q quits.",
		scores:   scores,
		pages:    pg,
		input:    ti,
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := boxStyle.GetFrameSize()
		// header + summary + input + status
		vh := msg.Height - 4 - fh
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, vh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			m.input.SetValue("")
			return m, m.input.Focus()
		}
		if m.screen == screenDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.input.SetValue("")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			m.status = fmt.Sprintf("Not a score id: %q", raw)
			return m, nil
		}
		m.open(id, m.screen == screenDetail)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	start, end := m.pages.GetSliceBounds(len(m.scores))
	switch msg.String() {
	case "up", "k":
		if m.cursor > start {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < end-1 {
			m.cursor++
		}
	case "enter":
		if len(m.scores) > 0 {
			m.open(m.scores[m.cursor].ID, false)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		before := m.pages.Page
		m.pages, cmd = m.pages.Update(msg)
		if m.pages.Page != before {
			m.cursor, _ = m.pages.GetSliceBounds(len(m.scores))
		}
		m.refresh()
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.back()
		return m, nil
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.similar)-1 {
			m.selected++
		}
	case "enter":
		if len(m.similar) > 0 {
			m.open(m.similar[m.selected].Document.ID, true)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

// open shows the detail of id. With push set, the score on screen is kept
// on the history stack so Esc returns to it.
func (m *Model) open(id int64, push bool) {
	doc, err := m.service.Get(id)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	similar, err := m.service.Similar(id, m.opts.Recommendations)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	if push && m.screen == screenDetail {
		m.history = append(m.history, m.current.ID)
	}
	m.screen = screenDetail
	m.current = doc
	m.similar = similar
	m.selected = 0
	m.status = "Enter follows a recommendation, Esc goes back."
	m.viewport.GotoTop()
	m.refresh()
}

func (m *Model) back() {
	if n := len(m.history); n > 0 {
		prev := m.history[n-1]
		m.history = m.history[:n-1]
		m.open(prev, false)
		return
	}
	m.screen = screenList
	m.status = "Enter opens a score, / jumps to an id, q quits."
	m.refresh()
}

func (m *Model) refresh() {
	if m.screen == screenDetail {
		m.viewport.SetContent(m.renderDetail())
		return
	}
	m.viewport.SetContent(m.renderList())
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render("Partituras")
	summary := mutedStyle.Render(m.summary)
	body := boxStyle.Render(m.viewport.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + body + "\n" + m.input.View() + "\n" + status
}

func (m Model) renderList() string {
	if len(m.scores) == 0 {
		return "No scores loaded."
	}
	var b strings.Builder
	start, end := m.pages.GetSliceBounds(len(m.scores))
	for i, d := range m.scores[start:end] {
		line := fmt.Sprintf("%-6d %s - %s", d.ID, d.Title, d.Author)
		if start+i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.pages.View())
	return b.String()
}

func (m Model) renderDetail() string {
	d := m.current
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title) + "\n\n")
	fmt.Fprintf(&b, "Author: %s\n", d.Author)
	fmt.Fprintf(&b, "Genre:  %s\n", d.Genre)
	if d.Tempo != "" {
		fmt.Fprintf(&b, "Tempo:  %s\n", d.Tempo)
	}
	fmt.Fprintf(&b, "Keys:   %s\n", strings.Join(d.Keys, ", "))
	fmt.Fprintf(&b, "Notes:  %s\n", strings.Join(d.Notes, " "))

	b.WriteString("\n" + titleStyle.Render("You might also like") + "\n")
	if len(m.similar) == 0 {
		b.WriteString(mutedStyle.Render("Nothing similar yet.") + "\n")
	}
	for i, s := range m.similar {
		line := fmt.Sprintf("%s - %s  (%.3f)", s.Document.Title, s.Document.Author, s.Distance)
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

var (
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
