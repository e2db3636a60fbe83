package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partituras/internal/domain"
)

type fakePort struct {
	docs []domain.Document
}

func (p *fakePort) List() []domain.Document { return p.docs }

func (p *fakePort) Get(id int64) (domain.Document, error) {
	for _, d := range p.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Document{}, fmt.Errorf("score %d: %w", id, domain.ErrNotFound)
}

// Similar returns the following scores in id order, wrapping around.
func (p *fakePort) Similar(id int64, count int) ([]domain.Scored, error) {
	if _, err := p.Get(id); err != nil {
		return nil, err
	}
	var out []domain.Scored
	for i := 1; i <= len(p.docs)-1 && len(out) < count; i++ {
		next := p.docs[(int(id)-1+i)%len(p.docs)]
		out = append(out, domain.Scored{Document: next, Distance: float64(i) / 10})
	}
	return out, nil
}

func newPort(n int) *fakePort {
	p := &fakePort{}
	for i := 1; i <= n; i++ {
		p.docs = append(p.docs, domain.Document{
			ID:     int64(i),
			Title:  fmt.Sprintf("Score %d", i),
			Author: "Tárrega",
			Genre:  "Romantic",
			Tempo:  "Andante",
			Notes:  []string{"E", "B"},
			Keys:   []string{"Sol"},
		})
	}
	return p
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	right = tea.KeyMsg{Type: tea.KeyRight}
	slash = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, n int) Model {
	t.Helper()
	m := New(newPort(n), "12 scores", Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return next.(Model)
}

func TestModel_ListPagination(t *testing.T) {
	m := newModel(t, 12)

	assert.Equal(t, 3, m.pages.TotalPages)
	assert.Contains(t, m.View(), "Score 5")
	assert.NotContains(t, m.View(), "Score 6")

	m = press(t, m, right)
	assert.Equal(t, 1, m.pages.Page)
	assert.Equal(t, 5, m.cursor)
	assert.Contains(t, m.View(), "Score 6")
	assert.NotContains(t, m.View(), "Score 5 ")
}

func TestModel_OpenDetail(t *testing.T) {
	m := newModel(t, 12)

	m = press(t, m, down, enter)
	require.Equal(t, screenDetail, m.screen)
	assert.Equal(t, int64(2), m.current.ID)
	assert.Len(t, m.similar, 5)

	view := m.View()
	assert.Contains(t, view, "Andante")
	assert.Contains(t, view, "You might also like")
}

func TestModel_NavigationStack(t *testing.T) {
	m := newModel(t, 12)

	m = press(t, m, enter) // score 1
	m = press(t, m, down, enter)
	assert.Equal(t, int64(3), m.current.ID)
	m = press(t, m, enter)
	assert.Equal(t, int64(4), m.current.ID)
	assert.Equal(t, []int64{1, 3}, m.history)

	m = press(t, m, esc)
	assert.Equal(t, int64(3), m.current.ID)
	m = press(t, m, esc)
	assert.Equal(t, int64(1), m.current.ID)
	m = press(t, m, esc)
	assert.Equal(t, screenList, m.screen)
}

func TestModel_JumpToID(t *testing.T) {
	m := newModel(t, 12)

	m = press(t, m, slash)
	require.True(t, m.input.Focused())
	m = press(t, m, runes("1"), runes("1"), enter)
	assert.False(t, m.input.Focused())
	assert.Equal(t, screenDetail, m.screen)
	assert.Equal(t, int64(11), m.current.ID)

	m = press(t, m, slash, runes("9"), runes("9"), enter)
	assert.Equal(t, int64(11), m.current.ID)
	assert.Contains(t, m.status, "not found")
}

func TestModel_QuitKeys(t *testing.T) {
	m := newModel(t, 3)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	// typing q into the id box does not quit
	m = press(t, m, slash, runes("q"))
	assert.True(t, m.input.Focused())
}

func TestModel_EmptyCatalog(t *testing.T) {
	m := newModel(t, 0)

	m = press(t, m, enter)
	assert.Equal(t, screenList, m.screen)
	assert.Contains(t, m.View(), "No scores loaded.")
}
