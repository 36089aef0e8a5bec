// Package tui is an interactive terminal search box over a search store.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/usestring/storefront-search/internal/search"
	"github.com/usestring/storefront-search/pkg/types"
)

// storeChangedMsg tells the model the store notified its listeners. The
// model reads the store's current state rather than carrying a copy, so a
// late message never rolls the view back.
type storeChangedMsg struct{}

// loadedMsg is returned by the load command once Initialize has returned.
type loadedMsg struct {
	status types.StoreStatus
}

// Model is the bubbletea model for the search box.
type Model struct {
	ctx   context.Context
	store *search.Store

	input   textinput.Model
	spinner spinner.Model

	state   types.SearchState
	loading bool
	lastErr string
	width   int
}

// New creates a search box bound to store. ctx bounds the snapshot load.
func New(ctx context.Context, store *search.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Search products and categories"
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)

	return Model{
		ctx:     ctx,
		store:   store,
		input:   ti,
		spinner: sp,
		state:   store.State(),
		loading: !store.Initialized(),
	}
}

func (m Model) Init() tea.Cmd {
	if !m.loading {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.load())
}

// load runs Initialize off the event loop.
func (m Model) load() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		store.Initialize(ctx)
		return loadedMsg{status: store.Status()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		return m, nil

	case storeChangedMsg:
		m.state = m.store.State()
		return m, nil

	case loadedMsg:
		m.loading = false
		m.lastErr = msg.status.LastError
		m.state = m.store.State()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.input.SetValue("")
		m.store.Clear()
		m.state = m.store.State()
		return m, nil

	case "ctrl+r":
		if m.loading || m.store.Initialized() {
			return m, nil
		}
		m.loading = true
		m.lastErr = ""
		return m, tea.Batch(m.spinner.Tick, m.load())
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.store.SetQuery(v)
		m.state = m.store.State()
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Storefront search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), dimStyle.Render("Loading catalog..."))
	case m.lastErr != "" && !m.state.Initialized:
		b.WriteString(errorStyle.Render("Catalog unavailable: "+m.lastErr) + "\n")
		b.WriteString(dimStyle.Render("ctrl+r to retry") + "\n")
	}

	query := strings.TrimSpace(m.state.Query)
	if !m.loading && query != "" && len(m.state.Results) == 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("No results found for '%s'", query)) + "\n")
	}

	for _, r := range m.state.Results {
		b.WriteString(renderResult(r) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("esc clear • ctrl+c quit"))
	return b.String()
}

func renderResult(r types.SearchResult) string {
	if r.Type == types.ResultCategory {
		return categoryStyle.Render("# " + r.Title)
	}
	line := productStyle.Render("  " + r.Title)
	if r.Category != "" {
		line += dimStyle.Render("  · " + r.Category)
	}
	return line
}
