package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/storefront-search/internal/search"
	"github.com/usestring/storefront-search/pkg/client"
)

type staticLister struct {
	products   []client.Product
	categories []client.Category
	err        error
}

func (l *staticLister) ListProducts(context.Context) ([]client.Product, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.products, nil
}

func (l *staticLister) ListCategories(context.Context) ([]client.Category, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.categories, nil
}

func newLister() *staticLister {
	return &staticLister{
		products: []client.Product{
			{ID: "p1", Title: "Steam Gift Card", Category: client.CategoryRef{ID: "c1", Name: "Gaming"}},
			{ID: "p2", Title: "Netflix Voucher", Category: client.CategoryRef{ID: "c2", Name: "Streaming"}},
		},
		categories: []client.Category{
			{ID: "c1", Name: "Gaming"},
			{ID: "c2", Name: "Streaming"},
		},
	}
}

// loaded returns a model whose load command has already completed.
func loaded(t *testing.T, l search.Lister) Model {
	t.Helper()
	m := New(context.Background(), search.NewStore(l))
	require.True(t, m.loading)
	next, _ := m.Update(m.load()())
	return next.(Model)
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestModel_LoadingShowsSpinnerLine(t *testing.T) {
	m := New(context.Background(), search.NewStore(newLister()))

	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading catalog...")
}

func TestModel_LoadedClearsSpinner(t *testing.T) {
	m := loaded(t, newLister())

	assert.False(t, m.loading)
	assert.True(t, m.state.Initialized)
	assert.NotContains(t, m.View(), "Loading catalog...")
}

func TestModel_TypingSetsQuery(t *testing.T) {
	m := loaded(t, newLister())
	m = typeText(m, "gift")

	assert.Equal(t, "gift", m.store.Query())
	require.Len(t, m.state.Results, 1)
	assert.Equal(t, "p1", m.state.Results[0].ID)
	assert.Contains(t, m.View(), "Steam Gift Card")
	assert.Contains(t, m.View(), "Gaming")
}

func TestModel_EveryKeystrokeQueries(t *testing.T) {
	m := loaded(t, newLister())

	m = typeText(m, "s")
	assert.Equal(t, "s", m.store.Query())
	m = typeText(m, "t")
	assert.Equal(t, "st", m.store.Query())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(Model)
	assert.Equal(t, "s", m.store.Query())
}

func TestModel_NoResults(t *testing.T) {
	m := loaded(t, newLister())
	m = typeText(m, "zzz")

	assert.Empty(t, m.state.Results)
	assert.Contains(t, m.View(), "No results found for 'zzz'")
}

func TestModel_EscClears(t *testing.T) {
	m := loaded(t, newLister())
	m = typeText(m, "gift")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.Empty(t, m.input.Value())
	assert.Empty(t, m.store.Query())
	assert.Empty(t, m.state.Results)
	assert.NotContains(t, m.View(), "No results found")
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := loaded(t, newLister())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_QueryTypedWhileLoading(t *testing.T) {
	m := New(context.Background(), search.NewStore(newLister()))
	m = typeText(m, "netflix")
	assert.Empty(t, m.state.Results)
	assert.NotContains(t, m.View(), "No results found")

	next, _ := m.Update(m.load()())
	m = next.(Model)

	require.Len(t, m.state.Results, 1)
	assert.Equal(t, "p2", m.state.Results[0].ID)
}

func TestModel_LoadFailureAndRetry(t *testing.T) {
	l := newLister()
	l.err = errors.New("listing down")
	m := loaded(t, l)

	assert.Equal(t, "listing down", m.lastErr)
	assert.Contains(t, m.View(), "Catalog unavailable: listing down")

	l.err = nil
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	next, _ = m.Update(m.load()())
	m = next.(Model)
	assert.Empty(t, m.lastErr)
	assert.True(t, m.state.Initialized)
}

func TestModel_RetryIgnoredOnceLoaded(t *testing.T) {
	m := loaded(t, newLister())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, cmd)
	assert.False(t, next.(Model).loading)
}

func TestModel_StoreChangedReadsCurrentState(t *testing.T) {
	m := loaded(t, newLister())

	m.store.SetQuery("streaming")
	next, _ := m.Update(storeChangedMsg{})
	m = next.(Model)

	assert.Equal(t, "streaming", m.state.Query)
	assert.NotEmpty(t, m.state.Results)
}

func TestModel_WindowResize(t *testing.T) {
	m := loaded(t, newLister())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	assert.Equal(t, 80, m.width)
	assert.Equal(t, 80-len(m.input.Prompt)-1, m.input.Width)
}
