package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/usestring/storefront-search/internal/search"
	"github.com/usestring/storefront-search/pkg/types"
)

// Run starts the search box and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, store *search.Store, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(New(ctx, store), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	// Store listeners run on whichever goroutine changed the store, which
	// may be the program's own event loop, so they must never block on
	// p.Send. Changes are coalesced into a one-slot channel and forwarded.
	changed := make(chan struct{}, 1)
	unsubscribe := store.Subscribe(func(types.SearchState) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-changed:
				p.Send(storeChangedMsg{})
			}
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
