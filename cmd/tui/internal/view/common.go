package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

// CommonModel is embedded by every screen that works on a single user.
type CommonModel struct {
	Store  *transaction.Store
	UserID string
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// persistedMsg reports the outcome of writing the store back.
type persistedMsg struct {
	err error
}

func (c CommonModel) persistCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return persistedMsg{err: c.Store.Persist(ctx)}
	}
}
