package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

type TransactionsModel struct {
	CommonModel

	table table.Model
	txs   []transaction.Transaction
}

func NewTransactionsModel(store *transaction.Store, userID string) TransactionsModel {
	m := TransactionsModel{
		CommonModel: CommonModel{Store: store, UserID: userID},
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Amount", Width: 12},
			{Title: "Description", Width: 40},
			{Title: "ID", Width: 36},
		}),
	}
	m.refresh()

	return m
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *TransactionsModel) refresh() {
	m.txs = m.Store.GetByUserID(m.UserID)

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			FormatAmount(tx.Amount),
			tx.Description,
			tx.ID,
		})
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) View() string {
	header := fmt.Sprintf("User %s | %d transactions | Sum: %s",
		activeStyle(m.UserID),
		len(m.txs),
		activeStyle(FormatAmount(m.Store.GetSumByUserID(m.UserID))),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		renderTable(m.table),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
