package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

type ReportModel struct {
	CommonModel

	table table.Model
	weeks []transaction.Week
}

func NewReportModel(store *transaction.Store, userID string) ReportModel {
	m := ReportModel{
		CommonModel: CommonModel{Store: store, UserID: userID},
		table: newTable([]table.Column{
			{Title: "Week start", Width: 22},
			{Title: "Week end", Width: 22},
			{Title: "Qty", Width: 5},
			{Title: "Amount", Width: 12},
			{Title: "Total before", Width: 14},
		}),
	}

	m.weeks = store.GetReportByUserID(userID)

	rows := make([]table.Row, 0, len(m.weeks))
	for _, w := range m.weeks {
		rows = append(rows, table.Row{
			FormatDate(w.Start) + " " + w.WeekdayStart,
			FormatDate(w.End) + " " + w.WeekdayEnd,
			strconv.Itoa(len(w.Transactions)),
			FormatAmount(w.Amount),
			FormatAmount(w.TotalAmount),
		})
	}

	m.table.SetRows(rows)

	return m
}

func (m ReportModel) Title() string { return "Pay-period report" }

func (m ReportModel) ShortHelp() string { return "Esc: back" }

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, Back
		}
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReportModel) View() string {
	if len(m.weeks) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("No closed pay periods for user %s yet.\n\nEsc: back", m.UserID),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(fmt.Sprintf("%s for user %s", m.Title(), activeStyle(m.UserID))),
		renderTable(m.table),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
