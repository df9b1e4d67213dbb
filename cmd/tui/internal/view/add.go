package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

type AddModel struct {
	CommonModel

	form *huh.Form

	saved  *transaction.Transaction
	status string
}

func NewAddModel(store *transaction.Store, userID string) AddModel {
	m := AddModel{CommonModel: CommonModel{Store: store, UserID: userID}}
	m.form = newAddForm()

	return m
}

func newAddForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("-12.50").
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return errors.New("enter a number such as 10.22 or -3")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description"),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD, empty for now").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := transaction.ParseDate(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) Title() string { return "Add transaction" }

func (m AddModel) ShortHelp() string {
	if m.saved != nil || m.status != "" {
		return "Enter: add another | Esc: back"
	}

	return "Tab: next field | Esc: back"
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.form.State == huh.StateCompleted && msg.Type == tea.KeyEnter {
			return m.reset()
		}
	case persistedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Saved in memory, but writing the store failed: %v", msg.err)
		}

		return m, nil
	}

	if m.form.State == huh.StateCompleted {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.save()
}

func (m AddModel) save() (tea.Model, tea.Cmd) {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.form.GetString("amount")))
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	params := transaction.AddParams{
		Amount:      amount,
		Description: strings.TrimSpace(m.form.GetString("description")),
	}

	if raw := strings.TrimSpace(m.form.GetString("date")); raw != "" {
		date, err := transaction.ParseDate(raw)
		if err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			return m, nil
		}

		params.Date = date
	}

	tx, err := m.Store.Add(m.UserID, params)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.saved = &tx

	return m, m.persistCmd()
}

func (m AddModel) reset() (tea.Model, tea.Cmd) {
	m.saved = nil
	m.status = ""
	m.form = newAddForm()

	return m, m.form.Init()
}

func (m AddModel) View() string {
	var body string

	switch {
	case m.status != "":
		body = m.status
	case m.saved != nil:
		body = fmt.Sprintf("Added %s %s on %s\nID: %s",
			FormatAmount(m.saved.Amount), m.saved.Description, FormatDate(m.saved.Date), m.saved.ID)
	default:
		body = m.form.View()
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(56).
		Render(fmt.Sprintf("%s for user %s\n\n%s", m.Title(), activeStyle(m.UserID), body))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, panel, lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())),
	)
}
