package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/paycycle/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/paycycle/internal/app"
	"github.com/MrJamesThe3rd/paycycle/internal/config"
	"github.com/MrJamesThe3rd/paycycle/internal/importer"
	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

type View int

const (
	ViewUser         View = 0
	ViewMenu         View = 1
	ViewTransactions View = 2
	ViewReport       View = 3
	ViewAdd          View = 4
	ViewImport       View = 5
)

type model struct {
	appName       string
	store         *transaction.Store
	importService *importer.Service

	currentView View
	userID      string
	userForm    *huh.Form

	transactionsView view.TransactionsModel
	reportView       view.ReportModel
	addView          view.AddModel
	importView       view.ImportModel
}

func newModel(appName string, store *transaction.Store) model {
	m := model{
		appName:       appName,
		store:         store,
		importService: importer.NewService(store),
		currentView:   ViewUser,
	}
	m.userForm = newUserForm()

	return m
}

func newUserForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("user").
				Title("User id").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("user id cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m model) Init() tea.Cmd {
	return m.userForm.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "u":
				m.currentView = ViewUser
				m.userID = ""
				m.userForm = newUserForm()

				return m, m.userForm.Init()
			case "1":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.store, m.userID)

				return m, m.transactionsView.Init()
			case "2":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.store, m.userID)

				return m, m.reportView.Init()
			case "3":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.store, m.userID)

				return m, m.addView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.store, m.userID, m.importService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewUser:
		return m.updateUser(msg)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) updateUser(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.userForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.userForm = f
	}

	if m.userForm.State == huh.StateCompleted {
		m.userID = strings.TrimSpace(m.userForm.GetString("user"))
		m.currentView = ViewMenu

		return m, nil
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewUser:
		return lipgloss.NewStyle().Padding(2).Render(m.appName + "\n\n" + m.userForm.View())
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + " - user " + m.userID + "\n\n" +
				"1. Transactions\n" +
				"2. Pay-period Report\n" +
				"3. Add Transaction\n" +
				"4. Import Statement\n\n" +
				"u. Switch User\n" +
				"q. Quit",
		)
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(newModel(cfg.App.Name, a.Store))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		a.Close()
		os.Exit(1)
	}
}
