package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dkrasnov/kopilka/cmd/tui/internal/view"
	"github.com/dkrasnov/kopilka/internal/account"
	"github.com/dkrasnov/kopilka/internal/goal"
	"github.com/dkrasnov/kopilka/internal/store/memory"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

type model struct {
	accountService *account.Service
	txService      *transaction.Service
	goalService    *goal.Service

	session *account.Account

	currentView View

	authView         view.AuthModel
	transactionsView view.TransactionsModel
	goalsView        view.GoalsModel
	profileView      view.ProfileModel
	adminView        view.AdminModel
}

type View int

const (
	ViewAuth         View = 0
	ViewMenu         View = 1
	ViewTransactions View = 2
	ViewGoals        View = 3
	ViewProfile      View = 4
	ViewAdmin        View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	store := memory.New()

	accountSvc := account.NewService(store)
	txSvc := transaction.NewService(store)
	goalSvc := goal.NewService(store)

	return model{
		accountService: accountSvc,
		txService:      txSvc,
		goalService:    goalSvc,
		currentView:    ViewAuth,
		authView:       view.NewAuthModel(accountSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.authView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.LoggedInMsg:
		m.session = msg.Account
		m.currentView = ViewMenu

		return m, nil

	case view.AccountChangedMsg:
		m.session = msg.Account
		return m, nil

	case view.BackMsg:
		if m.currentView == ViewAuth {
			return m, nil
		}

		m.currentView = ViewMenu

		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.session.ID)

				return m, m.transactionsView.Init()
			case "2":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.goalService, m.session.ID)

				return m, m.goalsView.Init()
			case "3":
				m.currentView = ViewProfile
				m.profileView = view.NewProfileModel(m.accountService, m.session)

				return m, m.profileView.Init()
			case "4":
				if m.accountService.IsAdmin(m.session) {
					m.currentView = ViewAdmin
					m.adminView = view.NewAdminModel(m.accountService)

					return m, m.adminView.Init()
				}
			case "0":
				m.session = nil
				m.currentView = ViewAuth
				m.authView = view.NewAuthModel(m.accountService)

				return m, m.authView.Init()
			}
		}

		if m.currentView == ViewAuth && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.currentView {
	case ViewAuth:
		var newModel tea.Model
		newModel, cmd = m.authView.Update(msg)
		m.authView = newModel.(view.AuthModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewProfile:
		var newModel tea.Model
		newModel, cmd = m.profileView.Update(msg)
		m.profileView = newModel.(view.ProfileModel)
	case ViewAdmin:
		var newModel tea.Model
		newModel, cmd = m.adminView.Update(msg)
		m.adminView = newModel.(view.AdminModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewAuth:
		return m.authView.View()
	case ViewMenu:
		menu := "Kopilka\n\n" +
			"1. Transactions\n" +
			"2. Savings Goals\n" +
			"3. Profile\n"

		if m.accountService.IsAdmin(m.session) {
			menu += "4. Administration\n"
		}

		menu += "\n0. Log out\nq. Quit"

		return lipgloss.NewStyle().Padding(2).Render(menu)
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewGoals:
		return m.goalsView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewAdmin:
		return m.adminView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
