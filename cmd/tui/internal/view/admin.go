package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkrasnov/kopilka/internal/account"
)

// AdminModel lists every registered account and lets an administrator
// remove one. Removal does not cascade: the removed account's transactions
// and goals stay behind.
type AdminModel struct {
	CommonModel
	accountService *account.Service

	table    table.Model
	accounts []*account.Account

	loading bool
	status  string
}

func NewAdminModel(accountSvc *account.Service) AdminModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Email", Width: 28},
		{Title: "Name", Width: 20},
		{Title: "Role", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return AdminModel{
		accountService: accountSvc,
		table:          t,
	}
}

func (m AdminModel) Title() string { return "Administration" }

func (m AdminModel) Init() tea.Cmd {
	return m.loadAccountsCmd()
}

type loadAccountsMsg struct {
	accounts []*account.Account
	err      error
}

type deleteAccountResultMsg struct {
	err error
}

func (m AdminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAccountsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.accounts = msg.accounts
		m.refreshRows()

		return m, nil

	case deleteAccountResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Account removed."

		return m, m.loadAccountsCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "d":
			return m.deleteSelected()
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AdminModel) deleteSelected() (tea.Model, tea.Cmd) {
	row := m.table.SelectedRow()
	if row == nil {
		return m, nil
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return m, nil
	}

	return m, func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return deleteAccountResultMsg{err: m.accountService.Delete(ctx, id)}
	}
}

func (m AdminModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	help := lipgloss.NewStyle().Faint(true).Render("Esc: back | d: delete account")

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.table.View() + "\n" + help)
}

func (m *AdminModel) refreshRows() {
	rows := make([]table.Row, len(m.accounts))
	for i, a := range m.accounts {
		rows[i] = table.Row{
			strconv.FormatInt(a.ID, 10),
			a.Email,
			a.Name,
			string(a.Role),
		}
	}

	m.table.SetRows(rows)
}

func (m AdminModel) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx)

		return loadAccountsMsg{accounts: accounts, err: err}
	}
}
