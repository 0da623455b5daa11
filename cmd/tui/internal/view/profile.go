package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkrasnov/kopilka/internal/account"
)

// ProfileModel edits the session account's email, password and name.
type ProfileModel struct {
	CommonModel
	accountService *account.Service
	session        *account.Account

	form   *huh.Form
	status string
}

func NewProfileModel(accountSvc *account.Service, session *account.Account) ProfileModel {
	m := ProfileModel{
		accountService: accountSvc,
		session:        session,
	}
	m.form = m.newForm()

	return m
}

func (m ProfileModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Suggestions([]string{m.session.Email}).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword),

			huh.NewInput().
				Key("name").
				Title("Name"),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ProfileModel) Title() string { return "Profile" }

func (m ProfileModel) Init() tea.Cmd {
	return m.form.Init()
}

type profileResultMsg struct {
	updated *account.Account
	err     error
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case profileResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.form = m.newForm()

			return m, m.form.Init()
		}

		updated := msg.updated

		return m, tea.Batch(
			func() tea.Msg { return AccountChangedMsg{Account: updated} },
			Back,
		)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	session := m.session
	email := m.form.GetString("email")
	password := m.form.GetString("password")
	name := m.form.GetString("name")

	return m, func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		if err := m.accountService.Update(ctx, session.ID, email, password, name); err != nil {
			return profileResultMsg{err: err}
		}

		updated := *session
		updated.Email = email
		updated.Password = password
		updated.Name = name

		return profileResultMsg{updated: &updated}
	}
}

func (m ProfileModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Logged in as %s <%s>", m.session.Name, m.session.Email),
	)

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + statusLine + m.form.View())
}
