package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkrasnov/kopilka/internal/account"
)

type authMode string

const (
	authModeLogin    authMode = "login"
	authModeRegister authMode = "register"
)

type AuthModel struct {
	CommonModel
	accountService *account.Service

	form   *huh.Form
	status string

	// Form field bindings
	formMode     authMode
	formEmail    string
	formPassword string
	formName     string
	formAdmin    bool
}

func NewAuthModel(accountSvc *account.Service) AuthModel {
	m := AuthModel{
		accountService: accountSvc,
		formMode:       authModeLogin,
	}
	m.form = m.newForm()

	return m
}

func (m AuthModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[authMode]().
				Key("mode").
				Title("Welcome to Kopilka").
				Options(
					huh.NewOption("Log in", authModeLogin),
					huh.NewOption("Register", authModeRegister),
				).
				Value(&m.formMode),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword),

			huh.NewInput().
				Key("name").
				Title("Name (for registration)").
				Value(&m.formName),

			huh.NewConfirm().
				Key("admin").
				Title("Register as administrator?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formAdmin),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AuthModel) Init() tea.Cmd {
	return m.form.Init()
}

type authResultMsg struct {
	account *account.Account
	err     error
}

func (m AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		if result.err != nil {
			m.status = fmt.Sprintf("Error: %v", result.err)
			m.form = m.newForm()

			return m, m.form.Init()
		}

		session := result.account

		return m, func() tea.Msg { return LoggedInMsg{Account: session} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	mode := m.form.Get("mode").(authMode)
	email := m.form.GetString("email")
	password := m.form.GetString("password")
	name := m.form.GetString("name")
	admin := m.form.GetBool("admin")

	return m, func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		if mode == authModeRegister {
			role := account.RoleUser
			if admin {
				role = account.RoleAdmin
			}

			a, err := m.accountService.Register(ctx, email, password, name, role)

			return authResultMsg{account: a, err: err}
		}

		a, err := m.accountService.Login(ctx, email, password)

		return authResultMsg{account: a, err: err}
	}
}

func (m AuthModel) View() string {
	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.form.View())
}
