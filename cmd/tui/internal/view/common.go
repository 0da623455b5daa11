package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkrasnov/kopilka/internal/account"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LoggedInMsg is emitted by the auth view once a session is established.
type LoggedInMsg struct {
	Account *account.Account
}

// AccountChangedMsg is emitted when the profile view edits the session
// account, so the menu can refresh what it shows.
type AccountChangedMsg struct {
	Account *account.Account
}
