package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkrasnov/kopilka/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateAdding
	txStateEditing
)

type TransactionsModel struct {
	CommonModel
	txService *transaction.Service
	ownerID   int64

	state      txState
	table      table.Model
	txs        []*transaction.Transaction
	form       *huh.Form
	selectedTx *transaction.Transaction

	balance float64
	loading bool
	status  string
}

func NewTransactionsModel(txSvc *transaction.Service, ownerID int64) TransactionsModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 36},
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

	return TransactionsModel{
		txService: txSvc,
		ownerID:   ownerID,
		table:     t,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateBrowse:
		return "Esc: back | a: add | Enter: edit | d: delete"
	default:
		return "Esc: cancel | Enter/Tab: navigate form"
	}
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.balance = msg.balance
		m.refreshRows()

		if len(msg.txs) == 0 {
			m.status = "No transactions yet."
		}

		return m, nil

	case saveTxResultMsg:
		m.state = txStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved."

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.startAdding()
		case "enter":
			return m.startEditing()
		case "d":
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startAdding() (tea.Model, tea.Cmd) {
	m.selectedTx = nil
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Validate(validateAmount),

			huh.NewInput().
				Key("category").
				Title("Category"),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Validate(validateDate),

			huh.NewInput().
				Key("description").
				Title("Description"),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateAdding

	return m, m.form.Init()
}

func (m TransactionsModel) startEditing() (tea.Model, tea.Cmd) {
	selected := m.selectedTransaction()
	if selected == nil {
		return m, nil
	}

	m.selectedTx = selected
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Validate(validateAmount),

			huh.NewInput().
				Key("category").
				Title("Category"),

			huh.NewInput().
				Key("description").
				Title("Description"),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) deleteSelected() (tea.Model, tea.Cmd) {
	selected := m.selectedTransaction()
	if selected == nil {
		return m, nil
	}

	id := selected.ID

	return m, func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return saveTxResultMsg{err: m.txService.Delete(ctx, id)}
	}
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == txStateAdding {
		return m, m.createTxCmd()
	}

	return m, m.updateTxCmd()
}

func (m TransactionsModel) createTxCmd() tea.Cmd {
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	date, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("date")))
	params := transaction.CreateParams{
		OwnerID:     m.ownerID,
		Amount:      amount,
		Category:    m.form.GetString("category"),
		Date:        date,
		Description: m.form.GetString("description"),
		Type:        m.form.Get("type").(transaction.Type),
	}

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		_, err := m.txService.Create(ctx, params)

		return saveTxResultMsg{err: err}
	}
}

func (m TransactionsModel) updateTxCmd() tea.Cmd {
	id := m.selectedTx.ID
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	category := m.form.GetString("category")
	description := m.form.GetString("description")

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return saveTxResultMsg{err: m.txService.Update(ctx, id, amount, category, description)}
	}
}

func (m TransactionsModel) selectedTransaction() *transaction.Transaction {
	row := m.table.SelectedRow()
	if row == nil {
		return nil
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return nil
	}

	for _, tx := range m.txs {
		if tx.ID == id {
			return tx
		}
	}

	return nil
}

func (m TransactionsModel) View() string {
	if m.state != txStateBrowse && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	balanceLine := lipgloss.NewStyle().Bold(true).Render("Balance: " + FormatAmount(m.balance))

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(
		balanceLine + "\n" + statusLine + m.table.View() + "\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)
}

func (m *TransactionsModel) refreshRows() {
	rows := make([]table.Row, len(m.txs))
	for i, tx := range m.txs {
		rows[i] = table.Row{
			strconv.FormatInt(tx.ID, 10),
			FormatDate(tx.Date),
			string(tx.Type),
			FormatAmount(tx.Amount),
			tx.Category,
			tx.Description,
		}
	}

	m.table.SetRows(rows)
}

func validateAmount(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a number")
	}

	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}

	return nil
}

// Messages

type loadTxsMsg struct {
	txs     []*transaction.Transaction
	balance float64
	err     error
}

type saveTxResultMsg struct {
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		txs, err := m.txService.ListByOwner(ctx, m.ownerID)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		balance, err := m.txService.Balance(ctx, m.ownerID)

		return loadTxsMsg{txs: txs, balance: balance, err: err}
	}
}
