package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkrasnov/kopilka/internal/goal"
)

type goalState int

const (
	goalStateBrowse goalState = iota
	goalStateAdding
	goalStateDepositing
	goalStateEditing
)

type GoalsModel struct {
	CommonModel
	goalService *goal.Service
	ownerID     int64

	state        goalState
	table        table.Model
	goals        []*goal.Goal
	form         *huh.Form
	selectedGoal *goal.Goal

	loading bool
	status  string
}

func NewGoalsModel(goalSvc *goal.Service, ownerID int64) GoalsModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 28},
		{Title: "Saved", Width: 12},
		{Title: "Target", Width: 12},
		{Title: "Progress", Width: 12},
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

	return GoalsModel{
		goalService: goalSvc,
		ownerID:     ownerID,
		table:       t,
	}
}

func (m GoalsModel) Title() string { return "Savings Goals" }

func (m GoalsModel) ShortHelp() string {
	if m.state == goalStateBrowse {
		return "Esc: back | a: add | s: save toward goal | Enter: edit | d: delete"
	}

	return "Esc: cancel | Enter/Tab: navigate form"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadGoalsCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadGoalsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.goals = msg.goals
		m.refreshRows()

		if len(msg.goals) == 0 {
			m.status = "No goals yet."
		}

		return m, nil

	case saveGoalResultMsg:
		m.state = goalStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved."

		return m, m.loadGoalsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == goalStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m GoalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.startAdding()
		case "s":
			return m.startDepositing()
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

func (m GoalsModel) startAdding() (tea.Model, tea.Cmd) {
	m.selectedGoal = nil
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("target").
				Title("Target amount").
				Validate(validateAmount),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalStateAdding

	return m, m.form.Init()
}

func (m GoalsModel) startDepositing() (tea.Model, tea.Cmd) {
	selected := m.selectedGoalRow()
	if selected == nil {
		return m, nil
	}

	m.selectedGoal = selected
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Amount to add to %q", selected.Title)).
				Validate(validateAmount),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalStateDepositing

	return m, m.form.Init()
}

func (m GoalsModel) startEditing() (tea.Model, tea.Cmd) {
	selected := m.selectedGoalRow()
	if selected == nil {
		return m, nil
	}

	m.selectedGoal = selected
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title"),

			huh.NewInput().
				Key("target").
				Title("Target amount").
				Validate(validateAmount),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalStateEditing

	return m, m.form.Init()
}

func (m GoalsModel) deleteSelected() (tea.Model, tea.Cmd) {
	selected := m.selectedGoalRow()
	if selected == nil {
		return m, nil
	}

	id := selected.ID

	return m, func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return saveGoalResultMsg{err: m.goalService.Delete(ctx, id)}
	}
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = goalStateBrowse
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

	switch m.state {
	case goalStateAdding:
		return m, m.createGoalCmd()
	case goalStateDepositing:
		return m, m.depositCmd()
	default:
		return m, m.updateGoalCmd()
	}
}

func (m GoalsModel) createGoalCmd() tea.Cmd {
	title := m.form.GetString("title")
	target, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("target")), 64)

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		_, err := m.goalService.Create(ctx, m.ownerID, title, target)

		return saveGoalResultMsg{err: err}
	}
}

func (m GoalsModel) depositCmd() tea.Cmd {
	id := m.selectedGoal.ID
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return saveGoalResultMsg{err: m.goalService.AddAmount(ctx, id, amount)}
	}
}

func (m GoalsModel) updateGoalCmd() tea.Cmd {
	id := m.selectedGoal.ID
	title := m.form.GetString("title")
	target, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("target")), 64)

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return saveGoalResultMsg{err: m.goalService.Update(ctx, id, title, target)}
	}
}

func (m GoalsModel) selectedGoalRow() *goal.Goal {
	row := m.table.SelectedRow()
	if row == nil {
		return nil
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return nil
	}

	for _, g := range m.goals {
		if g.ID == id {
			return g
		}
	}

	return nil
}

func (m GoalsModel) View() string {
	if m.state != goalStateBrowse && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(
		statusLine + m.table.View() + "\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)
}

func (m *GoalsModel) refreshRows() {
	rows := make([]table.Row, len(m.goals))
	for i, g := range m.goals {
		progress := "in progress"
		if g.Completed() {
			progress = "completed"
		}

		rows[i] = table.Row{
			strconv.FormatInt(g.ID, 10),
			g.Title,
			FormatAmount(g.CurrentAmount),
			FormatAmount(g.TargetAmount),
			progress,
		}
	}

	m.table.SetRows(rows)
}

// Messages

type loadGoalsMsg struct {
	goals []*goal.Goal
	err   error
}

type saveGoalResultMsg struct {
	err error
}

func (m GoalsModel) loadGoalsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		goals, err := m.goalService.ListByOwner(ctx, m.ownerID)

		return loadGoalsMsg{goals: goals, err: err}
	}
}
