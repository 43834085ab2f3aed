package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

type todosModel struct {
	store  *store.Store
	clock  dateutil.Clock
	width  int
	height int

	todos  []store.Todo
	cursor int

	formActive bool
	form       *huh.Form
	formLabel  string
	editID     int64
	formTitle  *string
	formNotes  *string
	formDue    *string
}

func newTodosModel(s *store.Store, clock dateutil.Clock) todosModel {
	title, notes, due := "", "", ""
	return todosModel{
		store:     s,
		clock:     clock,
		formTitle: &title,
		formNotes: &notes,
		formDue:   &due,
	}
}

func (m *todosModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type todosDataMsg struct {
	todos []store.Todo
}

func (m todosModel) refresh() tea.Cmd {
	return func() tea.Msg {
		todos, err := m.store.ListTodos()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load todos: %v", err), isError: true}
		}
		return todosDataMsg{todos: todos}
	}
}

func (m todosModel) update(msg tea.Msg) (todosModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case todosDataMsg:
		m.todos = msg.todos
		if m.cursor >= len(m.todos) {
			m.cursor = max(0, len(m.todos)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.todos)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if m.cursor < len(m.todos) {
				if err := m.store.ToggleTodo(m.todos[m.cursor].ID); err != nil {
					return m, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Toggle: %v", err), isError: true}
					}
				}
				return m, m.refresh()
			}
		case key.Matches(msg, keys.New):
			return m.showAddForm()
		case key.Matches(msg, keys.Edit):
			if m.cursor < len(m.todos) {
				return m.showEditForm(m.todos[m.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.todos) {
				if err := m.store.DeleteTodo(m.todos[m.cursor].ID); err != nil {
					return m, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Delete: %v", err), isError: true}
					}
				}
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m todosModel) showAddForm() (todosModel, tea.Cmd) {
	m.editID = 0
	m.formLabel = "New Todo"
	*m.formTitle = ""
	*m.formNotes = ""
	*m.formDue = ""
	return m.showForm()
}

func (m todosModel) showEditForm(t store.Todo) (todosModel, tea.Cmd) {
	m.editID = t.ID
	m.formLabel = "Edit Todo"
	*m.formTitle = t.Title
	*m.formNotes = t.Notes
	*m.formDue = ""
	if t.DueAt != nil {
		*m.formDue = dateutil.DateString(t.DueAt.In(m.clock.Now().Location()))
	}
	return m.showForm()
}

func (m todosModel) showForm() (todosModel, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Todo").Value(m.formTitle),
			huh.NewInput().Title("Notes (optional)").Value(m.formNotes),
			huh.NewInput().Title("Due (YYYY-MM-DD, optional)").Value(m.formDue),
		),
	)
	m.formActive = true
	return m, m.form.Init()
}

func (m todosModel) updateForm(msg tea.Msg) (todosModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Back) {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submit()
	}

	return m, cmd
}

func (m todosModel) submit() (todosModel, tea.Cmd) {
	title := strings.TrimSpace(*m.formTitle)
	if title == "" {
		return m, func() tea.Msg {
			return statusMsg{text: "Todo cannot be empty", isError: true}
		}
	}

	var due *time.Time
	if s := strings.TrimSpace(*m.formDue); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, m.clock.Now().Location())
		if err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Invalid date %q, use YYYY-MM-DD", s), isError: true}
			}
		}
		due = &t
	}

	notes := strings.TrimSpace(*m.formNotes)
	if m.editID != 0 {
		if err := m.store.UpdateTodo(m.editID, title, notes, due); err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Update: %v", err), isError: true}
			}
		}
	} else if _, err := m.store.CreateTodo(title, notes, due); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Create: %v", err), isError: true}
		}
	}
	return m, m.refresh()
}

func (m todosModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.formLabel), "", m.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Todos"))

	if len(m.todos) == 0 {
		rows = append(rows, "", mutedStyle.Render("  Nothing to do. Press n to add a todo."))
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	rows = append(rows, "")
	today := dateutil.CalendarDay(m.clock.Now())
	for i, t := range m.todos {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		box := "[ ]"
		style := normalItemStyle
		if t.IsDone {
			box = "[x]"
			style = doneItemStyle
		}

		due := ""
		if t.DueAt != nil {
			local := t.DueAt.In(m.clock.Now().Location())
			label := daysLabel(dateutil.DayDiff(local, m.clock.Now()))
			if !t.IsDone && dateutil.CalendarDay(local).Before(today) {
				due = errorStyle.Render("  (" + label + ")")
			} else {
				due = mutedStyle.Render("  (" + label + ")")
			}
		}

		rows = append(rows, fmt.Sprintf("%s%s %s%s", cursor, box, style.Render(t.Title), due))
	}

	rows = append(rows, "", mutedStyle.Render("  space: toggle  n: new  e: edit  d: delete"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
