package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"todoapp/internal/config"
	"todoapp/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	emptyStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type Model struct {
	ctrl       *todo.Controller
	surface    *termSurface
	gate       *confirmGate
	keys       config.Keymap
	addInput   *textinput.Model
	editInput  *textinput.Model
	cursor     int
	mode       mode
	status     string
	confirmDel bool
	pendingDel string
}

// NewModel builds the controller with the terminal as its surface.
func NewModel(store todo.Store, cfg config.Config, logger *log.Logger) Model {
	add := textinput.New()
	add.Placeholder = "Task title"
	add.CharLimit = todo.MaxTextLength
	add.Width = 40

	edit := textinput.New()
	edit.CharLimit = todo.MaxTextLength
	edit.Width = 40

	surface := newTermSurface(&edit)
	gate := &confirmGate{}
	ctrl := todo.New(todo.Options{
		Store:          store,
		Surface:        surface,
		Prompt:         gate,
		Input:          addField{ti: &add},
		FilterControls: surface,
		Logger:         logger,
	})

	return Model{
		ctrl:      ctrl,
		surface:   surface,
		gate:      gate,
		keys:      cfg.Keys,
		addInput:  &add,
		editInput: &edit,
		mode:      modeList,
		status:    fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Delete),
	}
}

func Run(store todo.Store, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(NewModel(store, cfg, logger))
	_, err := program.Run()
	return err
}

func (m Model) Controller() *todo.Controller {
	return m.ctrl
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg.String(), msg)
		case modeEdit:
			return m.updateEditMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.addInput.Width = msg.Width - 10
		m.editInput.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Cancel:
		m.mode = modeList
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.keys.Confirm:
		if _, ok := m.ctrl.Create(m.addInput.Value()); !ok {
			return m, nil
		}
		m.addInput.Blur()
		m.mode = modeList
		m.cursor = 0
		m.status = "Added task"
		return m, nil
	default:
		var cmd tea.Cmd
		*m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.ctrl.EditingID()
	switch key {
	case m.keys.Cancel:
		m.surface.dispatch(todo.RoleEditInput, todo.EventKeyDown, id, todo.Event{Key: "Escape"})
		m.status = "Edit cancelled"
	case m.keys.Confirm:
		m.surface.dispatch(todo.RoleEditInput, todo.EventKeyPress, id, todo.Event{Key: "Enter", Value: m.editInput.Value()})
		if m.ctrl.EditingID() != "" {
			return m, nil
		}
		m.status = "Saved"
	default:
		var cmd tea.Cmd
		*m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}
	m.editInput.Blur()
	m.mode = modeList
	m.cursor = clampCursor(m.cursor, len(m.surface.view.Rows))
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	rows := m.surface.view.Rows
	switch key {
	case "ctrl+c", m.keys.Quit:
		return m, tea.Quit
	case m.keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case m.keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case m.keys.Add:
		m.mode = modeAdd
		m.addInput.Focus()
		m.status = "Add mode: type a title and press Enter"
	case m.keys.NextFilter:
		m.setFilter(m.ctrl.Filter().Next())
	case m.keys.FilterAll:
		m.setFilter(todo.FilterAll)
	case m.keys.FilterActive:
		m.setFilter(todo.FilterActive)
	case m.keys.FilterCompleted:
		m.setFilter(todo.FilterCompleted)
	case m.keys.Toggle:
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.surface.dispatch(todo.RoleCheckbox, todo.EventChange, row.ID, todo.Event{})
		m.cursor = clampCursor(m.cursor, len(m.surface.view.Rows))
		m.status = "Toggled task"
	case m.keys.Edit:
		row, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		if !m.surface.dispatch(todo.RoleEditButton, todo.EventClick, row.ID, todo.Event{}) {
			m.status = "Completed tasks cannot be edited"
			return m, nil
		}
		m.editInput.SetValue(row.Text)
		m.editInput.CursorEnd()
		m.editInput.Focus()
		m.mode = modeEdit
		m.status = "Edit: enter to save, esc to cancel"
	case m.keys.Delete:
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = row.ID
		m.status = fmt.Sprintf("%s \"%s\" %s/%s", todo.DeleteConfirmMessage, row.Text, m.keys.Yes, m.keys.No)
	}
	return m, nil
}

func (m *Model) setFilter(f todo.Filter) {
	m.ctrl.SetFilter(string(f))
	m.cursor = 0
	m.status = "Filter: " + string(f)
}

func (m Model) selected() (todo.Row, bool) {
	rows := m.surface.view.Rows
	if len(rows) == 0 {
		return todo.Row{}, false
	}
	return rows[clampCursor(m.cursor, len(rows))], true
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.No, "N", m.keys.Cancel:
		m.status = "Delete cancelled"
	case m.keys.Yes, "Y":
		m.gate.arm()
		if m.surface.dispatch(todo.RoleDeleteButton, todo.EventClick, m.pendingDel, todo.Event{}) {
			m.status = "Deleted task"
		} else {
			m.gate.armed = false
			m.status = "Nothing to delete"
		}
		m.cursor = clampCursor(m.cursor, len(m.surface.view.Rows))
	default:
		return m, nil
	}
	m.confirmDel = false
	m.pendingDel = ""
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.surface.view.IsEmpty() {
		b.WriteString(emptyStyle.Render(m.surface.view.Empty))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n---\n")
	if m.mode == modeAdd {
		b.WriteString(m.addInput.View())
		b.WriteString("\n")
	}
	if m.confirmDel {
		b.WriteString(promptStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(renderHelp(m.keys))

	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(todo.Filters))
	for _, f := range todo.Filters {
		if f == m.surface.active {
			tabs = append(tabs, activeTabStyle.Render(string(f)))
		} else {
			tabs = append(tabs, tabStyle.Render(string(f)))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, r := range m.surface.view.Rows {
		cursor := " "
		if m.cursor == i && m.mode != modeAdd {
			cursor = ">"
		}

		checkbox := "[ ]"
		if r.Completed {
			checkbox = "[x]"
		}

		if r.Editing {
			b.WriteString(fmt.Sprintf("%s %s %s  %s %s\n", cursor, checkbox, m.editInput.View(), todo.SaveLabel, todo.CancelLabel))
			continue
		}

		text := r.Text
		if r.Completed {
			text = doneStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, text))
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s filter • %s quit",
		k.Up, k.Down, k.Add, "space", k.Edit, k.Delete, k.NextFilter, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
