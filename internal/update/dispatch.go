package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

const (
	pulseAdd   = "add"
	pulseClear = "clear"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		next, cmd := m.handlePaletteKey(msg)
		return next, cmd
	}

	switch keyStr {
	case "esc":
		m.taskInput.SetValue("")
		return m, nil
	case "tab":
		m.switchMode()
		return m, nil
	}

	if m.Mode == ModeInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) switchMode() {
	if m.Mode == ModeInput {
		m.Mode = ModeList
		m.taskInput.Blur()
		return
	}
	m.Mode = ModeInput
	m.taskInput.Focus()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		cmd := m.submitInput()
		return m, cmd
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.items.MoveCursor(1)
	case "k", "up":
		m.items.MoveCursor(-1)
	case " ", "space", "x":
		if row, ok := m.items.Selected(); ok {
			m.toggleTask(row.ID)
		}
	case "d", "delete":
		if row, ok := m.items.Selected(); ok {
			cmd, _ := m.deleteTask(row.ID)
			return m, cmd
		}
	case "C":
		cmd, _ := m.clearCompleted()
		return m, cmd
	case "1":
		m.setFilter(model.FilterAll)
	case "2":
		m.setFilter(model.FilterActive)
	case "3":
		m.setFilter(model.FilterCompleted)
	case "f":
		m.setFilter(m.filter.Next())
	case "a", "i":
		m.switchMode()
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.setStatus("command palette active")
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.setStatus("help shown")
		} else {
			m.setStatus("help hidden")
		}
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse is the single click handler for the whole screen. Rows added
// after startup need no registration because targets come from the layout.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.Mouse || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	_, layout := m.compose()
	target := layout.Hit(msg.X, msg.Y)
	m.logger.Debug("click", "x", msg.X, "y", msg.Y, "target", target.Kind.String(), "task", target.TaskID)

	switch target.Kind {
	case views.TargetToggle:
		m.toggleTask(target.TaskID)
	case views.TargetDelete:
		cmd, _ := m.deleteTask(target.TaskID)
		return m, cmd
	case views.TargetAdd:
		return m, m.submitInput()
	case views.TargetFilter:
		m.setFilter(target.Filter)
	case views.TargetClear:
		cmd, _ := m.clearCompleted()
		return m, cmd
	}
	return m, nil
}

// submitInput is the one add path shared by Enter and the add control.
func (m *Model) submitInput() tea.Cmd {
	added, ok := m.addTask(m.taskInput.Value())
	if !ok {
		return nil
	}
	m.taskInput.SetValue("")
	m.setStatus(fmt.Sprintf("added: %s", added.Text))
	return m.startPulse(pulseAdd)
}

func (m *Model) addTask(text string) (model.Task, bool) {
	task, ok, err := m.repo.Add(context.Background(), text)
	if err != nil {
		m.fail("add", err)
		return model.Task{}, false
	}
	if !ok {
		return model.Task{}, false
	}
	m.items.Append(task, m.filter.Current())
	m.logger.Info("task added", "id", task.ID)
	return task, true
}

func (m *Model) toggleTask(id int64) bool {
	if m.ignoreRemoving(id) {
		return false
	}
	task, ok, err := m.repo.Toggle(context.Background(), id)
	if err != nil {
		m.fail("toggle", err)
		return false
	}
	if !ok {
		return false
	}
	m.items.SetDone(id, task.Done, m.filter.Current())
	state := "active"
	if task.Done {
		state = "completed"
	}
	m.setStatus(fmt.Sprintf("%s: %s", state, task.Text))
	m.logger.Debug("task toggled", "id", id, "done", task.Done)
	return true
}

// ignoreRemoving reports whether id belongs to a row that is collapsing.
// Such rows take no further input.
func (m *Model) ignoreRemoving(id int64) bool {
	if !m.removals.Removing(id) {
		return false
	}
	if ticket, ok := m.removals.TicketFor(id); ok {
		m.logger.Debug("input ignored on removing row", "id", id, "ticket", ticket.ID, "phase", string(ticket.Phase))
	}
	return true
}

// deleteTask starts the collapse of one row. The task stays in the collection
// until the row's transition ends or the deadline passes. started is false
// when there was nothing to delete.
func (m *Model) deleteTask(id int64) (cmd tea.Cmd, started bool) {
	if m.ignoreRemoving(id) {
		return nil, false
	}
	if _, ok := m.repo.Get(id); !ok {
		return nil, false
	}
	ticket, err := m.removals.Begin([]int64{id}, false, m.now())
	if err != nil {
		return nil, false
	}
	return m.beginRemoval(ticket), true
}

func (m *Model) clearCompleted() (cmd tea.Cmd, started bool) {
	if !m.repo.HasCompleted() {
		return nil, false
	}
	var ids []int64
	for _, t := range m.repo.Tasks() {
		if t.Done {
			ids = append(ids, t.ID)
		}
	}
	ticket, err := m.removals.Begin(ids, true, m.now())
	if err != nil {
		return nil, false
	}
	return tea.Batch(m.beginRemoval(ticket), m.startPulse(pulseClear)), true
}

func (m *Model) setFilter(f model.Filter) {
	next, err := m.filter.Set(context.Background(), string(f))
	if err != nil {
		m.fail("filter", err)
		return
	}
	m.items.ApplyFilter(next)
	m.setStatus(fmt.Sprintf("showing %s", next.Label()))
}

func (m *Model) startPulse(kind string) tea.Cmd {
	m.pulseSeq++
	m.pulse = kind
	seq := m.pulseSeq
	return tea.Tick(pulseDuration, func(time.Time) tea.Msg { return pulseDoneMsg{seq: seq} })
}
