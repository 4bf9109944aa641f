package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.taskInput.SetValue("")
		m.setStatus("command palette closed")
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	m.commandInput, _ = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setError(err.Error())
		m.closePalette()
		return m, nil
	}

	var next tea.Cmd
	before := m.LastError
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, ok := m.addTask(a.Text)
			if !ok {
				return commands.Result{}, m.errorSince(before, "nothing added")
			}
			next = m.startPulse(pulseAdd)
			return commands.Result{Message: fmt.Sprintf("added: %s", task.Text)}, nil
		},
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			if !m.toggleTask(a.ID) {
				return commands.Result{}, m.errorSince(before, fmt.Sprintf("no task %d to toggle", a.ID))
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			var started bool
			next, started = m.deleteTask(a.ID)
			if !started {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task %d to delete", a.ID)}
			}
			return commands.Result{Message: fmt.Sprintf("deleting %d", a.ID)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.setFilter(a.Filter)
			return commands.Result{Message: fmt.Sprintf("showing %s", m.filter.Current().Label())}, nil
		},
		Clear: func() (commands.Result, error) {
			var started bool
			next, started = m.clearCompleted()
			if !started {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no completed tasks"}
			}
			return commands.Result{Message: "clearing completed"}, nil
		},
		Help: func() (commands.Result, error) {
			m.HelpVisible = true
			return commands.Result{Message: "help shown"}, nil
		},
	})
	if err != nil {
		m.setError(err.Error())
	} else {
		m.setStatus(res.Message)
	}
	m.notify(commandTitle(err), m.Status.Text, levelFromError(m.Status.IsError))

	m.closePalette()
	return m, next
}

// errorSince reports a storage failure recorded during the command, or a
// plain argument error otherwise.
func (m *Model) errorSince(before error, message string) error {
	if m.LastError != nil && m.LastError != before {
		return m.LastError
	}
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: message}
}
