package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/scheduler"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForDeadlineCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

// Update dispatches msg and, when the status line changed, schedules its
// clear. A later status makes earlier clears stale.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.statusSeq
	next, cmd := m.dispatch(msg)
	nm, ok := next.(Model)
	if !ok || nm.statusSeq == before || nm.Status.Text == "" || nm.Quitting {
		return next, cmd
	}
	seq := nm.statusSeq
	clearCmd := tea.Tick(statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
	return nm, tea.Batch(cmd, clearCmd)
}

func (m Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.MouseMsg:
		return m.handleMouse(typed)
	case frameMsg:
		return m.onFrame()
	case RemovalDeadlineMsg:
		m.expireRemoval(typed.TicketID)
		return m, nil
	case deadlineFiredMsg:
		m.expireRemoval(typed.Deadline.ID)
		if m.Scheduler != nil {
			return m, waitForDeadlineCmd(m.Scheduler.C())
		}
		return m, nil
	case pulseDoneMsg:
		if typed.seq == m.pulseSeq {
			m.pulse = ""
		}
		return m, nil
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	}

	// cursor blink and other component messages
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	out, _ := m.compose()
	return out
}

// compose renders the screen. Mouse handling calls it again to get the
// layout of exactly what is on screen.
func (m Model) compose() (string, views.Layout) {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	counts := m.repo.Counts()
	visible := m.items.VisibleRows()
	rows := make([]views.RowData, 0, len(visible))
	for i, r := range visible {
		rows = append(rows, views.RowData{
			ID:       r.ID,
			Text:     r.Text,
			Done:     r.Done,
			Selected: m.Mode == ModeList && i == m.items.Cursor(),
			Removing: r.Removing,
			Collapse: r.Collapse,
		})
	}

	notification := ""
	if n := m.removals.Len(); n > 0 {
		notification = views.RenderNotification("info", fmt.Sprintf("removing %d batch(es)", n))
	} else if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		if last.Level == "error" {
			notification = views.RenderNotification(last.Level, last.Body)
		}
	}

	helpView := ""
	if m.HelpVisible {
		helpView = m.renderHelpView()
	}

	return views.Compose(views.AppData{
		Header:    fmt.Sprintf("tasklist | filter: %s | mode: %s", m.filter.Current(), m.Mode),
		InputView: m.taskInput.View(),
		AddPulse:  m.pulse == pulseAdd,
		Rows:      rows,
		EmptyText: emptyText(m.filter.Current(), counts),
		Counters: views.CountersData{
			Total:        counts.Total,
			Active:       counts.Active,
			Completed:    counts.Completed,
			ProgressView: m.progress.ViewAs(counts.CompletedRatio()),
		},
		Filter: views.FilterBarData{
			Active:       m.filter.Current(),
			ClearVisible: m.repo.HasCompleted(),
			ClearPulse:   m.pulse == pulseClear,
		},
		StatusLine:   status,
		Palette:      views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()),
		Help:         helpView,
		Notification: notification,
		Footer:       fmt.Sprintf("keys: tab focus | enter add | space toggle | d delete | C clear | 1/2/3 filter | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit),
	})
}

func emptyText(f model.Filter, c model.Counts) string {
	switch {
	case c.Total == 0:
		return "nothing to do yet"
	case f == model.FilterActive:
		return "no active tasks"
	case f == model.FilterCompleted:
		return "no completed tasks"
	default:
		return "nothing to show"
	}
}

func waitForDeadlineCmd(ch <-chan scheduler.Deadline) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return deadlineFiredMsg{Deadline: d}
	}
}
