package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/removal"
	"github.com/sandeepkv93/tasklist/internal/scheduler"
)

// beginRemoval marks the ticket's rows as collapsing, arms the fallback
// deadline and starts the frame loop if it is idle.
func (m *Model) beginRemoval(ticket removal.Ticket) tea.Cmd {
	for _, id := range ticket.TaskIDs {
		m.items.MarkRemoving(id)
	}
	m.removals.Animate(ticket.ID)
	m.logger.Debug("removal started", "ticket", ticket.ID, "tasks", len(ticket.TaskIDs), "bulk", ticket.Bulk)

	cmds := []tea.Cmd{m.armDeadline(ticket)}
	if !m.framing {
		m.framing = true
		cmds = append(cmds, m.frameCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) armDeadline(ticket removal.Ticket) tea.Cmd {
	if m.Scheduler != nil {
		err := m.Scheduler.Schedule(scheduler.Deadline{ID: ticket.ID, TriggerAt: ticket.Deadline})
		if err == nil {
			return nil
		}
		m.logger.Warn("deadline not scheduled, using timer", "ticket", ticket.ID, "err", err)
	}
	wait := ticket.Deadline.Sub(m.now())
	if wait < 0 {
		wait = 0
	}
	id := ticket.ID
	return tea.Tick(wait, func(time.Time) tea.Msg { return RemovalDeadlineMsg{TicketID: id} })
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FrameRate), func(time.Time) tea.Msg { return frameMsg{} })
}

// onFrame advances every collapsing row. A row whose spring settles reports
// its transition end; with animations off every row settles on the first frame.
func (m Model) onFrame() (tea.Model, tea.Cmd) {
	for _, row := range m.items.Animating() {
		pos, vel, settled := 0.0, 0.0, true
		if m.cfg.Animations {
			pos, vel, settled = m.collapse.Step(row.Collapse, row.Velocity)
		}
		m.items.SetCollapse(row.ID, pos, vel)
		if !settled {
			continue
		}
		if ticket, ready := m.removals.TransitionEnd(row.ID); ready {
			m.commitRemoval(ticket)
		}
	}
	if len(m.items.Animating()) == 0 {
		m.framing = false
		return m, nil
	}
	return m, m.frameCmd()
}

func (m *Model) expireRemoval(ticketID string) {
	ticket, ok := m.removals.Expire(ticketID)
	if !ok {
		return
	}
	m.logger.Warn("removal forced by deadline", "ticket", ticketID)
	m.commitRemoval(ticket)
}

// commitRemoval applies the state change for a finished ticket.
func (m *Model) commitRemoval(ticket removal.Ticket) {
	if m.Scheduler != nil {
		m.Scheduler.Cancel(ticket.ID)
	}
	ctx := context.Background()
	var err error
	removed := 0
	if ticket.Bulk {
		var ids []int64
		ids, err = m.repo.ClearCompleted(ctx)
		removed = len(ids)
	} else {
		var ok bool
		ok, err = m.repo.Remove(ctx, ticket.TaskIDs[0])
		if ok {
			removed = 1
		}
	}
	if err != nil {
		for _, id := range ticket.TaskIDs {
			m.items.Unmark(id)
		}
		m.fail("remove", err)
		return
	}

	for _, id := range ticket.TaskIDs {
		m.items.Remove(id)
	}
	m.items.Prune(func(id int64) bool {
		_, ok := m.repo.Get(id)
		return ok
	})
	m.items.ApplyFilter(m.filter.Current())
	if ticket.Bulk {
		m.setStatus(fmt.Sprintf("cleared %d completed", removed))
	} else if removed > 0 {
		m.setStatus("deleted 1 task")
	}
	m.logger.Info("removal committed", "ticket", ticket.ID, "removed", removed, "bulk", ticket.Bulk)
}
