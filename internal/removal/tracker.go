// Package removal coordinates two-phase deletes: a row first collapses on
// screen, and only when that transition ends (or its deadline passes) is the
// task removed from the collection.
package removal

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNothingToRemove = errors.New("removal: nothing to remove")

type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseAnimating Phase = "animating"
	PhaseCommitted Phase = "committed"
)

type Ticket struct {
	ID        string
	TaskIDs   []int64
	Bulk      bool
	Phase     Phase
	StartedAt time.Time
	Deadline  time.Time
	ended     map[int64]bool
}

func (t Ticket) Finished() int { return len(t.ended) }

func (t Ticket) snapshot() Ticket {
	out := t
	out.TaskIDs = append([]int64(nil), t.TaskIDs...)
	out.ended = make(map[int64]bool, len(t.ended))
	for id, v := range t.ended {
		out.ended[id] = v
	}
	return out
}

// Tracker holds every ticket that has not committed yet. A task belongs to at
// most one ticket. Committed tickets are forgotten, so late signals are no-ops.
type Tracker struct {
	tickets map[string]*Ticket
	byTask  map[int64]string
	timeout time.Duration
	newID   func() string
}

func NewTracker(timeout time.Duration) *Tracker {
	return &Tracker{
		tickets: make(map[string]*Ticket),
		byTask:  make(map[int64]string),
		timeout: timeout,
		newID:   uuid.NewString,
	}
}

// Begin opens a pending ticket for the ids not already being removed.
func (tr *Tracker) Begin(taskIDs []int64, bulk bool, now time.Time) (Ticket, error) {
	ids := make([]int64, 0, len(taskIDs))
	for _, id := range taskIDs {
		if _, busy := tr.byTask[id]; busy {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return Ticket{}, ErrNothingToRemove
	}
	t := &Ticket{
		ID:        tr.newID(),
		TaskIDs:   ids,
		Bulk:      bulk,
		Phase:     PhasePending,
		StartedAt: now,
		Deadline:  now.Add(tr.timeout),
		ended:     make(map[int64]bool, len(ids)),
	}
	tr.tickets[t.ID] = t
	for _, id := range ids {
		tr.byTask[id] = t.ID
	}
	return t.snapshot(), nil
}

// Animate marks the ticket's rows as collapsing.
func (tr *Tracker) Animate(ticketID string) bool {
	t, ok := tr.tickets[ticketID]
	if !ok || t.Phase != PhasePending {
		return false
	}
	t.Phase = PhaseAnimating
	return true
}

// TransitionEnd records that one row finished collapsing. It returns the
// committed ticket once every row of that ticket has ended.
func (tr *Tracker) TransitionEnd(taskID int64) (Ticket, bool) {
	ticketID, ok := tr.byTask[taskID]
	if !ok {
		return Ticket{}, false
	}
	t := tr.tickets[ticketID]
	if t.Phase != PhaseAnimating {
		return Ticket{}, false
	}
	t.ended[taskID] = true
	if len(t.ended) < len(t.TaskIDs) {
		return Ticket{}, false
	}
	return tr.commit(t), true
}

// Expire force-commits a ticket whose deadline passed before its rows ended.
func (tr *Tracker) Expire(ticketID string) (Ticket, bool) {
	t, ok := tr.tickets[ticketID]
	if !ok {
		return Ticket{}, false
	}
	return tr.commit(t), true
}

func (tr *Tracker) Removing(taskID int64) bool {
	_, ok := tr.byTask[taskID]
	return ok
}

func (tr *Tracker) Len() int { return len(tr.tickets) }

func (tr *Tracker) Get(ticketID string) (Ticket, bool) {
	t, ok := tr.tickets[ticketID]
	if !ok {
		return Ticket{}, false
	}
	return t.snapshot(), true
}

func (tr *Tracker) commit(t *Ticket) Ticket {
	t.Phase = PhaseCommitted
	for _, id := range t.TaskIDs {
		delete(tr.byTask, id)
	}
	delete(tr.tickets, t.ID)
	return t.snapshot()
}

// TicketFor returns the open ticket that owns taskID.
func (tr *Tracker) TicketFor(taskID int64) (Ticket, bool) {
	ticketID, ok := tr.byTask[taskID]
	if !ok {
		return Ticket{}, false
	}
	return tr.Get(ticketID)
}
