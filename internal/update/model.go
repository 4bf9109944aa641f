package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/filter"
	"github.com/sandeepkv93/tasklist/internal/logging"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/removal"
	"github.com/sandeepkv93/tasklist/internal/scheduler"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/todos"
	"github.com/sandeepkv93/tasklist/internal/views"
)

const (
	pulseDuration    = 200 * time.Millisecond
	statusTTL        = 4 * time.Second
	maxNotifications = 40
)

type Mode string

const (
	ModeInput Mode = "input"
	ModeList  Mode = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type GlobalKeyMap struct {
	Help string
	Quit string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Mode          Mode
	Status        StatusBar
	Palette       CommandPaletteState
	HelpVisible   bool
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error
	Notifications []Notification
	Scheduler     *scheduler.Engine

	repo     *todos.Repository
	filter   *filter.Controller
	items    *views.ItemList
	removals *removal.Tracker
	collapse removal.Collapse
	logger   *slog.Logger
	cfg      config.RuntimeConfig
	now      func() time.Time

	taskInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	progress     progress.Model

	framing  bool
	pulse    string
	pulseSeq int

	statusSeq int
}

// Deps are the collaborators a Model is assembled from. Store is required.
type Deps struct {
	Store     *storage.Store
	Scheduler *scheduler.Engine
	Logger    *slog.Logger
	Config    config.RuntimeConfig
	Now       func() time.Time
}

// ClearStatusMsg clears the status line if no newer status replaced it.
type ClearStatusMsg struct {
	Seq int
}

// RemovalDeadlineMsg is the fallback that forces a removal to commit.
type RemovalDeadlineMsg struct {
	TicketID string
}

type deadlineFiredMsg struct {
	Deadline scheduler.Deadline
}

type frameMsg struct{}

type pulseDoneMsg struct {
	seq int
}

// NewModel hydrates the collection and filter from the store and builds the
// display list once.
func NewModel(ctx context.Context, deps Deps) Model {
	cfg := deps.Config
	if cfg == (config.RuntimeConfig{}) {
		cfg = config.DefaultRuntimeConfig()
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = config.DefaultRuntimeConfig().FrameRate
	}
	if cfg.RemovalTimeout <= 0 {
		cfg.RemovalTimeout = config.DefaultRuntimeConfig().RemovalTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	store := deps.Store
	if store == nil {
		store = storage.NewStore(storage.NewMemoryRepository(), logger)
	}

	tasks := store.Load(ctx)
	current := store.LoadFilter(ctx)

	m := Model{
		Mode:      ModeInput,
		Keys:      GlobalKeyMap{Help: "?", Quit: "q"},
		Scheduler: deps.Scheduler,
		repo:      todos.New(store, tasks, todos.WithClock(now)),
		filter:    filter.NewController(store, current),
		items:     views.NewItemList(),
		removals:  removal.NewTracker(cfg.RemovalTimeout),
		collapse:  removal.NewCollapse(cfg.FrameRate),
		logger:    logger,
		cfg:       cfg,
		now:       now,
	}
	m.items.Build(m.repo.Tasks(), m.filter.Current())
	m.initBubbleComponents()
	m.logger.Info("task list hydrated", "tasks", m.repo.Len(), "filter", string(m.filter.Current()))
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "> "
	m.taskInput.Placeholder = "What needs to be done?"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = views.TextWidth
	m.taskInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.progress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(20))
}

// Tasks exposes the collection for tests and the CLI.
func (m Model) Tasks() []model.Task {
	return m.repo.Tasks()
}

func (m Model) Filter() string { return string(m.filter.Current()) }

func (m Model) Input() string { return m.taskInput.Value() }

func (m Model) Rows() []views.Row { return m.items.Rows() }

func (m Model) Builds() int { return m.items.Builds() }

func (m Model) PendingRemovals() int { return m.removals.Len() }

func (m *Model) notify(title, body, level string) {
	if body == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{Title: title, Body: body, Level: level, At: m.now().UTC()})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}

// setStatus replaces the status line. Every replacement bumps statusSeq so
// Update can arm a clear for it.
func (m *Model) setStatus(text string) {
	m.Status = StatusBar{Text: text}
	m.statusSeq++
}

func (m *Model) setError(text string) {
	m.Status = StatusBar{Text: text, IsError: true}
	m.statusSeq++
}

func (m *Model) fail(op string, err error) {
	m.LastError = err
	m.setError(op + ": " + err.Error())
	m.logger.Error(op+" failed", "err", err)
	m.notify("Error", m.Status.Text, "error")
}
