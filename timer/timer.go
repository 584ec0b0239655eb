// Package timer is the terminal interface of the pomodoro scheduler
package timer

import (
	"log/slog"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ayoisaiah/pomo/internal/config"
	"github.com/ayoisaiah/pomo/internal/models"
	"github.com/ayoisaiah/pomo/internal/pomodoro"
	"github.com/ayoisaiah/pomo/internal/ui"
)

const (
	padding  = 2
	maxWidth = 60
)

// Recorder stores finished phases.
type Recorder interface {
	SaveRecord(r *models.Record) error
}

// Notifier shows a desktop notification.
type Notifier func(title, message string) error

// Option customises a Timer.
type Option func(*Timer)

// WithClock sets the clock that drives the countdown.
func WithClock(c clockwork.Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// WithMusic sets the background music player.
func WithMusic(m pomodoro.Music) Option {
	return func(t *Timer) {
		t.music = m
	}
}

// WithChime sets the completion sound player.
func WithChime(c pomodoro.Chime) Option {
	return func(t *Timer) {
		t.chime = c
	}
}

// WithRecorder sets where finished phases are saved.
func WithRecorder(r Recorder) Option {
	return func(t *Timer) {
		t.recorder = r
	}
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(t *Timer) {
		t.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) {
		t.log = l
	}
}

// Timer is the bubbletea model of the countdown screen.
type Timer struct {
	sched    *pomodoro.Scheduler
	opts     *config.Config
	style    *ui.Styles
	log      *slog.Logger
	clock    clockwork.Clock
	music    pomodoro.Music
	chime    pomodoro.Chime
	recorder Recorder
	notifier Notifier

	help     help.Model
	progress progress.Model
	modal    ui.Modal
	keys     keymap

	// updates carries scheduler changes to the program. It holds at most
	// one pending state; View always reads the latest snapshot.
	updates chan pomodoro.State
	done    chan struct{}
	closed  sync.Once
	hooks   sync.WaitGroup
	// hookMu guards closing. Once closing is set, completions are handled
	// inline instead of on a new goroutine.
	hookMu  sync.Mutex
	closing bool

	runID uuid.UUID
}

// New creates the timer screen for cfg. The timer starts idle at the
// beginning of the first work phase.
func New(cfg *config.Config, opts ...Option) (*Timer, error) {
	t := &Timer{
		opts:     cfg,
		log:      slog.Default(),
		clock:    clockwork.NewRealClock(),
		notifier: notify,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		keys:     newKeymap(),
		updates:  make(chan pomodoro.State, 1),
		done:     make(chan struct{}),
		runID:    uuid.New(),
	}

	for _, opt := range opts {
		opt(t)
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	t.style = ui.NewStyles(map[pomodoro.Phase]string{
		pomodoro.Work:       cfg.Work.Color,
		pomodoro.ShortBreak: cfg.ShortBreak.Color,
		pomodoro.LongBreak:  cfg.LongBreak.Color,
	})

	t.modal = ui.Modal{
		Title: "Keyboard shortcuts",
		OnClose: func() tea.Cmd {
			return func() tea.Msg { return modalClosedMsg{} }
		},
	}

	schedOpts := []pomodoro.Option{
		pomodoro.WithClock(t.clock),
		pomodoro.WithLogger(t.log),
		pomodoro.WithObserver(t.publish),
		pomodoro.WithCompletionHook(t.onComplete),
	}

	if t.music != nil {
		schedOpts = append(schedOpts, pomodoro.WithMusic(t.music))
	}

	if t.chime != nil {
		schedOpts = append(schedOpts, pomodoro.WithChime(t.chime))
	}

	sched, err := pomodoro.New(cfg.SchedulerSettings(), schedOpts...)
	if err != nil {
		return nil, err
	}

	t.sched = sched
	t.keys.sync(sched.Snapshot())

	return t, nil
}

// Scheduler exposes the underlying scheduler.
func (t *Timer) Scheduler() *pomodoro.Scheduler {
	return t.sched
}

// Close stops the countdown and waits for completion hooks that are still
// running.
func (t *Timer) Close() {
	t.closed.Do(func() {
		t.hookMu.Lock()
		t.closing = true
		t.hookMu.Unlock()

		close(t.done)
		t.sched.Close()
	})

	t.hooks.Wait()
}

// publish forwards a state change to the program without blocking the
// scheduler.
func (t *Timer) publish(st pomodoro.State) {
	select {
	case <-t.done:
		return
	default:
	}

	select {
	case t.updates <- st:
	default:
	}
}

func (t *Timer) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("pomo"), t.waitForUpdate())
}

// waitForUpdate blocks until the scheduler reports a change.
func (t *Timer) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-t.done:
			return nil
		default:
		}

		select {
		case st := <-t.updates:
			return stateMsg(st)
		case <-t.done:
			return nil
		}
	}
}
