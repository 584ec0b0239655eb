package pomodoro

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// tickInterval is the period of the countdown.
const tickInterval = time.Second

// Music is a loop-capable player for background audio.
type Music interface {
	Play(loop bool) error
	PauseAndRewind() error
}

// Chime is a fire-and-forget player for the completion sound.
type Chime interface {
	PlayOnce() error
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock that drives the countdown.
func WithClock(c clockwork.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithMusic sets the background music player.
func WithMusic(m Music) Option {
	return func(s *Scheduler) {
		s.music = m
	}
}

// WithChime sets the completion sound player.
func WithChime(c Chime) Option {
	return func(s *Scheduler) {
		s.chime = c
	}
}

// WithObserver registers a function that receives the state after every
// change. It is called without the scheduler lock held.
func WithObserver(fn func(State)) Option {
	return func(s *Scheduler) {
		s.observers = append(s.observers, fn)
	}
}

// WithCompletionHook registers a function that is called each time a phase
// finishes.
func WithCompletionHook(fn func(Completion)) Option {
	return func(s *Scheduler) {
		s.hooks = append(s.hooks, fn)
	}
}

// WithLogger sets the logger used for audio failures and transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// Scheduler owns the countdown and the current phase. All mutations happen
// through its methods; at most one ticker is armed at any time.
type Scheduler struct {
	clock     clockwork.Clock
	music     Music
	chime     Chime
	log       *slog.Logger
	observers []func(State)
	hooks     []func(Completion)

	mu       sync.Mutex
	settings Settings
	state    State
	ticker   clockwork.Ticker
	cancel   context.CancelFunc
	// gen identifies the armed ticker. Ticks carrying an older generation
	// were delivered by a cancelled ticker and are dropped.
	gen     uint64
	pending []Completion
	closed  bool
	// dispatching counts completions handed out by do but not yet passed
	// to every hook. Close waits for it.
	dispatching sync.WaitGroup
}

// New creates a scheduler idling at the start of the first work phase.
func New(settings Settings, opts ...Option) (*Scheduler, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	durations := make(map[Phase]time.Duration, len(settings.Durations))
	for p, d := range settings.Durations {
		durations[p] = d.Truncate(time.Second)
	}

	settings.Durations = durations

	s := &Scheduler{
		clock:    clockwork.NewRealClock(),
		music:    silent{},
		chime:    silent{},
		log:      slog.Default(),
		settings: settings,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.state = State{
		Phase:        Work,
		Remaining:    s.seconds(Work),
		CurrentCycle: 1,
		TotalCycles:  settings.TotalCycles,
	}

	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Scheduler) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Duration returns the configured length of a phase.
func (s *Scheduler) Duration(p Phase) time.Duration {
	return s.settings.Durations[p]
}

// Start begins the countdown of the current phase and the background music.
func (s *Scheduler) Start() {
	s.do(func() {
		if s.state.Running {
			return
		}

		s.state.Running = true
		s.rearm()
		s.playMusic()
	})
}

// PauseResume toggles the countdown. Pausing stops the music and rewinds
// it to the beginning.
func (s *Scheduler) PauseResume() {
	s.do(func() {
		s.state.Running = !s.state.Running
		s.rearm()

		if s.state.Running {
			s.playMusic()
		} else {
			s.stopMusic()
		}
	})
}

// SetMode switches to phase p with a full countdown and leaves the timer
// stopped.
func (s *Scheduler) SetMode(p Phase) error {
	if !p.Valid() {
		return errUnknownPhase.Fmt(int(p))
	}

	s.do(func() {
		s.setMode(p)
	})

	return nil
}

// Reset restores the full countdown of the current phase.
func (s *Scheduler) Reset() {
	s.do(func() {
		s.setMode(s.state.Phase)
	})
}

// Skip ends the current phase immediately.
func (s *Scheduler) Skip() {
	s.do(func() {
		s.state.Remaining = 0
		s.evaluate(true)
	})
}

// Tick advances the countdown by one second. It does nothing while the
// timer is stopped.
func (s *Scheduler) Tick() {
	s.do(s.tick)
}

// Close cancels the countdown and silences the music. It returns once the
// completion hooks of phases that finished before it have been called.
func (s *Scheduler) Close() {
	s.do(func() {
		s.closed = true
		s.state.Running = false
		s.disarm()
		s.stopMusic()
	})

	s.dispatching.Wait()
}

func (s *Scheduler) tick() {
	if !s.state.Running || s.state.Remaining <= 0 {
		return
	}

	s.state.Remaining--
	s.evaluate(false)
}

// do runs fn under the lock and then notifies hooks and observers.
func (s *Scheduler) do(fn func()) {
	s.mu.Lock()
	fn()
	st := s.state
	done := s.pending
	s.pending = nil

	// registered under the lock, so it is ordered before Close's Wait
	tracked := len(done) > 0 && !s.closed
	if tracked {
		s.dispatching.Add(1)
	}
	s.mu.Unlock()

	for _, c := range done {
		for _, hook := range s.hooks {
			hook(c)
		}
	}

	if tracked {
		s.dispatching.Done()
	}

	for _, observe := range s.observers {
		observe(st)
	}
}

func (s *Scheduler) setMode(p Phase) {
	s.disarm()
	s.state.Phase = p
	s.state.Remaining = s.seconds(p)
	s.state.Running = false
	s.stopMusic()
}

// evaluate handles the end of a phase once the countdown reaches zero.
func (s *Scheduler) evaluate(skipped bool) {
	if s.state.Remaining > 0 {
		return
	}

	s.playChime()

	c := Completion{
		At:          s.clock.Now(),
		Finished:    s.state.Phase,
		Cycle:       s.state.CurrentCycle,
		TotalCycles: s.state.TotalCycles,
		Skipped:     skipped,
	}

	switch {
	case !s.state.Phase.IsBreak():
		next := ShortBreak
		if s.settings.LongBreakOnLastCycle &&
			s.state.CurrentCycle == s.state.TotalCycles {
			next = LongBreak
		}

		s.transition(next, true)
	case s.state.CurrentCycle < s.state.TotalCycles:
		s.state.CurrentCycle++
		s.transition(Work, true)
	default:
		s.state.CurrentCycle = 1
		s.transition(Work, false)
	}

	c.Next = s.state.Phase
	c.AutoStarted = s.state.Running

	s.log.Debug(
		"phase completed",
		slog.String("finished", c.Finished.String()),
		slog.String("next", c.Next.String()),
		slog.Int("cycle", c.Cycle),
		slog.Bool("skipped", skipped),
	)

	s.pending = append(s.pending, c)
}

func (s *Scheduler) transition(p Phase, running bool) {
	s.disarm()
	s.state.Phase = p
	s.state.Remaining = s.seconds(p)
	s.state.Running = running

	if running {
		s.arm()
		s.playMusic()
	} else {
		s.stopMusic()
	}
}

// rearm cancels the current ticker and arms a new one if the timer is
// running.
func (s *Scheduler) rearm() {
	s.disarm()

	if s.state.Running {
		s.arm()
	}
}

func (s *Scheduler) arm() {
	ctx, cancel := context.WithCancel(context.Background())

	s.gen++
	s.ticker = s.clock.NewTicker(tickInterval)
	s.cancel = cancel

	go s.loop(ctx, s.ticker, s.gen)
}

func (s *Scheduler) disarm() {
	s.gen++

	if s.cancel == nil {
		return
	}

	s.ticker.Stop()
	s.cancel()
	s.ticker = nil
	s.cancel = nil
}

func (s *Scheduler) loop(ctx context.Context, t clockwork.Ticker, gen uint64) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
			s.do(func() {
				if gen != s.gen {
					return
				}

				s.tick()
			})
		}
	}
}

func (s *Scheduler) seconds(p Phase) int {
	return int(s.settings.Durations[p] / time.Second)
}

func (s *Scheduler) playMusic() {
	if err := s.music.Play(true); err != nil {
		s.log.Debug("background music failed", slog.Any("error", err))
	}
}

func (s *Scheduler) stopMusic() {
	if err := s.music.PauseAndRewind(); err != nil {
		s.log.Debug("pausing background music failed", slog.Any("error", err))
	}
}

func (s *Scheduler) playChime() {
	if err := s.chime.PlayOnce(); err != nil {
		s.log.Debug("notification sound failed", slog.Any("error", err))
	}
}

// silent is used when no audio collaborator is configured.
type silent struct{}

func (silent) Play(bool) error { return nil }

func (silent) PauseAndRewind() error { return nil }

func (silent) PlayOnce() error { return nil }
