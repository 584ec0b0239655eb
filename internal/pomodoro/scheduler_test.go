package pomodoro_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/pomo/internal/pomodoro"
)

type player struct {
	mu      sync.Mutex
	plays   int
	loops   []bool
	rewinds int
	chimes  int
	playing bool
}

func (p *player) Play(loop bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.plays++
	p.loops = append(p.loops, loop)
	p.playing = true

	return nil
}

func (p *player) PauseAndRewind() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rewinds++
	p.playing = false

	return nil
}

func (p *player) PlayOnce() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.chimes++

	return nil
}

func (p *player) isPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}

func (p *player) chimeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.chimes
}

func testSettings(cycles int) pomodoro.Settings {
	return pomodoro.Settings{
		Durations: map[pomodoro.Phase]time.Duration{
			pomodoro.Work:       25 * time.Second,
			pomodoro.ShortBreak: 5 * time.Second,
			pomodoro.LongBreak:  15 * time.Second,
		},
		TotalCycles: cycles,
	}
}

func newScheduler(
	t *testing.T,
	settings pomodoro.Settings,
	opts ...pomodoro.Option,
) (*pomodoro.Scheduler, *clockwork.FakeClock, *player) {
	t.Helper()

	fc := clockwork.NewFakeClock()
	audio := &player{}

	opts = append([]pomodoro.Option{
		pomodoro.WithClock(fc),
		pomodoro.WithMusic(audio),
		pomodoro.WithChime(audio),
	}, opts...)

	s, err := pomodoro.New(settings, opts...)
	require.NoError(t, err)

	t.Cleanup(s.Close)

	return s, fc, audio
}

func ticks(s *pomodoro.Scheduler, n int) {
	for range n {
		s.Tick()
	}
}

func TestNewScheduler(t *testing.T) {
	s, _, _ := newScheduler(t, testSettings(4))

	want := pomodoro.State{
		Phase:        pomodoro.Work,
		Remaining:    25,
		Running:      false,
		CurrentCycle: 1,
		TotalCycles:  4,
	}

	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSchedulerInvalidSettings(t *testing.T) {
	cases := []struct {
		Name     string
		Settings func() pomodoro.Settings
	}{
		{
			Name: "zero cycles",
			Settings: func() pomodoro.Settings {
				return testSettings(0)
			},
		},
		{
			Name: "sub-second work phase",
			Settings: func() pomodoro.Settings {
				s := testSettings(4)
				s.Durations[pomodoro.Work] = 500 * time.Millisecond

				return s
			},
		},
		{
			Name: "missing long break",
			Settings: func() pomodoro.Settings {
				s := testSettings(4)
				delete(s.Durations, pomodoro.LongBreak)

				return s
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := pomodoro.New(tc.Settings())
			assert.Error(t, err)
		})
	}
}

func TestTwoCycleScenario(t *testing.T) {
	s, _, audio := newScheduler(t, testSettings(2))

	s.Start()
	assert.True(t, audio.isPlaying())

	steps := []struct {
		Ticks int
		Want  pomodoro.State
	}{
		{
			Ticks: 25,
			Want: pomodoro.State{
				Phase:        pomodoro.ShortBreak,
				Remaining:    5,
				Running:      true,
				CurrentCycle: 1,
				TotalCycles:  2,
			},
		},
		{
			Ticks: 5,
			Want: pomodoro.State{
				Phase:        pomodoro.Work,
				Remaining:    25,
				Running:      true,
				CurrentCycle: 2,
				TotalCycles:  2,
			},
		},
		{
			Ticks: 25,
			Want: pomodoro.State{
				Phase:        pomodoro.ShortBreak,
				Remaining:    5,
				Running:      true,
				CurrentCycle: 2,
				TotalCycles:  2,
			},
		},
		{
			Ticks: 5,
			Want: pomodoro.State{
				Phase:        pomodoro.Work,
				Remaining:    25,
				Running:      false,
				CurrentCycle: 1,
				TotalCycles:  2,
			},
		},
	}

	for i, step := range steps {
		ticks(s, step.Ticks)

		if diff := cmp.Diff(step.Want, s.Snapshot()); diff != "" {
			t.Fatalf("step %d mismatch (-want +got):\n%s", i+1, diff)
		}
	}

	assert.Equal(t, 4, audio.chimeCount())
	assert.False(t, audio.isPlaying(), "music must stop once all cycles end")

	// the timer idles until it is started by hand
	ticks(s, 10)
	assert.Equal(t, 25, s.Snapshot().Remaining)
}

func TestTickWhileStopped(t *testing.T) {
	s, _, _ := newScheduler(t, testSettings(4))

	ticks(s, 3)

	assert.Equal(t, 25, s.Snapshot().Remaining)
}

func TestSetMode(t *testing.T) {
	for _, phase := range pomodoro.Phases {
		t.Run(phase.String(), func(t *testing.T) {
			s, _, audio := newScheduler(t, testSettings(4))

			s.Start()
			ticks(s, 3)

			require.NoError(t, s.SetMode(phase))

			got := s.Snapshot()

			assert.Equal(t, phase, got.Phase)
			assert.Equal(t, int(s.Duration(phase).Seconds()), got.Remaining)
			assert.False(t, got.Running)
			assert.False(t, audio.isPlaying())
		})
	}
}

func TestSetModeUnknownPhase(t *testing.T) {
	s, _, _ := newScheduler(t, testSettings(4))

	before := s.Snapshot()

	assert.Error(t, s.SetMode(pomodoro.Phase(42)))
	assert.Equal(t, before, s.Snapshot())
}

func TestReset(t *testing.T) {
	s, _, _ := newScheduler(t, testSettings(4))

	require.NoError(t, s.SetMode(pomodoro.LongBreak))
	s.Start()
	ticks(s, 7)

	s.Reset()

	got := s.Snapshot()
	assert.Equal(t, pomodoro.LongBreak, got.Phase)
	assert.Equal(t, 15, got.Remaining)
	assert.False(t, got.Running)
}

func TestSkipMatchesNaturalCompletion(t *testing.T) {
	setups := []struct {
		Name  string
		Setup func(s *pomodoro.Scheduler)
	}{
		{
			Name:  "work phase",
			Setup: func(s *pomodoro.Scheduler) { s.Start() },
		},
		{
			Name: "break with cycles left",
			Setup: func(s *pomodoro.Scheduler) {
				s.Start()
				ticks(s, 25)
			},
		},
		{
			Name: "final break",
			Setup: func(s *pomodoro.Scheduler) {
				s.Start()
				ticks(s, 25+5+25)
			},
		},
	}

	for _, tc := range setups {
		t.Run(tc.Name, func(t *testing.T) {
			natural, _, _ := newScheduler(t, testSettings(2))
			skipped, _, _ := newScheduler(t, testSettings(2))

			tc.Setup(natural)
			tc.Setup(skipped)

			ticks(natural, natural.Snapshot().Remaining)
			skipped.Skip()

			if diff := cmp.Diff(natural.Snapshot(), skipped.Snapshot()); diff != "" {
				t.Errorf("skip diverged from countdown (-natural +skip):\n%s", diff)
			}
		})
	}
}

func TestSkipWhilePaused(t *testing.T) {
	s, _, _ := newScheduler(t, testSettings(4))

	s.Skip()

	got := s.Snapshot()
	assert.Equal(t, pomodoro.ShortBreak, got.Phase)
	assert.True(t, got.Running)
}

func TestLongBreakOnLastCycle(t *testing.T) {
	settings := testSettings(2)
	settings.LongBreakOnLastCycle = true

	s, _, _ := newScheduler(t, settings)

	s.Start()
	ticks(s, 25)
	assert.Equal(t, pomodoro.ShortBreak, s.Snapshot().Phase)

	ticks(s, 5+25)

	got := s.Snapshot()
	assert.Equal(t, pomodoro.LongBreak, got.Phase)
	assert.Equal(t, 15, got.Remaining)
	assert.Equal(t, 2, got.CurrentCycle)

	ticks(s, 15)

	got = s.Snapshot()
	assert.Equal(t, pomodoro.Work, got.Phase)
	assert.Equal(t, 1, got.CurrentCycle)
	assert.False(t, got.Running)
}

func TestCompletionHook(t *testing.T) {
	var got []pomodoro.Completion

	s, fc, _ := newScheduler(
		t,
		testSettings(1),
		pomodoro.WithCompletionHook(func(c pomodoro.Completion) {
			got = append(got, c)
		}),
	)

	s.Start()
	ticks(s, 25)
	s.Skip()

	want := []pomodoro.Completion{
		{
			At:          fc.Now(),
			Finished:    pomodoro.Work,
			Next:        pomodoro.ShortBreak,
			Cycle:       1,
			TotalCycles: 1,
			AutoStarted: true,
		},
		{
			At:          fc.Now(),
			Finished:    pomodoro.ShortBreak,
			Next:        pomodoro.Work,
			Cycle:       1,
			TotalCycles: 1,
			AutoStarted: false,
			Skipped:     true,
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("completions mismatch (-want +got):\n%s", diff)
	}
}

func TestCloseWaitsForCompletionHooks(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	var finished bool

	s, _, _ := newScheduler(
		t,
		testSettings(1),
		pomodoro.WithCompletionHook(func(pomodoro.Completion) {
			close(entered)
			<-release

			finished = true
		}),
	)

	s.Start()
	ticks(s, 24)

	go s.Tick()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("completion hook was not called")
	}

	closed := make(chan struct{})

	go func() {
		s.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a completion hook was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after the hook finished")
	}

	assert.True(t, finished)
}

func TestCompletionLogsFinishedCycle(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	s, _, _ := newScheduler(t, testSettings(2), pomodoro.WithLogger(logger))

	s.Start()
	ticks(s, 25)
	ticks(s, 5)

	require.Equal(t, 2, s.Snapshot().CurrentCycle)

	var lines []string

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "phase completed") {
			lines = append(lines, line)
		}
	}

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "cycle=1")
	assert.Contains(t, lines[1], "cycle=1", "a finished break logs its own cycle")
	assert.NotContains(t, lines[1], "cycle=2")
}

func TestAudioCollaborators(t *testing.T) {
	s, _, audio := newScheduler(t, testSettings(4))

	s.Start()
	s.Start()

	audio.mu.Lock()
	assert.Equal(t, 1, audio.plays, "a second start must not replay")
	assert.Equal(t, []bool{true}, audio.loops)
	audio.mu.Unlock()

	s.PauseResume()
	assert.False(t, audio.isPlaying())

	s.PauseResume()
	assert.True(t, audio.isPlaying())

	audio.mu.Lock()
	assert.Equal(t, []bool{true, true}, audio.loops)
	audio.mu.Unlock()
}

// collect registers an observer that forwards every state change.
func collect() (pomodoro.Option, <-chan pomodoro.State) {
	ch := make(chan pomodoro.State, 256)

	return pomodoro.WithObserver(func(st pomodoro.State) {
		ch <- st
	}), ch
}

func waitFor(
	t *testing.T,
	ch <-chan pomodoro.State,
	match func(pomodoro.State) bool,
) pomodoro.State {
	t.Helper()

	timeout := time.After(2 * time.Second)

	for {
		select {
		case st := <-ch:
			if match(st) {
				return st
			}
		case <-timeout:
			t.Fatal("timed out waiting for state change")
		}
	}
}

func TestClockDrivesCountdown(t *testing.T) {
	observe, updates := collect()
	s, fc, _ := newScheduler(t, testSettings(4), observe)

	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for want := 24; want >= 20; want-- {
		require.NoError(t, fc.BlockUntilContext(ctx, 1))
		fc.Advance(time.Second)

		waitFor(t, updates, func(st pomodoro.State) bool {
			return st.Remaining == want
		})
	}
}

func TestPauseStopsCountdown(t *testing.T) {
	observe, updates := collect()
	s, fc, audio := newScheduler(t, testSettings(4), observe)

	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)

	waitFor(t, updates, func(st pomodoro.State) bool {
		return st.Remaining == 24
	})

	s.PauseResume()
	assert.False(t, audio.isPlaying())

	audio.mu.Lock()
	assert.Equal(t, 1, audio.rewinds)
	audio.mu.Unlock()

	fc.Advance(10 * time.Second)

	assert.Never(t, func() bool {
		return s.Snapshot().Remaining != 24
	}, 100*time.Millisecond, 10*time.Millisecond)

	s.PauseResume()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)

	waitFor(t, updates, func(st pomodoro.State) bool {
		return st.Remaining == 23
	})
}

func TestModeSwitchCancelsTicker(t *testing.T) {
	observe, updates := collect()
	s, fc, _ := newScheduler(t, testSettings(4), observe)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// arm and cancel the ticker several times; only the last one may tick
	for range 3 {
		s.Start()
		require.NoError(t, s.SetMode(pomodoro.ShortBreak))
	}

	s.Start()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)

	waitFor(t, updates, func(st pomodoro.State) bool {
		return st.Remaining == 4
	})

	assert.Never(t, func() bool {
		return s.Snapshot().Remaining != 4
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestInvariantsUnderRandomActions(t *testing.T) {
	s, _, _ := newScheduler(t, testSettings(3))

	r := rand.New(rand.NewPCG(1, 2))

	actions := []func(){
		s.Start,
		s.PauseResume,
		s.Skip,
		s.Reset,
		func() { _ = s.SetMode(pomodoro.Phases[r.IntN(len(pomodoro.Phases))]) },
		func() { ticks(s, r.IntN(30)) },
	}

	for i := range 2000 {
		actions[r.IntN(len(actions))]()

		st := s.Snapshot()
		limit := int(s.Duration(st.Phase).Seconds())

		require.GreaterOrEqual(t, st.Remaining, 0, "step %d", i)
		require.LessOrEqual(t, st.Remaining, limit, "step %d", i)
		require.GreaterOrEqual(t, st.CurrentCycle, 1, "step %d", i)
		require.LessOrEqual(t, st.CurrentCycle, st.TotalCycles, "step %d", i)
	}
}

func TestParsePhase(t *testing.T) {
	cases := map[string]pomodoro.Phase{
		"work":        pomodoro.Work,
		"Pomodoro":    pomodoro.Work,
		"short_break": pomodoro.ShortBreak,
		"short-break": pomodoro.ShortBreak,
		"Long break":  pomodoro.LongBreak,
	}

	for in, want := range cases {
		got, err := pomodoro.ParsePhase(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := pomodoro.ParsePhase("lunch")
	assert.Error(t, err)
}

func TestPhaseIsBreak(t *testing.T) {
	assert.False(t, pomodoro.Work.IsBreak())
	assert.True(t, pomodoro.ShortBreak.IsBreak())
	assert.True(t, pomodoro.LongBreak.IsBreak())
}

func TestPhaseText(t *testing.T) {
	for _, p := range pomodoro.Phases {
		b, err := p.MarshalText()
		require.NoError(t, err)

		var got pomodoro.Phase
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, p, got)
	}

	b, err := pomodoro.ShortBreak.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "short_break", string(b))

	_, err = pomodoro.Phase(7).MarshalText()
	assert.Error(t, err)
}
