package timer

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/pomo/internal/models"
	"github.com/ayoisaiah/pomo/internal/pomodoro"
)

// notify sends a desktop notification.
func notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// onComplete handles a finished phase off the scheduler's goroutine. After
// Close has begun the phase is handled before returning.
func (t *Timer) onComplete(c pomodoro.Completion) {
	t.hookMu.Lock()
	defer t.hookMu.Unlock()

	if t.closing {
		t.complete(c)
		return
	}

	t.hooks.Add(1)

	go func() {
		defer t.hooks.Done()

		t.complete(c)
	}()
}

func (t *Timer) complete(c pomodoro.Completion) {
	t.log.Info(
		"phase finished",
		slog.String("run_id", t.runID.String()),
		slog.String("phase", c.Finished.String()),
		slog.Int("cycle", c.Cycle),
		slog.Bool("skipped", c.Skipped),
	)

	if err := t.record(c); err != nil {
		t.log.Error("recording failed", slog.Any("error", err))
	}

	if err := t.sendNotification(c); err != nil {
		t.log.Warn("notification failed", slog.Any("error", err))
	}

	if err := t.runCmd(c); err != nil {
		t.log.Warn("completion command failed", slog.Any("error", err))
	}
}

func (t *Timer) record(c pomodoro.Completion) error {
	if t.recorder == nil {
		return nil
	}

	r := models.NewRecord(t.runID, c, t.sched.Duration(c.Finished))

	if err := t.recorder.SaveRecord(r); err != nil {
		return errSaveRecord.Fmt(c.Finished).Wrap(err)
	}

	return nil
}

func (t *Timer) sendNotification(c pomodoro.Completion) error {
	if !t.opts.Notifications.Enabled || t.notifier == nil {
		return nil
	}

	title := fmt.Sprintf("%s is finished", c.Finished)
	msg := t.opts.Phase(c.Next).Message

	if err := t.notifier(title, msg); err != nil {
		return errNotify.Wrap(err)
	}

	return nil
}

// runCmd executes the configured command after a phase ends. The finished
// and upcoming phases are exposed through the environment.
func (t *Timer) runCmd(c pomodoro.Completion) error {
	cmdStr := t.opts.Settings.Cmd
	if cmdStr == "" {
		return nil
	}

	args, err := shellquote.Split(cmdStr)
	if err != nil {
		return errParseCmd.Fmt(cmdStr).Wrap(err)
	}

	if len(args) == 0 {
		return nil
	}

	finished, _ := c.Finished.MarshalText()
	next, _ := c.Next.MarshalText()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(
		os.Environ(),
		"POMO_FINISHED="+string(finished),
		"POMO_NEXT="+string(next),
		fmt.Sprintf("POMO_CYCLE=%d", c.Cycle),
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		t.log.Debug("completion command output", slog.String("output", string(out)))
		return errRunCmd.Fmt(cmdStr).Wrap(err)
	}

	return nil
}
