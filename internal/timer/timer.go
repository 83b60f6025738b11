// Package timer implements the focus/break interval state machine. The
// machine is driven by whatever scheduler hosts it (the CLI feeds it
// one-second ticks) and is meant for single-goroutine use, matching the
// cooperative scheduling model of the interactive client.
package timer

import "time"

// Mode identifies which interval is counting down.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

// Default interval lengths.
const (
	DefaultFocusDuration = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// Completion reports what a Tick finished. FocusMinutes is non-zero for
// exactly one tick per focus interval: the one that ran the countdown to
// zero. A completed break emits nothing; breaks are not recorded. A
// manually abandoned focus interval emits nothing either; partial credit
// is not a supported concept.
type Completion struct {
	FocusMinutes int
}

// Interval is the focus/break countdown.
type Interval struct {
	mode          Mode
	focusDuration time.Duration
	breakDuration time.Duration
	remaining     time.Duration
	running       bool
}

// New creates an interval timer in focus mode, stopped, with the full
// focus countdown remaining. Non-positive durations fall back to the
// defaults.
func New(focus, brk time.Duration) *Interval {
	if focus <= 0 {
		focus = DefaultFocusDuration
	}
	if brk <= 0 {
		brk = DefaultBreakDuration
	}
	return &Interval{
		mode:          ModeFocus,
		focusDuration: focus,
		breakDuration: brk,
		remaining:     focus,
	}
}

// Mode returns the current interval kind.
func (t *Interval) Mode() Mode { return t.mode }

// Remaining returns the time left on the current countdown.
func (t *Interval) Remaining() time.Duration { return t.remaining }

// Running reports whether the countdown is active.
func (t *Interval) Running() bool { return t.running }

// Total returns the full length of the current interval.
func (t *Interval) Total() time.Duration {
	if t.mode == ModeFocus {
		return t.focusDuration
	}
	return t.breakDuration
}

// Progress returns completion of the current interval in [0, 1].
func (t *Interval) Progress() float64 {
	total := t.Total()
	if total <= 0 {
		return 0
	}
	return float64(total-t.remaining) / float64(total)
}

// Toggle starts or pauses the countdown.
func (t *Interval) Toggle() {
	t.running = !t.running
}

// Reset stops the countdown and restores the current interval's full
// length. No session is emitted.
func (t *Interval) Reset() {
	t.running = false
	t.remaining = t.Total()
}

// Switch manually changes mode, stopping and resetting the countdown.
// No session is emitted, so a focus interval abandoned mid-way is never
// recorded.
func (t *Interval) Switch(mode Mode) {
	t.mode = mode
	t.running = false
	t.remaining = t.Total()
}

// Tick advances the countdown by d while running. When a focus countdown
// reaches zero the machine transitions to break and reports the elapsed
// focus minutes; when a break countdown reaches zero it transitions back
// to focus and reports nothing. Either way the next interval starts
// stopped.
func (t *Interval) Tick(d time.Duration) Completion {
	if !t.running || d <= 0 {
		return Completion{}
	}

	t.remaining -= d
	if t.remaining > 0 {
		return Completion{}
	}

	t.running = false
	completed := t.mode

	if completed == ModeFocus {
		t.mode = ModeBreak
		t.remaining = t.breakDuration
		return Completion{
			FocusMinutes: int(t.focusDuration / time.Minute),
		}
	}

	t.mode = ModeFocus
	t.remaining = t.focusDuration
	return Completion{}
}
