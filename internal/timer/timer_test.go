package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewStartsStoppedInFocusMode(t *testing.T) {
	iv := New(25*time.Minute, 5*time.Minute)

	assert.Equal(t, ModeFocus, iv.Mode())
	assert.False(t, iv.Running())
	assert.Equal(t, 25*time.Minute, iv.Remaining())
}

func TestNewFallsBackToDefaults(t *testing.T) {
	iv := New(0, -time.Minute)

	assert.Equal(t, DefaultFocusDuration, iv.Remaining())
	iv.Switch(ModeBreak)
	assert.Equal(t, DefaultBreakDuration, iv.Remaining())
}

func TestTickWhilePausedIsNoOp(t *testing.T) {
	iv := New(25*time.Minute, 5*time.Minute)

	done := iv.Tick(time.Second)

	assert.Zero(t, done.FocusMinutes)
	assert.Equal(t, 25*time.Minute, iv.Remaining())
}

func TestFocusCompletionEmitsExactlyOnce(t *testing.T) {
	iv := New(2*time.Minute, time.Minute)
	iv.Toggle()

	var emissions []int
	for i := 0; i < 130; i++ {
		if done := iv.Tick(time.Second); done.FocusMinutes > 0 {
			emissions = append(emissions, done.FocusMinutes)
		}
	}

	assert.Equal(t, []int{2}, emissions)
	assert.Equal(t, ModeBreak, iv.Mode())
	assert.False(t, iv.Running(), "break must not auto-start")
	assert.Equal(t, time.Minute, iv.Remaining())
}

func TestBreakCompletionEmitsNothing(t *testing.T) {
	iv := New(2*time.Minute, time.Minute)
	iv.Switch(ModeBreak)
	iv.Toggle()

	var emitted bool
	for i := 0; i < 70; i++ {
		if iv.Tick(time.Second).FocusMinutes > 0 {
			emitted = true
		}
	}

	assert.False(t, emitted)
	assert.Equal(t, ModeFocus, iv.Mode())
	assert.False(t, iv.Running())
	assert.Equal(t, 2*time.Minute, iv.Remaining())
}

func TestResetRestoresFullCountdownWithoutEmitting(t *testing.T) {
	iv := New(2*time.Minute, time.Minute)
	iv.Toggle()
	iv.Tick(30 * time.Second)

	iv.Reset()

	assert.False(t, iv.Running())
	assert.Equal(t, 2*time.Minute, iv.Remaining())
}

func TestSwitchAbandonsFocusWithoutEmitting(t *testing.T) {
	iv := New(2*time.Minute, time.Minute)
	iv.Toggle()
	iv.Tick(119 * time.Second)

	iv.Switch(ModeBreak)

	assert.Equal(t, ModeBreak, iv.Mode())
	assert.Equal(t, time.Minute, iv.Remaining())
	assert.False(t, iv.Running())

	// Switching back does not resurrect the abandoned countdown.
	iv.Switch(ModeFocus)
	assert.Equal(t, 2*time.Minute, iv.Remaining())
}

func TestOversizedTickStillEmitsOnce(t *testing.T) {
	iv := New(2*time.Minute, time.Minute)
	iv.Toggle()

	done := iv.Tick(10 * time.Minute)

	assert.Equal(t, 2, done.FocusMinutes)
	assert.Equal(t, ModeBreak, iv.Mode())
}

func TestProgress(t *testing.T) {
	iv := New(100*time.Second, time.Minute)
	assert.InDelta(t, 0.0, iv.Progress(), 1e-9)

	iv.Toggle()
	iv.Tick(25 * time.Second)
	assert.InDelta(t, 0.25, iv.Progress(), 1e-9)

	iv.Tick(50 * time.Second)
	assert.InDelta(t, 0.75, iv.Progress(), 1e-9)
}
