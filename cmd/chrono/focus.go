package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/chrono-app/chrono/internal/timer"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run the focus/break timer",
	Long: `Run the interactive focus timer. A focus interval that counts down to
zero records one completed session; breaks and abandoned intervals are
never recorded.`,
	Run: runFocus,
}

func runFocus(cmd *cobra.Command, args []string) {
	a := newApp(cmd.Context())
	defer a.close()

	interval := timer.New(
		time.Duration(a.cfg.Timer.FocusMinutes)*time.Minute,
		time.Duration(a.cfg.Timer.BreakMinutes)*time.Minute,
	)

	m := focusModel{
		app:      a,
		interval: interval,
		bar:      progress.New(progress.WithDefaultGradient()),
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fatal("running timer: %v", err)
	}
}

type tickMsg time.Time

type sessionSavedMsg struct{ err error }

type focusModel struct {
	app      *app
	interval *timer.Interval
	bar      progress.Model
	saved    int
	saveErr  error
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m focusModel) Init() tea.Cmd {
	return tick()
}

func (m focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.interval.Toggle()
		case "r":
			m.interval.Reset()
		case "b":
			m.interval.Switch(timer.ModeBreak)
		case "f":
			m.interval.Switch(timer.ModeFocus)
		}
		return m, nil

	case tickMsg:
		completion := m.interval.Tick(time.Second)
		if minutes := completion.FocusMinutes; minutes > 0 {
			return m, tea.Batch(tick(), m.saveSession(minutes))
		}
		return m, tick()

	case sessionSavedMsg:
		if msg.err != nil {
			m.saveErr = msg.err
		} else {
			m.saved++
			m.saveErr = nil
		}
		return m, nil
	}

	return m, nil
}

// saveSession records the completed focus interval through the store.
func (m focusModel) saveSession(minutes int) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		// No cancellation token is defined for in-flight saves; the
		// transport's own timeout bounds the call.
		_, err := a.focus.Add(context.Background(), minutes)
		return sessionSavedMsg{err: err}
	}
}

var (
	modeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	clockStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m focusModel) View() string {
	remaining := m.interval.Remaining()
	mins := int(remaining.Minutes())
	secs := int(remaining.Seconds()) % 60

	mode := "Focus"
	if m.interval.Mode() == timer.ModeBreak {
		mode = "Break"
	}
	state := "paused"
	if m.interval.Running() {
		state = "running"
	}

	s := fmt.Sprintf(
		"\n  %s  %s (%s)\n\n  %s\n\n",
		modeStyle.Render(mode),
		clockStyle.Render(fmt.Sprintf("%02d:%02d", mins, secs)),
		state,
		m.bar.ViewAs(m.interval.Progress()),
	)

	total := m.app.focus.TotalSessions()
	s += fmt.Sprintf("  Sessions this run: %d   All-time: %d (%d min)\n",
		m.saved, total, m.app.focus.TotalMinutes())
	if m.saveErr != nil {
		s += fmt.Sprintf("  Could not save last session: %v\n", m.saveErr)
	}
	s += helpStyle.Render("\n  space start/pause · f focus · b break · r reset · q quit\n")
	return s
}
