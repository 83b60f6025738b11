package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/chrono-app/chrono/internal/model"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	a := newApp(cmd.Context())
	defer a.close()

	tasks := a.tasks.Tasks()
	if len(tasks) == 0 {
		fmt.Println("No tasks yet. Run `chrono add` to create one.")
		return
	}

	now := time.Now()
	for _, t := range tasks {
		fmt.Println(renderTask(t, now))
		for i, s := range t.Subtasks {
			mark := "[ ]"
			if s.Completed {
				mark = doneStyle.Render("[x]")
			}
			fmt.Printf("      %s %d. %s\n", mark, i+1, s.Title)
		}
	}
}

func renderTask(t model.Task, now time.Time) string {
	mark := pendingStyle.Render("[ ]")
	if t.Completed {
		mark = doneStyle.Render("[x]")
	}

	due := ""
	if t.DueDate != "" {
		due = "due " + t.DueDate
		if t.Overdue(now) {
			due = overdueStyle.Render(due + " (overdue)")
		} else {
			due = dimStyle.Render(due)
		}
	}

	line := fmt.Sprintf("%s %s %s", mark, dimStyle.Render(shortID(t.ID)), titleStyle.Render(t.Title))
	if t.Subject != "" {
		line += " " + dimStyle.Render("#"+t.Subject)
	}
	line += " " + dimStyle.Render(string(t.Priority))
	if due != "" {
		line += " " + due
	}
	return line
}

// shortID renders the first id segment, enough to address tasks by prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
