package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	statHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	statValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	badgeStyle      = lipgloss.NewStyle().PaddingLeft(2)
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show points, badges, streak, and focus totals",
	Run:   runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	a := newApp(cmd.Context())
	defer a.close()

	fmt.Println(statHeaderStyle.Render("Progress"))
	fmt.Printf("  Points: %s\n", statValueStyle.Render(fmt.Sprintf("%d", a.tasks.TotalPoints())))
	fmt.Printf("  Streak: %s days\n", statValueStyle.Render(fmt.Sprintf("%d", a.tasks.Streak())))
	fmt.Printf("  Focus:  %s sessions, %s minutes\n",
		statValueStyle.Render(fmt.Sprintf("%d", a.focus.TotalSessions())),
		statValueStyle.Render(fmt.Sprintf("%d", a.focus.TotalMinutes())),
	)

	badges := a.tasks.Badges()
	fmt.Println()
	fmt.Println(statHeaderStyle.Render("Badges"))
	if len(badges) == 0 {
		fmt.Println("  None yet. Complete a task to earn your first.")
		return
	}
	for _, b := range badges {
		fmt.Println(badgeStyle.Render(fmt.Sprintf("%s %s: %s", b.Icon, b.Name, b.Description)))
	}
}
