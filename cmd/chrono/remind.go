package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the due-task reminder schedule",
	Long: `Print a report of tasks due today and overdue tasks, then keep
running and repeat the report on the configured cron schedule until
interrupted. Each scheduled run refreshes the task collection from the
gateway first, so edits made elsewhere show up in later reports.`,
	Run: runRemind,
}

func runRemind(cmd *cobra.Command, args []string) {
	a := newApp(cmd.Context())
	defer a.close()

	printDueReport(a)

	c := cron.New()
	if _, err := c.AddFunc(a.cfg.RemindSchedule, func() {
		// Refresh first so an overnight daemon reports current state. A
		// failed refresh leaves the last known collection standing.
		_ = a.tasks.Load(cmd.Context())
		printDueReport(a)
	}); err != nil {
		fatal("invalid remind schedule %q: %v", a.cfg.RemindSchedule, err)
	}
	c.Start()
	defer c.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}

func printDueReport(a *app) {
	now := time.Now()
	var dueToday, overdue int

	fmt.Printf("Reminders for %s\n", now.Format("Mon Jan 2"))
	for _, t := range a.tasks.Tasks() {
		switch {
		case t.Completed:
		case t.DueOn(now):
			dueToday++
			fmt.Printf("  today:   %s %s\n", shortID(t.ID), t.Title)
		case t.Overdue(now):
			overdue++
			fmt.Printf("  overdue: %s %s (due %s)\n", shortID(t.ID), t.Title, t.DueDate)
		}
	}

	if dueToday == 0 && overdue == 0 {
		fmt.Println("  Nothing due. Nice.")
	}
}
