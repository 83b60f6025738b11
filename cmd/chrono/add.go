package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/chrono-app/chrono/internal/model"
	"github.com/chrono-app/chrono/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new task",
	Long: `Add a new task through an interactive form. Tasks estimated at more
than two hours get generated subtasks.`,
	Run: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) {
	a := newApp(cmd.Context())
	defer a.close()

	if a.cfg.UserID == "" {
		fatal("no identity established; run `chrono login` first")
	}

	var (
		title       string
		description string
		subject     string
		dueDate     string
		priority    = model.PriorityMedium
		hoursRaw    = "1"
	)

	// The store performs no validation; gating title, due date, and the
	// estimate is this layer's job.
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&description),
			huh.NewInput().
				Title("Subject").
				Value(&subject),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD)").
				Value(&dueDate).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("due date must be YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", model.PriorityLow),
					huh.NewOption("Medium", model.PriorityMedium),
					huh.NewOption("High", model.PriorityHigh),
				).
				Value(&priority),
			huh.NewInput().
				Title("Estimated hours").
				Value(&hoursRaw).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("estimate must be a positive integer")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		fatal("%v", err)
	}

	hours, _ := strconv.Atoi(strings.TrimSpace(hoursRaw))

	task, err := a.tasks.Add(cmd.Context(), store.AddTaskInput{
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(description),
		Subject:        strings.TrimSpace(subject),
		DueDate:        strings.TrimSpace(dueDate),
		Priority:       priority,
		EstimatedHours: hours,
	})
	if err != nil {
		fatal("adding task: %v", err)
	}

	fmt.Printf("Added %q", task.Title)
	if n := len(task.Subtasks); n > 0 {
		fmt.Printf(" with %d subtasks", n)
	}
	fmt.Println(".")
}
