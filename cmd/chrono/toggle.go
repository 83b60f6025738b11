package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <task-id>",
	Short: "Toggle a task's completion",
	Long: `Flip the completed state of a task. For tasks with subtasks, the new
state cascades onto every subtask.`,
	Args: cobra.ExactArgs(1),
	Run:  runToggle,
}

func runToggle(cmd *cobra.Command, args []string) {
	a := newApp(cmd.Context())
	defer a.close()

	id, err := resolveTaskID(a, args[0])
	if err != nil {
		fatal("%v", err)
	}

	if err := a.tasks.Toggle(cmd.Context(), id); err != nil {
		fatal("toggling task: %v", err)
	}

	fmt.Printf("Toggled %s. Points: %d\n", shortID(id), a.tasks.TotalPoints())
}

var subtaskCmd = &cobra.Command{
	Use:   "subtask <task-id> <n>",
	Short: "Toggle the n-th subtask of a task",
	Args:  cobra.ExactArgs(2),
	Run:   runSubtask,
}

func runSubtask(cmd *cobra.Command, args []string) {
	a := newApp(cmd.Context())
	defer a.close()

	id, err := resolveTaskID(a, args[0])
	if err != nil {
		fatal("%v", err)
	}

	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		fatal("subtask number must be a positive integer")
	}

	var subtaskID string
	for _, t := range a.tasks.Tasks() {
		if t.ID != id {
			continue
		}
		if n > len(t.Subtasks) {
			fatal("task %s has only %d subtasks", shortID(id), len(t.Subtasks))
		}
		subtaskID = t.Subtasks[n-1].ID
	}

	if err := a.tasks.ToggleSubtask(cmd.Context(), id, subtaskID); err != nil {
		fatal("toggling subtask: %v", err)
	}

	fmt.Printf("Toggled subtask %d of %s.\n", n, shortID(id))
}

var rmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Long: `Delete a task. The task is removed from the gateway first, then
locally, and the aggregates are recomputed over what remains.`,
	Args: cobra.ExactArgs(1),
	Run:  runRm,
}

func runRm(cmd *cobra.Command, args []string) {
	a := newApp(cmd.Context())
	defer a.close()

	id, err := resolveTaskID(a, args[0])
	if err != nil {
		fatal("%v", err)
	}

	if err := a.tasks.Delete(cmd.Context(), id); err != nil {
		fatal("deleting task: %v", err)
	}

	fmt.Printf("Deleted %s.\n", shortID(id))
}
