// Package gamify holds the pure gamification rules: subtask generation,
// points, badges, and streaks. Nothing in this package performs I/O; the
// stores recompute derived state from scratch through these functions after
// every mutation so the aggregates can never drift from the collections.
package gamify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chrono-app/chrono/internal/model"
)

// PointsPerTask is awarded for each completed task.
const PointsPerTask = 10

// subtaskTemplates are the fixed titles assigned to generated subtasks,
// in order.
var subtaskTemplates = [...]string{
	"Research and gather materials",
	"Create outline or plan",
	"Complete first draft",
	"Review and revise",
	"Final check and submission prep",
}

// maxSubtasks caps generation at the template list length.
const maxSubtasks = len(subtaskTemplates)

// GenerateSubtasks produces the creation-time subtask set for a task with
// the given estimate. Tasks of two hours or less get none; larger tasks get
// min(ceil(hours/2), 5) steps titled from the template list. The result is
// deterministic apart from the generated ids, and the function is called
// exactly once per task, at creation.
func GenerateSubtasks(estimatedHours int) []model.Subtask {
	if estimatedHours <= 2 {
		return nil
	}

	count := (estimatedHours + 1) / 2
	if count > maxSubtasks {
		count = maxSubtasks
	}

	subtasks := make([]model.Subtask, count)
	for i := range subtasks {
		title := fmt.Sprintf("Step %d", i+1)
		if i < len(subtaskTemplates) {
			title = subtaskTemplates[i]
		}
		subtasks[i] = model.Subtask{
			ID:    uuid.New().String(),
			Title: title,
		}
	}
	return subtasks
}

// Points returns the score for the given completed-task count.
func Points(completedCount int) int {
	return completedCount * PointsPerTask
}

// badgeRule pairs a completed-count threshold with the badge it earns.
type badgeRule struct {
	threshold int
	badge     model.Badge
}

var badgeRules = []badgeRule{
	{1, model.Badge{Name: "First Steps", Icon: "🎯", Description: "Completed your first task."}},
	{5, model.Badge{Name: "Getting Started", Icon: "⭐", Description: "Completed 5 tasks."}},
	{10, model.Badge{Name: "Task Master", Icon: "🏆", Description: "Completed 10 tasks."}},
	{25, model.Badge{Name: "Productivity Pro", Icon: "💎", Description: "Completed 25 tasks."}},
	{50, model.Badge{Name: "Achievement Hunter", Icon: "👑", Description: "Completed 50 tasks."}},
}

// BadgesFor returns every badge whose threshold is at or below the given
// completed-task count, in threshold order.
func BadgesFor(completedCount int) []model.Badge {
	var badges []model.Badge
	for _, r := range badgeRules {
		if completedCount >= r.threshold {
			badges = append(badges, r.badge)
		}
	}
	return badges
}

// MergeBadges unions previously earned badges with freshly computed ones,
// preserving threshold order. Badges are monotonic: once earned they are
// never revoked, even if the completed count later drops below a threshold.
func MergeBadges(earned, fresh []model.Badge) []model.Badge {
	have := make(map[string]bool, len(earned)+len(fresh))
	for _, b := range earned {
		have[b.Name] = true
	}
	for _, b := range fresh {
		have[b.Name] = true
	}

	var merged []model.Badge
	for _, r := range badgeRules {
		if have[r.badge.Name] {
			merged = append(merged, r.badge)
		}
	}
	return merged
}

// CompletedCount returns the number of completed tasks in the collection.
func CompletedCount(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Streak counts consecutive calendar days of activity ending today or
// yesterday. Activity timestamps may arrive in any order and with
// duplicates; comparison is day-granular in local time.
func Streak(activity []time.Time, now time.Time) int {
	if len(activity) == 0 {
		return 0
	}

	days := make(map[string]bool, len(activity))
	for _, ts := range activity {
		days[ts.In(time.Local).Format("2006-01-02")] = true
	}

	// A streak is still alive if the most recent activity was yesterday.
	day := now.In(time.Local)
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
