package gamify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrono-app/chrono/internal/model"
)

func TestGenerateSubtasksSmallEstimates(t *testing.T) {
	for _, hours := range []int{-1, 0, 1, 2} {
		assert.Empty(t, GenerateSubtasks(hours), "estimate %d", hours)
	}
}

func TestGenerateSubtasksCounts(t *testing.T) {
	cases := []struct {
		hours int
		want  int
	}{
		{3, 2},
		{4, 2},
		{5, 3},
		{6, 3},
		{7, 4},
		{9, 5},
		{10, 5},
		{100, 5}, // capped at the template list length
	}

	for _, tc := range cases {
		subs := GenerateSubtasks(tc.hours)
		require.Len(t, subs, tc.want, "estimate %d", tc.hours)

		for i, s := range subs {
			assert.Equal(t, subtaskTemplates[i], s.Title)
			assert.False(t, s.Completed)
			assert.NotEmpty(t, s.ID)
		}
	}
}

func TestGenerateSubtasksUniqueIDs(t *testing.T) {
	subs := GenerateSubtasks(10)
	seen := map[string]bool{}
	for _, s := range subs {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 0, Points(0))
	assert.Equal(t, 10, Points(1))
	assert.Equal(t, 70, Points(7))

	// Pure: same input, same output.
	assert.Equal(t, Points(7), Points(7))
}

func TestBadgesForThresholds(t *testing.T) {
	assert.Empty(t, BadgesFor(0))

	names := func(badges []model.Badge) []string {
		var out []string
		for _, b := range badges {
			out = append(out, b.Name)
		}
		return out
	}

	assert.Equal(t, []string{"First Steps"}, names(BadgesFor(1)))
	assert.Equal(t, []string{"First Steps", "Getting Started"}, names(BadgesFor(7)))
	assert.Equal(t,
		[]string{"First Steps", "Getting Started", "Task Master", "Productivity Pro", "Achievement Hunter"},
		names(BadgesFor(50)))
}

func TestMergeBadgesIsMonotonic(t *testing.T) {
	earned := BadgesFor(5) // First Steps, Getting Started

	// Completed count dropped back below every threshold.
	merged := MergeBadges(earned, BadgesFor(0))
	assert.Equal(t, earned, merged)

	// New badges fold in without losing old ones, in threshold order.
	merged = MergeBadges(earned, BadgesFor(10))
	require.Len(t, merged, 3)
	assert.Equal(t, "Task Master", merged[2].Name)
}

func TestCompletedCount(t *testing.T) {
	tasks := []model.Task{
		{Completed: true},
		{Completed: false},
		{Completed: true},
	}
	assert.Equal(t, 2, CompletedCount(tasks))
	assert.Equal(t, 0, CompletedCount(nil))
}

func TestStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	assert.Equal(t, 0, Streak(nil, now))

	// Three consecutive days ending today.
	assert.Equal(t, 3, Streak([]time.Time{day(0), day(-1), day(-2)}, now))

	// Still alive when the latest activity was yesterday.
	assert.Equal(t, 2, Streak([]time.Time{day(-1), day(-2)}, now))

	// Broken by a gap.
	assert.Equal(t, 1, Streak([]time.Time{day(0), day(-2), day(-3)}, now))

	// Dead when the latest activity is older than yesterday.
	assert.Equal(t, 0, Streak([]time.Time{day(-2), day(-3)}, now))

	// Duplicates within a day count once.
	assert.Equal(t, 1, Streak([]time.Time{day(0), day(0)}, now))
}
