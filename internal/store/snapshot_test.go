package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrono-app/chrono/internal/model"
	"github.com/chrono-app/chrono/tests/testutil"
)

func TestSnapshotMissingKeys(t *testing.T) {
	snap := testutil.NewTestSnapshot(t)
	ctx := context.Background()

	_, ok, err := snap.LoadTasks(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = snap.LoadSessions(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = snap.LoadUserData(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotTasksRoundTrip(t *testing.T) {
	snap := testutil.NewTestSnapshot(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{
			ID:       "t1",
			Title:    "snapshot me",
			Priority: model.PriorityHigh,
			Subtasks: []model.Subtask{
				{ID: "s1", Title: "step one", Completed: true},
			},
			CreatedAt: now,
		},
	}

	require.NoError(t, snap.SaveTasks(ctx, tasks))

	got, ok, err := snap.LoadTasks(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tasks, got)

	// A later save replaces the snapshot wholesale.
	require.NoError(t, snap.SaveTasks(ctx, nil))
	got, ok, err = snap.LoadTasks(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestSnapshotUserDataRoundTrip(t *testing.T) {
	snap := testutil.NewTestSnapshot(t)
	ctx := context.Background()

	stats := model.UserStats{
		Streak:             3,
		TotalPoints:        40,
		Badges:             []model.Badge{{Name: "First Steps", Icon: "🎯"}},
		TotalFocusSessions: 2,
		TotalFocusMinutes:  50,
	}
	require.NoError(t, snap.SaveUserData(ctx, stats))

	got, ok, err := snap.LoadUserData(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stats, got)
}
