package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrono-app/chrono/internal/model"
	"github.com/chrono-app/chrono/internal/store"
	"github.com/chrono-app/chrono/tests/testutil"
)

func newTaskStore(t *testing.T) (*store.TaskStore, *testutil.FakeGateway) {
	t.Helper()
	gw, fake := testutil.NewGateway(t)
	snap := testutil.NewTestSnapshot(t)
	mirror := store.NewStatsMirror(gw)
	return store.NewTaskStore(gw, snap, mirror, "user-1"), fake
}

func addTask(t *testing.T, s *store.TaskStore, title string, hours int) model.Task {
	t.Helper()
	task, err := s.Add(context.Background(), store.AddTaskInput{
		Title:          title,
		DueDate:        "2026-09-01",
		Priority:       model.PriorityMedium,
		EstimatedHours: hours,
	})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	return task
}

func findTask(t *testing.T, s *store.TaskStore, id string) model.Task {
	t.Helper()
	for _, task := range s.Tasks() {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not found", id)
	return model.Task{}
}

func TestAddGeneratesSubtasksAndPersists(t *testing.T) {
	s, fake := newTaskStore(t)

	task := addTask(t, s, "Write thesis chapter", 5)

	assert.Len(t, task.Subtasks, 3)
	assert.False(t, task.Completed)

	// Newest first in memory, and the durable copy matches.
	local := s.Tasks()
	require.Len(t, local, 1)
	assert.Equal(t, task.ID, local[0].ID)
	require.Len(t, fake.StoredTasks(), 1)
}

func TestAddPrependsNewest(t *testing.T) {
	s, _ := newTaskStore(t)

	first := addTask(t, s, "first", 1)
	second := addTask(t, s, "second", 1)

	local := s.Tasks()
	require.Len(t, local, 2)
	assert.Equal(t, second.ID, local[0].ID)
	assert.Equal(t, first.ID, local[1].ID)
}

func TestToggleWithoutSubtasksFlipsDirectly(t *testing.T) {
	s, _ := newTaskStore(t)
	ctx := context.Background()

	task := addTask(t, s, "quick errand", 1)
	require.Empty(t, task.Subtasks)

	require.NoError(t, s.Toggle(ctx, task.ID))
	assert.True(t, findTask(t, s, task.ID).Completed)
	assert.Equal(t, 10, s.TotalPoints())

	require.NoError(t, s.Toggle(ctx, task.ID))
	assert.False(t, findTask(t, s, task.ID).Completed)
	assert.Equal(t, 0, s.TotalPoints())
}

func TestToggleCascadesOntoSubtasks(t *testing.T) {
	s, _ := newTaskStore(t)
	ctx := context.Background()

	task := addTask(t, s, "project", 6)
	require.Len(t, task.Subtasks, 3)

	require.NoError(t, s.Toggle(ctx, task.ID))
	got := findTask(t, s, task.ID)
	assert.True(t, got.Completed)
	for _, sub := range got.Subtasks {
		assert.True(t, sub.Completed)
	}

	require.NoError(t, s.Toggle(ctx, task.ID))
	got = findTask(t, s, task.ID)
	assert.False(t, got.Completed)
	for _, sub := range got.Subtasks {
		assert.False(t, sub.Completed)
	}
}

func TestToggleSubtaskDerivesParentCompletion(t *testing.T) {
	s, _ := newTaskStore(t)
	ctx := context.Background()

	task := addTask(t, s, "essay", 5)
	require.Len(t, task.Subtasks, 3)

	// Completing all but one leaves the parent open.
	require.NoError(t, s.ToggleSubtask(ctx, task.ID, task.Subtasks[0].ID))
	require.NoError(t, s.ToggleSubtask(ctx, task.ID, task.Subtasks[1].ID))
	assert.False(t, findTask(t, s, task.ID).Completed)
	assert.Equal(t, 0, s.TotalPoints())

	// The last subtask completes the parent and scores it.
	require.NoError(t, s.ToggleSubtask(ctx, task.ID, task.Subtasks[2].ID))
	assert.True(t, findTask(t, s, task.ID).Completed)
	assert.Equal(t, 10, s.TotalPoints())

	// Unchecking one reopens the parent.
	require.NoError(t, s.ToggleSubtask(ctx, task.ID, task.Subtasks[1].ID))
	assert.False(t, findTask(t, s, task.ID).Completed)
}

func TestDeleteRecomputesOverRemaining(t *testing.T) {
	s, fake := newTaskStore(t)
	ctx := context.Background()

	keep := addTask(t, s, "keep", 1)
	drop := addTask(t, s, "drop", 1)
	require.NoError(t, s.Toggle(ctx, keep.ID))
	require.NoError(t, s.Toggle(ctx, drop.ID))
	require.Equal(t, 20, s.TotalPoints())

	require.NoError(t, s.Delete(ctx, drop.ID))

	local := s.Tasks()
	require.Len(t, local, 1)
	assert.Equal(t, keep.ID, local[0].ID)
	assert.Equal(t, 10, s.TotalPoints())
	require.Len(t, fake.StoredTasks(), 1)
}

func TestMutationsAreSilentNoOpsForUnknownIDs(t *testing.T) {
	s, _ := newTaskStore(t)
	ctx := context.Background()

	task := addTask(t, s, "only", 5)

	require.NoError(t, s.Toggle(ctx, "missing"))
	require.NoError(t, s.ToggleSubtask(ctx, "missing", "also-missing"))
	require.NoError(t, s.ToggleSubtask(ctx, task.ID, "missing"))
	require.NoError(t, s.Delete(ctx, "missing"))

	require.Len(t, s.Tasks(), 1)
	assert.False(t, findTask(t, s, task.ID).Completed)
}

func TestGatewayFailureIsFailClosed(t *testing.T) {
	s, fake := newTaskStore(t)
	ctx := context.Background()

	task := addTask(t, s, "existing", 1)

	fake.SetFailing(true)

	_, err := s.Add(ctx, store.AddTaskInput{Title: "never lands", EstimatedHours: 1})
	assert.Error(t, err)
	assert.Error(t, s.Toggle(ctx, task.ID))
	assert.Error(t, s.Delete(ctx, task.ID))

	// In-memory state is untouched: stale but available.
	local := s.Tasks()
	require.Len(t, local, 1)
	assert.Equal(t, task.ID, local[0].ID)
	assert.False(t, local[0].Completed)

	assert.Error(t, s.Load(ctx))
	require.Len(t, s.Tasks(), 1)
}

func TestNoIdentityIsSilentNoOp(t *testing.T) {
	gw, fake := testutil.NewGateway(t)
	s := store.NewTaskStore(gw, nil, nil, "")

	task, err := s.Add(context.Background(), store.AddTaskInput{Title: "x", EstimatedHours: 1})
	require.NoError(t, err)
	assert.Empty(t, task.ID)
	assert.Empty(t, s.Tasks())
	assert.Zero(t, fake.SaveTaskCalls)

	require.NoError(t, s.Load(context.Background()))
}

func TestBadgesAreMonotonic(t *testing.T) {
	s, _ := newTaskStore(t)
	ctx := context.Background()

	task := addTask(t, s, "first win", 1)
	require.NoError(t, s.Toggle(ctx, task.ID))
	require.Len(t, s.Badges(), 1)

	// Un-completing drops the count below the threshold, but the earned
	// badge stays.
	require.NoError(t, s.Toggle(ctx, task.ID))
	assert.Equal(t, 0, s.TotalPoints())
	require.Len(t, s.Badges(), 1)
	assert.Equal(t, "First Steps", s.Badges()[0].Name)
}

func TestStatsMirroredToGateway(t *testing.T) {
	s, fake := newTaskStore(t)
	ctx := context.Background()

	task := addTask(t, s, "score me", 1)
	require.NoError(t, s.Toggle(ctx, task.ID))

	stats := fake.StoredUserData()
	require.NotNil(t, stats)
	assert.Equal(t, 10, stats.TotalPoints)
	require.Len(t, stats.Badges, 1)
}

func TestLoadRefreshesFromGateway(t *testing.T) {
	s, fake := newTaskStore(t)
	ctx := context.Background()

	addTask(t, s, "stale", 1)

	// A long-running process must see edits made from another device
	// when it re-loads.
	fake.Tasks = []model.Task{
		{ID: "fresh", UserID: "user-1", Title: "added elsewhere", CreatedAt: time.Now().UTC()},
	}

	require.NoError(t, s.Load(ctx))
	local := s.Tasks()
	require.Len(t, local, 1)
	assert.Equal(t, "fresh", local[0].ID)
}

func TestReplaceAllDoesNotMirrorStats(t *testing.T) {
	s, fake := newTaskStore(t)

	done := time.Now().UTC()
	s.ReplaceAll(context.Background(), []model.Task{
		{ID: "t1", UserID: "user-1", Title: "pulled", Completed: true, CompletedAt: &done, CreatedAt: done},
	})

	// Local aggregates recompute, but nothing is pushed to the gateway's
	// user-data key on sync adoption.
	assert.Equal(t, 10, s.TotalPoints())
	assert.Nil(t, fake.StoredUserData())
}

func TestEndToEndSubtaskScenario(t *testing.T) {
	s, _ := newTaskStore(t)
	ctx := context.Background()

	task := addTask(t, s, "research paper", 5)
	require.Len(t, task.Subtasks, 3)
	require.False(t, task.Completed)

	for _, sub := range task.Subtasks {
		require.NoError(t, s.ToggleSubtask(ctx, task.ID, sub.ID))
	}

	assert.True(t, findTask(t, s, task.ID).Completed)
	assert.Equal(t, 10, s.TotalPoints())
}
