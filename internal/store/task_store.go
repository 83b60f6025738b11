package store

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chrono-app/chrono/internal/gamify"
	"github.com/chrono-app/chrono/internal/model"
)

// AddTaskInput is the caller-supplied shape for task creation. The store
// performs no validation; gating title and due date is the view layer's
// responsibility.
type AddTaskInput struct {
	Title          string
	Description    string
	Subject        string
	DueDate        string
	Priority       model.Priority
	EstimatedHours int
}

// TaskStore is the single owner of the in-memory task collection and the
// gamification snapshot for the current session. Aggregates are always
// recomputed from the full collection after a mutation, never incremented,
// so they cannot drift from the tasks themselves. Earned badges are
// monotonic: recomputation merges with the already-earned set.
type TaskStore struct {
	mu     sync.Mutex
	gw     Gateway
	snap   *SnapshotStore
	mirror *StatsMirror
	userID string

	tasks       []model.Task
	totalPoints int
	badges      []model.Badge
	streak      int
}

// NewTaskStore creates a task store scoped to userID. snap and mirror may
// be nil; snapshot writes and stat mirroring are then skipped.
func NewTaskStore(gw Gateway, snap *SnapshotStore, mirror *StatsMirror, userID string) *TaskStore {
	return &TaskStore{gw: gw, snap: snap, mirror: mirror, userID: userID}
}

// Tasks returns a copy of the current collection, newest first.
func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// TotalPoints returns the current points aggregate.
func (s *TaskStore) TotalPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPoints
}

// Badges returns a copy of the earned badge set.
func (s *TaskStore) Badges() []model.Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Badge, len(s.badges))
	copy(out, s.badges)
	return out
}

// Streak returns the current consecutive-day completion streak.
func (s *TaskStore) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}

// Load fetches the full task collection from the gateway, ordered by
// creation time descending, and replaces the in-memory collection. With no
// identity established it is a no-op. On gateway failure the prior state
// is left untouched (stale but available).
func (s *TaskStore) Load(ctx context.Context) error {
	if s.userID == "" {
		return nil
	}

	tasks, err := s.gw.FetchTasks(ctx)
	if err != nil {
		log.Printf("task store: loading tasks: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adoptLocked(ctx, tasks, true)
	return nil
}

// ReplaceAll replaces the in-memory collection wholesale and recomputes
// the aggregates. Used by the sync coordinator's pull path. The stats
// mirror is not pushed: the user-data key gets its own fetch-first
// reconciliation, and a push here would overwrite the remote record
// before it is ever read.
func (s *TaskStore) ReplaceAll(ctx context.Context, tasks []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adoptLocked(ctx, tasks, false)
}

// Restore seeds the in-memory collection from the local snapshot, if one
// exists. Called once at startup before reconciliation.
func (s *TaskStore) Restore(ctx context.Context) error {
	if s.snap == nil {
		return nil
	}
	tasks, ok, err := s.snap.LoadTasks(ctx)
	if err != nil {
		log.Printf("task store: restoring snapshot: %v", err)
		return err
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sortTasks(tasks)
	s.tasks = tasks
	s.recomputeLocked()
	return nil
}

// SeedBadges merges previously earned badges (e.g. from the remote
// aggregate-stats record) into the monotonic earned set.
func (s *TaskStore) SeedBadges(badges []model.Badge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badges = gamify.MergeBadges(s.badges, badges)
}

// Add generates the task's subtask set, persists the creation through the
// gateway, and on success prepends the record to the in-memory collection.
// On gateway failure no local mutation occurs.
func (s *TaskStore) Add(ctx context.Context, input AddTaskInput) (model.Task, error) {
	if s.userID == "" {
		return model.Task{}, nil
	}

	task := model.Task{
		ID:             uuid.New().String(),
		UserID:         s.userID,
		Title:          input.Title,
		Description:    input.Description,
		Subject:        input.Subject,
		DueDate:        input.DueDate,
		Priority:       input.Priority,
		EstimatedHours: input.EstimatedHours,
		Subtasks:       gamify.GenerateSubtasks(input.EstimatedHours),
		CreatedAt:      time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]model.Task{task}, s.tasks...)
	saved, err := s.gw.SaveTasks(ctx, next)
	if err != nil {
		log.Printf("task store: adding task: %v", err)
		return model.Task{}, err
	}

	s.adoptLocked(ctx, saved, true)
	return task, nil
}

// Toggle flips the completed flag of the task with the given id and
// cascades the new value onto every subtask. Unknown ids are a silent
// no-op.
func (s *TaskStore) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}

	next := cloneTasks(s.tasks)
	t := &next[idx]
	t.Completed = !t.Completed
	for i := range t.Subtasks {
		t.Subtasks[i].Completed = t.Completed
	}
	stampCompletion(t)

	saved, err := s.gw.SaveTasks(ctx, next)
	if err != nil {
		log.Printf("task store: toggling task %s: %v", id, err)
		return err
	}

	s.adoptLocked(ctx, saved, true)
	return nil
}

// ToggleSubtask flips the targeted subtask's completed flag and recomputes
// the parent's completed flag as "every subtask completed". Unknown task
// or subtask ids are a silent no-op.
func (s *TaskStore) ToggleSubtask(ctx context.Context, taskID, subtaskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(taskID)
	if idx < 0 {
		return nil
	}

	next := cloneTasks(s.tasks)
	t := &next[idx]

	found := false
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks[i].Completed = !t.Subtasks[i].Completed
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	t.Completed = t.AllSubtasksDone()
	stampCompletion(t)

	saved, err := s.gw.SaveTasks(ctx, next)
	if err != nil {
		log.Printf("task store: toggling subtask %s/%s: %v", taskID, subtaskID, err)
		return err
	}

	s.adoptLocked(ctx, saved, true)
	return nil
}

// Delete removes the task from the gateway first, then locally, then
// recomputes the aggregates over the remaining collection.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return nil
	}

	remaining, err := s.gw.DeleteTask(ctx, id)
	if err != nil {
		log.Printf("task store: deleting task %s: %v", id, err)
		return err
	}

	s.adoptLocked(ctx, remaining, true)
	return nil
}

// adoptLocked replaces the collection with the gateway-returned rows,
// recomputes the aggregates, and writes the best-effort snapshot.
// mirrorStats additionally pushes the stats mirror; mutations set it,
// sync adoption does not. Mirror and snapshot failures are logged,
// never rolled back.
func (s *TaskStore) adoptLocked(ctx context.Context, tasks []model.Task, mirrorStats bool) {
	sortTasks(tasks)
	s.tasks = tasks
	s.recomputeLocked()

	if s.snap != nil {
		if err := s.snap.SaveTasks(ctx, s.tasks); err != nil {
			log.Printf("task store: saving snapshot: %v", err)
		}
	}
	if mirrorStats && s.mirror != nil {
		if err := s.mirror.UpdateTaskStats(ctx, s.totalPoints, s.badges, s.streak); err != nil {
			log.Printf("task store: mirroring stats: %v", err)
		}
	}
}

// recomputeLocked derives points, badges, and streak from the full
// collection.
func (s *TaskStore) recomputeLocked() {
	completed := gamify.CompletedCount(s.tasks)
	s.totalPoints = gamify.Points(completed)
	s.badges = gamify.MergeBadges(s.badges, gamify.BadgesFor(completed))

	var activity []time.Time
	for _, t := range s.tasks {
		if t.Completed && t.CompletedAt != nil {
			activity = append(activity, *t.CompletedAt)
		}
	}
	s.streak = gamify.Streak(activity, time.Now())
}

func (s *TaskStore) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// stampCompletion keeps CompletedAt in step with the completed flag.
func stampCompletion(t *model.Task) {
	if t.Completed && t.CompletedAt == nil {
		now := time.Now().UTC()
		t.CompletedAt = &now
	} else if !t.Completed {
		t.CompletedAt = nil
	}
}

// sortTasks orders a collection by creation time descending.
func sortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}

// cloneTasks deep-copies a task collection including subtask slices, so a
// speculative mutation can be discarded on gateway failure.
func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if len(out[i].Subtasks) > 0 {
			subs := make([]model.Subtask, len(out[i].Subtasks))
			copy(subs, out[i].Subtasks)
			out[i].Subtasks = subs
		}
	}
	return out
}
