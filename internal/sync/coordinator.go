// Package sync reconciles local store state against the persistence
// gateway exactly once per application session, before the view layer is
// considered interactive.
package sync

import (
	"context"
	"log"
	gosync "sync"

	"github.com/chrono-app/chrono/internal/store"
)

// Status is the reconciliation result exposed to the view layer. Err does
// not distinguish which key failed.
type Status struct {
	IsLoading bool
	Err       error
}

// Coordinator performs the one-shot startup reconciliation. For each of
// the gateway's keys (tasks, focus-sessions, user-data) it makes an
// independent, one-directional decision: a non-empty remote collection
// wins and fully replaces local state; an empty remote is seeded from
// local (possibly sample/default) state. This is not a merge and not a
// conflict resolver; concurrent edits from another device between fetch
// and push are not detected, and the last writer wins at the gateway's
// key granularity.
type Coordinator struct {
	mu     gosync.Mutex
	once   gosync.Once
	gw     store.Gateway
	tasks  *store.TaskStore
	focus  *store.FocusStore
	mirror *store.StatsMirror
	userID string
	status Status
}

// New creates a coordinator over the given stores. mirror may be nil.
func New(gw store.Gateway, tasks *store.TaskStore, focus *store.FocusStore, mirror *store.StatsMirror, userID string) *Coordinator {
	return &Coordinator{
		gw:     gw,
		tasks:  tasks,
		focus:  focus,
		mirror: mirror,
		userID: userID,
	}
}

// Status returns the current reconciliation status.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Run executes the reconciliation. Subsequent calls return the recorded
// status without re-running. With no identity established, the whole sync
// is skipped and local defaults stand: not loading, no error. A failed
// reconciliation is not retried; the session keeps whatever local state
// existed before the attempt.
func (c *Coordinator) Run(ctx context.Context) Status {
	c.once.Do(func() {
		c.setStatus(Status{IsLoading: true})
		err := c.reconcile(ctx)
		if err != nil {
			log.Printf("sync: reconciliation failed: %v", err)
		}
		c.setStatus(Status{IsLoading: false, Err: err})
	})
	return c.Status()
}

func (c *Coordinator) setStatus(st Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = st
}

// reconcile runs the per-key decisions in order, stopping at the first
// failure.
func (c *Coordinator) reconcile(ctx context.Context) error {
	if c.userID == "" {
		log.Printf("sync: no identity established, skipping")
		return nil
	}

	if err := c.reconcileTasks(ctx); err != nil {
		return err
	}
	if err := c.reconcileSessions(ctx); err != nil {
		return err
	}
	return c.reconcileUserData(ctx)
}

func (c *Coordinator) reconcileTasks(ctx context.Context) error {
	remote, err := c.gw.FetchTasks(ctx)
	if err != nil {
		return err
	}

	if len(remote) > 0 {
		c.tasks.ReplaceAll(ctx, remote)
		return nil
	}

	local := c.tasks.Tasks()
	if len(local) == 0 {
		return nil
	}
	_, err = c.gw.SaveTasks(ctx, local)
	return err
}

func (c *Coordinator) reconcileSessions(ctx context.Context) error {
	remote, err := c.gw.FetchSessions(ctx)
	if err != nil {
		return err
	}

	if len(remote) > 0 {
		c.focus.ReplaceAll(ctx, remote)
		return nil
	}

	local := c.focus.Sessions()
	if len(local) == 0 {
		return nil
	}
	_, err = c.gw.SaveSessions(ctx, local)
	return err
}

func (c *Coordinator) reconcileUserData(ctx context.Context) error {
	remote, err := c.gw.FetchUserData(ctx)
	if err != nil {
		return err
	}

	if !remote.Zero() {
		// Remote wins. Earned badges fold into the monotonic set.
		c.tasks.SeedBadges(remote.Badges)
		if c.mirror != nil {
			c.mirror.SetBaseline(remote)
		}
		return nil
	}

	if c.mirror == nil {
		return nil
	}
	local := c.mirror.Stats()
	if local.Zero() {
		return nil
	}
	return c.mirror.Push(ctx)
}
