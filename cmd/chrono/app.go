package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chrono-app/chrono/internal/credential"
	"github.com/chrono-app/chrono/internal/gateway"
	"github.com/chrono-app/chrono/internal/model"
	"github.com/chrono-app/chrono/internal/store"
	"github.com/chrono-app/chrono/internal/sync"
)

// app bundles the wired-up stores a command body works against.
type app struct {
	cfg    *model.AppConfig
	gw     *gateway.Client
	snap   *store.SnapshotStore
	mirror *store.StatsMirror
	tasks  *store.TaskStore
	focus  *store.FocusStore
	syncer *sync.Coordinator
}

// newApp loads configuration, restores local snapshots, and runs the
// one-shot startup reconciliation before returning. Commands execute
// against the reconciled state; a failed sync leaves the session on
// whatever local state existed, with a warning printed.
func newApp(ctx context.Context) *app {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		fatal("loading config: %v", err)
	}

	gw := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.RoutePrefix, gatewayToken())

	snap, err := store.NewSnapshotStore(cfg.SnapshotPath)
	if err != nil {
		fatal("opening snapshot store: %v", err)
	}

	mirror := store.NewStatsMirror(gw)
	tasks := store.NewTaskStore(gw, snap, mirror, cfg.UserID)
	focus := store.NewFocusStore(gw, snap, mirror, cfg.UserID)

	// Seed local state from the last snapshot before reconciling, so the
	// push path has something to offer an empty remote.
	_ = tasks.Restore(ctx)
	_ = focus.Restore(ctx)
	if stats, ok, err := snap.LoadUserData(ctx); err == nil && ok {
		mirror.SetBaseline(stats)
		tasks.SeedBadges(stats.Badges)
	}

	syncer := sync.New(gw, tasks, focus, mirror, cfg.UserID)
	if status := syncer.Run(ctx); status.Err != nil {
		fmt.Fprintln(os.Stderr, "Warning: sync failed, working from local data.")
	}

	return &app{
		cfg:    cfg,
		gw:     gw,
		snap:   snap,
		mirror: mirror,
		tasks:  tasks,
		focus:  focus,
		syncer: syncer,
	}
}

// close releases the app's local resources.
func (a *app) close() {
	if a.snap != nil {
		_ = a.snap.Close()
	}
}

// gatewayToken resolves the bearer credential: keyring first, then the
// CHRONO_GATEWAY_TOKEN environment variable.
func gatewayToken() string {
	if token, err := credential.Get(credential.GatewayTokenKey); err == nil && token != "" {
		return token
	}
	return os.Getenv("CHRONO_GATEWAY_TOKEN")
}

// resolveTaskID matches a full task id or a unique id prefix against the
// current collection.
func resolveTaskID(a *app, prefix string) (string, error) {
	var matches []string
	for _, t := range a.tasks.Tasks() {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no task matches %q", prefix)
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", prefix, len(matches))
	}
}
