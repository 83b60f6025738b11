// Package store owns the in-memory task and focus-session collections and
// their derived gamification state. All mutations are mediated through the
// persistence gateway and fail closed: a gateway error leaves the
// in-memory state untouched.
package store

import (
	"context"

	"github.com/chrono-app/chrono/internal/model"
)

// Gateway is the persistence service surface the stores mediate through.
// *gateway.Client satisfies it.
type Gateway interface {
	FetchTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) ([]model.Task, error)
	DeleteTask(ctx context.Context, id string) ([]model.Task, error)

	FetchSessions(ctx context.Context) ([]model.FocusSession, error)
	SaveSessions(ctx context.Context, sessions []model.FocusSession) ([]model.FocusSession, error)

	FetchUserData(ctx context.Context) (model.UserStats, error)
	SaveUserData(ctx context.Context, stats model.UserStats) error
}
