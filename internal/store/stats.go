package store

import (
	"context"
	"sync"

	"github.com/chrono-app/chrono/internal/model"
)

// StatsMirror maintains the merged aggregate-stats record and best-effort
// mirrors it to the gateway's user-data key. Both stores contribute their
// slices of the record; a failed push is the caller's to log and is never
// rolled back locally. The mirrored copy is a convenience cache, not
// ground truth.
type StatsMirror struct {
	mu    sync.Mutex
	gw    Gateway
	stats model.UserStats
}

// NewStatsMirror creates a mirror that pushes through gw.
func NewStatsMirror(gw Gateway) *StatsMirror {
	return &StatsMirror{gw: gw}
}

// SetBaseline replaces the merged record, typically with the remote copy
// adopted during startup reconciliation.
func (m *StatsMirror) SetBaseline(stats model.UserStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = stats
}

// Stats returns the current merged record.
func (m *StatsMirror) Stats() model.UserStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// UpdateTaskStats merges the task store's contribution and pushes the
// record to the gateway.
func (m *StatsMirror) UpdateTaskStats(ctx context.Context, points int, badges []model.Badge, streak int) error {
	m.mu.Lock()
	m.stats.TotalPoints = points
	m.stats.Badges = badges
	m.stats.Streak = streak
	stats := m.stats
	m.mu.Unlock()

	return m.gw.SaveUserData(ctx, stats)
}

// UpdateFocusStats merges the focus store's contribution and pushes the
// record to the gateway.
func (m *StatsMirror) UpdateFocusStats(ctx context.Context, sessions, minutes int) error {
	m.mu.Lock()
	m.stats.TotalFocusSessions = sessions
	m.stats.TotalFocusMinutes = minutes
	stats := m.stats
	m.mu.Unlock()

	return m.gw.SaveUserData(ctx, stats)
}

// Push re-sends the current merged record to the gateway.
func (m *StatsMirror) Push(ctx context.Context) error {
	return m.gw.SaveUserData(ctx, m.Stats())
}
