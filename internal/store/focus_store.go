package store

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chrono-app/chrono/internal/model"
)

// FocusStore owns the focus-session history and its aggregate counters.
// Like the task store, the counters are derived from the full collection
// on every mutation rather than incremented, so they cannot drift.
type FocusStore struct {
	mu     sync.Mutex
	gw     Gateway
	snap   *SnapshotStore
	mirror *StatsMirror
	userID string

	sessions      []model.FocusSession
	totalSessions int
	totalMinutes  int
}

// NewFocusStore creates a focus store scoped to userID. snap and mirror
// may be nil.
func NewFocusStore(gw Gateway, snap *SnapshotStore, mirror *StatsMirror, userID string) *FocusStore {
	return &FocusStore{gw: gw, snap: snap, mirror: mirror, userID: userID}
}

// Sessions returns a copy of the session history, newest first.
func (s *FocusStore) Sessions() []model.FocusSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.FocusSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// TotalSessions returns the session count aggregate.
func (s *FocusStore) TotalSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalSessions
}

// TotalMinutes returns the focused-minutes aggregate.
func (s *FocusStore) TotalMinutes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalMinutes
}

// Load fetches all sessions from the gateway, newest first, replaces the
// collection, and recomputes the counters from the fetched rows. With no
// identity established it is a no-op. On gateway failure the prior state
// is left untouched.
func (s *FocusStore) Load(ctx context.Context) error {
	if s.userID == "" {
		return nil
	}

	sessions, err := s.gw.FetchSessions(ctx)
	if err != nil {
		log.Printf("focus store: loading sessions: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adoptLocked(ctx, sessions, true)
	return nil
}

// ReplaceAll replaces the session history wholesale. Used by the sync
// coordinator's pull path. Like the task store, sync adoption does not
// push the stats mirror; the user-data key is reconciled on its own.
func (s *FocusStore) ReplaceAll(ctx context.Context, sessions []model.FocusSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adoptLocked(ctx, sessions, false)
}

// Restore seeds the session history from the local snapshot, if one
// exists.
func (s *FocusStore) Restore(ctx context.Context) error {
	if s.snap == nil {
		return nil
	}
	sessions, ok, err := s.snap.LoadSessions(ctx)
	if err != nil {
		log.Printf("focus store: restoring snapshot: %v", err)
		return err
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sortSessions(sessions)
	s.sessions = sessions
	s.recomputeLocked()
	return nil
}

// Add records one completed focus interval of the given length, starting
// now. It persists through the gateway, prepends the session locally, and
// recomputes the counters. The aggregate-stats mirror write is best
// effort: its failure is logged but the local state change stands.
func (s *FocusStore) Add(ctx context.Context, durationMinutes int) (model.FocusSession, error) {
	if s.userID == "" {
		return model.FocusSession{}, nil
	}

	session := model.FocusSession{
		ID:              uuid.New().String(),
		UserID:          s.userID,
		StartTime:       time.Now().UTC(),
		DurationMinutes: durationMinutes,
		Completed:       true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]model.FocusSession{session}, s.sessions...)
	saved, err := s.gw.SaveSessions(ctx, next)
	if err != nil {
		log.Printf("focus store: adding session: %v", err)
		return model.FocusSession{}, err
	}

	s.adoptLocked(ctx, saved, true)
	return session, nil
}

// adoptLocked replaces the history with the gateway-returned rows,
// recomputes the counters, and writes the best-effort snapshot.
// mirrorStats additionally pushes the stats mirror; mutations set it,
// sync adoption does not.
func (s *FocusStore) adoptLocked(ctx context.Context, sessions []model.FocusSession, mirrorStats bool) {
	sortSessions(sessions)
	s.sessions = sessions
	s.recomputeLocked()

	if s.snap != nil {
		if err := s.snap.SaveSessions(ctx, s.sessions); err != nil {
			log.Printf("focus store: saving snapshot: %v", err)
		}
	}
	if mirrorStats && s.mirror != nil {
		if err := s.mirror.UpdateFocusStats(ctx, s.totalSessions, s.totalMinutes); err != nil {
			log.Printf("focus store: mirroring stats: %v", err)
		}
	}
}

func (s *FocusStore) recomputeLocked() {
	s.totalSessions = len(s.sessions)
	minutes := 0
	for _, sess := range s.sessions {
		minutes += sess.DurationMinutes
	}
	s.totalMinutes = minutes
}

// sortSessions orders session history by start time descending.
func sortSessions(sessions []model.FocusSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
}
