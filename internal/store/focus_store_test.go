package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrono-app/chrono/internal/model"
	"github.com/chrono-app/chrono/internal/store"
	"github.com/chrono-app/chrono/tests/testutil"
)

func newFocusStore(t *testing.T) (*store.FocusStore, *testutil.FakeGateway) {
	t.Helper()
	gw, fake := testutil.NewGateway(t)
	snap := testutil.NewTestSnapshot(t)
	mirror := store.NewStatsMirror(gw)
	return store.NewFocusStore(gw, snap, mirror, "user-1"), fake
}

func TestAddSessionRecordsExactlyOne(t *testing.T) {
	s, fake := newFocusStore(t)
	ctx := context.Background()

	session, err := s.Add(ctx, 25)
	require.NoError(t, err)

	assert.True(t, session.Completed)
	assert.Equal(t, 25, session.DurationMinutes)
	assert.False(t, session.StartTime.IsZero())

	assert.Equal(t, 1, s.TotalSessions())
	assert.Equal(t, 25, s.TotalMinutes())
	require.Len(t, s.Sessions(), 1)
	require.Len(t, fake.StoredSessions(), 1)
}

func TestTotalsDerivedFromCollection(t *testing.T) {
	s, _ := newFocusStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, 25)
	require.NoError(t, err)
	_, err = s.Add(ctx, 50)
	require.NoError(t, err)

	assert.Equal(t, 2, s.TotalSessions())
	assert.Equal(t, 75, s.TotalMinutes())

	// Newest first.
	sessions := s.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, 50, sessions[0].DurationMinutes)
}

func TestLoadReplacesAndRecomputes(t *testing.T) {
	s, fake := newFocusStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, 25)
	require.NoError(t, err)

	// Another device rewrote the remote collection.
	fake.Sessions = []model.FocusSession{
		{ID: "a", UserID: "user-1", DurationMinutes: 10, Completed: true},
		{ID: "b", UserID: "user-1", DurationMinutes: 30, Completed: true},
	}

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 2, s.TotalSessions())
	assert.Equal(t, 40, s.TotalMinutes())
}

func TestAddSessionFailClosed(t *testing.T) {
	s, fake := newFocusStore(t)
	ctx := context.Background()

	fake.SetFailing(true)
	_, err := s.Add(ctx, 25)
	assert.Error(t, err)
	assert.Zero(t, s.TotalSessions())
	assert.Empty(t, s.Sessions())
}

func TestAddSessionMirrorsAggregates(t *testing.T) {
	s, fake := newFocusStore(t)

	_, err := s.Add(context.Background(), 25)
	require.NoError(t, err)

	stats := fake.StoredUserData()
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.TotalFocusSessions)
	assert.Equal(t, 25, stats.TotalFocusMinutes)
}

func TestNoIdentitySkipsSession(t *testing.T) {
	gw, fake := testutil.NewGateway(t)
	s := store.NewFocusStore(gw, nil, nil, "")

	session, err := s.Add(context.Background(), 25)
	require.NoError(t, err)
	assert.Empty(t, session.ID)
	assert.Empty(t, fake.StoredSessions())
}
