package model

import "time"

// FocusSession is a single completed focus interval. Sessions are created
// only when a focus countdown runs to zero, are never mutated afterward,
// and are never deleted by normal flow. Breaks are not recorded.
type FocusSession struct {
	// ID is the unique identifier for this session.
	ID string `json:"id"`

	// UserID identifies the owning identity.
	UserID string `json:"user_id"`

	// StartTime is when the focus interval began.
	StartTime time.Time `json:"start_time"`

	// DurationMinutes is the length of the completed interval.
	DurationMinutes int `json:"duration_minutes"`

	// Completed is always true on creation; partial intervals are never
	// recorded.
	Completed bool `json:"completed"`
}
