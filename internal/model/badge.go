package model

// Badge is a gamification achievement derived from the completed-task
// count. Name is the unique key.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// UserStats is the aggregate gamification and focus snapshot. The values
// are derived caches recomputed on every task/session mutation; the copy
// mirrored to the gateway is a convenience cache, not ground truth.
type UserStats struct {
	Streak             int     `json:"streak"`
	TotalPoints        int     `json:"total_points"`
	Badges             []Badge `json:"badges"`
	TotalFocusSessions int     `json:"total_focus_sessions"`
	TotalFocusMinutes  int     `json:"total_focus_minutes"`
}

// Zero reports whether the stats carry no earned progress at all. A zero
// remote stats record is treated as absent during reconciliation.
func (s UserStats) Zero() bool {
	return s.Streak == 0 && s.TotalPoints == 0 && len(s.Badges) == 0 &&
		s.TotalFocusSessions == 0 && s.TotalFocusMinutes == 0
}
