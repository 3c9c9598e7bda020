package analytics

import (
	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// ModeStats summarizes completed sessions of one kind.
type ModeStats struct {
	Sessions            int      `json:"sessions"`
	TotalMinutes        float64  `json:"total_minutes"`
	AverageMinutes      float64  `json:"average_minutes"`
	FlowSessions        int      `json:"flow_sessions"`
	FlowRate            float64  `json:"flow_rate"`
	AverageSatisfaction *float64 `json:"average_satisfaction,omitempty"`
}

// Modes breaks down completed sessions by kind over the last days days.
func (e *Engine) Modes(userID int64, days int) (map[session.Kind]ModeStats, error) {
	from, to := e.window(days)
	sessions, err := e.src.SessionsInRange(userID, from, to, store.Filter{Status: session.StatusCompleted})
	if err != nil {
		return nil, err
	}
	return ComputeModes(sessions), nil
}

// ComputeModes groups an already-loaded slice by kind. Kinds with no
// completed sessions are absent from the result.
func ComputeModes(sessions []session.Session) map[session.Kind]ModeStats {
	groups := make(map[session.Kind][]session.Session)
	for _, s := range sessions {
		if s.Status != session.StatusCompleted {
			continue
		}
		groups[s.Kind] = append(groups[s.Kind], s)
	}

	out := make(map[session.Kind]ModeStats, len(groups))
	for kind, group := range groups {
		stats := ModeStats{Sessions: len(group)}
		total := 0
		for i := range group {
			total += durationOf(&group[i])
			if group[i].FlowStateAchieved {
				stats.FlowSessions++
			}
		}
		stats.TotalMinutes = minutes(total)
		stats.AverageMinutes = stats.TotalMinutes / float64(len(group))
		stats.FlowRate = float64(stats.FlowSessions) / float64(len(group)) * 100
		stats.AverageSatisfaction = ratedAverage(group, func(s *session.Session) *int { return s.Satisfaction })
		out[kind] = stats
	}
	return out
}
