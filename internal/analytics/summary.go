package analytics

import (
	"time"

	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// PeriodSummary aggregates a user's sessions over a date range. Nil
// averages mean "no rated sessions in range".
type PeriodSummary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TotalSessions     int                  `json:"total_sessions"`
	CompletedSessions int                  `json:"completed_sessions"`
	AbandonedSessions int                  `json:"abandoned_sessions"`
	ByKind            map[session.Kind]int `json:"by_kind,omitempty"`

	CompletionRate float64 `json:"completion_rate"`
	FocusMinutes   float64 `json:"focus_minutes"`

	AverageSessionMinutes *float64 `json:"average_session_minutes,omitempty"`
	LongestSessionMinutes float64  `json:"longest_session_minutes"`

	AverageFocusQuality *float64 `json:"average_focus_quality,omitempty"`
	AverageSatisfaction *float64 `json:"average_satisfaction,omitempty"`

	FlowSessions int     `json:"flow_sessions"`
	FlowRate     float64 `json:"flow_rate"`

	AverageInterruptions *float64 `json:"average_interruptions,omitempty"`
}

// DailySummary is a period summary scoped to one calendar day, including
// the day's session list.
type DailySummary struct {
	Date string `json:"date"`
	PeriodSummary
	Sessions []session.Session `json:"sessions"`
}

// Summary aggregates the user's sessions over the last days days.
func (e *Engine) Summary(userID int64, days int) (PeriodSummary, error) {
	from, to := e.window(days)
	sessions, err := e.src.SessionsInRange(userID, from, to, store.Filter{})
	if err != nil {
		return PeriodSummary{}, err
	}
	return ComputeSummary(sessions, from, to), nil
}

// Daily aggregates a single calendar day.
func (e *Engine) Daily(userID int64, day time.Time) (DailySummary, error) {
	from, to := dayBounds(day)
	sessions, err := e.src.SessionsInRange(userID, from, to, store.Filter{})
	if err != nil {
		return DailySummary{}, err
	}
	return DailySummary{
		Date:          from.Format("2006-01-02"),
		PeriodSummary: ComputeSummary(sessions, from, to),
		Sessions:      sessions,
	}, nil
}

// ComputeSummary aggregates an already-loaded session slice. An empty slice
// yields a zero-valued summary.
func ComputeSummary(sessions []session.Session, from, to time.Time) PeriodSummary {
	sum := PeriodSummary{From: from, To: to, TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return sum
	}

	sum.ByKind = make(map[session.Kind]int)
	var completed []session.Session
	for _, s := range sessions {
		sum.ByKind[s.Kind]++
		switch s.Status {
		case session.StatusCompleted:
			completed = append(completed, s)
		case session.StatusAbandoned:
			sum.AbandonedSessions++
		}
	}

	sum.CompletedSessions = len(completed)
	sum.CompletionRate = float64(len(completed)) / float64(len(sessions)) * 100

	totalSeconds := 0
	longest := 0
	interruptions := 0
	for i := range completed {
		d := durationOf(&completed[i])
		totalSeconds += d
		if d > longest {
			longest = d
		}
		interruptions += completed[i].InterruptionCount
		if completed[i].FlowStateAchieved {
			sum.FlowSessions++
		}
	}
	sum.FocusMinutes = minutes(totalSeconds)
	sum.LongestSessionMinutes = minutes(longest)

	if len(completed) > 0 {
		avg := minutes(totalSeconds) / float64(len(completed))
		sum.AverageSessionMinutes = &avg
		avgInt := float64(interruptions) / float64(len(completed))
		sum.AverageInterruptions = &avgInt
		sum.FlowRate = float64(sum.FlowSessions) / float64(len(completed)) * 100
	}

	sum.AverageFocusQuality = ratedAverage(completed, func(s *session.Session) *int { return s.FocusQuality })
	sum.AverageSatisfaction = ratedAverage(completed, func(s *session.Session) *int { return s.Satisfaction })

	return sum
}
