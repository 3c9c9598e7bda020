package analytics

import (
	"time"

	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// streakLookbackDays caps how far back the streak walk goes.
const streakLookbackDays = 30

// Streak returns the number of consecutive calendar days, counting
// backward from today, on which the user completed at least one session.
// The walk stops at the first empty day and is capped at 30 days.
func (e *Engine) Streak(userID int64) (int, error) {
	now := e.now()
	from, _ := dayBounds(now.AddDate(0, 0, -streakLookbackDays))
	_, to := dayBounds(now)
	sessions, err := e.src.SessionsInRange(userID, from, to, store.Filter{Status: session.StatusCompleted})
	if err != nil {
		return 0, err
	}
	return ComputeStreak(sessions, now), nil
}

// ComputeStreak walks backward day by day from today over an
// already-loaded slice of completed sessions.
func ComputeStreak(sessions []session.Session, today time.Time) int {
	days := make(map[string]bool)
	for _, s := range sessions {
		if s.Status != session.StatusCompleted {
			continue
		}
		days[s.StartTime.In(today.Location()).Format("2006-01-02")] = true
	}

	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		if !days[day] {
			break
		}
		streak++
	}
	return streak
}
