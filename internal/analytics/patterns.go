package analytics

import (
	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// Bucket holds the aggregate for one hour-of-day or weekday slot. The
// average quality is nil when no session in the bucket was rated.
type Bucket struct {
	Sessions       int      `json:"sessions"`
	AverageQuality *float64 `json:"average_quality,omitempty"`
	TotalMinutes   float64  `json:"total_minutes"`
}

// Patterns bins completed productive sessions by start hour (0-23) and by
// weekday (0=Monday..6=Sunday). Only non-empty buckets appear.
type Patterns struct {
	Hourly  map[int]Bucket `json:"hourly"`
	Weekday map[int]Bucket `json:"weekday"`

	BestHour    *int `json:"best_hour,omitempty"`
	BestWeekday *int `json:"best_weekday,omitempty"`
}

// Patterns computes productivity patterns over the last days days.
func (e *Engine) Patterns(userID int64, days int) (Patterns, error) {
	from, to := e.window(days)
	sessions, err := e.src.SessionsInRange(userID, from, to, store.Filter{Status: session.StatusCompleted})
	if err != nil {
		return Patterns{}, err
	}
	return ComputePatterns(sessions), nil
}

// ComputePatterns bins an already-loaded session slice. Breaks and
// non-completed sessions are skipped.
func ComputePatterns(sessions []session.Session) Patterns {
	p := Patterns{
		Hourly:  make(map[int]Bucket),
		Weekday: make(map[int]Bucket),
	}

	hourly := make(map[int][]session.Session)
	weekly := make(map[int][]session.Session)
	for _, s := range sessions {
		if s.Status != session.StatusCompleted || !s.Kind.Productive() {
			continue
		}
		hour := s.StartTime.Hour()
		weekday := mondayIndexed(s)
		hourly[hour] = append(hourly[hour], s)
		weekly[weekday] = append(weekly[weekday], s)
	}

	for hour, group := range hourly {
		p.Hourly[hour] = bucketOf(group)
	}
	for day, group := range weekly {
		p.Weekday[day] = bucketOf(group)
	}

	p.BestHour = bestSlot(p.Hourly, 24)
	p.BestWeekday = bestSlot(p.Weekday, 7)
	return p
}

func bucketOf(group []session.Session) Bucket {
	total := 0
	for i := range group {
		total += durationOf(&group[i])
	}
	return Bucket{
		Sessions:       len(group),
		AverageQuality: ratedAverage(group, func(s *session.Session) *int { return s.FocusQuality }),
		TotalMinutes:   minutes(total),
	}
}

// bestSlot picks the bucket with the highest average quality, breaking ties
// by session count, scanning slots in ascending order so earlier slots win
// exact ties. Buckets with no rated sessions are not eligible.
func bestSlot(buckets map[int]Bucket, slots int) *int {
	var best *int
	bestQuality := 0.0
	bestCount := 0
	for slot := 0; slot < slots; slot++ {
		b, ok := buckets[slot]
		if !ok || b.AverageQuality == nil {
			continue
		}
		q := *b.AverageQuality
		if best == nil || q > bestQuality || (q == bestQuality && b.Sessions > bestCount) {
			s := slot
			best = &s
			bestQuality = q
			bestCount = b.Sessions
		}
	}
	return best
}

// mondayIndexed maps the session's start weekday onto 0=Monday..6=Sunday.
func mondayIndexed(s session.Session) int {
	return (int(s.StartTime.Weekday()) + 6) % 7
}
