// Package analytics derives read-only statistics from historical sessions:
// period and daily summaries, hourly/weekday productivity patterns,
// flow-state trigger mining, streaks, and next-session recommendations.
//
// Every aggregate is computed fresh from a date-bounded range query; empty
// windows produce zero-valued structures, never errors. Averages are taken
// over rated sessions only: absent ratings are excluded from the
// denominator, never treated as zero.
package analytics

import (
	"time"

	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// SessionSource is the read-only query surface the engine needs.
// *store.DB implements it.
type SessionSource interface {
	SessionsInRange(userID int64, from, to time.Time, f store.Filter) ([]session.Session, error)
}

// PreferenceSource supplies the interval cadence used by recommendations.
type PreferenceSource interface {
	PreferencesFor(userID int64, defaults store.Preferences) (store.Preferences, error)
}

// Engine computes aggregates over a user's session history. It is safe to
// run concurrently with lifecycle mutations; slightly stale aggregates are
// acceptable.
type Engine struct {
	src      SessionSource
	prefs    PreferenceSource
	defaults store.Preferences

	now func() time.Time
}

// NewEngine creates an analytics engine.
func NewEngine(src SessionSource, prefs PreferenceSource, defaults store.Preferences) *Engine {
	return &Engine{
		src:      src,
		prefs:    prefs,
		defaults: defaults,
		now:      time.Now,
	}
}

// window returns the [from, to) range covering the last days days.
func (e *Engine) window(days int) (time.Time, time.Time) {
	now := e.now()
	return now.AddDate(0, 0, -days), now
}

// dayBounds returns the [midnight, next midnight) range for a date.
func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// ratedAverage averages the rating values that are present. It returns nil
// when no session in the slice carries the rating.
func ratedAverage(sessions []session.Session, rating func(*session.Session) *int) *float64 {
	sum, n := 0, 0
	for i := range sessions {
		if v := rating(&sessions[i]); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := float64(sum) / float64(n)
	return &avg
}

func minutes(seconds int) float64 {
	return float64(seconds) / 60
}

func durationOf(s *session.Session) int {
	if s.ActualDuration == nil {
		return 0
	}
	return *s.ActualDuration
}
