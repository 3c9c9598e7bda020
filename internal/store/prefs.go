package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/blackwell-systems/flowtrack/internal/session"
)

// Preferences are the per-user interval-session defaults. Durations are
// seconds.
type Preferences struct {
	UserID                 int64 `json:"user_id"`
	WorkDuration           int   `json:"work_duration"`
	ShortBreakDuration     int   `json:"short_break_duration"`
	LongBreakDuration      int   `json:"long_break_duration"`
	SessionsUntilLongBreak int   `json:"sessions_until_long_break"`
}

// DefaultPreferences are the classic 25/5/15 interval settings with a long
// break every fourth work session.
var DefaultPreferences = Preferences{
	WorkDuration:           1500,
	ShortBreakDuration:     300,
	LongBreakDuration:      900,
	SessionsUntilLongBreak: 4,
}

// DurationFor returns the preferred planned duration for an interval kind.
func (p Preferences) DurationFor(k session.Kind) (int, bool) {
	switch k {
	case session.KindWork:
		return p.WorkDuration, true
	case session.KindShortBreak:
		return p.ShortBreakDuration, true
	case session.KindLongBreak:
		return p.LongBreakDuration, true
	}
	return 0, false
}

// PreferencesFor returns the user's stored preferences, falling back to the
// given defaults when no row exists.
func (db *DB) PreferencesFor(userID int64, defaults Preferences) (Preferences, error) {
	p := defaults
	p.UserID = userID
	err := db.conn.QueryRow(
		`SELECT work_duration, short_break_duration, long_break_duration, sessions_until_long_break
		 FROM preferences WHERE user_id = ?`, userID,
	).Scan(&p.WorkDuration, &p.ShortBreakDuration, &p.LongBreakDuration, &p.SessionsUntilLongBreak)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, &session.StorageError{Op: "load preferences", Err: err}
	}
	return p, nil
}

// SavePreferences upserts the user's preference row.
func (db *DB) SavePreferences(p Preferences) error {
	_, err := db.conn.Exec(
		`INSERT INTO preferences (user_id, work_duration, short_break_duration, long_break_duration, sessions_until_long_break, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			work_duration = excluded.work_duration,
			short_break_duration = excluded.short_break_duration,
			long_break_duration = excluded.long_break_duration,
			sessions_until_long_break = excluded.sessions_until_long_break,
			updated_at = excluded.updated_at`,
		p.UserID, p.WorkDuration, p.ShortBreakDuration, p.LongBreakDuration,
		p.SessionsUntilLongBreak, fmtTime(time.Now()),
	)
	if err != nil {
		return &session.StorageError{Op: "save preferences", Err: err}
	}
	return nil
}
