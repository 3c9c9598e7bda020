package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/flowtrack/internal/session"
)

// sessionColumns is the list of columns selected by every session query.
const sessionColumns = `id, uuid, user_id, task_id, variant, kind, status,
	planned_duration, minimum_duration, maximum_duration, actual_duration,
	start_time, paused_at, end_time, completed_at, pause_duration,
	interruption_count, self_interruption_count, external_interruption_count,
	interruption_total_time, last_interruption_cause, interruptions,
	focus_quality, productivity_rating, energy_before, energy_after, satisfaction,
	flow_state_achieved, flow_state_duration, distraction_level, tasks_completed,
	notes, accomplishments, objectives_set, objectives_achieved,
	location, device, ambient_sound, sequence, created_at, updated_at`

// Filter narrows a session range query.
type Filter struct {
	Kind   session.Kind
	Status session.Status
	TaskID int64
	Limit  int
}

// CreateSession inserts a new session row and assigns its ID. The partial
// unique index on active status makes the existence-check-and-insert
// sequence safe against concurrent starts: the loser of the race gets a
// ConflictError, never a second active row.
func (db *DB) CreateSession(s *session.Session) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return &session.StorageError{Op: "begin create session", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	active, err := scanOneSession(tx.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE user_id = ? AND status IN ('in_progress', 'paused')`, s.UserID))
	if err != nil {
		return &session.StorageError{Op: "check active session", Err: err}
	}
	if active != nil {
		return &session.ConflictError{ActiveID: active.UUID}
	}

	interruptions, err := marshalInterruptions(s.Interruptions)
	if err != nil {
		return &session.StorageError{Op: "encode interruption log", Err: err}
	}

	result, err := tx.Exec(
		`INSERT INTO sessions (
			uuid, user_id, task_id, variant, kind, status,
			planned_duration, minimum_duration, maximum_duration, actual_duration,
			start_time, paused_at, end_time, completed_at, pause_duration,
			interruption_count, self_interruption_count, external_interruption_count,
			interruption_total_time, last_interruption_cause, interruptions,
			focus_quality, productivity_rating, energy_before, energy_after, satisfaction,
			flow_state_achieved, flow_state_duration, distraction_level, tasks_completed,
			notes, accomplishments, objectives_set, objectives_achieved,
			location, device, ambient_sound, sequence, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.UUID, s.UserID, s.TaskID, string(s.Variant), string(s.Kind), string(s.Status),
		s.PlannedDuration, s.MinimumDuration, s.MaximumDuration, s.ActualDuration,
		fmtTime(s.StartTime), fmtTimePtr(s.PausedAt), fmtTimePtr(s.EndTime),
		fmtTimePtr(s.CompletedAt), s.PauseDuration,
		s.InterruptionCount, s.SelfInterruptionCount, s.ExternalInterruptionCount,
		s.InterruptionTotalTime, nullString(string(s.LastInterruptionCause)), interruptions,
		s.FocusQuality, s.ProductivityRating, s.EnergyBefore, s.EnergyAfter, s.Satisfaction,
		s.FlowStateAchieved, s.FlowStateDuration, nullString(string(s.DistractionLevel)),
		s.TasksCompleted,
		s.Notes, s.Accomplishments, s.ObjectivesSet, s.ObjectivesAchieved,
		s.Location, s.Device, s.AmbientSound, s.Sequence,
		fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt),
	)
	if err != nil {
		if isActiveConflict(err) {
			// Lost the race to a concurrent start. Report the winner.
			if winner, qerr := scanOneSession(tx.QueryRow(
				`SELECT `+sessionColumns+` FROM sessions
				 WHERE user_id = ? AND status IN ('in_progress', 'paused')`, s.UserID,
			)); qerr == nil && winner != nil {
				return &session.ConflictError{ActiveID: winner.UUID}
			}
			return &session.ConflictError{}
		}
		return &session.StorageError{Op: "insert session", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return &session.StorageError{Op: "read session id", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &session.StorageError{Op: "commit create session", Err: err}
	}
	s.ID = id
	return nil
}

// SessionByUUID returns a session by its external id, or nil if it does
// not exist.
func (db *DB) SessionByUUID(uuid string) (*session.Session, error) {
	s, err := scanOneSession(db.conn.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE uuid = ?`, uuid))
	if err != nil {
		return nil, &session.StorageError{Op: "load session", Err: err}
	}
	return s, nil
}

// ActiveSession returns the user's single in_progress/paused session, or
// nil if none exists.
func (db *DB) ActiveSession(userID int64) (*session.Session, error) {
	s, err := scanOneSession(db.conn.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE user_id = ? AND status IN ('in_progress', 'paused')`, userID))
	if err != nil {
		return nil, &session.StorageError{Op: "load active session", Err: err}
	}
	return s, nil
}

// UpdateSessionFrom writes the session's full mutable state, guarded by a
// compare-and-swap on the status the caller read. Zero rows affected means
// a concurrent mutation won; the caller maps that to InvalidStateError.
func (db *DB) UpdateSessionFrom(s *session.Session, prev session.Status) (bool, error) {
	interruptions, err := marshalInterruptions(s.Interruptions)
	if err != nil {
		return false, &session.StorageError{Op: "encode interruption log", Err: err}
	}

	result, err := db.conn.Exec(
		`UPDATE sessions SET
			status = ?, planned_duration = ?, actual_duration = ?,
			paused_at = ?, end_time = ?, completed_at = ?, pause_duration = ?,
			interruption_count = ?, self_interruption_count = ?, external_interruption_count = ?,
			interruption_total_time = ?, last_interruption_cause = ?, interruptions = ?,
			focus_quality = ?, productivity_rating = ?, energy_before = ?, energy_after = ?,
			satisfaction = ?, flow_state_achieved = ?, flow_state_duration = ?,
			distraction_level = ?, tasks_completed = ?,
			notes = ?, accomplishments = ?, objectives_set = ?, objectives_achieved = ?,
			updated_at = ?
		WHERE uuid = ? AND status = ?`,
		string(s.Status), s.PlannedDuration, s.ActualDuration,
		fmtTimePtr(s.PausedAt), fmtTimePtr(s.EndTime), fmtTimePtr(s.CompletedAt), s.PauseDuration,
		s.InterruptionCount, s.SelfInterruptionCount, s.ExternalInterruptionCount,
		s.InterruptionTotalTime, nullString(string(s.LastInterruptionCause)), interruptions,
		s.FocusQuality, s.ProductivityRating, s.EnergyBefore, s.EnergyAfter,
		s.Satisfaction, s.FlowStateAchieved, s.FlowStateDuration,
		nullString(string(s.DistractionLevel)), s.TasksCompleted,
		s.Notes, s.Accomplishments, s.ObjectivesSet, s.ObjectivesAchieved,
		fmtTime(s.UpdatedAt),
		s.UUID, string(prev),
	)
	if err != nil {
		return false, &session.StorageError{Op: "update session", Err: err}
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, &session.StorageError{Op: "update session", Err: err}
	}
	return n == 1, nil
}

// SessionsInRange returns the user's sessions with start_time in [from, to),
// newest first, narrowed by the filter.
func (db *DB) SessionsInRange(userID int64, from, to time.Time, f Filter) ([]session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE user_id = ? AND start_time >= ? AND start_time < ?`
	args := []any{userID, fmtTime(from), fmtTime(to)}

	if f.Kind != "" {
		query += " AND kind = ?"
		args = append(args, string(f.Kind))
	}
	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, string(f.Status))
	}
	if f.TaskID != 0 {
		query += " AND task_id = ?"
		args = append(args, f.TaskID)
	}
	query += " ORDER BY start_time DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, &session.StorageError{Op: "list sessions", Err: err}
	}
	defer rows.Close()

	var out []session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, &session.StorageError{Op: "scan session", Err: err}
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, &session.StorageError{Op: "list sessions", Err: err}
	}
	return out, nil
}

// WorkSequenceToday returns the next same-day sequence number for the
// user's interval work sessions (1 for the first of the day).
func (db *DB) WorkSequenceToday(userID int64, now time.Time) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM sessions
		 WHERE user_id = ? AND kind = ? AND start_time >= ? AND start_time < ?`,
		userID, string(session.KindWork), fmtTime(dayStart), fmtTime(dayStart.AddDate(0, 0, 1)),
	).Scan(&count)
	if err != nil {
		return 0, &session.StorageError{Op: "count work sessions", Err: err}
	}
	return count + 1, nil
}

// isActiveConflict reports whether err is a violation of the partial unique
// index enforcing the single-active-session invariant.
func isActiveConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_sessions_one_active")
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOneSession scans a single-row query, mapping sql.ErrNoRows to
// (nil, nil).
func scanOneSession(row *sql.Row) (*session.Session, error) {
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanSession(row rowScanner) (*session.Session, error) {
	var (
		s                                       session.Session
		variant, kind, status                   string
		startTime, createdAt, updatedAt         string
		pausedAt, endTime, completedAt          sql.NullString
		lastCause, distraction, interruptionLog sql.NullString
	)
	err := row.Scan(
		&s.ID, &s.UUID, &s.UserID, &s.TaskID, &variant, &kind, &status,
		&s.PlannedDuration, &s.MinimumDuration, &s.MaximumDuration, &s.ActualDuration,
		&startTime, &pausedAt, &endTime, &completedAt, &s.PauseDuration,
		&s.InterruptionCount, &s.SelfInterruptionCount, &s.ExternalInterruptionCount,
		&s.InterruptionTotalTime, &lastCause, &interruptionLog,
		&s.FocusQuality, &s.ProductivityRating, &s.EnergyBefore, &s.EnergyAfter, &s.Satisfaction,
		&s.FlowStateAchieved, &s.FlowStateDuration, &distraction, &s.TasksCompleted,
		&s.Notes, &s.Accomplishments, &s.ObjectivesSet, &s.ObjectivesAchieved,
		&s.Location, &s.Device, &s.AmbientSound, &s.Sequence, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Variant = session.Variant(variant)
	s.Kind = session.Kind(kind)
	s.Status = session.Status(status)
	s.LastInterruptionCause = session.InterruptionCause(lastCause.String)
	s.DistractionLevel = session.DistractionLevel(distraction.String)
	if s.StartTime, err = parseTime("start_time", startTime); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	if s.PausedAt, err = parseTimePtr("paused_at", pausedAt); err != nil {
		return nil, err
	}
	if s.EndTime, err = parseTimePtr("end_time", endTime); err != nil {
		return nil, err
	}
	if s.CompletedAt, err = parseTimePtr("completed_at", completedAt); err != nil {
		return nil, err
	}

	if interruptionLog.Valid && interruptionLog.String != "" {
		if err := json.Unmarshal([]byte(interruptionLog.String), &s.Interruptions); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func marshalInterruptions(log []session.Interruption) (sql.NullString, error) {
	if len(log) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(log)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// Times are stored as RFC3339 text. The fixed width keeps lexicographic
// comparison in SQL consistent with chronological order.
func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: fmtTime(*t), Valid: true}
}

func parseTime(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", column, err)
	}
	return t, nil
}

func parseTimePtr(column string, value sql.NullString) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	t, err := parseTime(column, value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
