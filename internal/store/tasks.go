package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/blackwell-systems/flowtrack/internal/session"
)

// Task is the minimal task record the session core collaborates with.
// Sessions reference tasks weakly; full task management lives elsewhere.
type Task struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Title             string    `json:"title"`
	CompletedSessions int       `json:"completed_sessions"`
	FocusSeconds      int       `json:"focus_seconds"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateTask inserts a task and assigns its ID.
func (db *DB) CreateTask(t *Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	result, err := db.conn.Exec(
		"INSERT INTO tasks (user_id, title, completed_sessions, focus_seconds, created_at) VALUES (?, ?, ?, ?, ?)",
		t.UserID, t.Title, t.CompletedSessions, t.FocusSeconds, fmtTime(t.CreatedAt),
	)
	if err != nil {
		return &session.StorageError{Op: "insert task", Err: err}
	}
	t.ID, err = result.LastInsertId()
	if err != nil {
		return &session.StorageError{Op: "read task id", Err: err}
	}
	return nil
}

// TaskByID returns a task, or nil if it does not exist.
func (db *DB) TaskByID(id int64) (*Task, error) {
	var t Task
	var createdAt string
	err := db.conn.QueryRow(
		"SELECT id, user_id, title, completed_sessions, focus_seconds, created_at FROM tasks WHERE id = ?",
		id,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.CompletedSessions, &t.FocusSeconds, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &session.StorageError{Op: "load task", Err: err}
	}
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, &session.StorageError{Op: "load task", Err: err}
	}
	return &t, nil
}

// TasksByUser returns all of a user's tasks, oldest first.
func (db *DB) TasksByUser(userID int64) ([]Task, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_id, title, completed_sessions, focus_seconds, created_at FROM tasks WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, &session.StorageError{Op: "list tasks", Err: err}
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		var createdAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.CompletedSessions, &t.FocusSeconds, &createdAt); err != nil {
			return nil, &session.StorageError{Op: "scan task", Err: err}
		}
		t.CreatedAt, err = parseTime("created_at", createdAt)
		if err != nil {
			return nil, &session.StorageError{Op: "scan task", Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// IncrementCompletedSessions bumps a task's completed-session counter.
func (db *DB) IncrementCompletedSessions(taskID int64) error {
	_, err := db.conn.Exec(
		"UPDATE tasks SET completed_sessions = completed_sessions + 1 WHERE id = ?", taskID,
	)
	if err != nil {
		return &session.StorageError{Op: "increment task counter", Err: err}
	}
	return nil
}

// AddFocusSeconds accumulates actual focus time onto a task.
func (db *DB) AddFocusSeconds(taskID int64, seconds int) error {
	_, err := db.conn.Exec(
		"UPDATE tasks SET focus_seconds = focus_seconds + ? WHERE id = ?", seconds, taskID,
	)
	if err != nil {
		return &session.StorageError{Op: "add task focus time", Err: err}
	}
	return nil
}
