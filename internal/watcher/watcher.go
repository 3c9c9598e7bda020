// Package watcher provides foreground monitoring of the active session,
// emitting alerts when the planned timer elapses, when a flexible session
// crosses its duration band, and when a pause is left running.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/flowtrack/internal/session"
)

// Alert represents a notable event detected by the watcher. Kind names the
// session kind the alert is about; empty for watcher-level failures.
type Alert struct {
	Level   string // "info", "warning"
	Kind    session.Kind
	Title   string
	Message string
	Time    time.Time
}

// subject is the short headline used on notification surfaces.
func (a Alert) subject() string {
	if a.Kind == "" {
		return a.Title
	}
	return fmt.Sprintf("%s: %s", a.Kind, a.Title)
}

// ActiveSource supplies the session being watched. *store.DB implements it.
type ActiveSource interface {
	ActiveSession(userID int64) (*session.Session, error)
}

// longPauseThreshold is how long a pause may run before the watcher nudges.
const longPauseThreshold = 15 * time.Minute

// Watcher polls the user's active session at a regular interval and emits
// alerts when it crosses a timing boundary. Each boundary fires once per
// session.
type Watcher struct {
	src      ActiveSource
	userID   int64
	interval time.Duration
	alertFn  func(Alert)
	fired    map[string]bool

	now func() time.Time
}

// New creates a Watcher for the given user.
func New(src ActiveSource, userID int64, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		src:      src,
		userID:   userID,
		interval: interval,
		alertFn:  alertFn,
		fired:    make(map[string]bool),
		now:      time.Now,
	}
}

// Run starts the watch loop, checking at every interval. Blocks until ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, a := range w.Check() {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle and returns any new alerts. Alerts
// already fired for the current session are suppressed.
func (w *Watcher) Check() []Alert {
	s, err := w.src.ActiveSession(w.userID)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Check failed",
			Message: fmt.Sprintf("Could not read active session: %v", err),
			Time:    w.now(),
		}}
	}
	if s == nil {
		// Session ended; a new one starts with a clean slate.
		w.fired = make(map[string]bool)
		return nil
	}

	var out []Alert
	for _, a := range Boundaries(s, w.now()) {
		key := s.UUID + ":" + a.Title
		if w.fired[key] {
			continue
		}
		w.fired[key] = true
		out = append(out, a)
	}
	return out
}

// Boundaries derives the timing alerts a session has crossed as of now.
func Boundaries(s *session.Session, now time.Time) []Alert {
	var out []Alert

	active := session.ActiveSeconds(s, now)

	if s.PlannedDuration != nil && *s.PlannedDuration > 0 && active >= *s.PlannedDuration {
		title := "Time's up"
		msg := fmt.Sprintf("Your %s session reached its planned %d minutes", s.Kind, *s.PlannedDuration/60)
		if s.Variant == session.VariantFlexible {
			title = "Planned duration reached"
		}
		out = append(out, Alert{Level: "info", Title: title, Message: msg, Time: now})
	}

	if s.Variant == session.VariantFlexible {
		if s.MinimumDuration > 0 && active >= s.MinimumDuration {
			out = append(out, Alert{
				Level:   "info",
				Title:   "Minimum reached",
				Message: fmt.Sprintf("Your %s session can now be completed", s.Kind),
				Time:    now,
			})
		}
		if s.MaximumDuration > 0 && active >= s.MaximumDuration {
			out = append(out, Alert{
				Level:   "warning",
				Title:   "Maximum reached",
				Message: fmt.Sprintf("Your %s session hit its %d-minute cap; take a break", s.Kind, s.MaximumDuration/60),
				Time:    now,
			})
		}
	}

	if s.Status == session.StatusPaused && s.PausedAt != nil && now.Sub(*s.PausedAt) >= longPauseThreshold {
		out = append(out, Alert{
			Level:   "warning",
			Title:   "Still paused",
			Message: fmt.Sprintf("Your %s session has been paused for %d minutes", s.Kind, int(now.Sub(*s.PausedAt).Minutes())),
			Time:    now,
		})
	}

	for i := range out {
		out[i].Kind = s.Kind
	}
	return out
}
