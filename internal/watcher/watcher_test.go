package watcher

import (
	"testing"
	"time"

	"github.com/blackwell-systems/flowtrack/internal/session"
)

func intp(v int) *int { return &v }

func TestBoundariesInterval(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	s := &session.Session{
		UUID:            "abc",
		Variant:         session.VariantInterval,
		Kind:            session.KindWork,
		Status:          session.StatusInProgress,
		StartTime:       start,
		PlannedDuration: intp(1500),
	}

	if got := Boundaries(s, start.Add(10*time.Minute)); len(got) != 0 {
		t.Errorf("expected no alerts mid-session, got %v", got)
	}

	got := Boundaries(s, start.Add(25*time.Minute))
	if len(got) != 1 || got[0].Title != "Time's up" {
		t.Fatalf("expected timer alert, got %v", got)
	}
	if got[0].Kind != session.KindWork {
		t.Errorf("alert kind = %q, want %q", got[0].Kind, session.KindWork)
	}
	if got[0].subject() != "work: Time's up" {
		t.Errorf("subject = %q, want kind-prefixed title", got[0].subject())
	}
}

func TestBoundariesFlexible(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	s := &session.Session{
		UUID:            "def",
		Variant:         session.VariantFlexible,
		Kind:            session.KindDeepWork,
		Status:          session.StatusInProgress,
		StartTime:       start,
		PlannedDuration: intp(5400),
		MinimumDuration: 1800,
		MaximumDuration: 10800,
	}

	got := Boundaries(s, start.Add(30*time.Minute))
	if len(got) != 1 || got[0].Title != "Minimum reached" {
		t.Errorf("expected minimum alert, got %v", got)
	}

	got = Boundaries(s, start.Add(3*time.Hour))
	titles := make(map[string]bool)
	for _, a := range got {
		titles[a.Title] = true
	}
	if !titles["Maximum reached"] || !titles["Planned duration reached"] {
		t.Errorf("expected band alerts at three hours, got %v", got)
	}
}

func TestBoundariesPauseCountsAgainstTimer(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	pausedAt := start.Add(10 * time.Minute)
	s := &session.Session{
		UUID:            "ghi",
		Variant:         session.VariantInterval,
		Kind:            session.KindWork,
		Status:          session.StatusPaused,
		StartTime:       start,
		PausedAt:        &pausedAt,
		PlannedDuration: intp(1500),
	}

	// 25 wall-clock minutes but only 10 active; timer must not fire.
	got := Boundaries(s, start.Add(25*time.Minute))
	for _, a := range got {
		if a.Title == "Time's up" {
			t.Errorf("timer fired while paused: %v", got)
		}
	}

	// The long pause itself is worth an alert.
	got = Boundaries(s, start.Add(26*time.Minute))
	found := false
	for _, a := range got {
		if a.Title == "Still paused" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected long-pause alert, got %v", got)
	}
}

type fakeActive struct {
	s   *session.Session
	err error
}

func (f *fakeActive) ActiveSession(userID int64) (*session.Session, error) {
	return f.s, f.err
}

func TestCheckFiresOncePerSession(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	s := &session.Session{
		UUID:            "one",
		Variant:         session.VariantInterval,
		Kind:            session.KindWork,
		Status:          session.StatusInProgress,
		StartTime:       start,
		PlannedDuration: intp(1500),
	}
	src := &fakeActive{s: s}

	w := New(src, 1, time.Second, nil)
	w.now = func() time.Time { return start.Add(30 * time.Minute) }

	if got := w.Check(); len(got) != 1 {
		t.Fatalf("expected one alert, got %v", got)
	}
	if got := w.Check(); len(got) != 0 {
		t.Errorf("expected repeat suppression, got %v", got)
	}

	// Session ends, a new one resets the slate.
	src.s = nil
	if got := w.Check(); got != nil {
		t.Errorf("expected no alerts without a session, got %v", got)
	}
	src.s = s
	if got := w.Check(); len(got) != 1 {
		t.Errorf("expected alert after reset, got %v", got)
	}
}
