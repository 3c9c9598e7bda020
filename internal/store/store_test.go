package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/flowtrack/internal/session"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func intp(v int) *int { return &v }

func newSession(userID int64, kind session.Kind, status session.Status, start time.Time) *session.Session {
	return &session.Session{
		UUID:      uuid.NewString(),
		UserID:    userID,
		Variant:   kind.Variant(),
		Kind:      kind,
		Status:    status,
		StartTime: start,
		CreatedAt: start,
		UpdatedAt: start,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := newTestDB(t)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	s := newSession(1, session.KindDeepWork, session.StatusCompleted, start)
	s.PlannedDuration = intp(5400)
	s.MinimumDuration = 1800
	s.MaximumDuration = 10800
	s.ActualDuration = intp(5280)
	s.EndTime = &end
	s.CompletedAt = &end
	s.PauseDuration = 120
	s.InterruptionCount = 2
	s.SelfInterruptionCount = 1
	s.ExternalInterruptionCount = 1
	s.Interruptions = []session.Interruption{
		{At: start.Add(20 * time.Minute), Cause: session.CauseSelf, Note: "checked email"},
		{At: start.Add(50 * time.Minute), Cause: session.CauseExternal, Note: "doorbell"},
	}
	s.FocusQuality = intp(4)
	s.Satisfaction = intp(5)
	s.FlowStateAchieved = true
	s.FlowStateDuration = intp(2400)
	s.DistractionLevel = session.DistractionMinimal
	s.TasksCompleted = 3
	s.Notes = "good run"
	s.ObjectivesSet = "draft chapter"
	s.ObjectivesAchieved = "chapter drafted"
	s.Location = "home"
	s.Device = "laptop"
	s.AmbientSound = "rain"

	require.NoError(t, db.CreateSession(s))
	require.NotZero(t, s.ID)

	got, err := db.SessionByUUID(s.UUID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, s.ID, got.ID)
	require.Equal(t, session.KindDeepWork, got.Kind)
	require.Equal(t, session.StatusCompleted, got.Status)
	require.Equal(t, 5280, *got.ActualDuration)
	require.True(t, got.StartTime.Equal(start))
	require.True(t, got.EndTime.Equal(end))
	require.Equal(t, 120, got.PauseDuration)
	require.Len(t, got.Interruptions, 2)
	require.Equal(t, "doorbell", got.Interruptions[1].Note)
	require.Equal(t, session.CauseExternal, got.Interruptions[1].Cause)
	require.Equal(t, 4, *got.FocusQuality)
	require.True(t, got.FlowStateAchieved)
	require.Equal(t, session.DistractionMinimal, got.DistractionLevel)
	require.Equal(t, "rain", got.AmbientSound)
	require.Nil(t, got.TaskID)
	require.Nil(t, got.PausedAt)
}

func TestSessionByUUIDMissing(t *testing.T) {
	db := newTestDB(t)
	got, err := db.SessionByUUID("nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestActiveSession(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	got, err := db.ActiveSession(1)
	require.NoError(t, err)
	require.Nil(t, got)

	s := newSession(1, session.KindWork, session.StatusInProgress, start)
	require.NoError(t, db.CreateSession(s))

	got, err = db.ActiveSession(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, s.UUID, got.UUID)

	// Paused sessions still hold the active slot.
	s.Status = session.StatusPaused
	applied, err := db.UpdateSessionFrom(s, session.StatusInProgress)
	require.NoError(t, err)
	require.True(t, applied)

	got, err = db.ActiveSession(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, session.StatusPaused, got.Status)

	s.Status = session.StatusCompleted
	applied, err = db.UpdateSessionFrom(s, session.StatusPaused)
	require.NoError(t, err)
	require.True(t, applied)

	got, err = db.ActiveSession(1)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCreateSessionConflict(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	first := newSession(1, session.KindWork, session.StatusInProgress, start)
	require.NoError(t, db.CreateSession(first))

	second := newSession(1, session.KindDeepWork, session.StatusInProgress, start.Add(time.Minute))
	err := db.CreateSession(second)
	var cerr *session.ConflictError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, first.UUID, cerr.ActiveID)

	// Completed sessions do not block new starts.
	first.Status = session.StatusCompleted
	applied, err := db.UpdateSessionFrom(first, session.StatusInProgress)
	require.NoError(t, err)
	require.True(t, applied)
	require.NoError(t, db.CreateSession(second))
}

func TestUpdateSessionFromStaleStatus(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	s := newSession(1, session.KindWork, session.StatusInProgress, start)
	require.NoError(t, db.CreateSession(s))

	s.Status = session.StatusCompleted
	applied, err := db.UpdateSessionFrom(s, session.StatusPaused)
	require.NoError(t, err)
	require.False(t, applied)

	got, err := db.SessionByUUID(s.UUID)
	require.NoError(t, err)
	require.Equal(t, session.StatusInProgress, got.Status)
}

func TestSessionsInRange(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	mk := func(kind session.Kind, status session.Status, offset time.Duration) *session.Session {
		s := newSession(1, kind, status, base.Add(offset))
		require.NoError(t, db.CreateSession(s))
		return s
	}
	mk(session.KindWork, session.StatusCompleted, 0)
	mk(session.KindDeepWork, session.StatusCompleted, time.Hour)
	mk(session.KindWork, session.StatusAbandoned, 2*time.Hour)
	outside := newSession(1, session.KindWork, session.StatusCompleted, base.AddDate(0, 0, -2))
	require.NoError(t, db.CreateSession(outside))
	other := newSession(2, session.KindWork, session.StatusCompleted, base)
	require.NoError(t, db.CreateSession(other))

	from, to := base.Add(-time.Hour), base.Add(12*time.Hour)

	all, err := db.SessionsInRange(1, from, to, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	require.Equal(t, session.StatusAbandoned, all[0].Status)

	completedOnly, err := db.SessionsInRange(1, from, to, Filter{Status: session.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completedOnly, 2)

	workOnly, err := db.SessionsInRange(1, from, to, Filter{Kind: session.KindWork})
	require.NoError(t, err)
	require.Len(t, workOnly, 2)

	limited, err := db.SessionsInRange(1, from, to, Filter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestWorkSequenceToday(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)

	seq, err := db.WorkSequenceToday(1, now)
	require.NoError(t, err)
	require.Equal(t, 1, seq)

	require.NoError(t, db.CreateSession(newSession(1, session.KindWork, session.StatusCompleted, now.Add(-2*time.Hour))))
	require.NoError(t, db.CreateSession(newSession(1, session.KindWork, session.StatusCompleted, now.Add(-time.Hour))))
	// Yesterday's session and breaks do not count.
	require.NoError(t, db.CreateSession(newSession(1, session.KindWork, session.StatusCompleted, now.AddDate(0, 0, -1))))
	require.NoError(t, db.CreateSession(newSession(1, session.KindShortBreak, session.StatusCompleted, now.Add(-30*time.Minute))))

	seq, err = db.WorkSequenceToday(1, now)
	require.NoError(t, err)
	require.Equal(t, 3, seq)
}

func TestTasks(t *testing.T) {
	db := newTestDB(t)

	task := &Task{UserID: 1, Title: "write report"}
	require.NoError(t, db.CreateTask(task))
	require.NotZero(t, task.ID)

	got, err := db.TaskByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, "write report", got.Title)

	missing, err := db.TaskByID(999)
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, db.IncrementCompletedSessions(task.ID))
	require.NoError(t, db.AddFocusSeconds(task.ID, 1500))

	got, err = db.TaskByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.CompletedSessions)
	require.Equal(t, 1500, got.FocusSeconds)

	require.NoError(t, db.CreateTask(&Task{UserID: 1, Title: "review notes"}))
	list, err := db.TasksByUser(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "write report", list[0].Title)
}

func TestPreferences(t *testing.T) {
	db := newTestDB(t)

	p, err := db.PreferencesFor(1, DefaultPreferences)
	require.NoError(t, err)
	require.Equal(t, int64(1), p.UserID)
	require.Equal(t, 1500, p.WorkDuration)

	p.WorkDuration = 3000
	p.SessionsUntilLongBreak = 3
	require.NoError(t, db.SavePreferences(p))

	got, err := db.PreferencesFor(1, DefaultPreferences)
	require.NoError(t, err)
	require.Equal(t, 3000, got.WorkDuration)
	require.Equal(t, 3, got.SessionsUntilLongBreak)
	require.Equal(t, 300, got.ShortBreakDuration)

	// Upsert overwrites.
	got.LongBreakDuration = 1200
	require.NoError(t, db.SavePreferences(got))
	again, err := db.PreferencesFor(1, DefaultPreferences)
	require.NoError(t, err)
	require.Equal(t, 1200, again.LongBreakDuration)
}

func TestCorruptTimestampSurfaces(t *testing.T) {
	db := newTestDB(t)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	s := newSession(1, session.KindWork, session.StatusCompleted, start)
	require.NoError(t, db.CreateSession(s))

	_, err := db.Conn().Exec("UPDATE sessions SET start_time = 'last tuesday' WHERE uuid = ?", s.UUID)
	require.NoError(t, err)

	_, err = db.SessionByUUID(s.UUID)
	require.Error(t, err)
	var se *session.StorageError
	require.ErrorAs(t, err, &se)
	require.Contains(t, err.Error(), "start_time")
}
