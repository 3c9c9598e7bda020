// Package lifecycle enforces the work-session state machine: one active
// session per user, legal status transitions only, and derived durations
// that stay consistent with the recorded timestamps.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// Store is the persistence surface the controller needs. *store.DB
// implements it; tests may substitute their own.
type Store interface {
	CreateSession(s *session.Session) error
	SessionByUUID(uuid string) (*session.Session, error)
	ActiveSession(userID int64) (*session.Session, error)
	UpdateSessionFrom(s *session.Session, prev session.Status) (bool, error)
	WorkSequenceToday(userID int64, now time.Time) (int, error)
}

// TaskDirectory resolves task ownership and receives best-effort progress
// updates when productive sessions complete.
type TaskDirectory interface {
	TaskByID(id int64) (*store.Task, error)
	IncrementCompletedSessions(id int64) error
	AddFocusSeconds(id int64, seconds int) error
}

// PreferenceSource supplies per-user interval-session defaults.
type PreferenceSource interface {
	PreferencesFor(userID int64, defaults store.Preferences) (store.Preferences, error)
}

// Controller orchestrates every session mutation. All operations are
// synchronous read-validate-write sequences; no operation leaves a session
// partially updated.
type Controller struct {
	store    Store
	tasks    TaskDirectory
	prefs    PreferenceSource
	defaults store.Preferences

	now func() time.Time
}

// New creates a controller. defaults are the config-level interval
// durations used when a user has no stored preferences.
func New(st Store, tasks TaskDirectory, prefs PreferenceSource, defaults store.Preferences) *Controller {
	return &Controller{
		store:    st,
		tasks:    tasks,
		prefs:    prefs,
		defaults: defaults,
		now:      time.Now,
	}
}

// StartOptions carries the optional parameters of Start.
type StartOptions struct {
	TaskID          *int64
	PlannedDuration *int // seconds; nil means per-kind default
	MinimumDuration *int // flexible only
	MaximumDuration *int // flexible only
	Objectives      string
	Location        string
	Device          string
	AmbientSound    string
}

// Start creates a new session in status in_progress. It fails with
// ConflictError when the user already holds the active slot, NotFoundError
// when the task reference does not resolve to the user's own task, and
// ValidationError when the resolved planned duration falls below the
// session's minimum.
func (c *Controller) Start(userID int64, kind session.Kind, opts StartOptions) (*session.Session, error) {
	variant := kind.Variant()
	if variant == "" {
		return nil, &session.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown session kind %q", kind)}
	}

	if opts.TaskID != nil {
		task, err := c.tasks.TaskByID(*opts.TaskID)
		if err != nil {
			return nil, err
		}
		if task == nil || task.UserID != userID {
			return nil, &session.NotFoundError{Resource: "task", ID: fmt.Sprintf("%d", *opts.TaskID)}
		}
	}

	now := c.now()
	s := &session.Session{
		UUID:          uuid.NewString(),
		UserID:        userID,
		TaskID:        opts.TaskID,
		Variant:       variant,
		Kind:          kind,
		Status:        session.StatusInProgress,
		StartTime:     now,
		ObjectivesSet: opts.Objectives,
		Location:      opts.Location,
		Device:        opts.Device,
		AmbientSound:  opts.AmbientSound,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch variant {
	case session.VariantInterval:
		if err := c.resolveIntervalTiming(s, opts, now); err != nil {
			return nil, err
		}
	case session.VariantFlexible:
		if err := resolveFlexibleTiming(s, opts); err != nil {
			return nil, err
		}
	}

	if err := c.store.CreateSession(s); err != nil {
		return nil, err
	}
	return s, nil
}

// resolveIntervalTiming fills planned duration from the user's stored
// work/break preferences and assigns the same-day work sequence number.
func (c *Controller) resolveIntervalTiming(s *session.Session, opts StartOptions, now time.Time) error {
	prefs, err := c.prefs.PreferencesFor(s.UserID, c.defaults)
	if err != nil {
		return err
	}

	planned := 0
	if opts.PlannedDuration != nil {
		planned = *opts.PlannedDuration
	} else {
		planned, _ = prefs.DurationFor(s.Kind)
	}
	if planned <= 0 {
		return &session.ValidationError{Field: "planned_duration", Reason: "must be positive"}
	}
	s.PlannedDuration = &planned

	if s.Kind == session.KindWork {
		seq, err := c.store.WorkSequenceToday(s.UserID, now)
		if err != nil {
			return err
		}
		s.Sequence = &seq
	}
	return nil
}

// resolveFlexibleTiming fills the duration band and per-mode default,
// clamping the plan to the maximum and rejecting plans below the minimum.
func resolveFlexibleTiming(s *session.Session, opts StartOptions) error {
	s.MinimumDuration = session.DefaultMinimumDuration
	if opts.MinimumDuration != nil {
		if *opts.MinimumDuration < 0 {
			return &session.ValidationError{Field: "minimum_duration", Reason: "must not be negative"}
		}
		s.MinimumDuration = *opts.MinimumDuration
	}
	s.MaximumDuration = session.DefaultMaximumDuration
	if opts.MaximumDuration != nil {
		if *opts.MaximumDuration <= 0 {
			return &session.ValidationError{Field: "maximum_duration", Reason: "must be positive"}
		}
		s.MaximumDuration = *opts.MaximumDuration
	}

	planned := 0
	if opts.PlannedDuration != nil {
		planned = *opts.PlannedDuration
	} else {
		planned, _ = session.DefaultDuration(s.Kind)
	}
	if planned > s.MaximumDuration {
		planned = s.MaximumDuration
	}
	if planned < s.MinimumDuration {
		return &session.ValidationError{
			Field:  "planned_duration",
			Reason: fmt.Sprintf("must be at least %d minutes", s.MinimumDuration/60),
		}
	}
	s.PlannedDuration = &planned
	return nil
}

// Pause stops the clock on an in-progress session.
func (c *Controller) Pause(userID int64, sessionID string) (*session.Session, error) {
	s, err := c.load(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.CheckTransition("pause", s.Status, session.StatusPaused); err != nil {
		return nil, err
	}

	now := c.now()
	prev := s.Status
	s.Status = session.StatusPaused
	s.PausedAt = &now
	return c.save(s, prev, "pause")
}

// Resume restarts a paused session, folding the pause interval into the
// session's cumulative pause duration.
func (c *Controller) Resume(userID int64, sessionID string) (*session.Session, error) {
	s, err := c.load(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.CheckTransition("resume", s.Status, session.StatusInProgress); err != nil {
		return nil, err
	}

	now := c.now()
	prev := s.Status
	if s.PausedAt != nil && now.After(*s.PausedAt) {
		s.PauseDuration += int(now.Sub(*s.PausedAt).Seconds())
	}
	s.PausedAt = nil
	s.Status = session.StatusInProgress
	return c.save(s, prev, "resume")
}

// Complete finishes an active session and merges the supplied feedback.
// Flexible sessions must have accrued at least their minimum active time;
// interval sessions always accept completion. On success, productive
// sessions linked to a task bump that task's counters best-effort.
func (c *Controller) Complete(userID int64, sessionID string, fb session.Feedback) (*session.Session, error) {
	s, err := c.load(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.CheckTransition("complete", s.Status, session.StatusCompleted); err != nil {
		return nil, err
	}
	if err := session.CheckFeedback(fb); err != nil {
		return nil, err
	}

	now := c.now()
	if s.Variant == session.VariantFlexible && s.MinimumDuration > 0 {
		if active := session.ActiveSeconds(s, now); active < s.MinimumDuration {
			return nil, &session.ValidationError{
				Field:  "duration",
				Reason: fmt.Sprintf("session must run at least %d minutes", s.MinimumDuration/60),
			}
		}
	}

	prev := s.Status
	// A session completed while paused counts the trailing pause as paused
	// time, not active time.
	if s.PausedAt != nil && now.After(*s.PausedAt) {
		s.PauseDuration += int(now.Sub(*s.PausedAt).Seconds())
	}
	s.PausedAt = nil
	s.Status = session.StatusCompleted
	s.EndTime = &now
	s.CompletedAt = &now
	actual := session.ActualDuration(s, now)
	s.ActualDuration = &actual
	applyFeedback(s, fb)

	saved, err := c.save(s, prev, "complete")
	if err != nil {
		return nil, err
	}

	// Task progress updates are fire-and-forget: a failure here must not
	// fail the completion.
	if s.TaskID != nil && s.Kind.Productive() {
		_ = c.tasks.IncrementCompletedSessions(*s.TaskID)
		_ = c.tasks.AddFocusSeconds(*s.TaskID, actual)
	}
	return saved, nil
}

// Abandon ends an active session without completing it. Partial elapsed
// time is preserved in actual_duration so analytics can still account for
// it.
func (c *Controller) Abandon(userID int64, sessionID string, reason string) (*session.Session, error) {
	s, err := c.load(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.CheckTransition("abandon", s.Status, session.StatusAbandoned); err != nil {
		return nil, err
	}

	now := c.now()
	prev := s.Status
	if s.PausedAt != nil && now.After(*s.PausedAt) {
		s.PauseDuration += int(now.Sub(*s.PausedAt).Seconds())
	}
	s.PausedAt = nil
	s.Status = session.StatusAbandoned
	s.EndTime = &now
	actual := session.ActualDuration(s, now)
	s.ActualDuration = &actual
	if reason != "" {
		s.Notes = appendNote(s.Notes, "Abandoned: "+reason)
	}
	return c.save(s, prev, "abandon")
}

// Active returns the user's single in_progress/paused session, or nil when
// there is none. The no-session case is not an error.
func (c *Controller) Active(userID int64) (*session.Session, error) {
	return c.store.ActiveSession(userID)
}

// load fetches a session and checks existence and ownership.
func (c *Controller) load(userID int64, sessionID string) (*session.Session, error) {
	s, err := c.store.SessionByUUID(sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &session.NotFoundError{Resource: "session", ID: sessionID}
	}
	if s.UserID != userID {
		return nil, &session.AuthorizationError{SessionID: sessionID, UserID: userID}
	}
	return s, nil
}

// save writes the mutated session guarded by the status it was loaded in.
// A lost compare-and-swap means a concurrent mutation got there first.
func (c *Controller) save(s *session.Session, prev session.Status, op string) (*session.Session, error) {
	s.UpdatedAt = c.now()
	applied, err := c.store.UpdateSessionFrom(s, prev)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, &session.InvalidStateError{Op: op, Status: prev}
	}
	return s, nil
}

// applyFeedback merges completion feedback onto the session. Ratings are
// already range-checked; variant-specific fields only land on their own
// variant.
func applyFeedback(s *session.Session, fb session.Feedback) {
	if fb.FocusQuality != nil {
		s.FocusQuality = fb.FocusQuality
	}
	if fb.ProductivityRating != nil {
		s.ProductivityRating = fb.ProductivityRating
	}
	if fb.EnergyBefore != nil {
		s.EnergyBefore = fb.EnergyBefore
	}
	if fb.EnergyAfter != nil {
		s.EnergyAfter = fb.EnergyAfter
	}
	if fb.Satisfaction != nil {
		s.Satisfaction = fb.Satisfaction
	}
	if fb.Notes != "" {
		s.Notes = appendNote(s.Notes, fb.Notes)
	}
	if fb.Accomplishments != "" {
		s.Accomplishments = fb.Accomplishments
	}
	if fb.ObjectivesAchieved != "" {
		s.ObjectivesAchieved = fb.ObjectivesAchieved
	}

	if s.Variant != session.VariantFlexible {
		return
	}
	if fb.FlowStateAchieved {
		s.FlowStateAchieved = true
		if fb.FlowStateDuration != nil {
			s.FlowStateDuration = fb.FlowStateDuration
		}
	}
	if fb.DistractionLevel != "" {
		s.DistractionLevel = fb.DistractionLevel
	}
	if fb.TasksCompleted > 0 {
		s.TasksCompleted = fb.TasksCompleted
	}
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
