package lifecycle

import (
	"github.com/blackwell-systems/flowtrack/internal/session"
)

// LogInterruption records a focus break against an in-progress session.
// Counters only ever grow; each call also appends a structured, timestamped
// entry to the session's interruption log. Pausing first is required if the
// caller wants to stop the clock; logging alone does not change status.
//
// lostSeconds is the time the interruption cost and is accumulated on
// interval sessions only; flexible sessions account for lost time through
// pause/resume instead.
func (c *Controller) LogInterruption(userID int64, sessionID string, cause session.InterruptionCause, note string, lostSeconds int) (*session.Session, error) {
	if cause != session.CauseSelf && cause != session.CauseExternal {
		return nil, &session.ValidationError{Field: "cause", Reason: "must be self or external"}
	}
	if lostSeconds < 0 {
		return nil, &session.ValidationError{Field: "lost_seconds", Reason: "must not be negative"}
	}

	s, err := c.load(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Status != session.StatusInProgress {
		return nil, &session.InvalidStateError{Op: "log interruption", Status: s.Status}
	}

	now := c.now()
	prev := s.Status

	s.InterruptionCount++
	switch s.Variant {
	case session.VariantFlexible:
		if cause == session.CauseSelf {
			s.SelfInterruptionCount++
		} else {
			s.ExternalInterruptionCount++
		}
	case session.VariantInterval:
		s.LastInterruptionCause = cause
		s.InterruptionTotalTime += lostSeconds
	}

	s.Interruptions = append(s.Interruptions, session.Interruption{
		At:    now,
		Cause: cause,
		Note:  note,
	})

	return c.save(s, prev, "log interruption")
}
