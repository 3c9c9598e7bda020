package session

import "time"

// The calculator derives every duration and quality metric from the
// session's recorded timestamps and counters at read time. Nothing here is
// cached on the entity; callers pass the current time so results stay
// deterministic under test.

// ElapsedSeconds is the wall-clock time since the session started. Only
// meaningful while the session is active.
func ElapsedSeconds(s *Session, now time.Time) int {
	if s.StartTime.IsZero() || now.Before(s.StartTime) {
		return 0
	}
	return int(now.Sub(s.StartTime).Seconds())
}

// ActiveSeconds is elapsed time minus accumulated pause time. A live pause
// (PausedAt set, not yet resumed) counts against active time too.
func ActiveSeconds(s *Session, now time.Time) int {
	active := ElapsedSeconds(s, now) - s.PauseDuration
	if s.PausedAt != nil && now.After(*s.PausedAt) {
		active -= int(now.Sub(*s.PausedAt).Seconds())
	}
	if active < 0 {
		return 0
	}
	return active
}

// ActualDuration computes the final duration for a session ending at end:
// wall-clock span minus pause time, and for interval sessions minus the
// accumulated interruption time, floored at zero.
func ActualDuration(s *Session, end time.Time) int {
	if s.StartTime.IsZero() || end.Before(s.StartTime) {
		return 0
	}
	d := int(end.Sub(s.StartTime).Seconds()) - s.PauseDuration
	if s.Variant == VariantInterval {
		d -= s.InterruptionTotalTime
	}
	if d < 0 {
		return 0
	}
	return d
}

// CompletionPercentage is actual duration over planned duration, capped at
// 100. Zero when either value is missing.
func CompletionPercentage(s *Session) float64 {
	if s.ActualDuration == nil || s.PlannedDuration == nil || *s.PlannedDuration <= 0 {
		return 0
	}
	pct := float64(*s.ActualDuration) / float64(*s.PlannedDuration) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// EffectivenessScore blends the two interval ratings (focus quality 60%,
// productivity 40%). Absent unless both ratings are present.
func EffectivenessScore(s *Session) (float64, bool) {
	if s.FocusQuality == nil || s.ProductivityRating == nil {
		return 0, false
	}
	return float64(*s.FocusQuality)*0.6 + float64(*s.ProductivityRating)*0.4, true
}

// EfficiencyRatio weighs pause time against the recorded duration:
// (actual - pause) / actual, floored at zero. Heavy pausers score low.
// Absent until the actual duration is known.
func EfficiencyRatio(s *Session) (float64, bool) {
	if s.ActualDuration == nil || *s.ActualDuration <= 0 {
		return 0, false
	}
	productive := *s.ActualDuration - s.PauseDuration
	if productive < 0 {
		productive = 0
	}
	return float64(productive) / float64(*s.ActualDuration), true
}

// ProductivityScore blends a flexible session's quality inputs on the 1-5
// scale: focus intensity 30%, satisfaction 30%, flow achievement 20%,
// distraction level 20%. Weights are renormalized over whichever inputs are
// present; absent when none are.
func ProductivityScore(s *Session) (float64, bool) {
	score := 0.0
	weight := 0.0

	if s.FocusQuality != nil {
		score += float64(*s.FocusQuality) * 0.3
		weight += 0.3
	}
	if s.Satisfaction != nil {
		score += float64(*s.Satisfaction) * 0.3
		weight += 0.3
	}
	if s.FlowStateAchieved {
		score += 5 * 0.2
		weight += 0.2
	}
	if d, ok := s.DistractionLevel.Score(); ok {
		score += float64(d) * 0.2
		weight += 0.2
	}

	if weight == 0 {
		return 0, false
	}
	return score / weight, true
}
