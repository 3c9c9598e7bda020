package session

// DefaultMinimumDuration is the minimum active time (seconds) a flexible
// session must run before it can be completed. Interval sessions have no
// minimum.
const DefaultMinimumDuration = 1800

// DefaultMaximumDuration caps a flexible session's planned duration at
// three hours unless the caller supplies a wider band.
const DefaultMaximumDuration = 10800

// flexibleDefaults maps each flexible kind to its default planned duration
// in seconds.
var flexibleDefaults = map[Kind]int{
	KindDeepWork:    5400, // 90 minutes
	KindShallowWork: 2700,
	KindCreative:    7200,
	KindLearning:    3600,
	KindPlanning:    1800,
	KindReview:      2700,
}

// DefaultDuration returns the default planned duration for a flexible kind.
// Interval defaults come from user preferences, not from this table.
func DefaultDuration(k Kind) (int, bool) {
	d, ok := flexibleDefaults[k]
	return d, ok
}

// CheckRating validates an optional 1-5 rating. A nil pointer is valid
// ("not supplied").
func CheckRating(field string, v *int) error {
	if v == nil {
		return nil
	}
	if *v < 1 || *v > 5 {
		return &ValidationError{Field: field, Reason: "rating must be between 1 and 5"}
	}
	return nil
}

// CheckFeedback validates every rating carried by a feedback payload.
func CheckFeedback(f Feedback) error {
	checks := []struct {
		field string
		v     *int
	}{
		{"focus_quality", f.FocusQuality},
		{"productivity_rating", f.ProductivityRating},
		{"energy_before", f.EnergyBefore},
		{"energy_after", f.EnergyAfter},
		{"satisfaction", f.Satisfaction},
	}
	for _, c := range checks {
		if err := CheckRating(c.field, c.v); err != nil {
			return err
		}
	}
	if f.DistractionLevel != "" {
		if _, ok := f.DistractionLevel.Score(); !ok {
			return &ValidationError{Field: "distraction_level", Reason: "unknown level"}
		}
	}
	if f.FlowStateDuration != nil && *f.FlowStateDuration < 0 {
		return &ValidationError{Field: "flow_state_duration", Reason: "must not be negative"}
	}
	if f.TasksCompleted < 0 {
		return &ValidationError{Field: "tasks_completed", Reason: "must not be negative"}
	}
	return nil
}

// CheckTransition validates a state-machine edge. Allowed edges:
//
//	pending     -> in_progress
//	in_progress -> paused | completed | abandoned
//	paused      -> in_progress | completed | abandoned
//
// Completed and abandoned are terminal.
func CheckTransition(op string, from, to Status) error {
	ok := false
	switch from {
	case StatusPending:
		ok = to == StatusInProgress
	case StatusInProgress:
		ok = to == StatusPaused || to == StatusCompleted || to == StatusAbandoned
	case StatusPaused:
		ok = to == StatusInProgress || to == StatusCompleted || to == StatusAbandoned
	}
	if !ok {
		return &InvalidStateError{Op: op, Status: from}
	}
	return nil
}
