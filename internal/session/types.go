// Package session defines the work-session entity model: the two session
// variants, their enumerations, structural validity rules, and the pure
// derived-metric calculator. Nothing in this package mutates state or
// touches storage.
package session

import "time"

// Variant distinguishes the two session shapes. Interval sessions run on
// fixed slot lengths (the classic 25-minute cadence); flexible sessions run
// inside a minimum/maximum duration band with richer qualitative feedback.
type Variant string

const (
	VariantInterval Variant = "interval"
	VariantFlexible Variant = "flexible"
)

// Kind classifies a session within its variant.
type Kind string

// Interval kinds.
const (
	KindWork       Kind = "work"
	KindShortBreak Kind = "short_break"
	KindLongBreak  Kind = "long_break"
)

// Flexible kinds.
const (
	KindDeepWork    Kind = "deep_work"
	KindShallowWork Kind = "shallow_work"
	KindCreative    Kind = "creative"
	KindLearning    Kind = "learning"
	KindPlanning    Kind = "planning"
	KindReview      Kind = "review"
)

// Variant returns the variant a kind belongs to, or "" for an unknown kind.
func (k Kind) Variant() Variant {
	switch k {
	case KindWork, KindShortBreak, KindLongBreak:
		return VariantInterval
	case KindDeepWork, KindShallowWork, KindCreative, KindLearning, KindPlanning, KindReview:
		return VariantFlexible
	}
	return ""
}

// Productive reports whether completing a session of this kind counts as
// focused work (drives task counters and productivity binning).
func (k Kind) Productive() bool {
	return k != KindShortBreak && k != KindLongBreak
}

// Status is the lifecycle state of a session.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"

	// StatusInterrupted is an informational status reachable only on interval
	// sessions after repeated interruptions. The dominant path keeps the
	// session in_progress and relies on the interruption counters.
	StatusInterrupted Status = "interrupted"
)

// Terminal reports whether no further transitions are accepted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// InterruptionCause classifies what broke the session's focus.
type InterruptionCause string

const (
	CauseSelf     InterruptionCause = "self"
	CauseExternal InterruptionCause = "external"
)

// DistractionLevel is the self-reported distraction rating for a completed
// flexible session.
type DistractionLevel string

const (
	DistractionMinimal      DistractionLevel = "minimal"
	DistractionLow          DistractionLevel = "low"
	DistractionModerate     DistractionLevel = "moderate"
	DistractionHigh         DistractionLevel = "high"
	DistractionOverwhelming DistractionLevel = "overwhelming"
)

// Score maps a distraction level onto the 1-5 rating scale used by the
// productivity score blend (minimal is best).
func (d DistractionLevel) Score() (int, bool) {
	switch d {
	case DistractionMinimal:
		return 5, true
	case DistractionLow:
		return 4, true
	case DistractionModerate:
		return 3, true
	case DistractionHigh:
		return 2, true
	case DistractionOverwhelming:
		return 1, true
	}
	return 0, false
}

// Interruption is one structured entry in a session's append-only
// interruption log.
type Interruption struct {
	At    time.Time         `json:"at"`
	Cause InterruptionCause `json:"cause"`
	Note  string            `json:"note,omitempty"`
}

// Session is the tagged-variant work session. Interval and flexible sessions
// share identity, timing, and the state machine; variant-specific fields are
// zero-valued on the other variant.
type Session struct {
	ID     int64  `json:"id"`
	UUID   string `json:"uuid"`
	UserID int64  `json:"user_id"`
	TaskID *int64 `json:"task_id,omitempty"`

	Variant Variant `json:"variant"`
	Kind    Kind    `json:"kind"`
	Status  Status  `json:"status"`

	// Timing. All durations are seconds.
	PlannedDuration *int       `json:"planned_duration,omitempty"`
	MinimumDuration int        `json:"minimum_duration"`
	MaximumDuration int        `json:"maximum_duration,omitempty"`
	ActualDuration  *int       `json:"actual_duration,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	PausedAt        *time.Time `json:"paused_at,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	PauseDuration   int        `json:"pause_duration"`

	// Interruption tracking. The count is the total across causes; the
	// self/external split is maintained for flexible sessions, the lost-time
	// accumulator and last-cause tag for interval sessions.
	InterruptionCount         int               `json:"interruption_count"`
	SelfInterruptionCount     int               `json:"self_interruption_count,omitempty"`
	ExternalInterruptionCount int               `json:"external_interruption_count,omitempty"`
	InterruptionTotalTime     int               `json:"interruption_total_time,omitempty"`
	LastInterruptionCause     InterruptionCause `json:"last_interruption_cause,omitempty"`
	Interruptions             []Interruption    `json:"interruptions,omitempty"`

	// Quality and feedback, set only at completion. Ratings are 1-5.
	FocusQuality       *int             `json:"focus_quality,omitempty"`
	ProductivityRating *int             `json:"productivity_rating,omitempty"`
	EnergyBefore       *int             `json:"energy_before,omitempty"`
	EnergyAfter        *int             `json:"energy_after,omitempty"`
	Satisfaction       *int             `json:"satisfaction,omitempty"`
	FlowStateAchieved  bool             `json:"flow_state_achieved,omitempty"`
	FlowStateDuration  *int             `json:"flow_state_duration,omitempty"`
	DistractionLevel   DistractionLevel `json:"distraction_level,omitempty"`
	TasksCompleted     int              `json:"tasks_completed,omitempty"`

	Notes              string `json:"notes,omitempty"`
	Accomplishments    string `json:"accomplishments,omitempty"`
	ObjectivesSet      string `json:"objectives_set,omitempty"`
	ObjectivesAchieved string `json:"objectives_achieved,omitempty"`

	// Environmental context.
	Location     string `json:"location,omitempty"`
	Device       string `json:"device,omitempty"`
	AmbientSound string `json:"ambient_sound,omitempty"`

	// Sequence is the same-day ordinal among the user's interval work
	// sessions (1st, 2nd, ...). Drives long-break cadence.
	Sequence *int `json:"sequence,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the session currently holds the user's single
// active slot (in progress or paused).
func (s *Session) Active() bool {
	return s.Status == StatusInProgress || s.Status == StatusPaused
}

// Feedback carries the optional completion-time quality fields. Nil pointers
// mean "not supplied"; supplied ratings must be in [1,5].
type Feedback struct {
	FocusQuality       *int
	ProductivityRating *int
	EnergyBefore       *int
	EnergyAfter        *int
	Satisfaction       *int
	Notes              string
	Accomplishments    string
	ObjectivesAchieved string

	// Flexible-only fields.
	FlowStateAchieved bool
	FlowStateDuration *int
	DistractionLevel  DistractionLevel
	TasksCompleted    int
}
