package session

import (
	"errors"
	"testing"
	"time"
)

func ptr(v int) *int { return &v }

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestElapsedSeconds(t *testing.T) {
	s := &Session{StartTime: t0}
	if got := ElapsedSeconds(s, t0.Add(90*time.Second)); got != 90 {
		t.Errorf("ElapsedSeconds = %d, want 90", got)
	}
	if got := ElapsedSeconds(s, t0.Add(-time.Minute)); got != 0 {
		t.Errorf("ElapsedSeconds before start = %d, want 0", got)
	}
	if got := ElapsedSeconds(&Session{}, t0); got != 0 {
		t.Errorf("ElapsedSeconds without start time = %d, want 0", got)
	}
}

func TestActiveSeconds_LivePause(t *testing.T) {
	pausedAt := t0.Add(100 * time.Second)
	s := &Session{
		StartTime:     t0,
		PauseDuration: 30,
		PausedAt:      &pausedAt,
	}
	// 200s elapsed, 30s past pauses, 100s into a live pause.
	if got := ActiveSeconds(s, t0.Add(200*time.Second)); got != 70 {
		t.Errorf("ActiveSeconds = %d, want 70", got)
	}
}

func TestActiveSeconds_FloorsAtZero(t *testing.T) {
	s := &Session{StartTime: t0, PauseDuration: 500}
	if got := ActiveSeconds(s, t0.Add(100*time.Second)); got != 0 {
		t.Errorf("ActiveSeconds = %d, want 0", got)
	}
}

func TestActualDuration(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		end  time.Time
		want int
	}{
		{
			name: "no pauses",
			s:    Session{Variant: VariantFlexible, StartTime: t0},
			end:  t0.Add(1500 * time.Second),
			want: 1500,
		},
		{
			name: "pause subtracted",
			s:    Session{Variant: VariantFlexible, StartTime: t0, PauseDuration: 120},
			end:  t0.Add(180 * time.Second),
			want: 60,
		},
		{
			name: "interval subtracts interruption time",
			s: Session{
				Variant: VariantInterval, StartTime: t0,
				PauseDuration: 100, InterruptionTotalTime: 200,
			},
			end:  t0.Add(1000 * time.Second),
			want: 700,
		},
		{
			name: "flexible ignores interruption time",
			s: Session{
				Variant: VariantFlexible, StartTime: t0,
				InterruptionTotalTime: 200,
			},
			end:  t0.Add(1000 * time.Second),
			want: 1000,
		},
		{
			name: "floored at zero",
			s:    Session{Variant: VariantInterval, StartTime: t0, PauseDuration: 9999},
			end:  t0.Add(time.Second),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActualDuration(&tt.s, tt.end); got != tt.want {
				t.Errorf("ActualDuration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name    string
		actual  *int
		planned *int
		want    float64
	}{
		{"exact", ptr(1500), ptr(1500), 100},
		{"half", ptr(750), ptr(1500), 50},
		{"overrun capped", ptr(3000), ptr(1500), 100},
		{"no planned", ptr(1500), nil, 0},
		{"no actual", nil, ptr(1500), 0},
		{"zero planned", ptr(1500), ptr(0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ActualDuration: tt.actual, PlannedDuration: tt.planned}
			if got := CompletionPercentage(s); got != tt.want {
				t.Errorf("CompletionPercentage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectivenessScore(t *testing.T) {
	s := &Session{FocusQuality: ptr(4), ProductivityRating: ptr(5)}
	got, ok := EffectivenessScore(s)
	if !ok {
		t.Fatal("expected score to be present")
	}
	if got != 4.4 {
		t.Errorf("EffectivenessScore = %v, want 4.4", got)
	}

	if _, ok := EffectivenessScore(&Session{FocusQuality: ptr(4)}); ok {
		t.Error("expected no score when productivity rating is absent")
	}
}

func TestEfficiencyRatio(t *testing.T) {
	s := &Session{ActualDuration: ptr(750), PauseDuration: 250}
	got, ok := EfficiencyRatio(s)
	want := float64(500) / float64(750)
	if !ok || got != want {
		t.Errorf("EfficiencyRatio = %v, %v, want %v, true", got, ok, want)
	}

	s = &Session{ActualDuration: ptr(100), PauseDuration: 400}
	got, ok = EfficiencyRatio(s)
	if !ok || got != 0 {
		t.Errorf("EfficiencyRatio with pause exceeding duration = %v, %v, want 0, true", got, ok)
	}

	if _, ok := EfficiencyRatio(&Session{}); ok {
		t.Error("expected no ratio without an actual duration")
	}
}

func TestProductivityScore_Renormalizes(t *testing.T) {
	// Only satisfaction present: full weight collapses onto it.
	s := &Session{Satisfaction: ptr(4)}
	got, ok := ProductivityScore(s)
	if !ok || got != 4 {
		t.Errorf("ProductivityScore = %v, %v, want 4, true", got, ok)
	}

	// All four inputs at their maxima blend to 5.
	s = &Session{
		FocusQuality:      ptr(5),
		Satisfaction:      ptr(5),
		FlowStateAchieved: true,
		DistractionLevel:  DistractionMinimal,
	}
	got, ok = ProductivityScore(s)
	if !ok || got != 5 {
		t.Errorf("ProductivityScore = %v, %v, want 5, true", got, ok)
	}

	if _, ok := ProductivityScore(&Session{}); ok {
		t.Error("expected no score with no inputs")
	}
}

func TestKindVariant(t *testing.T) {
	if KindWork.Variant() != VariantInterval {
		t.Error("work should be an interval kind")
	}
	if KindDeepWork.Variant() != VariantFlexible {
		t.Error("deep_work should be a flexible kind")
	}
	if Kind("naps").Variant() != "" {
		t.Error("unknown kind should have no variant")
	}
	if KindShortBreak.Productive() {
		t.Error("short_break should not be productive")
	}
	if !KindLearning.Productive() {
		t.Error("learning should be productive")
	}
}

func TestCheckTransition(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusInProgress},
		{StatusInProgress, StatusPaused},
		{StatusPaused, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusPaused, StatusCompleted},
		{StatusInProgress, StatusAbandoned},
		{StatusPaused, StatusAbandoned},
	}
	for _, e := range legal {
		if err := CheckTransition("op", e.from, e.to); err != nil {
			t.Errorf("expected %s -> %s to be legal: %v", e.from, e.to, err)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusPaused},
		{StatusCompleted, StatusInProgress},
		{StatusAbandoned, StatusInProgress},
		{StatusCompleted, StatusAbandoned},
		{StatusPaused, StatusPaused},
	}
	for _, e := range illegal {
		err := CheckTransition("op", e.from, e.to)
		if err == nil {
			t.Errorf("expected %s -> %s to be rejected", e.from, e.to)
			continue
		}
		var ise *InvalidStateError
		if !errors.As(err, &ise) {
			t.Errorf("expected InvalidStateError, got %T", err)
		}
	}
}

func TestCheckFeedback_Ratings(t *testing.T) {
	if err := CheckFeedback(Feedback{FocusQuality: ptr(6)}); err == nil {
		t.Error("rating 6 should be rejected")
	}
	if err := CheckFeedback(Feedback{FocusQuality: ptr(0)}); err == nil {
		t.Error("rating 0 should be rejected")
	}
	if err := CheckFeedback(Feedback{FocusQuality: ptr(5), Satisfaction: ptr(1)}); err != nil {
		t.Errorf("in-range ratings should pass: %v", err)
	}
	if err := CheckFeedback(Feedback{}); err != nil {
		t.Errorf("empty feedback should pass: %v", err)
	}
	if err := CheckFeedback(Feedback{DistractionLevel: "cosmic"}); err == nil {
		t.Error("unknown distraction level should be rejected")
	}
}
