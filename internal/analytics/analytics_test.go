package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// fakeSource serves a fixed slice, honoring the status filter the way the
// real store does.
type fakeSource struct {
	sessions []session.Session
}

func (f *fakeSource) SessionsInRange(userID int64, from, to time.Time, fl store.Filter) ([]session.Session, error) {
	var out []session.Session
	for _, s := range f.sessions {
		if s.StartTime.Before(from) || !s.StartTime.Before(to) {
			continue
		}
		if fl.Status != "" && s.Status != fl.Status {
			continue
		}
		if fl.Kind != "" && s.Kind != fl.Kind {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakePrefs struct{}

func (fakePrefs) PreferencesFor(userID int64, defaults store.Preferences) (store.Preferences, error) {
	return defaults, nil
}

func testEngine(src SessionSource, now time.Time) *Engine {
	e := NewEngine(src, fakePrefs{}, store.DefaultPreferences)
	e.now = func() time.Time { return now }
	return e
}

func intp(v int) *int { return &v }

func completed(kind session.Kind, start time.Time, seconds int) session.Session {
	end := start.Add(time.Duration(seconds) * time.Second)
	return session.Session{
		UserID:         1,
		Variant:        kind.Variant(),
		Kind:           kind,
		Status:         session.StatusCompleted,
		StartTime:      start,
		EndTime:        &end,
		CompletedAt:    &end,
		ActualDuration: intp(seconds),
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	sum := ComputeSummary(nil, time.Time{}, time.Time{})
	require.Zero(t, sum.TotalSessions)
	require.Zero(t, sum.CompletionRate)
	require.Nil(t, sum.AverageSessionMinutes)
	require.Nil(t, sum.AverageFocusQuality)
}

func TestComputeSummary(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	s1 := completed(session.KindWork, base, 1500)
	s1.FocusQuality = intp(4)
	s1.FlowStateAchieved = true
	s2 := completed(session.KindWork, base.Add(time.Hour), 1500)
	s3 := completed(session.KindDeepWork, base.Add(2*time.Hour), 3600)
	s3.FocusQuality = intp(5)
	abandoned := session.Session{
		Kind:      session.KindWork,
		Status:    session.StatusAbandoned,
		StartTime: base.Add(3 * time.Hour),
	}

	sum := ComputeSummary([]session.Session{s1, s2, s3, abandoned}, base, base.Add(4*time.Hour))

	require.Equal(t, 4, sum.TotalSessions)
	require.Equal(t, 3, sum.CompletedSessions)
	require.Equal(t, 1, sum.AbandonedSessions)
	require.Equal(t, 3, sum.ByKind[session.KindWork])
	require.InDelta(t, 75.0, sum.CompletionRate, 0.001)
	require.InDelta(t, 110.0, sum.FocusMinutes, 0.001)
	require.InDelta(t, 60.0, sum.LongestSessionMinutes, 0.001)
	require.NotNil(t, sum.AverageSessionMinutes)
	require.InDelta(t, 110.0/3, *sum.AverageSessionMinutes, 0.001)
	require.Equal(t, 1, sum.FlowSessions)
	require.InDelta(t, 100.0/3, sum.FlowRate, 0.001)

	// The unrated session stays out of the quality denominator.
	require.NotNil(t, sum.AverageFocusQuality)
	require.InDelta(t, 4.5, *sum.AverageFocusQuality, 0.001)
	require.Nil(t, sum.AverageSatisfaction)
}

func TestComputePatterns(t *testing.T) {
	monday9 := time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC)
	wednesday14 := time.Date(2025, 6, 4, 14, 30, 0, 0, time.UTC)

	a := completed(session.KindWork, monday9, 1500)
	a.FocusQuality = intp(3)
	b := completed(session.KindWork, monday9.Add(30*time.Minute), 1500)
	b.FocusQuality = intp(4)
	c := completed(session.KindDeepWork, wednesday14, 3600)
	c.FocusQuality = intp(5)
	brk := completed(session.KindShortBreak, monday9, 300)

	p := ComputePatterns([]session.Session{a, b, c, brk})

	require.Equal(t, 2, p.Hourly[9].Sessions)
	require.InDelta(t, 3.5, *p.Hourly[9].AverageQuality, 0.001)
	require.Equal(t, 1, p.Hourly[14].Sessions)

	require.NotNil(t, p.BestHour)
	require.Equal(t, 14, *p.BestHour)

	// Monday maps to 0, Wednesday to 2.
	require.Equal(t, 2, p.Weekday[0].Sessions)
	require.Equal(t, 1, p.Weekday[2].Sessions)
	require.NotNil(t, p.BestWeekday)
	require.Equal(t, 2, *p.BestWeekday)
}

func TestComputeFlow(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	d1 := completed(session.KindDeepWork, base, 5400)
	d1.FlowStateAchieved = true
	d1.FlowStateDuration = intp(1800)
	d1.Location = "home"
	d2 := completed(session.KindDeepWork, base.Add(3*time.Hour), 5400)
	d2.FlowStateAchieved = true
	d2.FlowStateDuration = intp(1800)
	d2.Location = "home"
	c1 := completed(session.KindCreative, base.Add(6*time.Hour), 9000)
	c1.FlowStateAchieved = true
	c1.Location = "office"
	noFlow := completed(session.KindDeepWork, base.Add(9*time.Hour), 3600)

	fa := ComputeFlow([]session.Session{d1, d2, c1, noFlow})

	require.Equal(t, 3, fa.FlowSessions)
	require.InDelta(t, 60.0, fa.TotalFlowMinutes, 0.001)
	require.InDelta(t, 20.0, fa.AverageFlowMinutes, 0.001)
	require.Equal(t, session.KindDeepWork, fa.BestKind)
	require.Equal(t, "home", fa.BestLocation)
	require.Equal(t, BandMedium, fa.BestDurationBand)
	require.Equal(t, 2, fa.KindBreakdown[session.KindDeepWork])
	require.Equal(t, 1, fa.DurationBreakdown[BandLong])
}

func TestComputeFlowNone(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	fa := ComputeFlow([]session.Session{completed(session.KindWork, base, 1500)})
	require.Zero(t, fa.FlowSessions)
	require.Empty(t, fa.BestKind)
	require.Nil(t, fa.KindBreakdown)
}

func TestComputeModes(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	d1 := completed(session.KindDeepWork, base, 5400)
	d1.FlowStateAchieved = true
	d1.Satisfaction = intp(5)
	d2 := completed(session.KindDeepWork, base.Add(3*time.Hour), 3600)
	l1 := completed(session.KindLearning, base.Add(6*time.Hour), 3600)

	modes := ComputeModes([]session.Session{d1, d2, l1})

	dw := modes[session.KindDeepWork]
	require.Equal(t, 2, dw.Sessions)
	require.InDelta(t, 150.0, dw.TotalMinutes, 0.001)
	require.InDelta(t, 75.0, dw.AverageMinutes, 0.001)
	require.InDelta(t, 50.0, dw.FlowRate, 0.001)
	require.InDelta(t, 5.0, *dw.AverageSatisfaction, 0.001)

	require.Equal(t, 1, modes[session.KindLearning].Sessions)
	require.NotContains(t, modes, session.KindWork)
}

func TestComputeStreak(t *testing.T) {
	today := time.Date(2025, 6, 5, 18, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return today.AddDate(0, 0, offset).Add(-8 * time.Hour)
	}

	sessions := []session.Session{
		completed(session.KindWork, day(0), 1500),
		completed(session.KindWork, day(-1), 1500),
		// Gap two days back.
		completed(session.KindWork, day(-3), 1500),
	}
	require.Equal(t, 2, ComputeStreak(sessions, today))
	require.Equal(t, 0, ComputeStreak(nil, today))
}

func TestRecommendDefaults(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	e := testEngine(&fakeSource{}, now)

	rec, err := e.Recommend(1)
	require.NoError(t, err)
	require.Equal(t, session.KindDeepWork, rec.Kind)
	require.Equal(t, 90, rec.DurationMinutes)
}

func TestRecommendFlowOverride(t *testing.T) {
	now := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	base := now.AddDate(0, 0, -5)

	var sessions []session.Session
	for i := 0; i < 5; i++ {
		s := completed(session.KindCreative, base.Add(time.Duration(i)*24*time.Hour), 9000)
		if i < 3 {
			s.FlowStateAchieved = true
		}
		s.Location = "studio"
		sessions = append(sessions, s)
	}
	e := testEngine(&fakeSource{sessions: sessions}, now)

	rec, err := e.Recommend(1)
	require.NoError(t, err)
	require.Equal(t, session.KindCreative, rec.Kind)
	// Average runs are 150 minutes, so the suggestion caps at two hours.
	require.Equal(t, 120, rec.DurationMinutes)
	require.Contains(t, rec.Tips, "Consider working from: studio")
	require.Contains(t, rec.Tips, "Morning sessions are often most productive")
}

func TestNextInterval(t *testing.T) {
	now := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)

	work := func(hoursAgo int) session.Session {
		return completed(session.KindWork, now.Add(-time.Duration(hoursAgo)*time.Hour), 1500)
	}
	shortBreak := completed(session.KindShortBreak, now.Add(-30*time.Minute), 300)

	tests := []struct {
		name     string
		sessions []session.Session
		want     session.Kind
		minutes  int
	}{
		// Slices are newest first, matching range-query order.
		{"fresh day", nil, session.KindWork, 25},
		{"after break", []session.Session{shortBreak, work(2)}, session.KindWork, 25},
		{"after one work", []session.Session{work(1)}, session.KindShortBreak, 5},
		{"after fourth work", []session.Session{work(1), work(2), work(3), work(4)}, session.KindLongBreak, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEngine(&fakeSource{sessions: tt.sessions}, now)
			rec, err := e.NextInterval(1)
			require.NoError(t, err)
			require.Equal(t, tt.want, rec.Kind)
			require.Equal(t, tt.minutes, rec.DurationMinutes)
		})
	}
}
