package analytics

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// recommendWindowDays is the history window recommendations draw from.
const recommendWindowDays = 30

// flowRateOverride is the flow rate (percent) above which a kind displaces
// the default recommendation.
const flowRateOverride = 20.0

// Recommendation is a suggested next session with human-readable
// reasoning.
type Recommendation struct {
	Kind            session.Kind `json:"kind"`
	DurationMinutes int          `json:"duration_minutes"`
	Reasons         []string     `json:"reasons"`
	Tips            []string     `json:"tips,omitempty"`
}

// Recommend suggests the next flexible session based on the user's recent
// statistics, per-mode flow rates, and flow triggers. With no history it
// falls back to a 90-minute deep work session.
func (e *Engine) Recommend(userID int64) (Recommendation, error) {
	var (
		stats PeriodSummary
		modes map[session.Kind]ModeStats
		flow  FlowAnalysis
	)

	// The three reads are independent and repeatable-read safe; run them
	// concurrently.
	var g errgroup.Group
	g.Go(func() (err error) {
		stats, err = e.Summary(userID, recommendWindowDays)
		return err
	})
	g.Go(func() (err error) {
		modes, err = e.Modes(userID, recommendWindowDays)
		return err
	})
	g.Go(func() (err error) {
		flow, err = e.Flow(userID, recommendWindowDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return Recommendation{}, err
	}

	rec := Recommendation{
		Kind:            session.KindDeepWork,
		DurationMinutes: 90,
		Reasons:         []string{"Start with a focused deep work session"},
	}

	if flow.BestKind != "" && flow.BestKind.Variant() == session.VariantFlexible {
		rec.Kind = flow.BestKind
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("You achieve flow most often in %s sessions", flow.BestKind))
	}

	if kind, ms, ok := bestFlowMode(modes); ok && ms.FlowRate > flowRateOverride {
		rec.Kind = kind
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("High flow rate (%.1f%%) in %s sessions", ms.FlowRate, kind))
	}

	if stats.AverageSessionMinutes != nil {
		switch avg := *stats.AverageSessionMinutes; {
		case avg > 120:
			rec.DurationMinutes = 120
			rec.Tips = append(rec.Tips, "You handle long sessions well")
		case avg < 60:
			rec.DurationMinutes = 60
			rec.Tips = append(rec.Tips, "Start with shorter sessions and build up")
		}
	}

	if flow.BestLocation != "" {
		rec.Tips = append(rec.Tips, "Consider working from: "+flow.BestLocation)
	}
	rec.Tips = append(rec.Tips, timeOfDayTips(e.now())...)

	return rec, nil
}

// NextInterval suggests the next interval session: work alternates with
// breaks, and every Nth work session (per the user's cadence) earns a long
// break.
func (e *Engine) NextInterval(userID int64) (Recommendation, error) {
	prefs, err := e.prefs.PreferencesFor(userID, e.defaults)
	if err != nil {
		return Recommendation{}, err
	}

	from, to := dayBounds(e.now())
	today, err := e.src.SessionsInRange(userID, from, to, store.Filter{Status: session.StatusCompleted})
	if err != nil {
		return Recommendation{}, err
	}

	workToday := 0
	var last *session.Session
	for i := range today {
		s := &today[i]
		if s.Variant != session.VariantInterval {
			continue
		}
		if s.Kind == session.KindWork {
			workToday++
		}
		// Ranges come back newest first.
		if last == nil {
			last = s
		}
	}

	if last == nil || last.Kind != session.KindWork {
		return Recommendation{
			Kind:            session.KindWork,
			DurationMinutes: prefs.WorkDuration / 60,
			Reasons:         []string{"Time to focus"},
		}, nil
	}

	cadence := prefs.SessionsUntilLongBreak
	if cadence > 0 && workToday%cadence == 0 {
		return Recommendation{
			Kind:            session.KindLongBreak,
			DurationMinutes: prefs.LongBreakDuration / 60,
			Reasons: []string{fmt.Sprintf(
				"You completed %d work sessions; take a longer break", workToday)},
		}, nil
	}
	return Recommendation{
		Kind:            session.KindShortBreak,
		DurationMinutes: prefs.ShortBreakDuration / 60,
		Reasons:         []string{"Take a short break before the next work session"},
	}, nil
}

// bestFlowMode returns the flexible kind with the highest flow rate.
func bestFlowMode(modes map[session.Kind]ModeStats) (session.Kind, ModeStats, bool) {
	var bestKind session.Kind
	var best ModeStats
	found := false
	for kind, ms := range modes {
		if kind.Variant() != session.VariantFlexible {
			continue
		}
		if !found || ms.FlowRate > best.FlowRate {
			bestKind = kind
			best = ms
			found = true
		}
	}
	return bestKind, best, found
}

// timeOfDayTips bands the current hour into the well-known productive
// windows.
func timeOfDayTips(now time.Time) []string {
	switch hour := now.Hour(); {
	case hour >= 9 && hour <= 11:
		return []string{"Morning sessions are often most productive"}
	case hour >= 14 && hour <= 16:
		return []string{"Post-lunch sessions can be very effective"}
	}
	return nil
}
