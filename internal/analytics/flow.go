package analytics

import (
	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// Duration bands for flow trigger mining.
const (
	BandShort  = "short"  // under one hour
	BandMedium = "medium" // one to two hours
	BandLong   = "long"   // over two hours
)

// FlowAnalysis reports which conditions most often coincide with achieving
// flow state. The Best* fields are the modal value of each dimension; ties
// go to the value encountered first.
type FlowAnalysis struct {
	FlowSessions       int     `json:"flow_sessions"`
	TotalFlowMinutes   float64 `json:"total_flow_minutes"`
	AverageFlowMinutes float64 `json:"average_flow_minutes"`

	BestKind         session.Kind `json:"best_kind,omitempty"`
	BestLocation     string       `json:"best_location,omitempty"`
	BestDurationBand string       `json:"best_duration_band,omitempty"`

	KindBreakdown     map[session.Kind]int `json:"kind_breakdown,omitempty"`
	LocationBreakdown map[string]int       `json:"location_breakdown,omitempty"`
	DurationBreakdown map[string]int       `json:"duration_breakdown,omitempty"`
}

// Flow mines flow-state patterns over the last days days.
func (e *Engine) Flow(userID int64, days int) (FlowAnalysis, error) {
	from, to := e.window(days)
	sessions, err := e.src.SessionsInRange(userID, from, to, store.Filter{})
	if err != nil {
		return FlowAnalysis{}, err
	}
	return ComputeFlow(sessions), nil
}

// ComputeFlow mines an already-loaded session slice for flow triggers.
// Only sessions that achieved flow state contribute.
func ComputeFlow(sessions []session.Session) FlowAnalysis {
	var fa FlowAnalysis

	kinds := newCounter[session.Kind]()
	locations := newCounter[string]()
	bands := newCounter[string]()

	totalFlowSeconds := 0
	for i := range sessions {
		s := &sessions[i]
		if !s.FlowStateAchieved {
			continue
		}
		fa.FlowSessions++
		if s.FlowStateDuration != nil {
			totalFlowSeconds += *s.FlowStateDuration
		}

		kinds.add(s.Kind)
		if s.Location != "" {
			locations.add(s.Location)
		}
		if d := durationOf(s); d > 0 {
			bands.add(durationBand(d))
		}
	}

	if fa.FlowSessions == 0 {
		return fa
	}

	fa.TotalFlowMinutes = minutes(totalFlowSeconds)
	fa.AverageFlowMinutes = fa.TotalFlowMinutes / float64(fa.FlowSessions)
	fa.BestKind, _ = kinds.mode()
	fa.BestLocation, _ = locations.mode()
	fa.BestDurationBand, _ = bands.mode()
	fa.KindBreakdown = kinds.counts
	fa.LocationBreakdown = locations.counts
	fa.DurationBreakdown = bands.counts
	return fa
}

func durationBand(seconds int) string {
	switch {
	case seconds < 3600:
		return BandShort
	case seconds < 7200:
		return BandMedium
	default:
		return BandLong
	}
}

// counter tallies values while remembering first-encountered order so that
// mode() breaks ties deterministically.
type counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(k K) {
	if _, seen := c.counts[k]; !seen {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

// mode returns the most frequent value; on a tie, the one seen first.
func (c *counter[K]) mode() (K, bool) {
	var best K
	bestCount := 0
	for _, k := range c.order {
		if c.counts[k] > bestCount {
			best = k
			bestCount = c.counts[k]
		}
	}
	return best, bestCount > 0
}
