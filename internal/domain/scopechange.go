package domain

import "time"

// ImpactThresholds define the scope-change classification bands as ratios
// of a day's total effort. Defaults are a policy choice, not a constant;
// they are exposed through configuration.
type ImpactThresholds struct {
	High   float64
	Medium float64
}

// DefaultImpactThresholds classifies a change as high impact above 10% of
// total effort and medium above 3%.
var DefaultImpactThresholds = ImpactThresholds{High: 0.10, Medium: 0.03}

// Classify returns the impact level of an hours delta relative to the
// project's total effort on that day. Deterministic given the thresholds.
func (t ImpactThresholds) Classify(hoursDelta, totalHours float64) ImpactLevel {
	if totalHours <= 0 {
		// No baseline to compare against; any change dominates.
		if hoursDelta != 0 {
			return ImpactHigh
		}
		return ImpactLow
	}
	ratio := hoursDelta / totalHours
	if ratio < 0 {
		ratio = -ratio
	}
	switch {
	case ratio > t.High:
		return ImpactHigh
	case ratio > t.Medium:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// ScopeChangeEvent records one ticket-level effort change: a ticket added
// to, revised within, or removed from the project's scope. Events are
// derived from snapshots and regenerated on every recompute, never
// hand-edited.
type ScopeChangeEvent struct {
	ProjectID     int
	Date          time.Time
	TicketID      int
	TicketSubject string
	Kind          ChangeKind
	HoursDelta    float64
	OldHours      *float64
	NewHours      *float64
	Impact        ImpactLevel
}

// IsIncrease reports whether the event grew the project's scope.
func (e *ScopeChangeEvent) IsIncrease() bool { return e.HoursDelta > 0 }

// IsDecrease reports whether the event shrank the project's scope.
func (e *ScopeChangeEvent) IsDecrease() bool { return e.HoursDelta < 0 }
