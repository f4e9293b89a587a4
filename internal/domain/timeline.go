package domain

import (
	"time"

	"github.com/kiririmode/rd-burndown/internal/dateutil"
)

// Point is one (date, hours) coordinate on a burndown line.
type Point struct {
	Date  time.Time
	Hours float64
}

// Timeline bundles a project's snapshot series and scope events for the
// reporting layers. Snapshots are ordered by date.
type Timeline struct {
	ProjectID    int
	ProjectName  string
	StartDate    time.Time
	EndDate      *time.Time
	Snapshots    []*DailySnapshot
	ScopeChanges []*ScopeChangeEvent
}

// ActualLine returns the remaining-hours series.
func (t *Timeline) ActualLine() []Point {
	points := make([]Point, 0, len(t.Snapshots))
	for _, s := range t.Snapshots {
		points = append(points, Point{Date: s.Date, Hours: s.RemainingHours})
	}
	return points
}

// ScopeTrendLine returns the total-hours series.
func (t *Timeline) ScopeTrendLine() []Point {
	points := make([]Point, 0, len(t.Snapshots))
	for _, s := range t.Snapshots {
		points = append(points, Point{Date: s.Date, Hours: s.TotalHours})
	}
	return points
}

// IdealLine returns the linear decline from the initial total to zero at
// the project end date. With excludeWeekends, hours only burn down on
// weekdays. Empty when the timeline has no snapshots or no end date.
func (t *Timeline) IdealLine(excludeWeekends bool) []Point {
	if len(t.Snapshots) == 0 || t.EndDate == nil {
		return nil
	}
	start := dateutil.DateOnly(t.StartDate)
	end := dateutil.DateOnly(*t.EndDate)
	startHours := t.Snapshots[0].TotalHours

	var totalDays int
	if excludeWeekends {
		totalDays = dateutil.BusinessDaysBetween(start, end)
	} else {
		totalDays = dateutil.DaysBetween(start, end)
	}
	if totalDays <= 0 {
		return []Point{{Date: start, Hours: startHours}, {Date: end, Hours: 0}}
	}

	dailyBurn := startHours / float64(totalDays)
	var points []Point
	hours := startHours
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		points = append(points, Point{Date: day, Hours: max(0, hours)})
		next := day.AddDate(0, 0, 1)
		if !excludeWeekends || dateutil.IsWeekday(next) {
			hours -= dailyBurn
		}
	}
	return points
}

// DynamicIdealLine returns the remaining-hours trajectory that accounts for
// scope changes: each day's point is the then-current total minus completed
// hours, so scope growth shifts the line upward instead of distorting the
// apparent burn.
func (t *Timeline) DynamicIdealLine() []Point {
	if len(t.Snapshots) == 0 || t.EndDate == nil {
		return nil
	}
	end := dateutil.DateOnly(*t.EndDate)
	points := make([]Point, 0, len(t.Snapshots))
	for _, s := range t.Snapshots {
		if !s.Date.Before(end) {
			points = append(points, Point{Date: s.Date, Hours: 0})
			continue
		}
		points = append(points, Point{Date: s.Date, Hours: max(0, s.RemainingHours)})
	}
	return points
}

// SnapshotOn returns the snapshot for the given day, or nil.
func (t *Timeline) SnapshotOn(day time.Time) *DailySnapshot {
	day = dateutil.DateOnly(day)
	for _, s := range t.Snapshots {
		if s.Date.Equal(day) {
			return s
		}
	}
	return nil
}

// Current returns the latest snapshot, or nil for an empty timeline.
func (t *Timeline) Current() *DailySnapshot {
	if len(t.Snapshots) == 0 {
		return nil
	}
	return t.Snapshots[len(t.Snapshots)-1]
}

// TotalScopeChange sums every scope event's hours delta.
func (t *Timeline) TotalScopeChange() float64 {
	var total float64
	for _, c := range t.ScopeChanges {
		total += c.HoursDelta
	}
	return total
}

// BurnRate returns the average hours burned per day over the trailing
// window of up to the given number of snapshots.
func (t *Timeline) BurnRate(days int) float64 {
	recent := t.tail(days)
	if len(recent) < 2 {
		return 0
	}
	burned := recent[0].RemainingHours - recent[len(recent)-1].RemainingHours
	return burned / float64(len(recent)-1)
}

// Velocity summarizes completion throughput over a trailing window.
type Velocity struct {
	PerDay           float64
	TicketsCompleted int
	HoursCompleted   float64
	PeriodDays       int
}

// Velocity computes completed hours and tickets per day over the trailing
// window of up to the given number of snapshots.
func (t *Timeline) Velocity(days int) Velocity {
	recent := t.tail(days)
	if len(recent) < 2 {
		return Velocity{}
	}
	first, last := recent[0], recent[len(recent)-1]
	periodDays := len(recent) - 1
	hours := last.CompletedHours - first.CompletedHours
	return Velocity{
		PerDay:           hours / float64(periodDays),
		TicketsCompleted: last.CompletedCount - first.CompletedCount,
		HoursCompleted:   hours,
		PeriodDays:       periodDays,
	}
}

// Forecast projects when the remaining work completes at current velocity.
type Forecast struct {
	Date           *time.Time
	DaysRemaining  *int
	Confidence     string
	Velocity       float64
	RemainingHours float64
}

// Forecast estimates a completion date from the trailing velocity window.
// Confidence is low when no forward progress is measurable.
func (t *Timeline) Forecast(velocityDays int) Forecast {
	current := t.Current()
	if current == nil {
		return Forecast{Confidence: "low"}
	}
	remaining := current.RemainingHours
	if remaining <= 0 {
		zero := 0
		d := current.Date
		return Forecast{Date: &d, DaysRemaining: &zero, Confidence: "high"}
	}

	v := t.Velocity(velocityDays)
	if v.PerDay <= 0 {
		return Forecast{Confidence: "low", RemainingHours: remaining}
	}

	daysNeeded := int(remaining / v.PerDay)
	forecastDate := current.Date.AddDate(0, 0, daysNeeded)

	confidence := "medium"
	if t.BurnRate(velocityDays) > 0 {
		confidence = "high"
	}
	return Forecast{
		Date:           &forecastDate,
		DaysRemaining:  &daysNeeded,
		Confidence:     confidence,
		Velocity:       v.PerDay,
		RemainingHours: remaining,
	}
}

func (t *Timeline) tail(days int) []*DailySnapshot {
	if days <= 0 || len(t.Snapshots) <= days {
		return t.Snapshots
	}
	return t.Snapshots[len(t.Snapshots)-days:]
}
