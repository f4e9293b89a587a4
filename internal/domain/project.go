package domain

import "time"

// Project mirrors the tracker-side project record. StartDate and EndDate
// bound the burndown window; either may be unset.
type Project struct {
	ID          int
	Name        string
	Identifier  string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedOn   time.Time
	UpdatedOn   time.Time
}

// BurndownStart returns the date the snapshot series should begin:
// the project start date when set, otherwise the fallback (typically the
// earliest ticket creation date).
func (p *Project) BurndownStart(fallback time.Time) time.Time {
	if p.StartDate != nil {
		return *p.StartDate
	}
	return fallback
}
