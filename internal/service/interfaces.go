package service

import (
	"context"
	"time"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

// TrackerClient is the boundary to the external issue tracker. The client
// owns pagination, deduplication, rate limiting and retry; the engine never
// retries these calls itself. A nil since means "everything".
type TrackerClient interface {
	FetchProject(ctx context.Context, projectID int) (*domain.Project, error)
	FetchTickets(ctx context.Context, projectID int, since *time.Time) ([]*domain.Ticket, error)
	FetchJournal(ctx context.Context, projectID int, since *time.Time) ([]*domain.JournalEntry, error)
}

// SyncReport is the outcome of one sync run: the updated watermark plus
// the window of dates whose snapshots were recomputed.
type SyncReport struct {
	State          *domain.SyncState
	Mode           domain.SyncMode
	TicketsFetched int
	EntriesMerged  int
	TicketsRemoved int

	// RecomputedFrom/To bound the rewritten snapshot window. Zero when
	// the sync merged nothing and left the series untouched.
	RecomputedFrom time.Time
	RecomputedTo   time.Time
}

// SyncService is the sole mutating entry point into the engine.
type SyncService interface {
	Run(ctx context.Context, projectID int, mode domain.SyncMode, since *time.Time) (*SyncReport, error)
}

// ProjectSummary aggregates a project's current standing for reporting.
type ProjectSummary struct {
	Project          *domain.Project
	Timeline         *domain.Timeline
	TotalTickets     int
	CompletedTickets int
	TotalHours       float64
	CompletedHours   float64
	RemainingHours   float64
	DaysElapsed      int
	DaysRemaining    *int

	// CompletionRate is a 0..1 ratio of completed tickets.
	CompletionRate  float64
	AverageBurnRate float64
	Forecast        domain.Forecast
}

// OnTrack reports whether the remaining work fits the remaining days at
// the measured burn rate.
func (s *ProjectSummary) OnTrack() bool {
	if s.DaysRemaining == nil || *s.DaysRemaining <= 0 {
		return s.RemainingHours <= 0
	}
	required := s.RemainingHours / float64(*s.DaysRemaining)
	return s.AverageBurnRate >= required
}

// ScheduleVariance returns the projected overrun in days, nil when no burn
// rate is measurable.
func (s *ProjectSummary) ScheduleVariance() *float64 {
	if s.AverageBurnRate <= 0 {
		return nil
	}
	projected := s.RemainingHours / s.AverageBurnRate
	var remaining float64
	if s.DaysRemaining != nil {
		remaining = float64(*s.DaysRemaining)
	}
	v := projected - remaining
	return &v
}

// TimelineService exposes the derived series to reporting and export
// layers. Read-only.
type TimelineService interface {
	GetSnapshots(ctx context.Context, projectID int, from, to time.Time) ([]*domain.DailySnapshot, error)
	GetScopeChanges(ctx context.Context, projectID int, from, to time.Time) ([]*domain.ScopeChangeEvent, error)
	GetSyncState(ctx context.Context, projectID int) (*domain.SyncState, error)
	Timeline(ctx context.Context, projectID int, from, to *time.Time) (*domain.Timeline, error)
	Summary(ctx context.Context, projectID int) (*ProjectSummary, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
}

// CacheStatus describes what the store holds for one project.
type CacheStatus struct {
	ProjectID    int
	ProjectName  string
	Tickets      int
	JournalSize  int
	Snapshots    int
	ScopeChanges int
	LastFetchAt  time.Time
	Stale        bool
}

// CacheService manages the persisted cache lifecycle.
type CacheService interface {
	Status(ctx context.Context, projectID int, ttl time.Duration) (*CacheStatus, error)
	Clear(ctx context.Context, projectID int) error
}
