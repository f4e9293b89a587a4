package service

import (
	"context"
	"time"

	"github.com/kiririmode/rd-burndown/internal/dateutil"
	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/repository"
)

const defaultVelocityDays = 7

type timelineService struct {
	projects  repository.ProjectRepo
	snapshots repository.SnapshotRepo
	scopes    repository.ScopeChangeRepo
	states    repository.SyncStateRepo

	now func() time.Time
}

func NewTimelineService(projects repository.ProjectRepo, snapshots repository.SnapshotRepo, scopes repository.ScopeChangeRepo, states repository.SyncStateRepo) TimelineService {
	return &timelineService{
		projects:  projects,
		snapshots: snapshots,
		scopes:    scopes,
		states:    states,
		now:       time.Now,
	}
}

func (s *timelineService) GetSnapshots(ctx context.Context, projectID int, from, to time.Time) ([]*domain.DailySnapshot, error) {
	return s.snapshots.Range(ctx, projectID, from, to)
}

func (s *timelineService) GetScopeChanges(ctx context.Context, projectID int, from, to time.Time) ([]*domain.ScopeChangeEvent, error) {
	return s.scopes.Range(ctx, projectID, from, to)
}

func (s *timelineService) GetSyncState(ctx context.Context, projectID int) (*domain.SyncState, error) {
	return s.states.Get(ctx, projectID)
}

// Timeline assembles the snapshot series and scope events for a project.
// Nil bounds default to the stored series' own extent.
func (s *timelineService) Timeline(ctx context.Context, projectID int, from, to *time.Time) (*domain.Timeline, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	first, last, err := s.snapshots.Bounds(ctx, projectID)
	if err != nil {
		return nil, err
	}

	start, end := resolveRange(from, to, first, last)
	timeline := &domain.Timeline{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		StartDate:   project.BurndownStart(start),
		EndDate:     project.EndDate,
	}
	if first == nil {
		// No snapshots yet; an empty timeline is still useful for the
		// project header.
		return timeline, nil
	}

	timeline.Snapshots, err = s.snapshots.Range(ctx, projectID, start, end)
	if err != nil {
		return nil, err
	}
	timeline.ScopeChanges, err = s.scopes.Range(ctx, projectID, start, end)
	if err != nil {
		return nil, err
	}
	return timeline, nil
}

func (s *timelineService) Summary(ctx context.Context, projectID int) (*ProjectSummary, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	timeline, err := s.Timeline(ctx, projectID, nil, nil)
	if err != nil {
		return nil, err
	}

	summary := &ProjectSummary{Project: project, Timeline: timeline}
	current := timeline.Current()
	if current == nil {
		return summary, nil
	}

	summary.TotalTickets = current.TotalTickets()
	summary.CompletedTickets = current.CompletedCount
	summary.TotalHours = current.TotalHours
	summary.CompletedHours = current.CompletedHours
	summary.RemainingHours = current.RemainingHours
	summary.CompletionRate = current.CompletionRate() / 100
	summary.AverageBurnRate = timeline.BurnRate(defaultVelocityDays)
	summary.Forecast = timeline.Forecast(defaultVelocityDays)

	today := dateutil.DateOnly(s.now())
	summary.DaysElapsed = dateutil.DaysBetween(dateutil.DateOnly(timeline.StartDate), today)
	if project.EndDate != nil {
		remaining := dateutil.DaysBetween(today, dateutil.DateOnly(*project.EndDate))
		if remaining < 0 {
			remaining = 0
		}
		summary.DaysRemaining = &remaining
	}
	return summary, nil
}

func (s *timelineService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

// resolveRange picks explicit bounds when given, stored bounds otherwise.
func resolveRange(from, to, first, last *time.Time) (time.Time, time.Time) {
	var start, end time.Time
	switch {
	case from != nil:
		start = dateutil.DateOnly(*from)
	case first != nil:
		start = dateutil.DateOnly(*first)
	}
	switch {
	case to != nil:
		end = dateutil.DateOnly(*to)
	case last != nil:
		end = dateutil.DateOnly(*last)
	}
	return start, end
}
