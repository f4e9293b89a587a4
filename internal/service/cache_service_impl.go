package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kiririmode/rd-burndown/internal/db"
	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/repository"
)

type cacheService struct {
	projects  repository.ProjectRepo
	tickets   repository.TicketRepo
	journal   repository.JournalRepo
	snapshots repository.SnapshotRepo
	scopes    repository.ScopeChangeRepo
	states    repository.SyncStateRepo
	uow       db.UnitOfWork
	log       *slog.Logger

	now func() time.Time
}

func NewCacheService(projects repository.ProjectRepo, tickets repository.TicketRepo, journal repository.JournalRepo, snapshots repository.SnapshotRepo, scopes repository.ScopeChangeRepo, states repository.SyncStateRepo, uow db.UnitOfWork, log *slog.Logger) CacheService {
	return &cacheService{
		projects:  projects,
		tickets:   tickets,
		journal:   journal,
		snapshots: snapshots,
		scopes:    scopes,
		states:    states,
		uow:       uow,
		log:       log,
		now:       time.Now,
	}
}

func (s *cacheService) Status(ctx context.Context, projectID int, ttl time.Duration) (*CacheStatus, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	status := &CacheStatus{ProjectID: project.ID, ProjectName: project.Name}
	if status.Tickets, err = s.tickets.CountByProject(ctx, projectID); err != nil {
		return nil, err
	}
	if status.JournalSize, err = s.journal.CountByProject(ctx, projectID); err != nil {
		return nil, err
	}
	if status.Snapshots, err = s.snapshots.CountByProject(ctx, projectID); err != nil {
		return nil, err
	}
	if status.ScopeChanges, err = s.scopes.CountByProject(ctx, projectID); err != nil {
		return nil, err
	}

	state, err := s.states.Get(ctx, projectID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status.Stale = true
	case err != nil:
		return nil, err
	default:
		status.LastFetchAt = state.LastFetchAt
		status.Stale = state.Stale(ttl, s.now())
	}
	return status, nil
}

// Clear drops everything persisted for a project in one transaction.
func (s *cacheService) Clear(ctx context.Context, projectID int) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteScopeChangeRepo(tx).DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		if err := repository.NewSQLiteSnapshotRepo(tx).DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		if err := repository.NewSQLiteJournalRepo(tx).DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		if err := repository.NewSQLiteTicketRepo(tx).DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		if err := repository.NewSQLiteSyncStateRepo(tx).Delete(ctx, projectID); err != nil {
			return err
		}
		return repository.NewSQLiteProjectRepo(tx).Delete(ctx, projectID)
	})
	if err != nil {
		return err
	}
	s.log.Info("cache cleared", "project", projectID)
	return nil
}
