package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiririmode/rd-burndown/internal/dateutil"
	"github.com/kiririmode/rd-burndown/internal/db"
	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/replay"
	"github.com/kiririmode/rd-burndown/internal/repository"
)

type syncService struct {
	tracker    TrackerClient
	states     repository.SyncStateRepo
	uow        db.UnitOfWork
	thresholds domain.ImpactThresholds
	log        *slog.Logger

	now func() time.Time
}

// NewSyncService wires the synchronizer. Fetching happens entirely before
// any write; the merge, replay, detect and watermark update run inside one
// transaction so a failed sync leaves the project's state untouched.
func NewSyncService(tracker TrackerClient, states repository.SyncStateRepo, uow db.UnitOfWork, thresholds domain.ImpactThresholds, log *slog.Logger) SyncService {
	return &syncService{
		tracker:    tracker,
		states:     states,
		uow:        uow,
		thresholds: thresholds,
		log:        log,
		now:        time.Now,
	}
}

func (s *syncService) Run(ctx context.Context, projectID int, mode domain.SyncMode, since *time.Time) (*SyncReport, error) {
	fetchedAt := s.now().UTC()
	today := dateutil.DateOnly(fetchedAt)

	cutoff, err := s.fetchCutoff(ctx, projectID, mode, since)
	if err != nil {
		return nil, err
	}

	// Fetch phase: everything is buffered before the first write, so a
	// partial page failure aborts here with no state change.
	project, err := s.tracker.FetchProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching project %d: %v", domain.ErrFetchFailure, projectID, err)
	}
	tickets, err := s.tracker.FetchTickets(ctx, projectID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching tickets for project %d: %v", domain.ErrFetchFailure, projectID, err)
	}
	entries, err := s.tracker.FetchJournal(ctx, projectID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching journal for project %d: %v", domain.ErrFetchFailure, projectID, err)
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInconsistentHistory, err)
		}
	}

	s.log.Info("sync fetch complete",
		"project", projectID,
		"mode", string(mode),
		"tickets", len(tickets),
		"journal_entries", len(entries))

	report := &SyncReport{Mode: mode, TicketsFetched: len(tickets)}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTickets := repository.NewSQLiteTicketRepo(tx)
		txJournal := repository.NewSQLiteJournalRepo(tx)
		txSnapshots := repository.NewSQLiteSnapshotRepo(tx)
		txScopes := repository.NewSQLiteScopeChangeRepo(tx)
		txStates := repository.NewSQLiteSyncStateRepo(tx)

		if err := txProjects.Upsert(ctx, project); err != nil {
			return err
		}

		// windowStart is the earliest date whose snapshot could have
		// changed; zero means nothing merged and nothing to recompute.
		var windowStart time.Time
		observe := func(day time.Time) {
			if windowStart.IsZero() || day.Before(windowStart) {
				windowStart = day
			}
		}

		if mode == domain.SyncFull {
			// Derived data is discarded wholesale; tickets survive so
			// that ones missing from the tracker can be recorded as
			// removed rather than silently forgotten.
			if err := txJournal.DeleteByProject(ctx, projectID); err != nil {
				return err
			}
			if err := txSnapshots.DeleteByProject(ctx, projectID); err != nil {
				return err
			}
			if err := txScopes.DeleteByProject(ctx, projectID); err != nil {
				return err
			}
		}

		for _, t := range tickets {
			if mode == domain.SyncIncremental {
				if _, err := txTickets.GetByID(ctx, projectID, t.ID); errors.Is(err, domain.ErrNotFound) {
					observe(dateutil.DateOnly(t.CreatedOn))
				} else if err != nil {
					return err
				}
			}
			if err := txTickets.Upsert(ctx, t); err != nil {
				return err
			}
		}

		if mode == domain.SyncFull {
			keep := make([]int, 0, len(tickets))
			for _, t := range tickets {
				keep = append(keep, t.ID)
			}
			removed, err := txTickets.MarkDeletedExcept(ctx, projectID, keep, fetchedAt)
			if err != nil {
				return err
			}
			report.TicketsRemoved = removed
		}

		for _, e := range entries {
			inserted, err := txJournal.Merge(ctx, e)
			if err != nil {
				return err
			}
			if inserted {
				report.EntriesMerged++
				observe(dateutil.DateOnly(e.OccurredAt))
			}
		}

		if mode == domain.SyncFull {
			earliest, err := txTickets.EarliestCreation(ctx, projectID)
			if err != nil {
				return err
			}
			if earliest != nil {
				windowStart = dateutil.DateOnly(project.BurndownStart(*earliest))
			}
		}

		if !windowStart.IsZero() {
			if err := s.recompute(ctx, tx, projectID, windowStart, today); err != nil {
				return err
			}
			report.RecomputedFrom = windowStart
			report.RecomputedTo = today
		}

		maxSeq, err := txJournal.MaxSeq(ctx, projectID)
		if err != nil {
			return err
		}

		state := &domain.SyncState{
			ProjectID:   projectID,
			LastFetchAt: fetchedAt,
			LastSeq:     maxSeq,
			LastSyncID:  uuid.New().String(),
		}
		if err := txStates.Upsert(ctx, state); err != nil {
			return err
		}
		report.State = state
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sync committed",
		"project", projectID,
		"merged", report.EntriesMerged,
		"removed", report.TicketsRemoved,
		"window_from", formatDay(report.RecomputedFrom),
		"window_to", formatDay(report.RecomputedTo),
		"sync_id", report.State.LastSyncID)
	return report, nil
}

// recompute replays the affected trailing window and rewrites its
// snapshots and scope events. Work is proportional to the window's day
// count, never to the project's total history.
func (s *syncService) recompute(ctx context.Context, tx db.DBTX, projectID int, from, to time.Time) error {
	txTickets := repository.NewSQLiteTicketRepo(tx)
	txJournal := repository.NewSQLiteJournalRepo(tx)
	txSnapshots := repository.NewSQLiteSnapshotRepo(tx)
	txScopes := repository.NewSQLiteScopeChangeRepo(tx)

	allTickets, err := txTickets.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	allEntries, err := txJournal.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}

	snapshots, err := replay.Replay(projectID, allTickets, allEntries, from, to)
	if err != nil {
		return err
	}
	events, err := replay.Detect(projectID, allTickets, allEntries, from, to, s.thresholds)
	if err != nil {
		return err
	}

	for _, snap := range snapshots {
		if err := txSnapshots.Upsert(ctx, snap); err != nil {
			return err
		}
	}
	if err := txScopes.DeleteRange(ctx, projectID, from, to); err != nil {
		return err
	}
	for _, e := range events {
		if err := txScopes.Insert(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// fetchCutoff resolves the "since" watermark for the fetch phase.
func (s *syncService) fetchCutoff(ctx context.Context, projectID int, mode domain.SyncMode, since *time.Time) (*time.Time, error) {
	if mode == domain.SyncFull {
		return nil, nil
	}
	if since != nil {
		return since, nil
	}
	state, err := s.states.Get(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		// First sync of this project: fetch everything.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := state.LastFetchAt
	return &t, nil
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateutil.Layout)
}
