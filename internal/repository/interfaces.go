package repository

import (
	"context"
	"time"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

// All writes are upsert-by-key and therefore idempotent; the uniqueness
// invariants live in the schema, so a duplicate merge is a no-op no matter
// what the caller does.

type ProjectRepo interface {
	Upsert(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id int) error
}

type TicketRepo interface {
	Upsert(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, projectID, id int) (*domain.Ticket, error)
	ListByProject(ctx context.Context, projectID int) ([]*domain.Ticket, error)
	// EarliestCreation returns the oldest ticket creation time for the
	// project, used as the replay start when the project has no start date.
	EarliestCreation(ctx context.Context, projectID int) (*time.Time, error)
	// MarkDeletedExcept stamps DeletedOn on every live ticket not in keep,
	// returning how many were marked. Used by full resync to record
	// tickets that vanished from the tracker.
	MarkDeletedExcept(ctx context.Context, projectID int, keep []int, deletedOn time.Time) (int, error)
	CountByProject(ctx context.Context, projectID int) (int, error)
	DeleteByProject(ctx context.Context, projectID int) error
}

type JournalRepo interface {
	// Merge inserts the entry unless its composite key already exists.
	// Reports whether a row was actually written.
	Merge(ctx context.Context, e *domain.JournalEntry) (bool, error)
	ListByProject(ctx context.Context, projectID int) ([]*domain.JournalEntry, error)
	MaxSeq(ctx context.Context, projectID int) (int64, error)
	CountByProject(ctx context.Context, projectID int) (int, error)
	DeleteByProject(ctx context.Context, projectID int) error
}

type SnapshotRepo interface {
	Upsert(ctx context.Context, s *domain.DailySnapshot) error
	// Range returns snapshots ordered by date for [from, to] inclusive.
	Range(ctx context.Context, projectID int, from, to time.Time) ([]*domain.DailySnapshot, error)
	Bounds(ctx context.Context, projectID int) (first, last *time.Time, err error)
	CountByProject(ctx context.Context, projectID int) (int, error)
	DeleteByProject(ctx context.Context, projectID int) error
}

type ScopeChangeRepo interface {
	Insert(ctx context.Context, e *domain.ScopeChangeEvent) error
	Range(ctx context.Context, projectID int, from, to time.Time) ([]*domain.ScopeChangeEvent, error)
	CountByProject(ctx context.Context, projectID int) (int, error)
	// DeleteRange clears [from, to] before a recomputed window is written
	// back, so stale events never survive a rewrite.
	DeleteRange(ctx context.Context, projectID int, from, to time.Time) error
	DeleteByProject(ctx context.Context, projectID int) error
}

type SyncStateRepo interface {
	Get(ctx context.Context, projectID int) (*domain.SyncState, error)
	Upsert(ctx context.Context, s *domain.SyncState) error
	Delete(ctx context.Context, projectID int) error
}
