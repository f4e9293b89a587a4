package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kiririmode/rd-burndown/internal/db"
	"github.com/kiririmode/rd-burndown/internal/domain"
)

// SQLiteSyncStateRepo implements SyncStateRepo. One row per project.
type SQLiteSyncStateRepo struct {
	db db.DBTX
}

func NewSQLiteSyncStateRepo(conn db.DBTX) *SQLiteSyncStateRepo {
	return &SQLiteSyncStateRepo{db: conn}
}

func (r *SQLiteSyncStateRepo) Get(ctx context.Context, projectID int) (*domain.SyncState, error) {
	query := `SELECT project_id, last_fetch_at, last_seq, last_sync_id, updated_at
		FROM sync_state WHERE project_id = ?`
	var s domain.SyncState
	var lastFetchAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(
		&s.ProjectID, &lastFetchAt, &s.LastSeq, &s.LastSyncID, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sync state for project %d: %w", projectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading sync state: %w", err)
	}
	if s.LastFetchAt, err = time.Parse(time.RFC3339, lastFetchAt); err != nil {
		return nil, fmt.Errorf("parsing last_fetch_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSyncStateRepo) Upsert(ctx context.Context, s *domain.SyncState) error {
	query := `INSERT INTO sync_state (project_id, last_fetch_at, last_seq, last_sync_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			last_fetch_at = excluded.last_fetch_at,
			last_seq = excluded.last_seq,
			last_sync_id = excluded.last_sync_id,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ProjectID,
		s.LastFetchAt.UTC().Format(time.RFC3339),
		s.LastSeq,
		s.LastSyncID,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting sync state for project %d: %w", s.ProjectID, err)
	}
	return nil
}

func (r *SQLiteSyncStateRepo) Delete(ctx context.Context, projectID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sync_state WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting sync state: %w", err)
	}
	return nil
}
