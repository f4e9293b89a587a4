package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kiririmode/rd-burndown/internal/db"
	"github.com/kiririmode/rd-burndown/internal/dateutil"
	"github.com/kiririmode/rd-burndown/internal/domain"
)

const snapshotColumns = `project_id, date, total_hours, completed_hours, remaining_hours,
		added_hours, changed_hours, removed_hours,
		active_count, completed_count, unestimated_count`

// SQLiteSnapshotRepo implements SnapshotRepo on a SQLite connection or
// transaction.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

func (r *SQLiteSnapshotRepo) Upsert(ctx context.Context, s *domain.DailySnapshot) error {
	query := `INSERT INTO daily_snapshots (project_id, date, total_hours, completed_hours,
			remaining_hours, added_hours, changed_hours, removed_hours,
			active_count, completed_count, unestimated_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, date) DO UPDATE SET
			total_hours = excluded.total_hours,
			completed_hours = excluded.completed_hours,
			remaining_hours = excluded.remaining_hours,
			added_hours = excluded.added_hours,
			changed_hours = excluded.changed_hours,
			removed_hours = excluded.removed_hours,
			active_count = excluded.active_count,
			completed_count = excluded.completed_count,
			unestimated_count = excluded.unestimated_count,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ProjectID,
		s.Date.UTC().Format(dateutil.Layout),
		s.TotalHours,
		s.CompletedHours,
		s.RemainingHours,
		s.AddedHours,
		s.ChangedHours,
		s.RemovedHours,
		s.ActiveCount,
		s.CompletedCount,
		s.UnestimatedCount,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting snapshot %s: %w", s.Date.Format(dateutil.Layout), err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Range(ctx context.Context, projectID int, from, to time.Time) ([]*domain.DailySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM daily_snapshots
		WHERE project_id = ? AND date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, projectID,
		from.UTC().Format(dateutil.Layout), to.UTC().Format(dateutil.Layout))
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.DailySnapshot
	for rows.Next() {
		var s domain.DailySnapshot
		var date string
		if err := rows.Scan(&s.ProjectID, &date, &s.TotalHours, &s.CompletedHours,
			&s.RemainingHours, &s.AddedHours, &s.ChangedHours, &s.RemovedHours,
			&s.ActiveCount, &s.CompletedCount, &s.UnestimatedCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if s.Date, err = time.Parse(dateutil.Layout, date); err != nil {
			return nil, fmt.Errorf("parsing snapshot date: %w", err)
		}
		snapshots = append(snapshots, &s)
	}
	return snapshots, rows.Err()
}

func (r *SQLiteSnapshotRepo) Bounds(ctx context.Context, projectID int) (*time.Time, *time.Time, error) {
	var first, last sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT MIN(date), MAX(date) FROM daily_snapshots WHERE project_id = ?`, projectID,
	).Scan(&first, &last)
	if err != nil {
		return nil, nil, fmt.Errorf("finding snapshot bounds: %w", err)
	}
	return parseNullableTime(first, dateutil.Layout), parseNullableTime(last, dateutil.Layout), nil
}

func (r *SQLiteSnapshotRepo) CountByProject(ctx context.Context, projectID int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_snapshots WHERE project_id = ?`, projectID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}
	return n, nil
}

func (r *SQLiteSnapshotRepo) DeleteByProject(ctx context.Context, projectID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_snapshots WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting snapshots: %w", err)
	}
	return nil
}
