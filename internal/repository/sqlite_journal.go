package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kiririmode/rd-burndown/internal/db"
	"github.com/kiririmode/rd-burndown/internal/domain"
)

// SQLiteJournalRepo implements JournalRepo. The journal is append-only:
// entries are merged by composite key and never updated in place.
type SQLiteJournalRepo struct {
	db db.DBTX
}

func NewSQLiteJournalRepo(conn db.DBTX) *SQLiteJournalRepo {
	return &SQLiteJournalRepo{db: conn}
}

func (r *SQLiteJournalRepo) Merge(ctx context.Context, e *domain.JournalEntry) (bool, error) {
	query := `INSERT OR IGNORE INTO journal_entries
			(project_id, ticket_id, field, old_value, new_value, occurred_at, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.ProjectID,
		e.TicketID,
		string(e.Field),
		e.OldValue,
		e.NewValue,
		e.OccurredAt.UTC().Format(time.RFC3339),
		e.Seq,
		nowUTC(),
	)
	if err != nil {
		return false, fmt.Errorf("merging journal entry for ticket %d: %w", e.TicketID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking journal merge: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteJournalRepo) ListByProject(ctx context.Context, projectID int) ([]*domain.JournalEntry, error) {
	query := `SELECT project_id, ticket_id, field, old_value, new_value, occurred_at, seq
		FROM journal_entries WHERE project_id = ? ORDER BY occurred_at, seq`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var field, occurredAt string
		if err := rows.Scan(&e.ProjectID, &e.TicketID, &field, &e.OldValue,
			&e.NewValue, &occurredAt, &e.Seq); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		e.Field = domain.JournalField(field)
		if e.OccurredAt, err = time.Parse(time.RFC3339, occurredAt); err != nil {
			return nil, fmt.Errorf("parsing occurred_at: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *SQLiteJournalRepo) MaxSeq(ctx context.Context, projectID int) (int64, error) {
	var seq int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM journal_entries WHERE project_id = ?`, projectID,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("finding max journal seq: %w", err)
	}
	return seq, nil
}

func (r *SQLiteJournalRepo) CountByProject(ctx context.Context, projectID int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE project_id = ?`, projectID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting journal entries: %w", err)
	}
	return n, nil
}

func (r *SQLiteJournalRepo) DeleteByProject(ctx context.Context, projectID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting journal entries: %w", err)
	}
	return nil
}
