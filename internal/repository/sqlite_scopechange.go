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

// SQLiteScopeChangeRepo implements ScopeChangeRepo. Scope events are
// derived data: a recompute deletes the affected window and inserts the
// regenerated events in order.
type SQLiteScopeChangeRepo struct {
	db db.DBTX
}

func NewSQLiteScopeChangeRepo(conn db.DBTX) *SQLiteScopeChangeRepo {
	return &SQLiteScopeChangeRepo{db: conn}
}

func (r *SQLiteScopeChangeRepo) Insert(ctx context.Context, e *domain.ScopeChangeEvent) error {
	query := `INSERT INTO scope_changes (project_id, date, ticket_id, ticket_subject,
			kind, hours_delta, old_hours, new_hours, impact, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ProjectID,
		e.Date.UTC().Format(dateutil.Layout),
		e.TicketID,
		e.TicketSubject,
		string(e.Kind),
		e.HoursDelta,
		nullableFloatToValue(e.OldHours),
		nullableFloatToValue(e.NewHours),
		string(e.Impact),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting scope change for ticket %d: %w", e.TicketID, err)
	}
	return nil
}

func (r *SQLiteScopeChangeRepo) Range(ctx context.Context, projectID int, from, to time.Time) ([]*domain.ScopeChangeEvent, error) {
	query := `SELECT project_id, date, ticket_id, ticket_subject, kind,
			hours_delta, old_hours, new_hours, impact
		FROM scope_changes
		WHERE project_id = ? AND date >= ? AND date <= ?
		ORDER BY date, ticket_id`
	rows, err := r.db.QueryContext(ctx, query, projectID,
		from.UTC().Format(dateutil.Layout), to.UTC().Format(dateutil.Layout))
	if err != nil {
		return nil, fmt.Errorf("querying scope changes: %w", err)
	}
	defer rows.Close()

	var events []*domain.ScopeChangeEvent
	for rows.Next() {
		var e domain.ScopeChangeEvent
		var date, kind, impact string
		var oldHours, newHours sql.NullFloat64
		if err := rows.Scan(&e.ProjectID, &date, &e.TicketID, &e.TicketSubject,
			&kind, &e.HoursDelta, &oldHours, &newHours, &impact); err != nil {
			return nil, fmt.Errorf("scanning scope change: %w", err)
		}
		if e.Date, err = time.Parse(dateutil.Layout, date); err != nil {
			return nil, fmt.Errorf("parsing scope change date: %w", err)
		}
		e.Kind = domain.ChangeKind(kind)
		e.Impact = domain.ImpactLevel(impact)
		e.OldHours = nullableFloatFromSQL(oldHours)
		e.NewHours = nullableFloatFromSQL(newHours)
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (r *SQLiteScopeChangeRepo) CountByProject(ctx context.Context, projectID int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scope_changes WHERE project_id = ?`, projectID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting scope changes: %w", err)
	}
	return n, nil
}

func (r *SQLiteScopeChangeRepo) DeleteRange(ctx context.Context, projectID int, from, to time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM scope_changes WHERE project_id = ? AND date >= ? AND date <= ?`,
		projectID, from.UTC().Format(dateutil.Layout), to.UTC().Format(dateutil.Layout))
	if err != nil {
		return fmt.Errorf("deleting scope change window: %w", err)
	}
	return nil
}

func (r *SQLiteScopeChangeRepo) DeleteByProject(ctx context.Context, projectID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scope_changes WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting scope changes: %w", err)
	}
	return nil
}
