package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kiririmode/rd-burndown/internal/db"
	"github.com/kiririmode/rd-burndown/internal/domain"
)

const ticketColumns = `id, project_id, subject, estimated_hours, status,
		assignee_id, assignee_name, version_id, version_name,
		created_on, updated_on, deleted_on`

// SQLiteTicketRepo implements TicketRepo on a SQLite connection or
// transaction.
type SQLiteTicketRepo struct {
	db db.DBTX
}

func NewSQLiteTicketRepo(conn db.DBTX) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{db: conn}
}

func (r *SQLiteTicketRepo) Upsert(ctx context.Context, t *domain.Ticket) error {
	query := `INSERT INTO tickets (id, project_id, subject, estimated_hours, status,
			assignee_id, assignee_name, version_id, version_name,
			created_on, updated_on, deleted_on, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, id) DO UPDATE SET
			subject = excluded.subject,
			estimated_hours = excluded.estimated_hours,
			status = excluded.status,
			assignee_id = excluded.assignee_id,
			assignee_name = excluded.assignee_name,
			version_id = excluded.version_id,
			version_name = excluded.version_name,
			updated_on = excluded.updated_on,
			deleted_on = excluded.deleted_on,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Subject,
		nullableFloatToValue(t.EstimatedHours),
		string(t.Status),
		nullableIntToValue(t.AssigneeID),
		t.AssigneeName,
		nullableIntToValue(t.VersionID),
		t.VersionName,
		t.CreatedOn.UTC().Format(time.RFC3339),
		t.UpdatedOn.UTC().Format(time.RFC3339),
		nullableTimeToString(t.DeletedOn, time.RFC3339),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting ticket %d: %w", t.ID, err)
	}
	return nil
}

func (r *SQLiteTicketRepo) GetByID(ctx context.Context, projectID, id int) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE project_id = ? AND id = ?`
	t, err := r.scanTicket(r.db.QueryRowContext(ctx, query, projectID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ticket %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading ticket %d: %w", id, err)
	}
	return t, nil
}

func (r *SQLiteTicketRepo) ListByProject(ctx context.Context, projectID int) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE project_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t, err := r.scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *SQLiteTicketRepo) EarliestCreation(ctx context.Context, projectID int) (*time.Time, error) {
	var created sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT MIN(created_on) FROM tickets WHERE project_id = ?`, projectID,
	).Scan(&created)
	if err != nil {
		return nil, fmt.Errorf("finding earliest ticket creation: %w", err)
	}
	return parseNullableTime(created, time.RFC3339), nil
}

func (r *SQLiteTicketRepo) MarkDeletedExcept(ctx context.Context, projectID int, keep []int, deletedOn time.Time) (int, error) {
	args := []any{deletedOn.UTC().Format(time.RFC3339), nowUTC(), projectID}
	query := `UPDATE tickets SET deleted_on = ?, updated_at = ?
		WHERE project_id = ? AND deleted_on IS NULL`
	if len(keep) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keep)), ", ")
		query += ` AND id NOT IN (` + placeholders + `)`
		for _, id := range keep {
			args = append(args, id)
		}
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("marking deleted tickets: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted tickets: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTicketRepo) CountByProject(ctx context.Context, projectID int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE project_id = ?`, projectID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tickets: %w", err)
	}
	return n, nil
}

func (r *SQLiteTicketRepo) DeleteByProject(ctx context.Context, projectID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("deleting tickets: %w", err)
	}
	return nil
}

func (r *SQLiteTicketRepo) scanTicket(row rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var estimated sql.NullFloat64
	var assigneeID, versionID sql.NullInt64
	var status, createdOn, updatedOn string
	var deletedOn sql.NullString

	if err := row.Scan(&t.ID, &t.ProjectID, &t.Subject, &estimated, &status,
		&assigneeID, &t.AssigneeName, &versionID, &t.VersionName,
		&createdOn, &updatedOn, &deletedOn); err != nil {
		return nil, err
	}

	t.EstimatedHours = nullableFloatFromSQL(estimated)
	t.Status = domain.TicketStatus(status)
	t.AssigneeID = nullableIntFromSQL(assigneeID)
	t.VersionID = nullableIntFromSQL(versionID)
	t.DeletedOn = parseNullableTime(deletedOn, time.RFC3339)

	var err error
	if t.CreatedOn, err = time.Parse(time.RFC3339, createdOn); err != nil {
		return nil, fmt.Errorf("parsing created_on: %w", err)
	}
	if t.UpdatedOn, err = time.Parse(time.RFC3339, updatedOn); err != nil {
		return nil, fmt.Errorf("parsing updated_on: %w", err)
	}
	return &t, nil
}
