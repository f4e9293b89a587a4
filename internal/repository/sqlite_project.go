package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kiririmode/rd-burndown/internal/db"
	"github.com/kiririmode/rd-burndown/internal/dateutil"
	"github.com/kiririmode/rd-burndown/internal/domain"
)

const projectColumns = `id, name, identifier, description, start_date, end_date,
		created_on, updated_on`

// SQLiteProjectRepo implements ProjectRepo on a SQLite connection or
// transaction.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, identifier, description, start_date, end_date,
			created_on, updated_on, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			identifier = excluded.identifier,
			description = excluded.description,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			created_on = excluded.created_on,
			updated_on = excluded.updated_on,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Identifier,
		p.Description,
		nullableTimeToString(p.StartDate, dateutil.Layout),
		nullableTimeToString(p.EndDate, dateutil.Layout),
		p.CreatedOn.UTC().Format(time.RFC3339),
		p.UpdatedOn.UTC().Format(time.RFC3339),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting project %d: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := r.scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading project %d: %w", id, err)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteProjectRepo) scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var startDate, endDate sql.NullString
	var createdOn, updatedOn string

	if err := row.Scan(&p.ID, &p.Name, &p.Identifier, &p.Description,
		&startDate, &endDate, &createdOn, &updatedOn); err != nil {
		return nil, err
	}

	p.StartDate = parseNullableTime(startDate, dateutil.Layout)
	p.EndDate = parseNullableTime(endDate, dateutil.Layout)
	var err error
	if p.CreatedOn, err = time.Parse(time.RFC3339, createdOn); err != nil {
		return nil, fmt.Errorf("parsing created_on: %w", err)
	}
	if p.UpdatedOn, err = time.Parse(time.RFC3339, updatedOn); err != nil {
		return nil, fmt.Errorf("parsing updated_on: %w", err)
	}
	return &p, nil
}
