package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T, db *sql.DB, id int) {
	t.Helper()
	require.NoError(t, NewSQLiteProjectRepo(db).Upsert(context.Background(), testutil.NewProject(id)))
}

func TestTicketRepo_UpsertAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedProject(t, db, 1)
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	ticket := testutil.NewTicket(1, 100,
		testutil.WithEstimate(12.5),
		testutil.WithAssignee(7, "dev"),
	)
	require.NoError(t, repo.Upsert(ctx, ticket))

	fetched, err := repo.GetByID(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, "Test ticket", fetched.Subject)
	require.NotNil(t, fetched.EstimatedHours)
	assert.Equal(t, 12.5, *fetched.EstimatedHours)
	require.NotNil(t, fetched.AssigneeID)
	assert.Equal(t, 7, *fetched.AssigneeID)
	assert.Equal(t, "dev", fetched.AssigneeName)
	assert.Nil(t, fetched.DeletedOn)
	assert.Equal(t, domain.StatusOpen, fetched.Status)
}

func TestTicketRepo_UpsertPreservesKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedProject(t, db, 1)
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 100)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 100,
		testutil.WithStatus(domain.StatusClosed), testutil.WithoutEstimate())))

	fetched, err := repo.GetByID(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, fetched.Status)
	assert.Nil(t, fetched.EstimatedHours)

	count, err := repo.CountByProject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTicketRepo_ListByProject_OrderedByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedProject(t, db, 1)
	seedProject(t, db, 2)
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 300)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 100)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(2, 200)))

	list, err := repo.ListByProject(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 100, list[0].ID)
	assert.Equal(t, 300, list[1].ID)
}

func TestTicketRepo_EarliestCreation(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedProject(t, db, 1)
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	earliest, err := repo.EarliestCreation(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, earliest)

	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 1,
		testutil.WithCreatedOn(testutil.Day(2025, time.March, 5)))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 2,
		testutil.WithCreatedOn(testutil.Day(2025, time.February, 10)))))

	earliest, err = repo.EarliestCreation(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, earliest)
	assert.Equal(t, testutil.Day(2025, time.February, 10), *earliest)
}

func TestTicketRepo_MarkDeletedExcept(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedProject(t, db, 1)
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	for _, id := range []int{1, 2, 3} {
		require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, id)))
	}

	deletedOn := testutil.Day(2025, time.March, 10)
	marked, err := repo.MarkDeletedExcept(ctx, 1, []int{1, 3}, deletedOn)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	gone, err := repo.GetByID(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, gone.DeletedOn)
	assert.Equal(t, deletedOn, *gone.DeletedOn)

	kept, err := repo.GetByID(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, kept.DeletedOn)

	// Re-running marks nothing new.
	marked, err = repo.MarkDeletedExcept(ctx, 1, []int{1, 3}, deletedOn)
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestTicketRepo_MarkDeletedExcept_EmptyKeep(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedProject(t, db, 1)
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 1)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 2)))

	marked, err := repo.MarkDeletedExcept(ctx, 1, nil, testutil.Day(2025, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, marked)
}

func TestTicketRepo_DeleteByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedProject(t, db, 1)
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTicket(1, 1)))
	require.NoError(t, repo.DeleteByProject(ctx, 1))

	count, err := repo.CountByProject(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}
