package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOn(projectID int, date time.Time, remaining float64) *domain.DailySnapshot {
	return &domain.DailySnapshot{
		ProjectID:      projectID,
		Date:           date,
		TotalHours:     remaining + 10,
		CompletedHours: 10,
		RemainingHours: remaining,
		ActiveCount:    2,
		CompletedCount: 1,
	}
}

func TestSnapshotRepo_UpsertAndRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	d1 := testutil.Day(2025, time.March, 1)
	d2 := testutil.Day(2025, time.March, 2)
	d3 := testutil.Day(2025, time.March, 3)

	require.NoError(t, repo.Upsert(ctx, snapshotOn(1, d2, 20)))
	require.NoError(t, repo.Upsert(ctx, snapshotOn(1, d1, 30)))
	require.NoError(t, repo.Upsert(ctx, snapshotOn(1, d3, 10)))

	snaps, err := repo.Range(ctx, 1, d1, d2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, d1, snaps[0].Date)
	assert.Equal(t, 30.0, snaps[0].RemainingHours)
	assert.Equal(t, d2, snaps[1].Date)
}

func TestSnapshotRepo_UpsertReplacesDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	d := testutil.Day(2025, time.March, 1)
	require.NoError(t, repo.Upsert(ctx, snapshotOn(1, d, 30)))

	revised := snapshotOn(1, d, 25)
	revised.ChangedHours = -5
	require.NoError(t, repo.Upsert(ctx, revised))

	snaps, err := repo.Range(ctx, 1, d, d)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 25.0, snaps[0].RemainingHours)
	assert.Equal(t, -5.0, snaps[0].ChangedHours)
}

func TestSnapshotRepo_Bounds(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	first, last, err := repo.Bounds(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, first)
	assert.Nil(t, last)

	d1 := testutil.Day(2025, time.March, 1)
	d3 := testutil.Day(2025, time.March, 3)
	require.NoError(t, repo.Upsert(ctx, snapshotOn(1, d3, 10)))
	require.NoError(t, repo.Upsert(ctx, snapshotOn(1, d1, 30)))

	first, last, err = repo.Bounds(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, last)
	assert.Equal(t, d1, *first)
	assert.Equal(t, d3, *last)
}

func TestSnapshotRepo_DeleteByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(db)
	ctx := context.Background()

	d := testutil.Day(2025, time.March, 1)
	require.NoError(t, repo.Upsert(ctx, snapshotOn(1, d, 30)))
	require.NoError(t, repo.Upsert(ctx, snapshotOn(2, d, 40)))

	require.NoError(t, repo.DeleteByProject(ctx, 1))

	count, err := repo.CountByProject(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountByProject(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
