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

func TestJournalRepo_MergeIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJournalRepo(db)
	ctx := context.Background()

	entry := testutil.StatusChange(1, 100, testutil.Day(2025, time.March, 2), 50,
		domain.StatusOpen, domain.StatusResolved)

	inserted, err := repo.Merge(ctx, entry)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Merge(ctx, entry)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := repo.CountByProject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestJournalRepo_SameJournalDifferentFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJournalRepo(db)
	ctx := context.Background()

	day := testutil.Day(2025, time.March, 2)
	// One tracker journal can touch both fields; it lands as two entries
	// sharing (ticket, occurred_at, seq).
	status := testutil.StatusChange(1, 100, day, 50, domain.StatusOpen, domain.StatusResolved)
	estimate := testutil.EstimateChange(1, 100, day, 50, testutil.Hours(8), testutil.Hours(6))

	for _, e := range []*domain.JournalEntry{status, estimate} {
		inserted, err := repo.Merge(ctx, e)
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	count, err := repo.CountByProject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestJournalRepo_ListByProject_Ordered(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJournalRepo(db)
	ctx := context.Background()

	later := testutil.StatusChange(1, 100, testutil.Day(2025, time.March, 3), 7,
		domain.StatusOpen, domain.StatusInProgress)
	earlier := testutil.EstimateChange(1, 100, testutil.Day(2025, time.March, 1), 9,
		testutil.Hours(4), testutil.Hours(8))
	sameDayLowSeq := testutil.StatusChange(1, 101, testutil.Day(2025, time.March, 3), 4,
		domain.StatusOpen, domain.StatusResolved)

	for _, e := range []*domain.JournalEntry{later, earlier, sameDayLowSeq} {
		_, err := repo.Merge(ctx, e)
		require.NoError(t, err)
	}

	entries, err := repo.ListByProject(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(9), entries[0].Seq)
	assert.Equal(t, int64(4), entries[1].Seq)
	assert.Equal(t, int64(7), entries[2].Seq)
}

func TestJournalRepo_ValuesRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJournalRepo(db)
	ctx := context.Background()

	entry := testutil.EstimateChange(1, 100, testutil.Day(2025, time.March, 2), 1,
		nil, testutil.Hours(7.5))
	_, err := repo.Merge(ctx, entry)
	require.NoError(t, err)

	entries, err := repo.ListByProject(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, domain.FieldEstimatedHours, got.Field)
	assert.Equal(t, entry.OccurredAt, got.OccurredAt)

	oldH, err := got.OldHours()
	require.NoError(t, err)
	assert.Nil(t, oldH)
	newH, err := got.NewHours()
	require.NoError(t, err)
	require.NotNil(t, newH)
	assert.Equal(t, 7.5, *newH)
}

func TestJournalRepo_MaxSeq(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJournalRepo(db)
	ctx := context.Background()

	max, err := repo.MaxSeq(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, max)

	for _, seq := range []int64{3, 12, 7} {
		_, err := repo.Merge(ctx, testutil.StatusChange(1, 100, testutil.Day(2025, time.March, 2), seq,
			domain.StatusOpen, domain.StatusClosed))
		require.NoError(t, err)
	}

	max, err = repo.MaxSeq(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), max)
}

func TestJournalRepo_DeleteByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJournalRepo(db)
	ctx := context.Background()

	_, err := repo.Merge(ctx, testutil.StatusChange(1, 100, testutil.Day(2025, time.March, 2), 1,
		domain.StatusOpen, domain.StatusClosed))
	require.NoError(t, err)
	_, err = repo.Merge(ctx, testutil.StatusChange(2, 200, testutil.Day(2025, time.March, 2), 1,
		domain.StatusOpen, domain.StatusClosed))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByProject(ctx, 1))

	count, err := repo.CountByProject(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountByProject(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
