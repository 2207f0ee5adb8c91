package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(date time.Time, score int) *domain.BalanceSnapshot {
	return &domain.BalanceSnapshot{
		ID:          uuid.New().String(),
		Date:        date,
		Score:       score,
		Breakdown:   domain.Breakdown{domain.CategoryWork: 100, domain.CategoryHealth: 0, domain.CategoryLeisure: 0, domain.CategorySocial: 0, domain.CategoryLearning: 0},
		Suggestions: []string{"Reduce work time"},
		EventCount:  1,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestBalanceSnapshotRepo_UpsertReplacesSameDay(t *testing.T) {
	repo := NewSQLiteBalanceSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newSnapshot(testutil.Day, 54)))
	second := newSnapshot(testutil.Day, 88)
	second.Suggestions = nil
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.GetByDate(ctx, testutil.Day)
	require.NoError(t, err)
	assert.Equal(t, 88, got.Score)
	assert.Equal(t, 100, got.Breakdown[domain.CategoryWork])
	assert.Empty(t, got.Suggestions)
	assert.Equal(t, testutil.Day.Format(dateLayout), got.Date.Format(dateLayout))

	all, err := repo.ListSince(ctx, testutil.Day.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBalanceSnapshotRepo_GetByDate_NotFound(t *testing.T) {
	repo := NewSQLiteBalanceSnapshotRepo(testutil.NewTestDB(t))

	_, err := repo.GetByDate(context.Background(), testutil.Day)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBalanceSnapshotRepo_DeleteByDate(t *testing.T) {
	repo := NewSQLiteBalanceSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newSnapshot(testutil.Day, 70)))
	require.NoError(t, repo.Upsert(ctx, newSnapshot(testutil.Day.AddDate(0, 0, -1), 60)))

	require.NoError(t, repo.DeleteByDate(ctx, testutil.Day))
	_, err := repo.GetByDate(ctx, testutil.Day)
	assert.ErrorIs(t, err, ErrNotFound)

	kept, err := repo.GetByDate(ctx, testutil.Day.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, 60, kept.Score)

	// Deleting a date with no snapshot is a no-op.
	assert.NoError(t, repo.DeleteByDate(ctx, testutil.Day))
}

func TestBalanceSnapshotRepo_ListSince(t *testing.T) {
	repo := NewSQLiteBalanceSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for i, score := range []int{50, 60, 70, 80} {
		require.NoError(t, repo.Upsert(ctx, newSnapshot(testutil.Day.AddDate(0, 0, -i), score)))
	}

	list, err := repo.ListSince(ctx, testutil.Day.AddDate(0, 0, -2))
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 50, list[0].Score, "newest first")
	assert.Equal(t, 70, list[2].Score)
}

func TestBalanceSnapshotRepo_RejectsOutOfRangeScore(t *testing.T) {
	repo := NewSQLiteBalanceSnapshotRepo(testutil.NewTestDB(t))
	assert.Error(t, repo.Upsert(context.Background(), newSnapshot(testutil.Day, 140)))
}
