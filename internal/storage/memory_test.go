package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-scraper/internal/job"
)

var _ Repository = (*MemoryRepository)(nil)

func newRecord(sourceID, title string) *job.Record {
	rec := job.New("seek", "Seek", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	rec.Title = title
	rec.Company = "Acme"
	rec.SourceID = sourceID
	return rec
}

func TestMemoryRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	isNew, err := repo.UpsertJob(ctx, newRecord("1", "Go Developer"), "aaa")
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = repo.UpsertJob(ctx, newRecord("1", "Senior Go Developer"), "bbb")
	require.NoError(t, err)
	assert.False(t, isNew)

	jobs := repo.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Go Developer", jobs[0].Title)

	sum, ok := repo.Checksum("seek", "1")
	require.True(t, ok)
	assert.Equal(t, "bbb", sum)

	exists, err := repo.ExistsBySourceID(ctx, "seek", "1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySourceID(ctx, "linkedin", "1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryRepositoryEmptySourceIDAlwaysInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for i := 0; i < 2; i++ {
		isNew, err := repo.UpsertJob(ctx, newRecord("", "Go Developer"), "same")
		require.NoError(t, err)
		assert.True(t, isNew)
	}
	assert.Len(t, repo.Jobs(), 2)
}

func TestMemoryRepositoryCopiesRecord(t *testing.T) {
	repo := NewMemoryRepository()
	rec := newRecord("7", "Go Developer")
	rec.Requirements = []string{"Go"}

	_, err := repo.UpsertJob(context.Background(), rec, "x")
	require.NoError(t, err)

	rec.Title = "changed"
	rec.Requirements[0] = "changed"

	stored := repo.Jobs()[0]
	assert.Equal(t, "Go Developer", stored.Title)
	assert.Equal(t, []string{"Go"}, stored.Requirements)
}

func TestMemoryRepositoryErrors(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.UpsertJob(context.Background(), nil, "")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.UpsertJob(ctx, newRecord("1", "Go"), "")
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, repo.Close())
	_, err = repo.UpsertJob(context.Background(), newRecord("1", "Go"), "")
	assert.ErrorContains(t, err, "repository is closed")
}
