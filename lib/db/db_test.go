package db

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/icco/animedash/lib/catalog"
	"github.com/icco/animedash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T {
	return &v
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := Open(context.Background(), MemoryDSN, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gormDB
}

func testDataset() *catalog.Dataset {
	return catalog.NewDataset([]models.Anime{
		{Name: "Cowboy Bebop", Type: ptr("TV"), Score: ptr(8.78), Completed: ptr(1.0), Members: ptr(int64(1000))},
		{Name: "Naruto", Type: ptr("TV"), Score: ptr(8.0), Completed: ptr(0.0), Members: ptr(int64(500))},
		{Name: "Akira", Type: ptr("Movie"), Score: ptr(8.2), Completed: ptr(1.0)},
		{Name: "Untitled"},
	})
}

func TestMirror(t *testing.T) {
	ctx := context.Background()
	gormDB := openTestDB(t)

	require.NoError(t, Mirror(ctx, gormDB, testDataset(), testLogger()))

	var count int64
	require.NoError(t, gormDB.Model(&models.Anime{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)

	var first models.Anime
	require.NoError(t, gormDB.Where("position = ?", 0).First(&first).Error)
	assert.Equal(t, "Cowboy Bebop", first.Name)
	require.NotNil(t, first.Score)
	assert.InDelta(t, 8.78, *first.Score, 1e-9)

	var untitled models.Anime
	require.NoError(t, gormDB.Where("position = ?", 3).First(&untitled).Error)
	assert.Nil(t, untitled.Score)
	assert.Nil(t, untitled.Type)

	t.Run("mirroring again replaces rows", func(t *testing.T) {
		ds := catalog.NewDataset([]models.Anime{{Name: "Only"}})
		require.NoError(t, Mirror(ctx, gormDB, ds, testLogger()))

		var count int64
		require.NoError(t, gormDB.Model(&models.Anime{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("empty dataset", func(t *testing.T) {
		require.NoError(t, Mirror(ctx, gormDB, catalog.NewDataset(nil), testLogger()))

		var count int64
		require.NoError(t, gormDB.Model(&models.Anime{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()

	t.Run("populated catalog", func(t *testing.T) {
		gormDB := openTestDB(t)
		require.NoError(t, Mirror(ctx, gormDB, testDataset(), testLogger()))

		stats, err := Stats(ctx, gormDB)
		require.NoError(t, err)

		assert.Equal(t, int64(4), stats.TotalAnime)
		assert.Equal(t, int64(3), stats.ScoredAnime)
		assert.InDelta(t, (8.78+8.0+8.2)/3, stats.AverageScore, 1e-9)
		assert.InDelta(t, 8.0, stats.MinScore, 1e-9)
		assert.InDelta(t, 8.78, stats.MaxScore, 1e-9)
		assert.Equal(t, int64(2), stats.FinishedAiring)
		assert.Equal(t, int64(2), stats.Ongoing)
		assert.Equal(t, int64(1500), stats.TotalMembers)

		require.Len(t, stats.TypeDistribution, 3)
		assert.Equal(t, "TV", stats.TypeDistribution[0].Type)
		assert.Equal(t, int64(2), stats.TypeDistribution[0].Count)
		assert.Equal(t, "Movie", stats.TypeDistribution[1].Type)
		assert.Equal(t, "N/A", stats.TypeDistribution[2].Type)
	})

	t.Run("empty catalog", func(t *testing.T) {
		gormDB := openTestDB(t)

		stats, err := Stats(ctx, gormDB)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalAnime)
		assert.Zero(t, stats.AverageScore)
		assert.Zero(t, stats.TotalMembers)
		assert.Empty(t, stats.TypeDistribution)
	})
}
