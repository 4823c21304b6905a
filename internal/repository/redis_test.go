package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"thumbnail-server/internal/models"
)

func newTestRedisRepo(t *testing.T, recentLimit int) *RedisRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisRepository(client, zap.NewNop(), recentLimit)
}

func TestRedisRepositoryCreateAndGet(t *testing.T) {
	repo := newTestRedisRepo(t, 100)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateThumbnailParams{
		Title:       "First",
		Description: "desc",
		Category:    models.CategoryCrime,
		Style:       models.StyleCartoon,
		MainText:    "BREAKING",
		ImageURL:    "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "First", fetched.Title)
	assert.Equal(t, models.CategoryCrime, fetched.Category)
	assert.Equal(t, models.StyleCartoon, fetched.Style)
	assert.Equal(t, "BREAKING", fetched.MainText)
	assert.Equal(t, "data:image/png;base64,AAAA", fetched.ImageURL)
	assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))
}

func TestRedisRepositoryGetByIDNotFound(t *testing.T) {
	repo := newTestRedisRepo(t, 100)

	_, err := repo.GetByID(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestRedisRepositoryListRecentOrdering(t *testing.T) {
	repo := newTestRedisRepo(t, 100)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := repo.Create(ctx, CreateThumbnailParams{
			Title:    fmt.Sprintf("video-%d", i),
			Category: models.CategoryGaming,
			Style:    models.StyleRealistic,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "video-3", records[0].Title)
	assert.Equal(t, "video-2", records[1].Title)
	assert.Equal(t, "video-1", records[2].Title)
}

func TestRedisRepositoryListRecentEmpty(t *testing.T) {
	repo := newTestRedisRepo(t, 100)

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRedisRepositoryRecentListTrimmed(t *testing.T) {
	repo := newTestRedisRepo(t, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, CreateThumbnailParams{
			Title:    fmt.Sprintf("video-%d", i),
			Category: models.CategoryGaming,
			Style:    models.StyleRealistic,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "video-4", records[0].Title)
	assert.Equal(t, "video-2", records[2].Title)
}
