package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumbnail-server/internal/models"
)

func TestMemoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateThumbnailParams{
		Title:    "First",
		Category: models.CategoryGaming,
		Style:    models.StyleRealistic,
		ImageURL: "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "First", fetched.Title)
	assert.Equal(t, "data:image/png;base64,AAAA", fetched.ImageURL)

	// Возвращаемая запись - копия, мутации не видны хранилищу
	fetched.Title = "mutated"
	again, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", again.Title)
}

func TestMemoryRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetByID(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestMemoryRepositoryListRecentOrdering(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	repo.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		current = base.Add(time.Duration(i) * time.Second)
		_, err := repo.Create(ctx, CreateThumbnailParams{
			Title:    fmt.Sprintf("video-%d", i),
			Category: models.CategoryGaming,
			Style:    models.StyleRealistic,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "video-2", records[0].Title)
	assert.Equal(t, "video-1", records[1].Title)
}

func TestMemoryRepositoryListRecentTieBreak(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	// Все записи получают одинаковую метку времени, порядок определяется
	// порядком вставки
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, CreateThumbnailParams{
			Title:    fmt.Sprintf("video-%d", i),
			Category: models.CategoryMusic,
			Style:    models.StyleRealistic,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, record := range records {
		assert.Equal(t, fmt.Sprintf("video-%d", 4-i), record.Title)
	}
}

func TestMemoryRepositoryListRecentDefaultLimit(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := 0; i < DefaultRecentLimit+3; i++ {
		_, err := repo.Create(ctx, CreateThumbnailParams{
			Title:    fmt.Sprintf("video-%d", i),
			Category: models.CategoryGaming,
			Style:    models.StyleRealistic,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, DefaultRecentLimit)
}

func TestMemoryRepositoryConcurrentCreates(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const workers = 50
	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record, err := repo.Create(ctx, CreateThumbnailParams{
				Title:    fmt.Sprintf("video-%d", i),
				Category: models.CategoryGaming,
				Style:    models.StyleRealistic,
			})
			assert.NoError(t, err)
			ids <- record.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, workers)
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers)

	records, err := repo.ListRecent(ctx, workers)
	require.NoError(t, err)
	assert.Len(t, records, workers)
}
