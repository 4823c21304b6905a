package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"thumbnail-server/internal/models"
)

// Compile-time check
var _ ThumbnailRepository = (*MemoryRepository)(nil)

// MemoryRepository - хранилище в памяти процесса. Эталонный бэкенд:
// без durability, записи живут до перезапуска.
type MemoryRepository struct {
	mu         sync.RWMutex
	thumbnails map[string]memoryEntry
	seq        uint64

	// now подменяется в тестах для детерминированных меток времени.
	now func() time.Time
}

type memoryEntry struct {
	record models.Thumbnail
	seq    uint64
}

// NewMemoryRepository создает пустое in-memory хранилище.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		thumbnails: make(map[string]memoryEntry),
		now:        time.Now,
	}
}

// Create назначает свежий uuid и метку времени, сохраняет запись и
// возвращает копию. Мьютекс гарантирует атомарность назначения id и
// монотонность порядка вставки.
func (r *MemoryRepository) Create(_ context.Context, params CreateThumbnailParams) (*models.Thumbnail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	record := models.Thumbnail{
		ID:           uuid.NewString(),
		Title:        params.Title,
		Description:  params.Description,
		Category:     params.Category,
		Style:        params.Style,
		MainText:     params.MainText,
		SubText:      params.SubText,
		ImageURL:     params.ImageURL,
		TextSettings: params.TextSettings,
		CreatedAt:    r.now().UTC(),
	}
	r.thumbnails[record.ID] = memoryEntry{record: record, seq: r.seq}

	out := record
	return &out, nil
}

// GetByID возвращает копию записи или ErrNotFound.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Thumbnail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.thumbnails[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := entry.record
	return &out, nil
}

// ListRecent возвращает до limit записей от новых к старым. Равные метки
// времени упорядочиваются по убыванию порядка вставки.
func (r *MemoryRepository) ListRecent(_ context.Context, limit int) ([]*models.Thumbnail, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	r.mu.RLock()
	entries := make([]memoryEntry, 0, len(r.thumbnails))
	for _, entry := range r.thumbnails {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].record.CreatedAt, entries[j].record.CreatedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]*models.Thumbnail, len(entries))
	for i := range entries {
		record := entries[i].record
		out[i] = &record
	}
	return out, nil
}
