// Package repository реализует хранилища записей миниатюр. Оркестратор
// работает с интерфейсом ThumbnailRepository, бэкенд выбирается
// конфигурацией (memory, redis, postgres).
package repository

import (
	"context"
	"encoding/json"

	"thumbnail-server/internal/models"
)

// DefaultRecentLimit применяется, когда клиент не указал limit.
const DefaultRecentLimit = 10

// CreateThumbnailParams - поля новой записи. ID и CreatedAt назначает
// хранилище, поэтому в параметрах их нет.
type CreateThumbnailParams struct {
	Title        string
	Description  string
	Category     models.Category
	Style        models.Style
	MainText     string
	SubText      string
	ImageURL     string
	TextSettings json.RawMessage
}

// ThumbnailRepository - контракт хранилища записей миниатюр.
//
// Create обязан быть атомарным относительно назначения id: конкурентные
// вызовы никогда не получают одинаковый id. ListRecent возвращает записи
// от новых к старым по CreatedAt; при равных метках времени первой идет
// запись, вставленная последней.
type ThumbnailRepository interface {
	Create(ctx context.Context, params CreateThumbnailParams) (*models.Thumbnail, error)
	GetByID(ctx context.Context, id string) (*models.Thumbnail, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Thumbnail, error)
}
