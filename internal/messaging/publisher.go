// Package messaging публикует события о созданных миниатюрах. Публикация
// best-effort: отказ брокера логируется и никогда не влияет на ответ
// клиенту.
package messaging

import (
	"context"
	"time"
)

// ThumbnailCreatedEvent - полезная нагрузка события о созданной записи.
// Байты изображения в событие не входят, только метаданные.
type ThumbnailCreatedEvent struct {
	ThumbnailID string    `json:"thumbnail_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Style       string    `json:"style"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventPublisher публикует события жизненного цикла миниатюр.
type EventPublisher interface {
	PublishThumbnailCreated(ctx context.Context, event ThumbnailCreatedEvent) error
	Close() error
}

// NoopPublisher используется, когда публикация событий выключена.
type NoopPublisher struct{}

func (NoopPublisher) PublishThumbnailCreated(context.Context, ThumbnailCreatedEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
