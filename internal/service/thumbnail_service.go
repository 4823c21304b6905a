// Package service содержит оркестратор запроса на генерацию миниатюры:
// валидация -> сборка промпта -> вызов провайдера -> сохранение -> ответ.
package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"

	"thumbnail-server/internal/generator"
	"thumbnail-server/internal/messaging"
	"thumbnail-server/internal/models"
	"thumbnail-server/internal/prompt"
	"thumbnail-server/internal/repository"
)

// ThumbnailService - операции сервиса миниатюр, потребляемые HTTP слоем.
type ThumbnailService interface {
	// Generate выполняет полный пайплайн и возвращает сохраненную запись.
	// При ошибке валидации или провайдера запись не создается.
	Generate(ctx context.Context, req models.GenerateThumbnailRequest) (*models.Thumbnail, error)
	GetByID(ctx context.Context, id string) (*models.Thumbnail, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Thumbnail, error)
}

// Compile-time check
var _ ThumbnailService = (*thumbnailServiceImpl)(nil)

type thumbnailServiceImpl struct {
	repo      repository.ThumbnailRepository
	generator generator.Generator
	prompts   *prompt.Builder
	events    messaging.EventPublisher
	logger    *zap.Logger
}

// NewThumbnailService создает оркестратор. Провайдер и хранилище
// инжектируются интерфейсами, в тестах подменяются заглушками.
func NewThumbnailService(
	repo repository.ThumbnailRepository,
	gen generator.Generator,
	prompts *prompt.Builder,
	events messaging.EventPublisher,
	logger *zap.Logger,
) ThumbnailService {
	if events == nil {
		events = messaging.NoopPublisher{}
	}
	return &thumbnailServiceImpl{
		repo:      repo,
		generator: gen,
		prompts:   prompts,
		events:    events,
		logger:    logger.Named("ThumbnailService"),
	}
}

// Generate реализует цепочку Received -> Validated -> PromptBuilt ->
// ProviderCalled -> Persisted. Ретраев нет: отказ провайдера терминален
// для запроса, изображение-заглушка не подставляется.
func (s *thumbnailServiceImpl) Generate(ctx context.Context, req models.GenerateThumbnailRequest) (*models.Thumbnail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.With(
		zap.String("title", req.Title),
		zap.String("category", string(req.Category)),
		zap.String("style", string(req.Style)),
	)
	log.Info("Generating thumbnail")

	promptText := s.prompts.Build(req)
	log.Debug("Prompt built", zap.Int("prompt_len", len(promptText)))

	result, err := s.generator.Generate(ctx, promptText)
	if err != nil {
		log.Error("Image provider call failed", zap.Error(err))
		// Сообщение провайдера сохраняем в цепочке для ответа клиенту
		return nil, fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	// Изображение отдается клиенту как data URI, как и в галерее
	imageURL := fmt.Sprintf("data:%s;base64,%s", result.MIMEType, base64.StdEncoding.EncodeToString(result.Data))

	record, err := s.repo.Create(ctx, repository.CreateThumbnailParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Style:       req.Style,
		MainText:    req.MainText,
		SubText:     req.SubText,
		ImageURL:    imageURL,
	})
	if err != nil {
		log.Error("Failed to persist thumbnail", zap.Error(err))
		return nil, err
	}
	log.Info("Thumbnail created", zap.String("id", record.ID))

	// Best-effort: отказ брокера не должен ломать успешную генерацию
	if err := s.events.PublishThumbnailCreated(ctx, messaging.ThumbnailCreatedEvent{
		ThumbnailID: record.ID,
		Title:       record.Title,
		Category:    string(record.Category),
		Style:       string(record.Style),
		CreatedAt:   record.CreatedAt,
	}); err != nil {
		log.Warn("Failed to publish thumbnail created event", zap.Error(err))
	}

	return record, nil
}

// GetByID возвращает запись по id.
func (s *thumbnailServiceImpl) GetByID(ctx context.Context, id string) (*models.Thumbnail, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRecent возвращает недавние записи, новые первыми.
func (s *thumbnailServiceImpl) ListRecent(ctx context.Context, limit int) ([]*models.Thumbnail, error) {
	if limit <= 0 {
		limit = repository.DefaultRecentLimit
	}
	records, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list recent thumbnails", zap.Error(err))
		return nil, err
	}
	return records, nil
}
