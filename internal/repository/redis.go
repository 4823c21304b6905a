package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"thumbnail-server/internal/models"
)

// Compile-time check
var _ ThumbnailRepository = (*RedisRepository)(nil)

const (
	redisThumbnailKeyPrefix = "thumbnail:"
	redisRecentKey          = "thumbnails:recent"
)

// RedisRepository хранит записи как JSON по ключу thumbnail:<id> и ведет
// список недавних id через LPUSH. Список по построению отсортирован в
// обратном порядке вставки, что дает требуемый порядок "новые первыми"
// с разрешением ничьих по последней вставке.
type RedisRepository struct {
	client      *redis.Client
	logger      *zap.Logger
	recentLimit int64 // длина, до которой подрезается список недавних
}

// NewRedisRepository создает хранилище поверх готового клиента Redis.
func NewRedisRepository(client *redis.Client, logger *zap.Logger, recentLimit int) *RedisRepository {
	if recentLimit <= 0 {
		recentLimit = 100
	}
	return &RedisRepository{
		client:      client,
		logger:      logger.Named("RedisThumbnailRepo"),
		recentLimit: int64(recentLimit),
	}
}

// Create сохраняет запись и добавляет ее id в начало списка недавних
// одним пайплайном.
func (r *RedisRepository) Create(ctx context.Context, params CreateThumbnailParams) (*models.Thumbnail, error) {
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
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal thumbnail: %v", models.ErrStore, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisThumbnailKeyPrefix+record.ID, data, 0)
	pipe.LPush(ctx, redisRecentKey, record.ID)
	pipe.LTrim(ctx, redisRecentKey, 0, r.recentLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to store thumbnail in redis", zap.String("id", record.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}

	r.logger.Debug("Thumbnail stored", zap.String("id", record.ID))
	return &record, nil
}

// GetByID возвращает запись или ErrNotFound.
func (r *RedisRepository) GetByID(ctx context.Context, id string) (*models.Thumbnail, error) {
	data, err := r.client.Get(ctx, redisThumbnailKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: id %q", models.ErrNotFound, id)
		}
		r.logger.Error("Failed to fetch thumbnail from redis", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}

	var record models.Thumbnail
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal thumbnail %q: %v", models.ErrStore, id, err)
	}
	return &record, nil
}

// ListRecent читает первые limit id из списка недавних и забирает записи
// батчем. id, у которых запись уже отсутствует, пропускаются.
func (r *RedisRepository) ListRecent(ctx context.Context, limit int) ([]*models.Thumbnail, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	ids, err := r.client.LRange(ctx, redisRecentKey, 0, int64(limit)-1).Result()
	if err != nil {
		r.logger.Error("Failed to read recent thumbnail ids", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}
	if len(ids) == 0 {
		return []*models.Thumbnail{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisThumbnailKeyPrefix + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Failed to fetch recent thumbnails", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}

	out := make([]*models.Thumbnail, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			r.logger.Warn("Recent list references missing thumbnail", zap.String("id", ids[i]))
			continue
		}
		var record models.Thumbnail
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal thumbnail %q: %v", models.ErrStore, ids[i], err)
		}
		out = append(out, &record)
	}
	return out, nil
}
