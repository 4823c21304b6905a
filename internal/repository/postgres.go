package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"thumbnail-server/internal/models"
)

// Compile-time check
var _ ThumbnailRepository = (*PostgresRepository)(nil)

// PostgresRepository хранит записи в таблице thumbnails. Колонка seq
// (bigserial) фиксирует порядок вставки и разрешает ничьи по created_at.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresRepository создает хранилище поверх готового пула соединений.
func NewPostgresRepository(pool *pgxpool.Pool, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool:   pool,
		logger: logger.Named("PgThumbnailRepo"),
	}
}

type thumbnailRow struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Description  *string   `db:"description"`
	Category     string    `db:"category"`
	Style        string    `db:"style"`
	MainText     *string   `db:"main_text"`
	SubText      *string   `db:"sub_text"`
	ImageURL     *string   `db:"image_url"`
	TextSettings []byte    `db:"text_settings"`
	CreatedAt    time.Time `db:"created_at"`
}

// Create вставляет запись и возвращает ее с меткой времени из БД.
func (r *PostgresRepository) Create(ctx context.Context, params CreateThumbnailParams) (*models.Thumbnail, error) {
	query := `
        INSERT INTO thumbnails (id, title, description, category, style, main_text, sub_text, image_url, text_settings)
        VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
        RETURNING id, title, description, category, style, main_text, sub_text, image_url, text_settings, created_at
    `

	id := uuid.NewString()
	var row thumbnailRow
	err := pgxscan.Get(ctx, r.pool, &row, query,
		id,
		params.Title,
		params.Description,
		params.Category,
		params.Style,
		params.MainText,
		params.SubText,
		params.ImageURL,
		params.TextSettings,
	)
	if err != nil {
		r.logger.Error("Failed to insert thumbnail", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}

	r.logger.Debug("Thumbnail inserted", zap.String("id", id))
	return row.toModel(), nil
}

// GetByID возвращает запись или ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Thumbnail, error) {
	query := `
        SELECT id, title, description, category, style, main_text, sub_text, image_url, text_settings, created_at
        FROM thumbnails
        WHERE id = $1
    `

	var row thumbnailRow
	err := pgxscan.Get(ctx, r.pool, &row, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %q", models.ErrNotFound, id)
		}
		r.logger.Error("Failed to query thumbnail", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}
	return row.toModel(), nil
}

// ListRecent возвращает до limit записей, новые первыми; ничьи по
// created_at разрешаются по убыванию seq.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*models.Thumbnail, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `
        SELECT id, title, description, category, style, main_text, sub_text, image_url, text_settings, created_at
        FROM thumbnails
        ORDER BY created_at DESC, seq DESC
        LIMIT $1
    `

	var rows []thumbnailRow
	if err := pgxscan.Select(ctx, r.pool, &rows, query, limit); err != nil {
		r.logger.Error("Failed to list recent thumbnails", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}

	out := make([]*models.Thumbnail, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out, nil
}

func (row *thumbnailRow) toModel() *models.Thumbnail {
	record := &models.Thumbnail{
		ID:           row.ID,
		Title:        row.Title,
		Category:     models.Category(row.Category),
		Style:        models.Style(row.Style),
		TextSettings: row.TextSettings,
		CreatedAt:    row.CreatedAt,
	}
	if row.Description != nil {
		record.Description = *row.Description
	}
	if row.MainText != nil {
		record.MainText = *row.MainText
	}
	if row.SubText != nil {
		record.SubText = *row.SubText
	}
	if row.ImageURL != nil {
		record.ImageURL = *row.ImageURL
	}
	return record
}
