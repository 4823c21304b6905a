package handler

import (
	"encoding/json"
	"time"

	"thumbnail-server/internal/models"
)

// GenerateThumbnailRequestDTO - тело POST /api/thumbnails/generate.
// Валидация схемы выполняется в models, здесь только декодирование.
type GenerateThumbnailRequestDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Style       string `json:"style"`
	MainText    string `json:"mainText"`
	SubText     string `json:"subText"`
}

func (dto GenerateThumbnailRequestDTO) toModel() models.GenerateThumbnailRequest {
	return models.GenerateThumbnailRequest{
		Title:       dto.Title,
		Description: dto.Description,
		Category:    models.Category(dto.Category),
		Style:       models.Style(dto.Style),
		MainText:    dto.MainText,
		SubText:     dto.SubText,
	}
}

// ThumbnailResponseDTO - запись миниатюры в ответах API.
type ThumbnailResponseDTO struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	Style        string          `json:"style"`
	MainText     string          `json:"mainText,omitempty"`
	SubText      string          `json:"subText,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	TextSettings json.RawMessage `json:"textSettings,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// APIError - стандартизированный ответ об ошибке.
type APIError struct {
	Message string `json:"message"`
}

func toThumbnailResponse(record *models.Thumbnail) ThumbnailResponseDTO {
	return ThumbnailResponseDTO{
		ID:           record.ID,
		Title:        record.Title,
		Description:  record.Description,
		Category:     string(record.Category),
		Style:        string(record.Style),
		MainText:     record.MainText,
		SubText:      record.SubText,
		ImageURL:     record.ImageURL,
		TextSettings: record.TextSettings,
		CreatedAt:    record.CreatedAt,
	}
}
