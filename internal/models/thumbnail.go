package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category классифицирует видео, которому предназначена миниатюра.
type Category string

const (
	CategoryGaming        Category = "gaming"
	CategoryEducation     Category = "education"
	CategoryEntertainment Category = "entertainment"
	CategoryTechnology    Category = "technology"
	CategoryLifestyle     Category = "lifestyle"
	CategoryMusic         Category = "music"
	CategoryCrime         Category = "crime"
	CategoryDocumentary   Category = "documentary"
)

// Style задает манеру рендеринга изображения.
type Style string

const (
	StyleRealistic Style = "realistic"
	StyleCartoon   Style = "cartoon"
)

// DefaultStyle применяется, когда клиент не указал style.
const DefaultStyle = StyleRealistic

var knownCategories = map[Category]struct{}{
	CategoryGaming:        {},
	CategoryEducation:     {},
	CategoryEntertainment: {},
	CategoryTechnology:    {},
	CategoryLifestyle:     {},
	CategoryMusic:         {},
	CategoryCrime:         {},
	CategoryDocumentary:   {},
}

var knownStyles = map[Style]struct{}{
	StyleRealistic: {},
	StyleCartoon:   {},
}

// Categories возвращает все поддерживаемые категории в стабильном порядке.
func Categories() []Category {
	return []Category{
		CategoryGaming,
		CategoryEducation,
		CategoryEntertainment,
		CategoryTechnology,
		CategoryLifestyle,
		CategoryMusic,
		CategoryCrime,
		CategoryDocumentary,
	}
}

// GenerateThumbnailRequest - входные данные на генерацию миниатюры.
// MainText/SubText не участвуют в промпте: клиент накладывает их поверх
// изображения сам, здесь они только сохраняются вместе с записью.
type GenerateThumbnailRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Style       Style    `json:"style,omitempty"`
	MainText    string   `json:"mainText,omitempty"`
	SubText     string   `json:"subText,omitempty"`
}

// Validate проверяет запрос по фиксированной схеме и подставляет стиль по
// умолчанию. Чистая функция от входа, без побочных эффектов.
func (r *GenerateThumbnailRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, ok := knownCategories[r.Category]; !ok {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, r.Category)
	}
	if r.Style == "" {
		r.Style = DefaultStyle
	} else if _, ok := knownStyles[r.Style]; !ok {
		return fmt.Errorf("%w: unknown style %q", ErrValidation, r.Style)
	}
	return nil
}

// Thumbnail - сохраненная запись об успешной генерации.
// ID и CreatedAt назначаются хранилищем и неизменяемы; TextSettings -
// непрозрачный JSON для клиентского редактора наложения текста, пайплайн
// его не заполняет.
type Thumbnail struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Category     Category        `json:"category"`
	Style        Style           `json:"style"`
	MainText     string          `json:"mainText,omitempty"`
	SubText      string          `json:"subText,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	TextSettings json.RawMessage `json:"textSettings,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
