// Package handler - HTTP слой сервиса миниатюр (gin).
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"thumbnail-server/internal/models"
	"thumbnail-server/internal/service"
)

// maxRecentLimit - верхняя граница limit для списка недавних.
const maxRecentLimit = 100

// ThumbnailHandler обрабатывает HTTP запросы к сервису миниатюр.
type ThumbnailHandler struct {
	service service.ThumbnailService
	logger  *zap.Logger
}

// NewThumbnailHandler создает новый ThumbnailHandler.
func NewThumbnailHandler(s service.ThumbnailService, logger *zap.Logger) *ThumbnailHandler {
	return &ThumbnailHandler{
		service: s,
		logger:  logger.Named("ThumbnailHandler"),
	}
}

// RegisterRoutes регистрирует маршруты сервиса миниатюр.
func (h *ThumbnailHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.POST("/thumbnails/generate", h.generateThumbnail)
		api.GET("/thumbnails", h.listRecentThumbnails)
		api.GET("/thumbnails/:id", h.getThumbnail)
	}
}

// handleServiceError переводит ошибки сервиса в HTTP статусы.
// Ошибки валидации и провайдера различаются статусом (400 против 502),
// текст ошибки провайдера доносится до клиента как есть.
func handleServiceError(c *gin.Context, err error, log *zap.Logger) {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrValidation):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrGenerationFailed):
		statusCode = http.StatusBadGateway
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Thumbnail not found"}
	case errors.Is(err, models.ErrStore):
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	default:
		log.Error("Unhandled service error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}

	c.JSON(statusCode, apiErr)
}
