package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"thumbnail-server/internal/models"
	"thumbnail-server/internal/repository"
)

// generateThumbnail - POST /api/thumbnails/generate.
// Полный пайплайн выполняется до отправки ответа, стриминга нет.
func (h *ThumbnailHandler) generateThumbnail(c *gin.Context) {
	var dto GenerateThumbnailRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.logger.Warn("Malformed generation request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, APIError{Message: "invalid request body"})
		return
	}

	record, err := h.service.Generate(c.Request.Context(), dto.toModel())
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, toThumbnailResponse(record))
}

// getThumbnail - GET /api/thumbnails/:id.
func (h *ThumbnailHandler) getThumbnail(c *gin.Context) {
	id := c.Param("id")

	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, toThumbnailResponse(record))
}

// listRecentThumbnails - GET /api/thumbnails?limit=N.
func (h *ThumbnailHandler) listRecentThumbnails(c *gin.Context) {
	limit := repository.DefaultRecentLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 {
			h.logger.Warn("Invalid limit parameter received", zap.String("limit", limitStr), zap.Error(err))
			c.JSON(http.StatusBadRequest, APIError{Message: "invalid 'limit' parameter"})
			return
		}
		if parsedLimit > maxRecentLimit {
			parsedLimit = maxRecentLimit
		}
		limit = parsedLimit
	}

	records, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, lo.Map(records, func(record *models.Thumbnail, _ int) ThumbnailResponseDTO {
		return toThumbnailResponse(record)
	}))
}
