package models_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumbnail-server/internal/models"
)

func TestGenerateThumbnailRequestValidate(t *testing.T) {
	t.Run("valid request with explicit style", func(t *testing.T) {
		req := models.GenerateThumbnailRequest{
			Title:    "Epic Win",
			Category: models.CategoryGaming,
			Style:    models.StyleCartoon,
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, models.StyleCartoon, req.Style)
	})

	t.Run("style defaults to realistic when absent", func(t *testing.T) {
		req := models.GenerateThumbnailRequest{
			Title:    "Epic Win",
			Category: models.CategoryGaming,
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, models.StyleRealistic, req.Style)
	})

	t.Run("missing title", func(t *testing.T) {
		req := models.GenerateThumbnailRequest{
			Category: models.CategoryGaming,
		}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrValidation))
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("whitespace-only title", func(t *testing.T) {
		req := models.GenerateThumbnailRequest{
			Title:    "   ",
			Category: models.CategoryGaming,
		}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrValidation))
	})

	t.Run("unknown category", func(t *testing.T) {
		req := models.GenerateThumbnailRequest{
			Title:    "Epic Win",
			Category: models.Category("podcasts"),
		}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrValidation))
		assert.Contains(t, err.Error(), "category")
	})

	t.Run("unknown style", func(t *testing.T) {
		req := models.GenerateThumbnailRequest{
			Title:    "Epic Win",
			Category: models.CategoryGaming,
			Style:    models.Style("watercolor"),
		}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrValidation))
		assert.Contains(t, err.Error(), "style")
	})

	t.Run("all known categories pass", func(t *testing.T) {
		for _, category := range models.Categories() {
			req := models.GenerateThumbnailRequest{
				Title:    "Some Title",
				Category: category,
			}
			assert.NoError(t, req.Validate(), "category %s", category)
		}
	})
}
