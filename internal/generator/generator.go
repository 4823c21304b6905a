// Package generator содержит адаптеры внешних провайдеров генерации
// изображений. Оркестратор зависит только от интерфейса Generator, поэтому
// в тестах провайдер подменяется детерминированной заглушкой.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Ошибки провайдера. Отсутствие картинки - всегда ошибка: подстановка
// изображения-заглушки запрещена.
var (
	ErrNoCandidates = errors.New("provider returned no candidates")
	ErrNoContent    = errors.New("provider response has no content parts")
	ErrNoImageData  = errors.New("provider response contains no image data")
)

// ImageResult - результат успешной генерации: байты изображения с MIME
// типом и необязательный текстовый комментарий провайдера.
type ImageResult struct {
	Data        []byte
	MIMEType    string
	Description string
}

// Generator - единственная операция внешнего провайдера.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*ImageResult, error)
}

var (
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_provider_requests_total",
			Help: "Total number of requests to the image generation provider.",
		},
		[]string{"provider", "status"},
	)
	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thumbnail_provider_request_duration_seconds",
			Help:    "Histogram of image generation request durations.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s .. ~256s
		},
		[]string{"provider"},
	)
	providerImageBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thumbnail_provider_image_bytes",
			Help:    "Histogram of generated image sizes in bytes.",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10),
		},
		[]string{"provider"},
	)
)

func observeRequest(provider string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	providerRequestsTotal.WithLabelValues(provider, status).Inc()
	providerRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// dumpImage пишет диагностическую копию байтов в dir. Ошибка записи
// логируется и не возвращается: копия никогда не обязана получиться.
func dumpImage(log *zap.Logger, dir string, data []byte) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn("Failed to create image dump directory", zap.String("dir", dir), zap.Error(err))
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("thumbnail_%d.png", time.Now().UnixNano()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Warn("Failed to dump generated image", zap.String("path", path), zap.Error(err))
		return
	}
	log.Debug("Generated image dumped", zap.String("path", path))
}
