package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"thumbnail-server/internal/config"
)

// Compile-time check
var _ Generator = (*OpenAIGenerator)(nil)

// OpenAIGenerator - альтернативный провайдер на базе DALL-E.
// Выбирается конфигурацией IMAGE_PROVIDER=openai.
type OpenAIGenerator struct {
	logger  *zap.Logger
	client  *openai.Client
	model   string
	size    string
	dumpDir string
}

// NewOpenAIGenerator создает клиента OpenAI из конфигурации.
func NewOpenAIGenerator(logger *zap.Logger, cfg config.OpenAIConfig, dumpDir string) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.TimeoutSec > 0 {
		if hc, ok := clientCfg.HTTPClient.(*http.Client); ok {
			hc.Timeout = time.Duration(cfg.TimeoutSec) * time.Second
		}
	}
	return &OpenAIGenerator{
		logger:  logger.Named("OpenAIGenerator"),
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		size:    cfg.Size,
		dumpDir: dumpDir,
	}
}

// Generate запрашивает одно изображение в формате b64_json.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (res *ImageResult, err error) {
	start := time.Now()
	defer func() { observeRequest("openai", start, err) }()

	log := g.logger.With(zap.String("model", g.model))
	log.Info("Generating thumbnail image via OpenAI")

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		Size:           g.size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		log.Error("OpenAI image request failed", zap.Error(err))
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoCandidates
	}
	item := resp.Data[0]
	if item.B64JSON == "" {
		return nil, ErrNoImageData
	}

	data, err := base64.StdEncoding.DecodeString(item.B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	log.Info("Image data received from OpenAI", zap.Int("size_bytes", len(data)))
	providerImageBytes.WithLabelValues("openai").Observe(float64(len(data)))
	dumpImage(log, g.dumpDir, data)

	// DALL-E отдает PNG; revised prompt сохраняем как комментарий
	return &ImageResult{Data: data, MIMEType: "image/png", Description: item.RevisedPrompt}, nil
}
