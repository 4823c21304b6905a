package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"thumbnail-server/internal/config"
)

// Compile-time check
var _ Generator = (*GeminiGenerator)(nil)

// GeminiGenerator вызывает Gemini Developer API (generateContent) с
// мультимодальным ответом TEXT+IMAGE и извлекает inline-изображение из
// частей ответа.
type GeminiGenerator struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
	dumpDir string
}

// NewGeminiGenerator создает клиента Gemini из конфигурации.
func NewGeminiGenerator(logger *zap.Logger, cfg config.GeminiConfig, dumpDir string) *GeminiGenerator {
	return &GeminiGenerator{
		logger: logger.Named("GeminiGenerator"),
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		dumpDir: dumpDir,
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate отправляет промпт и возвращает первое inline-изображение из
// ответа. Текстовые части ответа собираются в Description.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (res *ImageResult, err error) {
	start := time.Now()
	defer func() { observeRequest("gemini", start, err) }()

	log := g.logger.With(zap.String("model", g.model))
	log.Info("Generating thumbnail image via Gemini")

	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("Gemini API request failed", zap.Error(err))
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Error("Gemini API returned non-OK status",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", respBody),
		)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if readErr != nil {
		return nil, fmt.Errorf("failed to read response body: %w", readErr)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 {
		return nil, ErrNoCandidates
	}
	content := parsed.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil, ErrNoContent
	}

	var description string
	for _, part := range content.Parts {
		if part.Text != "" {
			// Комментарий модели к сгенерированному изображению
			log.Debug("Gemini image generation commentary", zap.String("text", part.Text))
			description = part.Text
			continue
		}
		if part.InlineData != nil && part.InlineData.Data != "" {
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode inline image data: %w", err)
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			log.Info("Image data received from Gemini",
				zap.Int("size_bytes", len(data)),
				zap.String("mime_type", mimeType),
			)
			providerImageBytes.WithLabelValues("gemini").Observe(float64(len(data)))
			dumpImage(log, g.dumpDir, data)
			return &ImageResult{Data: data, MIMEType: mimeType, Description: description}, nil
		}
	}

	return nil, ErrNoImageData
}
