package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/bias-aware-recruitment/internal/logger"
)

const maxOutputTokens = 4096

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("no text content in response")

type GeminiService interface {
	GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error)
	Model() string
}

type geminiService struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	log       *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model string, timeout time.Duration, log *zap.Logger) (GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: model,
		timeout:   timeout,
		log:       logger.WithFields(log, zap.String(logger.FieldModel, model)),
	}, nil
}

// Model implements GeminiService.
func (g *geminiService) Model() string {
	return g.modelName
}

// GenerateJSON implements GeminiService. The call is bounded by the service
// timeout and is never retried.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  maxOutputTokens,
		ResponseMIMEType: "application/json",
	}

	started := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	g.log.Debug("gemini response received",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("chars", len(text)),
		zap.String("preview", logger.TruncateForLog(text, 120)),
	)

	return text, nil
}
