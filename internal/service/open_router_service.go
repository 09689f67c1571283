package service

import (
	"context"
	"fmt"

	"github.com/adityarahmanda/careerisk/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterService is the fallback text provider, selected with
// TEXT_PROVIDER=openrouter. It speaks the chat-completions API and has no
// embedding model, so benchmark retrieval is skipped under it.
type OpenRouterService struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
	log     *zap.Logger
}

func NewOpenRouterService(log *zap.Logger) *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		client:  resty.New(),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		log:     log,
	}
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post(s.baseURL + "/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		s.log.Error("openrouter request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return "", fmt.Errorf("openrouter returned status %d", resp.StatusCode())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}

func (s *OpenRouterService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("openrouter provider does not support embeddings")
}
