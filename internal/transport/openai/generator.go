package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/metrics"
)

// Generator is a chat-completion provider using the OpenAI-compatible API.
// Temperature is pinned to zero so stat answers stay reproducible.
type Generator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewGenerator creates an OpenAI-compatible chat completion provider.
func NewGenerator(cfg *Config) *Generator {
	return &Generator{
		client: newClient(cfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Generate implements domain.Generator.
func (g *Generator) Generate(ctx context.Context, prompt string) (domain.GenerationResult, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	kind := metrics.KindGeneration

	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues(kind, g.model, "error").Inc()
		metrics.ModelErrorsTotal.WithLabelValues(kind, g.model, "api_error").Inc()
		return domain.GenerationResult{}, parseAPIError(err, domain.ErrGenerationProviderError)
	}

	if len(resp.Choices) == 0 {
		metrics.ModelRequestsTotal.WithLabelValues(kind, g.model, "error").Inc()
		metrics.ModelErrorsTotal.WithLabelValues(kind, g.model, "empty_response").Inc()
		return domain.GenerationResult{}, fmt.Errorf("empty completion response: %w", domain.ErrGenerationProviderError)
	}

	metrics.ModelRequestsTotal.WithLabelValues(kind, g.model, "success").Inc()
	metrics.ModelRequestDuration.WithLabelValues(kind, g.model).Observe(duration.Seconds())

	usage := resp.Usage
	if usage.TotalTokens > 0 {
		metrics.ModelTokensTotal.WithLabelValues(kind, g.model, "prompt").Add(float64(usage.PromptTokens))
		metrics.ModelTokensTotal.WithLabelValues(kind, g.model, "completion").Add(float64(usage.CompletionTokens))
		metrics.ModelTokensTotal.WithLabelValues(kind, g.model, "total").Add(float64(usage.TotalTokens))
	}

	return domain.GenerationResult{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}
