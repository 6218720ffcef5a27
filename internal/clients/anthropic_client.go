package clients

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/monitoring"
	"github.com/spacesedan/stocksage/internal/prompt"
)

const anthropicMaxTokens = 1024

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	slog.Info("[AnthropicClient] Anthropic client initialized", slog.String("model", model))
	return &AnthropicClient{
		client: &client,
		model:  anthropic.Model(model),
	}
}

func (c *AnthropicClient) ModelName() string {
	return string(c.model)
}

func (c *AnthropicClient) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: p.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
	})
	monitoring.RecordUpstream("anthropic", err)
	if err != nil {
		return "", fmt.Errorf("[AnthropicClient] anthropic API error: %w: %w", models.ErrUpstreamUnavailable, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("[AnthropicClient] no response from anthropic: %w", models.ErrMalformedResponse)
	}

	return sb.String(), nil
}
