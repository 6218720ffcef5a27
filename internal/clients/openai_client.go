package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/monitoring"
	"github.com/spacesedan/stocksage/internal/prompt"
)

const openAIRequestTimeout = 60 * time.Second

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	if timeout <= 0 {
		timeout = openAIRequestTimeout
	}
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", timeout))

	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModel(model),
	}
}

func (c *OpenAIClient) ModelName() string {
	return string(c.model)
}

// Generate runs one chat completion and returns the raw message content.
func (c *OpenAIClient) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.User),
		},
	})
	monitoring.RecordUpstream("openai", err)
	if err != nil {
		return "", fmt.Errorf("[OpenAIClient] openai API error: %w: %w", models.ErrUpstreamUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("[OpenAIClient] no response from openai: %w", models.ErrMalformedResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
