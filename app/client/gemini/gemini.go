package gemini

import (
	"context"
	"net/http"
	"pukaar/app/config"
	"time"

	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

const (
	maxRetries     = 3
	retryDelay     = 2 * time.Second
	requestTimeout = 30 * time.Second
)

// Client wraps a single model behind an OpenAI-compatible endpoint.
// Every screening agent owns its own instance so models can differ per agent.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg config.ModelConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: requestTimeout,
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends a single-turn prompt and returns the raw text answer.
// Retries transient failures with a linearly growing delay.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := c.completeOnce(ctx, prompt)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			break
		}

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return "", oops.Wrap(ctx.Err())
			case <-time.After(retryDelay * time.Duration(attempt)):
			}
		}
	}

	return "", oops.Errorf("chat completion failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *Client) completeOnce(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	aiResponse, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxCompletionTokens: 1000,
		},
	)
	if err != nil {
		return "", oops.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", oops.Errorf("no chat completion found")
	}

	return aiResponse.Choices[0].Message.Content, nil
}

// CompleteJSON sends a prompt that instructs the model to answer with a JSON
// object and unmarshals the extracted object into out.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, out any) error {
	content, err := c.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	return DecodeJSON(content, out)
}
