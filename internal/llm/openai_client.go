// ABOUTME: OpenAI chat client driving the assistant's conversational model
// ABOUTME: Wraps go-openai with bounded retry and jittered backoff
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/BigLebowskii/ai-voice-assistant/internal/util"
)

// DefaultChatModel is used when no model is configured.
const DefaultChatModel = "gpt-4o-mini"

// ClientConfig holds configuration for the OpenAI client.
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	MaxRetries int
	RetryDelay time.Duration
}

// Client wraps the OpenAI API client with retry logic.
type Client struct {
	client     *openai.Client
	chatModel  string
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a chat client. The API key is required.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	model := cfg.ChatModel
	if model == "" {
		model = DefaultChatModel
	}
	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = 2 * time.Second
	}

	return &Client{
		client:     openai.NewClient(cfg.APIKey),
		chatModel:  model,
		maxRetries: cfg.MaxRetries,
		retryDelay: retryDelay,
	}, nil
}

// Complete runs one chat completion over the given history, offering the
// model the supplied tools, and returns the first choice message.
func (c *Client) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.Backoff(c.retryDelay, attempt)):
			case <-ctx.Done():
				return openai.ChatCompletionMessage{}, ctx.Err()
			}
		}

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.chatModel,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no choices returned", attempt+1)
			continue
		}
		return resp.Choices[0].Message, nil
	}

	return openai.ChatCompletionMessage{}, fmt.Errorf("chat completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
