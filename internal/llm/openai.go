// Package llm provides the OpenAI-compatible chat transport used by the
// remote detection stage. Any endpoint that speaks the chat-completions
// protocol works; the base URL is configurable.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is a small, cheap model; language identification does
	// not need a frontier one.
	DefaultModel = "gpt-4o-mini"
	// DefaultTimeout bounds one completion call. The detection engine
	// treats a timeout like any other remote failure.
	DefaultTimeout = 20 * time.Second
)

type Options struct {
	// Endpoint overrides the OpenAI base URL, for self-hosted
	// OpenAI-compatible servers. Empty uses the library default.
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Client wraps one chat-completion backend.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		cfg.BaseURL = strings.TrimRight(endpoint, "/")
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Complete sends one prompt and returns the model's raw text reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("llm client is not initialized")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
