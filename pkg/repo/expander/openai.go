// Package expander provides best-effort LLM query expansion. Failures only
// reduce response richness; the caller falls back to the original query.
package expander

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "Rewrite the user's natural-language code-search query into a short, " +
	"keyword-rich search query. Add relevant technical synonyms. " +
	"Reply with the rewritten query only, no explanation."

const (
	defaultModel   = openai.GPT4oMini
	maxOutputToken = 96
	temperature    = 0.2
)

// Config holds configuration for the query expander. Expansion is disabled
// unless an API key is configured.
type Config struct {
	APIKey  string `mapstructure:"api_key"` //nolint:gosec // config field, not a secret value
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Client expands queries through an OpenAI-compatible chat completion API.
type Client struct {
	client *openai.Client
	model  string
}

// New creates a query expansion client.
func New(cfg Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{client: openai.NewClientWithConfig(clientCfg), model: model}
}

// Expand rewrites the query text for better recall. Any transport or model
// failure is returned to the caller, which is expected to fall back to the
// original text.
func (c *Client) Expand(ctx context.Context, text string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxOutputToken,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to expand query: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("query expansion returned no choices")
	}

	expanded := strings.TrimSpace(resp.Choices[0].Message.Content)
	if expanded == "" {
		return "", fmt.Errorf("query expansion returned empty content")
	}

	return expanded, nil
}
