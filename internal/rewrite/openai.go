package rewrite

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/echoverse-team/echoverse/mapsafe"
)

// OpenAIConfig holds the configuration for the OpenAI-compatible provider.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAI rewrites text through any OpenAI-compatible chat completions
// endpoint (api.openai.com, llama.cpp server, ollama, ...).
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a new OpenAI-compatible rewrite provider.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("openai provider requires an API key or a custom base URL")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

// Provider returns the provider identifier.
func (p *OpenAI) Provider() Provider {
	return ProviderOpenAI
}

// Rewrite sends the rewrite prompt as a single-turn chat completion.
func (p *OpenAI) Rewrite(ctx context.Context, req *Request) (*Result, error) {
	model := mapsafe.Get(req.Parameters, "model", p.model)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: float32(req.Creativity),
		MaxTokens:   req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt(),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, ErrEmptyCompletion
	}

	text := resp.Choices[0].Message.Content

	return &Result{
		Text: text,
		Metadata: &ResultMetadata{
			Provider:    p.Provider(),
			Model:       model,
			Timestamp:   time.Now(),
			OutputChars: len(text),
			ProviderSpecific: map[string]any{
				"prompt_tokens":     resp.Usage.PromptTokens,
				"completion_tokens": resp.Usage.CompletionTokens,
				"finish_reason":     string(resp.Choices[0].FinishReason),
			},
		},
	}, nil
}

// Close cleans up resources. The HTTP client has nothing to release.
func (p *OpenAI) Close() error {
	return nil
}
