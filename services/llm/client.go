package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultTimeout is longer for LLM inference requests
	DefaultTimeout = 120 * time.Second
	// DefaultModel is the default chat model
	DefaultModel = "llama-3.3-70b-versatile"
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured
var ErrMissingAPIKey = errors.New("LLM API key is not configured")

// Client handles chat completion calls against an OpenAI-compatible API
type Client struct {
	api   *openai.Client
	model string
	topP  float32
}

// Config holds configuration for the LLM client
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	TopP    float32
	Timeout time.Duration
}

// NewClient creates a new chat completion client.
// It fails when the API key is missing so callers can treat the backend as unavailable.
func NewClient(config Config) (*Client, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: config.Timeout,
	}

	return &Client{
		api:   openai.NewClientWithConfig(clientConfig),
		model: config.Model,
		topP:  config.TopP,
	}, nil
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

// Option is a function that modifies the completion request
type Option func(*openai.ChatCompletionRequest)

// WithTemperature sets the temperature for the request
func WithTemperature(temp float32) Option {
	return func(req *openai.ChatCompletionRequest) {
		req.Temperature = temp
	}
}

// WithMaxTokens sets the max output tokens for the request
func WithMaxTokens(tokens int) Option {
	return func(req *openai.ChatCompletionRequest) {
		req.MaxTokens = tokens
	}
}

// WithResponseFormatJSON enables JSON object output mode
func WithResponseFormatJSON() Option {
	return func(req *openai.ChatCompletionRequest) {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
}

// ChatCompletion sends a chat completion request and returns the first choice's content
func (c *Client) ChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, options ...Option) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		TopP:     c.topP,
	}

	for _, opt := range options {
		opt(&req)
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from completion API")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// SimpleCompletion is a convenience method for single-turn completions
func (c *Client) SimpleCompletion(ctx context.Context, systemPrompt, userPrompt string, options ...Option) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}

	return c.ChatCompletion(ctx, messages, options...)
}
