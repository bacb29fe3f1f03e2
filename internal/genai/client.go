// Package genai provides the generative text backend used for fallback
// replies and package description enrichment.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single prompt turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer defines the generative backend contract: prompt in, text out.
// The returned text is untrusted free text; callers that expect structure
// (e.g. a candidate index) must parse and bounds-check it themselves.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error)
}

// Client calls an OpenAI-compatible chat completions API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// Config holds generative client configuration.
type Config struct {
	APIKey  string
	Model   string // e.g. "gpt-4o-mini"
	BaseURL string // Default: https://api.openai.com/v1
	Timeout time.Duration
}

// NewClient creates a new generative backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}, nil
}

// completionRequest represents a chat completions request.
type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// completionResponse represents the API response.
type completionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete sends the prompt to the chat completions endpoint and returns
// the first choice's text, trimmed. maxTokens <= 0 leaves the limit to the
// backend; temperature < 0 uses the backend default.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	reqBody := completionRequest{
		Model:    c.model,
		Messages: messages,
	}
	if maxTokens > 0 {
		reqBody.MaxTokens = maxTokens
	}
	if temperature >= 0 {
		reqBody.Temperature = &temperature
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp completionResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("API error: %s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return "", fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var compResp completionResponse
	if err := json.Unmarshal(body, &compResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(compResp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return strings.TrimSpace(compResp.Choices[0].Message.Content), nil
}

// Model returns the model being used.
func (c *Client) Model() string {
	return c.model
}

// MockCompleter provides a scripted completer for testing.
type MockCompleter struct {
	// Replies are returned in order; once exhausted, Reply is returned.
	Replies []string
	Reply   string
	Err     error

	// Calls records every prompt received.
	Calls [][]ChatMessage

	next int
}

// Complete returns the next scripted reply.
func (m *MockCompleter) Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	m.Calls = append(m.Calls, messages)
	if m.Err != nil {
		return "", m.Err
	}
	if m.next < len(m.Replies) {
		reply := m.Replies[m.next]
		m.next++
		return reply, nil
	}
	return m.Reply, nil
}

// Ensure implementations satisfy the interface.
var (
	_ Completer = (*Client)(nil)
	_ Completer = (*MockCompleter)(nil)
)
