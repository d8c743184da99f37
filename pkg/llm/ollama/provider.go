package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"learnloop-be/pkg/llm"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "gemma:2b"

	// Ollama loads models with a 2048 token window, which cuts a full
	// transcript prompt short.
	DefaultContextWindow = 8192
)

// ErrModelNotPulled is returned when the server does not have the model locally.
var ErrModelNotPulled = errors.New("ollama: model not pulled")

// Provider calls the /api/chat endpoint of an Ollama server.
type Provider struct {
	baseURL       string
	model         string
	contextWindow int
	keepAlive     string
	client        *http.Client
}

var _ llm.LLMProvider = &Provider{}

type ProviderOption func(*Provider)

// WithContextWindow sets num_ctx for every request. Zero keeps the server default.
func WithContextWindow(tokens int) ProviderOption {
	return func(p *Provider) {
		p.contextWindow = tokens
	}
}

// WithKeepAlive controls how long the model stays loaded after a call, e.g. "10m".
func WithKeepAlive(d string) ProviderOption {
	return func(p *Provider) {
		p.keepAlive = d
	}
}

func WithHTTPClient(c *http.Client) ProviderOption {
	return func(p *Provider) {
		p.client = c
	}
}

func NewProvider(baseURL, model string, opts ...ProviderOption) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	p := &Provider{
		baseURL:       baseURL,
		model:         model,
		contextWindow: DefaultContextWindow,
		// local models can take a while to load on the first call
		client: &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) BaseURL() string { return p.baseURL }
func (p *Provider) Model() string   { return p.model }

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []llm.Message `json:"messages"`
	Stream    bool          `json:"stream"`
	KeepAlive string        `json:"keep_alive,omitempty"`
	Options   chatOptions   `json:"options"`
}

type chatOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
	NumCtx      int      `json:"num_ctx,omitempty"`
}

type chatResponse struct {
	Message    llm.Message `json:"message"`
	Done       bool        `json:"done"`
	DoneReason string      `json:"done_reason,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{
		Model:       p.model,
		Temperature: -1,
	}
	for _, o := range options {
		o(opts)
	}

	messages := make([]llm.Message, len(history))
	for i, msg := range history {
		messages[i] = msg
		if msg.Role == "model" {
			messages[i].Role = "assistant"
		}
	}

	reqBody := chatRequest{
		Model:     opts.Model,
		Messages:  messages,
		KeepAlive: p.keepAlive,
		Options: chatOptions{
			NumPredict: opts.MaxTokens,
			NumCtx:     p.contextWindow,
		},
	}
	if opts.Temperature >= 0 {
		t := opts.Temperature
		reqBody.Options.Temperature = &t
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	decodeErr := json.Unmarshal(bodyBytes, &chatResp)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %s", llm.ErrRateLimited, string(bodyBytes))
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrModelNotPulled, opts.Model)
	case resp.StatusCode != http.StatusOK:
		if decodeErr == nil && chatResp.Error != "" {
			return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, chatResp.Error)
		}
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if chatResp.Error != "" {
		return "", fmt.Errorf("ollama error: %s", chatResp.Error)
	}

	return chatResp.Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
