package factory

import (
	"errors"
	"fmt"

	"learnloop-be/pkg/llm"
	"learnloop-be/pkg/llm/ollama"
	"learnloop-be/pkg/llm/openai"
)

// ErrMissingAPIKey is returned for hosted providers configured without a key.
var ErrMissingAPIKey = errors.New("llm api key not configured")

type Config struct {
	Provider string // openai or ollama
	Model    string
	BaseURL  string
	APIKey   string

	// ollama only
	ContextWindow int
	KeepAlive     string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "":
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return openai.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		opts := []ollama.ProviderOption{ollama.WithKeepAlive(cfg.KeepAlive)}
		if cfg.ContextWindow > 0 {
			opts = append(opts, ollama.WithContextWindow(cfg.ContextWindow))
		}
		return ollama.NewProvider(cfg.BaseURL, cfg.Model, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
