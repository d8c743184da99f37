package factory

import (
	"testing"

	"learnloop-be/pkg/llm/ollama"
	"learnloop-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)

	p, err = NewLLMProvider(Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	o := p.(*ollama.Provider)
	assert.Equal(t, ollama.DefaultBaseURL, o.BaseURL())
	assert.Equal(t, "llama3", o.Model())

	_, err = NewLLMProvider(Config{Provider: "openai"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewLLMProvider(Config{Provider: "gemini"})
	assert.Error(t, err)
}
