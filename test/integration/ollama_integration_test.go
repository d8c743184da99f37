package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"learnloop-be/pkg/llm"
	"learnloop-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a local Ollama server, e.g. `ollama run gemma:2b`.
func TestOllamaProvider_Summary(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "gemma:2b"
	}

	// first request can be slow while the model loads
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider := ollama.NewProvider(baseURL, model)
	reply, err := provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: "You summarize programming lessons in one sentence."},
		{Role: "user", Content: "Transcript: goroutines are lightweight threads managed by the Go runtime. Channels let them communicate."},
	}, llm.WithTemperature(0.2), llm.WithMaxTokens(120))
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(reply))
	t.Logf("summary: %s", reply)
}
