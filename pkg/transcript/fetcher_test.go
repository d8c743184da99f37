package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTrack = `<?xml version="1.0" encoding="utf-8" ?>
<transcript>
  <text start="0.0" dur="2.1">Welcome to the course</text>
  <text start="2.1" dur="3.0">we&amp;#39;ll cover
  goroutines</text>
  <text start="5.1" dur="1.0"></text>
</transcript>`

func TestTimedTextFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc123def45", r.URL.Query().Get("v"))
		if r.URL.Query().Get("lang") != "en" {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(sampleTrack))
	}))
	defer server.Close()

	f := NewTimedTextFetcher(server.URL, "en")
	text, err := f.Fetch(context.Background(), "abc123def45")
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the course we'll cover goroutines", text)
}

func TestTimedTextFetcher_FallsBackAcrossLanguages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") == "en-US" {
			_, _ = w.Write([]byte(sampleTrack))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	text, err := NewTimedTextFetcher(server.URL, "en", "en-US").Fetch(context.Background(), "abc123def45")
	require.NoError(t, err)
	assert.Contains(t, text, "Welcome")
}

func TestTimedTextFetcher_NoTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := NewTimedTextFetcher(server.URL).Fetch(context.Background(), "abc123def45")
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestTimedTextFetcher_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewTimedTextFetcher(server.URL).Fetch(context.Background(), "abc123def45")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTranscript)
}
