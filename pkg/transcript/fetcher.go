// Package transcript downloads caption tracks from the YouTube timedtext
// endpoint and flattens them to plain text.
package transcript

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://video.google.com/timedtext"

var ErrNoTranscript = errors.New("no transcript available for this video")

type Fetcher interface {
	Fetch(ctx context.Context, ytId string) (string, error)
}

type TimedTextFetcher struct {
	baseURL    string
	languages  []string
	httpClient *http.Client
}

func NewTimedTextFetcher(baseURL string, languages ...string) *TimedTextFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if len(languages) == 0 {
		languages = []string{"en", "en-US", "en-GB"}
	}
	return &TimedTextFetcher{
		baseURL:    baseURL,
		languages:  languages,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start string `xml:"start,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch tries each configured language in order and returns the first
// non-empty track with segments joined by single spaces.
func (f *TimedTextFetcher) Fetch(ctx context.Context, ytId string) (string, error) {
	for _, lang := range f.languages {
		text, err := f.fetchLanguage(ctx, ytId, lang)
		if errors.Is(err, ErrNoTranscript) {
			continue
		}
		if err != nil {
			return "", err
		}
		return text, nil
	}
	return "", ErrNoTranscript
}

func (f *TimedTextFetcher) fetchLanguage(ctx context.Context, ytId, lang string) (string, error) {
	params := url.Values{}
	params.Set("v", ytId)
	params.Set("lang", lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNoTranscript
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", ErrNoTranscript
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	segments := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		// captions are HTML-escaped inside the XML payload
		s := strings.Join(strings.Fields(html.UnescapeString(t.Body)), " ")
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return "", ErrNoTranscript
	}
	return strings.Join(segments, " "), nil
}
