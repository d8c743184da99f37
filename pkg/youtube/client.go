// Package youtube is a small client for the YouTube Data API v3 covering the
// playlist and video lookups the tracker needs.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"
	pageSize       = 50
)

var (
	ErrNotFound      = errors.New("youtube: resource not found")
	ErrQuotaExceeded = errors.New("youtube: quota exceeded")
	ErrMissingAPIKey = errors.New("youtube: api key not configured")
)

type Playlist struct {
	Id           string
	Title        string
	Description  string
	Thumbnail    string
	ChannelTitle string
	ItemCount    int
	PublishedAt  string
}

type Video struct {
	YtId         string
	Title        string
	Description  string
	Thumbnail    string
	Duration     string // ISO 8601, e.g. PT12M3S
	ViewCount    int64
	LikeCount    int64
	PublishedAt  *time.Time
	ChannelTitle string
	Position     int
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, resource string, params url.Values, result any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	params.Set("key", c.apiKey)
	apiURL := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp apiError
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		for _, e := range errResp.Error.Errors {
			switch e.Reason {
			case "quotaExceeded", "rateLimitExceeded", "dailyLimitExceeded":
				return ErrQuotaExceeded
			case "playlistNotFound", "videoNotFound":
				return ErrNotFound
			}
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusTooManyRequests:
			return ErrQuotaExceeded
		}
		if errResp.Error.Message != "" {
			return fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type thumbnail struct {
	URL string `json:"url"`
}

type thumbnails struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
}

// best prefers the medium size, which is what the UI renders.
func (t thumbnails) best() string {
	for _, th := range []*thumbnail{t.Medium, t.High, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

type snippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
	Thumbnails   thumbnails `json:"thumbnails"`
	Position     int        `json:"position"`
}

// GetPlaylist returns the playlist metadata.
func (c *Client) GetPlaylist(ctx context.Context, playlistId string) (*Playlist, error) {
	var resp struct {
		Items []struct {
			Id             string  `json:"id"`
			Snippet        snippet `json:"snippet"`
			ContentDetails struct {
				ItemCount int `json:"itemCount"`
			} `json:"contentDetails"`
		} `json:"items"`
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", playlistId)
	if err := c.get(ctx, "playlists", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, ErrNotFound
	}

	item := resp.Items[0]
	return &Playlist{
		Id:           item.Id,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		Thumbnail:    item.Snippet.Thumbnails.best(),
		ChannelTitle: item.Snippet.ChannelTitle,
		ItemCount:    item.ContentDetails.ItemCount,
		PublishedAt:  item.Snippet.PublishedAt,
	}, nil
}

// ListPlaylistVideos pages through the playlist and resolves details for every
// item, returning the videos ordered by playlist position. Deleted or private
// items without details are skipped.
func (c *Client) ListPlaylistVideos(ctx context.Context, playlistId string) ([]Video, error) {
	var videos []Video
	pageToken := ""

	for {
		var page struct {
			NextPageToken string `json:"nextPageToken"`
			Items         []struct {
				Snippet        snippet `json:"snippet"`
				ContentDetails struct {
					VideoId string `json:"videoId"`
				} `json:"contentDetails"`
			} `json:"items"`
		}

		params := url.Values{}
		params.Set("part", "snippet,contentDetails")
		params.Set("playlistId", playlistId)
		params.Set("maxResults", fmt.Sprint(pageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}
		if err := c.get(ctx, "playlistItems", params, &page); err != nil {
			return nil, err
		}

		ids := make([]string, 0, len(page.Items))
		positions := make(map[string]int, len(page.Items))
		for _, item := range page.Items {
			id := item.ContentDetails.VideoId
			if id == "" {
				continue
			}
			ids = append(ids, id)
			positions[id] = item.Snippet.Position
		}

		if len(ids) > 0 {
			details, err := c.GetVideos(ctx, ids)
			if err != nil {
				return nil, err
			}
			for _, v := range details {
				v.Position = positions[v.YtId]
				videos = append(videos, v)
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Position < videos[j].Position
	})
	return videos, nil
}

// GetVideos resolves up to 50 video ids in a single call.
func (c *Client) GetVideos(ctx context.Context, ids []string) ([]Video, error) {
	var resp struct {
		Items []struct {
			Id             string  `json:"id"`
			Snippet        snippet `json:"snippet"`
			ContentDetails struct {
				Duration string `json:"duration"`
			} `json:"contentDetails"`
			Statistics struct {
				ViewCount string `json:"viewCount"`
				LikeCount string `json:"likeCount"`
			} `json:"statistics"`
		} `json:"items"`
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", fmt.Sprint(pageSize))
	if err := c.get(ctx, "videos", params, &resp); err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := Video{
			YtId:         item.Id,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    item.Snippet.Thumbnails.best(),
			Duration:     item.ContentDetails.Duration,
			ViewCount:    parseCount(item.Statistics.ViewCount),
			LikeCount:    parseCount(item.Statistics.LikeCount),
			ChannelTitle: item.Snippet.ChannelTitle,
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			v.PublishedAt = &t
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// GetVideo returns a single video or ErrNotFound.
func (c *Client) GetVideo(ctx context.Context, videoId string) (*Video, error) {
	videos, err := c.GetVideos(ctx, []string{videoId})
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNotFound
	}
	return &videos[0], nil
}

// statistics counts arrive as decimal strings
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
