package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractPlaylistID returns the list parameter of a playlist URL.
func ExtractPlaylistID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}
	id := u.Query().Get("list")
	return id, id != ""
}

// ExtractVideoID accepts watch?v=, youtu.be/, /embed/ and /shorts/ URLs as
// well as a bare 11 character id.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if videoIDPattern.MatchString(raw) {
		return raw, true
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch {
	case host == "youtu.be":
		candidate = strings.Trim(u.Path, "/")
	case strings.HasSuffix(host, "youtube.com") || strings.HasSuffix(host, "youtube-nocookie.com"):
		if v := u.Query().Get("v"); v != "" {
			candidate = v
			break
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/v/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				candidate = strings.TrimPrefix(u.Path, prefix)
				break
			}
		}
	}

	if i := strings.IndexAny(candidate, "/?&"); i >= 0 {
		candidate = candidate[:i]
	}
	if !videoIDPattern.MatchString(candidate) {
		return "", false
	}
	return candidate, true
}
