package utils

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type Timestamp struct {
	Time    string `json:"time"` // HH:MM:SS
	Topic   string `json:"topic"`
	Seconds int    `json:"seconds"`
}

const dash = `[-–—]`

var (
	timeFirst = []*regexp.Regexp{
		regexp.MustCompile(`^\s*(\d{1,2}:\d{2}:\d{2})\s*` + dash + `\s*(.+?)\s*$`),
		regexp.MustCompile(`^\s*(\d{1,2}:\d{2})\s*` + dash + `\s*(.+?)\s*$`),
		regexp.MustCompile(`^\s*(\d{1,2}:\d{2}(?::\d{2})?)\s+(.+?)\s*$`),
	}
	topicFirst = []*regexp.Regexp{
		regexp.MustCompile(`^\s*(.+?)\s*` + dash + `\s*(\d{1,2}:\d{2}:\d{2})\s*$`),
		regexp.MustCompile(`^\s*(.+?)\s*` + dash + `\s*(\d{1,2}:\d{2})\s*$`),
	}
)

// ParseTimestamps extracts chapter markers such as "01:02:03 - Topic",
// "2:15 - Topic" or "Topic - 4:05" from a video description. Times are
// normalized to HH:MM:SS and the result is sorted by offset.
func ParseTimestamps(description string) []Timestamp {
	if description == "" {
		return []Timestamp{}
	}

	seen := make(map[string]struct{})
	out := make([]Timestamp, 0)

	for _, line := range strings.Split(description, "\n") {
		clock, topic, ok := matchLine(line)
		if !ok {
			continue
		}
		seconds, normalized, ok := normalizeClock(clock)
		if !ok {
			continue
		}
		key := normalized + "|" + topic
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Timestamp{Time: normalized, Topic: topic, Seconds: seconds})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Seconds < out[j].Seconds
	})
	return out
}

func matchLine(line string) (clock, topic string, ok bool) {
	for _, re := range timeFirst {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], m[2], true
		}
	}
	for _, re := range topicFirst {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[2], m[1], true
		}
	}
	return "", "", false
}

func normalizeClock(clock string) (int, string, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 {
		return 0, "", false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, "", false
		}
		nums[i] = n
	}
	if nums[1] > 59 || nums[2] > 59 {
		return 0, "", false
	}

	seconds := nums[0]*3600 + nums[1]*60 + nums[2]
	return seconds, fmt.Sprintf("%02d:%02d:%02d", nums[0], nums[1], nums[2]), true
}
