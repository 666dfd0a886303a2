package platform

import (
	"bufio"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Playlist size guard; directory entries should never point at anything big
const MaxPlaylistBytes = 256 * 1024

// IsPlaylistURL reports whether the URL points at an M3U or PLS playlist
// rather than a raw audio stream
func IsPlaylistURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".m3u", ".m3u8", ".pls":
		return true
	}
	return false
}

// ParsePlaylist extracts stream URLs from M3U or PLS playlist content. The
// format is detected from the content itself, not the URL.
func ParsePlaylist(data string) ([]string, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, fmt.Errorf("empty playlist")
	}

	var urls []string
	if strings.HasPrefix(trimmed, "[playlist]") {
		urls = parsePLS(trimmed)
	} else {
		urls = parseM3U(trimmed)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("playlist contains no stream URLs")
	}
	return urls, nil
}

func parseM3U(data string) []string {
	var urls []string
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isStreamURL(line) {
			urls = append(urls, line)
		}
	}
	return urls
}

func parsePLS(data string) []string {
	var urls []string
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Entries look like File1=http://...
		if !strings.HasPrefix(strings.ToLower(line), "file") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		if isStreamURL(value) {
			urls = append(urls, value)
		}
	}
	return urls
}

func isStreamURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
