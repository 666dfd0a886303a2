package model

import (
	"strconv"
	"strings"
)

// Station represents a single entry from the station directory. Records are
// immutable once fetched; a new search replaces the whole list.
type Station struct {
	UUID      string
	Name      string
	StreamURL string
	Homepage  string
	Country   string
	Codec     string // codec hint, e.g. "MP3"
	Bitrate   int    // kbps hint, 0 if unknown
	Tags      []string
	Favorite  bool
}

// DisplayName returns the station name, falling back to the stream URL for
// directory entries with an empty name
func (s *Station) DisplayName() string {
	name := strings.TrimSpace(s.Name)
	if name != "" {
		return name
	}
	if s.StreamURL == "" {
		return "(unnamed station)"
	}
	return s.StreamURL
}

// TagLine returns a short descriptive line for list views: country, codec,
// bitrate and up to three tags
func (s *Station) TagLine() string {
	parts := make([]string, 0, 4)

	if s.Country != "" {
		parts = append(parts, s.Country)
	}

	if s.Codec != "" {
		codec := strings.ToUpper(s.Codec)
		if s.Bitrate > 0 {
			codec = codec + " " + strconv.Itoa(s.Bitrate) + "k"
		}
		parts = append(parts, codec)
	} else if s.Bitrate > 0 {
		parts = append(parts, strconv.Itoa(s.Bitrate)+"k")
	}

	if len(s.Tags) > 0 {
		tags := s.Tags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		parts = append(parts, strings.Join(tags, ", "))
	}

	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " · ")
}

// HasTag reports whether the station carries the given tag (case-insensitive)
func (s *Station) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
