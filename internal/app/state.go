package app

import (
	"github.com/airwav/airwav/internal/directory"
	"github.com/airwav/airwav/internal/model"
)

// View enumerates the main screens
type View int

const (
	ViewBrowse View = iota
	ViewSearch
	ViewNowPlaying
)

// String returns the view name
func (v View) String() string {
	switch v {
	case ViewBrowse:
		return "Browse"
	case ViewSearch:
		return "Search"
	case ViewNowPlaying:
		return "NowPlaying"
	default:
		return "Unknown"
	}
}

// BannerKind classifies the error banner
type BannerKind int

const (
	BannerLookup BannerKind = iota
	BannerPlayback
)

// String returns the banner kind name
func (k BannerKind) String() string {
	switch k {
	case BannerLookup:
		return "Lookup"
	case BannerPlayback:
		return "Playback"
	default:
		return "Unknown"
	}
}

// Banner is a dismissable error overlay
type Banner struct {
	Kind    BannerKind
	Message string
}

// State is the rendered snapshot. It is replaced, never mutated in place, by
// each processed event; Snapshot hands out deep copies.
type State struct {
	View     View
	Stations []model.Station
	Session  *model.PlaybackSession
	// PendingLookup is set while a directory search is in flight
	PendingLookup bool
	// PendingPlayback is set between a start command and its Connected or
	// Failed event
	PendingPlayback bool
	Banner          *Banner
	Volume          int
	Query           directory.Query
	// Generation tags the latest issued search; older results are stale
	Generation uint64
}

func (s *State) clone() State {
	c := *s
	if s.Stations != nil {
		c.Stations = make([]model.Station, len(s.Stations))
		copy(c.Stations, s.Stations)
	}
	c.Session = s.Session.Clone()
	if s.Banner != nil {
		b := *s.Banner
		c.Banner = &b
	}
	return c
}
