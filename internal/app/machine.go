package app

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/airwav/airwav/internal/directory"
	"github.com/airwav/airwav/internal/model"
	"github.com/airwav/airwav/internal/player"
)

// Machine is the application state machine. All methods run on the event
// loop's goroutine; the machine itself never spawns goroutines and never
// blocks.
type Machine struct {
	state       State
	nextSession uint64
	log         zerolog.Logger
}

// NewMachine creates a state machine starting in the browse view with the
// given volume
func NewMachine(volume int, log zerolog.Logger) *Machine {
	return &Machine{
		state: State{
			View:   ViewBrowse,
			Volume: clampVolume(volume),
		},
		log: log.With().Str("component", "app").Logger(),
	}
}

// Snapshot returns a deep copy of the current state for rendering
func (m *Machine) Snapshot() State {
	return m.state.clone()
}

// SubmitSearch issues a directory lookup for the query and flags it pending.
// The previous lookup, if any, is not cancelled; its result will arrive with
// a stale generation and be discarded.
func (m *Machine) SubmitSearch(query directory.Query) []Command {
	m.state.Generation++
	m.state.Query = query
	m.state.PendingLookup = true
	m.state.View = ViewBrowse
	m.clearBanner(BannerLookup)

	m.log.Debug().Uint64("generation", m.state.Generation).Msg("search submitted")
	return []Command{Lookup{Generation: m.state.Generation, Query: query}}
}

// HandleDirectoryResult applies a finished lookup. Results whose generation
// is not the latest issued one never alter the station list.
func (m *Machine) HandleDirectoryResult(generation uint64, stations []model.Station, err error) []Command {
	if generation != m.state.Generation {
		m.log.Debug().
			Uint64("generation", generation).
			Uint64("latest", m.state.Generation).
			Msg("stale directory result dropped")
		return nil
	}

	m.state.PendingLookup = false
	if err != nil {
		m.state.Banner = &Banner{Kind: BannerLookup, Message: err.Error()}
		return nil
	}

	m.state.Stations = stations
	return nil
}

// SelectStation supersedes any active session and starts a new one for the
// station. The stop for the old session is fire-and-forget; its late events
// carry a stale id and are dropped.
func (m *Machine) SelectStation(station model.Station) []Command {
	var cmds []Command

	if old := m.state.Session; old != nil && old.Phase.IsActive() {
		cmds = append(cmds, StopPlayback{SessionID: old.ID})
	}

	m.nextSession++
	session := model.NewPlaybackSession(m.nextSession, station, m.state.Volume)
	m.state.Session = session
	m.state.PendingPlayback = true
	m.clearBanner(BannerPlayback)

	m.log.Info().
		Uint64("session", session.ID).
		Str("station", station.DisplayName()).
		Msg("station selected")

	cmds = append(cmds, StartPlayback{SessionID: session.ID, Station: station})
	return cmds
}

// StopPlayback stops the current session; a no-op when none is active
func (m *Machine) StopPlayback() []Command {
	session := m.state.Session
	if session == nil || session.Phase.IsTerminal() {
		return nil
	}

	session.Phase = model.PhaseStopped
	session.FinishedAt = time.Now()
	session.Buffering = false
	m.state.PendingPlayback = false

	return []Command{StopPlayback{SessionID: session.ID}}
}

// HandlePlaybackEvent folds an engine event into the current session. Events
// for a stale session id, or for a session already in a terminal phase, never
// alter state.
func (m *Machine) HandlePlaybackEvent(event player.Event) []Command {
	session := m.state.Session
	if session == nil || event.SessionID != session.ID {
		m.log.Debug().
			Uint64("session", event.SessionID).
			Str("event", event.Kind.String()).
			Msg("stale playback event dropped")
		return nil
	}
	if session.Phase.IsTerminal() {
		m.log.Debug().
			Uint64("session", event.SessionID).
			Str("event", event.Kind.String()).
			Msg("playback event after terminal phase dropped")
		return nil
	}

	switch event.Kind {
	case player.EventConnecting:
		session.Phase = model.PhaseConnecting
	case player.EventBuffering:
		session.Buffering = true
	case player.EventConnected:
		session.Phase = model.PhasePlaying
		session.Buffering = false
		m.state.PendingPlayback = false
	case player.EventStalled:
		// Stays in its phase with a buffering indicator
		session.Buffering = true
	case player.EventEnded:
		session.Phase = model.PhaseStopped
		session.FinishedAt = time.Now()
		session.Buffering = false
		m.state.PendingPlayback = false
	case player.EventFailed:
		session.Phase = model.PhaseFailed
		session.FinishedAt = time.Now()
		session.Buffering = false
		m.state.PendingPlayback = false
		if event.Err != nil {
			session.LastError = event.Err.Error()
			m.state.Banner = &Banner{Kind: BannerPlayback, Message: event.Err.Error()}
		}
	case player.EventVolumeChanged:
		// Local state is authoritative; the confirmation only reconciles
		m.state.Volume = clampVolume(event.Volume)
		session.Volume = m.state.Volume
	}

	return nil
}

// TogglePause flips between Playing and Paused. Valid only in those phases;
// the local phase flips optimistically and a later Failed event reconciles.
func (m *Machine) TogglePause() []Command {
	session := m.state.Session
	if session == nil {
		return nil
	}

	switch session.Phase {
	case model.PhasePlaying:
		session.Phase = model.PhasePaused
		return []Command{PausePlayback{}}
	case model.PhasePaused:
		session.Phase = model.PhasePlaying
		return []Command{ResumePlayback{}}
	default:
		return nil
	}
}

// AdjustVolume applies a clamped delta. Local state updates immediately; one
// SetVolume command is issued when the level actually changes.
func (m *Machine) AdjustVolume(delta int) []Command {
	volume := clampVolume(m.state.Volume + delta)
	if volume == m.state.Volume {
		return nil
	}

	m.state.Volume = volume
	if m.state.Session != nil {
		m.state.Session.Volume = volume
	}
	return []Command{SetVolume{Level: volume}}
}

// EnterSearch switches to the search view
func (m *Machine) EnterSearch() {
	m.state.View = ViewSearch
}

// ExitToBrowse returns to the browse view
func (m *Machine) ExitToBrowse() {
	m.state.View = ViewBrowse
}

// ToggleNowPlaying switches between the browse and now-playing views
func (m *Machine) ToggleNowPlaying() {
	if m.state.View == ViewNowPlaying {
		m.state.View = ViewBrowse
	} else {
		m.state.View = ViewNowPlaying
	}
}

// DismissBanner clears the error banner
func (m *Machine) DismissBanner() {
	m.state.Banner = nil
}

// SetStationFavorite updates the favorite flag on matching stations in the
// visible list and on the current session's station
func (m *Machine) SetStationFavorite(uuid string, favorite bool) {
	for i := range m.state.Stations {
		if m.state.Stations[i].UUID == uuid {
			m.state.Stations[i].Favorite = favorite
		}
	}
	if s := m.state.Session; s != nil && s.Station.UUID == uuid {
		s.Station.Favorite = favorite
	}
}

func (m *Machine) clearBanner(kind BannerKind) {
	if m.state.Banner != nil && m.state.Banner.Kind == kind {
		m.state.Banner = nil
	}
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
