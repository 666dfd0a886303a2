package model

import (
	"fmt"
	"time"
)

// PlaybackSession represents one attempt to play a specific station. Sessions
// are identified by a monotonically increasing id; events carrying an id older
// than the current session are stale and must be discarded.
type PlaybackSession struct {
	ID         uint64
	Station    Station
	Phase      SessionPhase
	Volume     int // 0 to 100
	Buffering  bool
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewPlaybackSession creates a session in the Requested phase
func NewPlaybackSession(id uint64, station Station, volume int) *PlaybackSession {
	return &PlaybackSession{
		ID:        id,
		Station:   station,
		Phase:     PhaseRequested,
		Volume:    volume,
		StartedAt: time.Now(),
	}
}

// Elapsed returns how long the session has been running. Terminal sessions
// report the time between start and finish.
func (ps *PlaybackSession) Elapsed() time.Duration {
	if ps.StartedAt.IsZero() {
		return 0
	}
	if ps.Phase.IsTerminal() && !ps.FinishedAt.IsZero() {
		return ps.FinishedAt.Sub(ps.StartedAt)
	}
	return time.Since(ps.StartedAt)
}

// GetElapsedString returns elapsed time formatted as hh:mm:ss, or mm:ss when
// under an hour
func (ps *PlaybackSession) GetElapsedString() string {
	total := int(ps.Elapsed().Seconds())
	if total < 0 {
		total = 0
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Clone returns a copy of the session for read-only snapshots
func (ps *PlaybackSession) Clone() *PlaybackSession {
	if ps == nil {
		return nil
	}
	c := *ps
	return &c
}
