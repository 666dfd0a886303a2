package model

// SessionPhase represents the phase of a playback session
type SessionPhase string

const (
	// PhaseRequested means the session was created but playback has not started
	PhaseRequested SessionPhase = "Requested"

	// PhaseConnecting means the stream is being dialed and buffered
	PhaseConnecting SessionPhase = "Connecting"

	// PhasePlaying means audio is playing
	PhasePlaying SessionPhase = "Playing"

	// PhasePaused means playback is paused by the user
	PhasePaused SessionPhase = "Paused"

	// PhaseStopped means the session was stopped by the user
	PhaseStopped SessionPhase = "Stopped"

	// PhaseFailed means the session ended with an error
	PhaseFailed SessionPhase = "Failed"
)

// String returns the string representation of SessionPhase
func (p SessionPhase) String() string {
	return string(p)
}

// IsActive returns true if the session is in an active state
func (p SessionPhase) IsActive() bool {
	return p == PhaseRequested || p == PhaseConnecting || p == PhasePlaying || p == PhasePaused
}

// IsTerminal returns true if no further playback events are accepted for
// the session
func (p SessionPhase) IsTerminal() bool {
	return p == PhaseStopped || p == PhaseFailed
}
