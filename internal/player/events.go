package player

// EventKind enumerates playback engine events
type EventKind int

const (
	// EventConnecting means the stream for a session is being dialed
	EventConnecting EventKind = iota

	// EventConnected means audio output for the session has started
	EventConnected

	// EventBuffering means the stream is pre-rolling before playback
	EventBuffering

	// EventStalled means the live stream stopped delivering data; playback
	// may still recover
	EventStalled

	// EventEnded means the stream ended cleanly
	EventEnded

	// EventFailed means the session ended with an error
	EventFailed

	// EventVolumeChanged confirms a volume command for the live session
	EventVolumeChanged
)

// String returns the event kind name
func (k EventKind) String() string {
	switch k {
	case EventConnecting:
		return "Connecting"
	case EventConnected:
		return "Connected"
	case EventBuffering:
		return "Buffering"
	case EventStalled:
		return "Stalled"
	case EventEnded:
		return "Ended"
	case EventFailed:
		return "Failed"
	case EventVolumeChanged:
		return "VolumeChanged"
	default:
		return "Unknown"
	}
}

// advancesPhase reports whether losing the event would leave a session's
// phase permanently wrong. Buffering, stall and volume confirmations are
// advisory and may be shed under pressure; these kinds may not.
func (k EventKind) advancesPhase() bool {
	switch k {
	case EventConnecting, EventConnected, EventEnded, EventFailed:
		return true
	default:
		return false
	}
}

// Event is one playback engine notification, tagged with the session it
// concerns
type Event struct {
	SessionID uint64
	Kind      EventKind
	Err       error
	Volume    int // set for EventVolumeChanged
}
