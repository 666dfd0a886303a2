package player

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Capacity of the engine's event channel. Sends never block: under pressure
// advisory events are shed, phase-advancing ones push out the oldest queued
// event instead.
const eventChannelSize = 32

// Notifier delivers stream-side events (buffering, stalled, ended, failed)
// from a backend's own goroutines
type Notifier func(kind EventKind, err error)

// Stream is one live audio stream established by a Backend
type Stream interface {
	SetPaused(paused bool)
	SetVolume(percent int)
	Close() error
}

// Backend dials a stream URL and starts audible output. Open blocks until
// audio is playing or the dial failed; notify is invoked from the stream's
// own goroutines for events after Open returns.
type Backend interface {
	Open(ctx context.Context, url string, volume int, notify Notifier) (Stream, error)
}

// Engine owns at most one live audio stream and serializes all transitions
// between sessions. Starting a new session tears the previous one down before
// any event for the new session is emitted.
type Engine struct {
	backend Backend
	events  chan Event
	log     zerolog.Logger

	mu         sync.Mutex
	current    Stream
	latestID   uint64
	cancelDial context.CancelFunc
	volume     int
	paused     bool

	// sendMu serializes sends against closing the channel
	sendMu sync.Mutex
	done   bool
}

// NewEngine creates a playback engine with the given backend and initial
// volume
func NewEngine(backend Backend, volume int, log zerolog.Logger) *Engine {
	return &Engine{
		backend: backend,
		events:  make(chan Event, eventChannelSize),
		volume:  volume,
		log:     log.With().Str("component", "player").Logger(),
	}
}

// Events returns the channel the engine reports on
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Start tears down any previous session and dials the stream for the new
// one. It blocks until audio is live or the dial failed, so callers run it
// off the UI path. A Start that has been superseded by a newer session while
// dialing discards its stream without emitting events.
func (e *Engine) Start(sessionID uint64, url string) {
	e.mu.Lock()
	if sessionID < e.latestID {
		e.mu.Unlock()
		e.log.Debug().Uint64("session", sessionID).Msg("stale start ignored")
		return
	}
	e.teardownLocked()
	e.latestID = sessionID

	ctx, cancel := context.WithCancel(context.Background())
	e.cancelDial = cancel
	volume := e.volume
	e.mu.Unlock()

	e.emit(Event{SessionID: sessionID, Kind: EventConnecting})
	e.log.Info().Uint64("session", sessionID).Str("url", url).Msg("starting stream")

	stream, err := e.backend.Open(ctx, url, volume, e.notifier(sessionID))

	e.mu.Lock()
	if e.latestID != sessionID || ctx.Err() != nil {
		e.mu.Unlock()
		if stream != nil {
			stream.Close()
		}
		e.log.Debug().Uint64("session", sessionID).Msg("superseded while dialing")
		return
	}
	if err != nil {
		cancel()
		e.cancelDial = nil
		e.mu.Unlock()
		e.log.Warn().Err(err).Uint64("session", sessionID).Msg("stream failed to start")
		e.emit(Event{SessionID: sessionID, Kind: EventFailed, Err: err})
		return
	}
	// cancelDial stays armed; teardown cancels it to abort the live body
	e.current = stream
	e.paused = false
	e.mu.Unlock()

	e.emit(Event{SessionID: sessionID, Kind: EventConnected})
}

// Stop tears down the session if it is still the live one. Stops for stale
// session ids are no-ops.
func (e *Engine) Stop(sessionID uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sessionID != e.latestID {
		e.log.Debug().Uint64("session", sessionID).Msg("stale stop ignored")
		return
	}
	e.teardownLocked()
	e.log.Info().Uint64("session", sessionID).Msg("stream stopped")
}

// Pause pauses the live stream; a no-op when nothing is playing
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || e.paused {
		return
	}
	e.current.SetPaused(true)
	e.paused = true
}

// Resume resumes the live stream; a no-op when nothing is playing
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || !e.paused {
		return
	}
	e.current.SetPaused(false)
	e.paused = false
}

// SetVolume stores the engine volume and applies it to the live stream. The
// confirmation event is only emitted while a session is live.
func (e *Engine) SetVolume(percent int) {
	e.mu.Lock()
	e.volume = percent
	stream := e.current
	sessionID := e.latestID
	e.mu.Unlock()

	if stream == nil {
		return
	}
	stream.SetVolume(percent)
	e.emit(Event{SessionID: sessionID, Kind: EventVolumeChanged, Volume: percent})
}

// Close tears down any live stream and pending dial, then closes the event
// channel so consumers see end-of-stream. Late backend notifications after
// Close are discarded, not sent.
func (e *Engine) Close() {
	e.mu.Lock()
	e.teardownLocked()
	e.mu.Unlock()

	e.sendMu.Lock()
	defer e.sendMu.Unlock()
	if !e.done {
		e.done = true
		close(e.events)
	}
}

// notifier filters backend events through the session staleness check
func (e *Engine) notifier(sessionID uint64) Notifier {
	return func(kind EventKind, err error) {
		e.mu.Lock()
		stale := sessionID != e.latestID
		if !stale && (kind == EventEnded || kind == EventFailed) {
			// Stream finished on its own; drop the handle so later
			// pause/volume commands become no-ops
			e.teardownLocked()
		}
		e.mu.Unlock()

		if stale {
			e.log.Debug().
				Uint64("session", sessionID).
				Str("event", kind.String()).
				Msg("stale stream event dropped")
			return
		}
		e.emit(Event{SessionID: sessionID, Kind: kind, Err: err})
	}
}

func (e *Engine) teardownLocked() {
	if e.cancelDial != nil {
		e.cancelDial()
		e.cancelDial = nil
	}
	if e.current != nil {
		e.current.Close()
		e.current = nil
	}
	e.paused = false
}

// emit delivers an event without blocking. When the channel is full an
// advisory event is dropped; a phase-advancing one evicts the oldest queued
// event until it fits, so Connected/Ended/Failed always reach the consumer.
func (e *Engine) emit(event Event) {
	e.sendMu.Lock()
	defer e.sendMu.Unlock()
	if e.done {
		return
	}

	for {
		select {
		case e.events <- event:
			return
		default:
		}

		if !event.Kind.advancesPhase() {
			e.log.Warn().
				Str("event", event.Kind.String()).
				Uint64("session", event.SessionID).
				Msg("event channel full, event dropped")
			return
		}

		select {
		case old := <-e.events:
			e.log.Warn().
				Str("event", old.Kind.String()).
				Uint64("session", old.SessionID).
				Msg("event channel full, oldest event evicted")
		default:
		}
	}
}
