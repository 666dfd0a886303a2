package app

import (
	"github.com/airwav/airwav/internal/directory"
	"github.com/airwav/airwav/internal/model"
)

// Command is an outbound instruction produced by the state machine. The UI
// layer translates commands into engine calls and directory lookups; the
// machine itself never blocks.
type Command interface {
	isCommand()
}

// StartPlayback starts a stream for the given session
type StartPlayback struct {
	SessionID uint64
	Station   model.Station
}

// StopPlayback stops the stream of the given session; late completion of a
// superseded session is ignored by id
type StopPlayback struct {
	SessionID uint64
}

// PausePlayback pauses the live stream
type PausePlayback struct{}

// ResumePlayback resumes the live stream
type ResumePlayback struct{}

// SetVolume applies a clamped volume level to the engine
type SetVolume struct {
	Level int
}

// Lookup issues a directory search tagged with its generation
type Lookup struct {
	Generation uint64
	Query      directory.Query
}

func (StartPlayback) isCommand()  {}
func (StopPlayback) isCommand()   {}
func (PausePlayback) isCommand()  {}
func (ResumePlayback) isCommand() {}
func (SetVolume) isCommand()      {}
func (Lookup) isCommand()         {}
