package player

// Controller defines the command surface of the playback engine as consumed
// by the UI layer.
type Controller interface {
	Start(sessionID uint64, url string)
	Stop(sessionID uint64)
	Pause()
	Resume()
	SetVolume(percent int)
	Events() <-chan Event
	Close()
}

// Verify Engine implements Controller at compile time.
var _ Controller = (*Engine)(nil)
