package player

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// fakeSeeker is a silent StreamSeekCloser for exercising the stream handle
// without a speaker
type fakeSeeker struct {
	err    error
	closed bool
}

func (f *fakeSeeker) Stream(samples [][2]float64) (int, bool) { return len(samples), true }
func (f *fakeSeeker) Err() error                              { return f.err }
func (f *fakeSeeker) Len() int                                { return 0 }
func (f *fakeSeeker) Position() int                           { return 0 }
func (f *fakeSeeker) Seek(p int) error                        { return nil }
func (f *fakeSeeker) Close() error                            { f.closed = true; return nil }

type fakeBody struct {
	closed bool
}

func (f *fakeBody) Close() error { f.closed = true; return nil }

func newTestBeepStream(decoded beep.StreamSeekCloser) (*beepStream, *fakeBody) {
	ctrl := &beep.Ctrl{Streamer: decoded}
	body := &fakeBody{}
	return &beepStream{
		ctrl:    ctrl,
		volume:  &effects.Volume{Streamer: ctrl, Base: 2},
		body:    body,
		decoded: decoded,
	}, body
}

func TestStreamCloseDetachesOwnStreamerOnly(t *testing.T) {
	decoded := &fakeSeeker{}
	stream, body := newTestBeepStream(decoded)

	if err := stream.Close(); err != nil {
		t.Fatalf("Expected no error closing, got %v", err)
	}

	// The handle must only detach its own streamer from the mixer, never
	// clear other sessions' audio
	if stream.ctrl.Streamer != nil {
		t.Error("Expected the stream's own streamer to be detached")
	}
	if !decoded.closed {
		t.Error("Expected the decoder to be closed")
	}
	if !body.closed {
		t.Error("Expected the network body to be closed")
	}

	// Closing twice must be safe
	if err := stream.Close(); err != nil {
		t.Fatalf("Expected no error on second close, got %v", err)
	}
}

func TestStreamFinishedAfterCloseIsSilent(t *testing.T) {
	decoded := &fakeSeeker{err: errors.New("decode hiccup")}
	stream, _ := newTestBeepStream(decoded)
	stream.Close()

	notified := make(chan EventKind, 1)
	stream.finished(func(kind EventKind, err error) {
		notified <- kind
	})

	select {
	case kind := <-notified:
		t.Errorf("Expected no notification after close, got %v", kind)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStreamFinishedReportsDecoderError(t *testing.T) {
	decoded := &fakeSeeker{err: errors.New("decode hiccup")}
	stream, _ := newTestBeepStream(decoded)

	notified := make(chan Event, 1)
	stream.finished(func(kind EventKind, err error) {
		notified <- Event{Kind: kind, Err: err}
	})

	select {
	case ev := <-notified:
		if ev.Kind != EventFailed || ev.Err == nil {
			t.Errorf("Expected Failed with error, got %v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for notification")
	}
}
