package player

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/airwav/airwav/internal/platform"
)

const (
	// Bytes buffered before handing the stream to the decoder
	PrerollBytes = 32 * 1024

	// A read slower than this reports Stalled; slower than ReadTimeout fails
	// the stream
	StallAfter  = 5 * time.Second
	ReadTimeout = 20 * time.Second

	SpeakerBufferLen = 250 * time.Millisecond

	// Volume curve: percent maps onto [MinVolumeGain, 0] with a perceptual
	// exponent, fed to effects.Volume with Base 2
	MinVolumeGain       = -10.0
	VolumeCurveExponent = 0.5
)

// Speaker state is process-global in beep; initialize once and resample
// everything else onto the first stream's rate
var (
	speakerOnce     sync.Once
	mixerSampleRate beep.SampleRate
)

// BeepBackend dials HTTP audio streams and plays them through the gopxl/beep
// speaker
type BeepBackend struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// NewBeepBackend creates the production audio backend
func NewBeepBackend(log zerolog.Logger) *BeepBackend {
	return &BeepBackend{
		httpClient: &http.Client{
			Timeout: 0, // streams are long-lived
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				DisableCompression:    true,
			},
		},
		log: log.With().Str("component", "audio").Logger(),
	}
}

// Open resolves playlist indirection, dials the stream, pre-rolls, decodes
// and starts speaker output. notify is invoked from stream-owned goroutines
// only, never from inside the speaker's render loop.
func (b *BeepBackend) Open(ctx context.Context, url string, volume int, notify Notifier) (Stream, error) {
	streamURL, err := b.resolveStreamURL(ctx, url)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build stream request: %w", err)
	}
	req.Header.Set("Connection", "keep-alive")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dial stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	notify(EventBuffering, nil)

	preroll := make([]byte, PrerollBytes)
	n, err := io.ReadAtLeast(resp.Body, preroll, PrerollBytes)
	if err != nil && n == 0 {
		resp.Body.Close()
		return nil, fmt.Errorf("stream delivered no data: %w", err)
	}
	b.log.Debug().Int("bytes", n).Str("url", streamURL).Msg("preroll complete")

	body := &watchedReader{
		reader: io.MultiReader(bytes.NewReader(preroll[:n]), resp.Body),
		closer: resp.Body,
		notify: notify,
	}

	decoded, format, err := mp3.Decode(body)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("decode stream: %w", err)
	}

	speakerOnce.Do(func() {
		mixerSampleRate = format.SampleRate
		err = speaker.Init(mixerSampleRate, mixerSampleRate.N(SpeakerBufferLen))
	})
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	var streamer beep.Streamer = decoded
	if format.SampleRate != mixerSampleRate {
		streamer = beep.Resample(4, format.SampleRate, mixerSampleRate, decoded)
	}

	ctrl := &beep.Ctrl{Streamer: streamer}
	vol := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   percentToGain(volume),
		Silent:   volume == 0,
	}

	bs := &beepStream{
		ctrl:    ctrl,
		volume:  vol,
		body:    resp.Body,
		decoded: decoded,
	}

	// The decode path above is not context-aware; a dial superseded during it
	// must not reach the mixer
	if ctx.Err() != nil {
		decoded.Close()
		resp.Body.Close()
		return nil, ctx.Err()
	}

	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		// Runs inside the speaker loop; report from a fresh goroutine
		go bs.finished(notify)
	})))

	return bs, nil
}

// resolveStreamURL follows M3U/PLS indirection to the first stream entry
func (b *BeepBackend) resolveStreamURL(ctx context.Context, rawURL string) (string, error) {
	if !platform.IsPlaylistURL(rawURL) {
		return rawURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build playlist request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch playlist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("playlist returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, platform.MaxPlaylistBytes))
	if err != nil {
		return "", fmt.Errorf("read playlist: %w", err)
	}

	urls, err := platform.ParsePlaylist(string(data))
	if err != nil {
		return "", err
	}
	b.log.Debug().Str("playlist", rawURL).Str("stream", urls[0]).Msg("playlist resolved")
	return urls[0], nil
}

// beepStream is the live stream handle returned by BeepBackend
type beepStream struct {
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	body      io.Closer
	decoded   beep.StreamSeekCloser
	closeOnce sync.Once
	closedMu  sync.Mutex
	closed    bool
}

func (s *beepStream) SetPaused(paused bool) {
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

func (s *beepStream) SetVolume(percent int) {
	speaker.Lock()
	s.volume.Volume = percentToGain(percent)
	s.volume.Silent = percent == 0
	speaker.Unlock()
}

// Close detaches this stream's own streamer from the mixer. The mixer is
// process-global, so clearing it wholesale would also silence a newer
// session's audio; with a nil streamer the Ctrl drains and the mixer drops
// the entry on its own.
func (s *beepStream) Close() error {
	s.closedMu.Lock()
	s.closed = true
	s.closedMu.Unlock()

	s.closeOnce.Do(func() {
		speaker.Lock()
		s.ctrl.Streamer = nil
		speaker.Unlock()
		s.decoded.Close()
		s.body.Close()
	})
	return nil
}

// finished reports end-of-stream unless the stream was closed by a command
func (s *beepStream) finished(notify Notifier) {
	s.closedMu.Lock()
	closed := s.closed
	s.closedMu.Unlock()
	if closed {
		return
	}

	if err := s.decoded.Err(); err != nil {
		notify(EventFailed, err)
		return
	}
	notify(EventEnded, nil)
}

// watchedReader wraps the network body: a slow read reports Stalled once per
// stall, a read past ReadTimeout fails the stream
type watchedReader struct {
	reader  io.Reader
	closer  io.Closer
	notify  Notifier
	stalled bool
}

type readResult struct {
	n   int
	err error
}

func (r *watchedReader) Read(p []byte) (int, error) {
	done := make(chan readResult, 1)
	go func() {
		n, err := r.reader.Read(p)
		done <- readResult{n, err}
	}()

	stall := time.NewTimer(StallAfter)
	defer stall.Stop()
	deadline := time.NewTimer(ReadTimeout)
	defer deadline.Stop()

	for {
		select {
		case res := <-done:
			if r.stalled && res.n > 0 {
				r.stalled = false
			}
			return res.n, res.err
		case <-stall.C:
			if !r.stalled {
				r.stalled = true
				r.notify(EventStalled, nil)
			}
		case <-deadline.C:
			// Leave the pending read to the closer; the stream is dead
			return 0, fmt.Errorf("stream read timeout after %v", ReadTimeout)
		}
	}
}

func (r *watchedReader) Close() error {
	return r.closer.Close()
}

// percentToGain maps 0-100 volume onto the effects.Volume exponent range with
// a perceptual curve
func percentToGain(percent int) float64 {
	if percent <= 0 {
		return MinVolumeGain
	}
	if percent >= 100 {
		return 0
	}

	normalized := float64(percent) / 100.0
	adjusted := math.Pow(normalized, VolumeCurveExponent)
	return (1.0 - adjusted) * MinVolumeGain
}
