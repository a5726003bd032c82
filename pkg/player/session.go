// ABOUTME: Playback session orchestration
// ABOUTME: Drives the frame streamer into a sink with volume, progress and stop
package player

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pulseplay/pulseplay-go/pkg/audio"
	"github.com/pulseplay/pulseplay-go/pkg/audio/codec"
	"github.com/pulseplay/pulseplay-go/pkg/audio/output"
	"github.com/pulseplay/pulseplay-go/pkg/source"
	"github.com/pulseplay/pulseplay-go/pkg/stream"
)

// State is the playback session lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateStreaming
	StateStopRequested
	StateStopped
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateStopRequested:
		return "stop-requested"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrStopped reports that playback halted because Stop was requested.
	// It is a distinguishable outcome, not a failure.
	ErrStopped = errors.New("playback stopped by request")

	// ErrSessionUsed is returned by Play on a session that already ran.
	// Sessions are single-use; a new playback needs a new session.
	ErrSessionUsed = errors.New("session already played")

	// ErrMissingCollaborator is returned by NewSession when a source, sink
	// or codec is absent.
	ErrMissingCollaborator = errors.New("source, sink and codec are required")
)

// DefaultVolume matches the historical player default.
const DefaultVolume = 0.7

// Config configures a playback session. Source and Sink are borrowed: the
// caller owns them and must have the Sink ready (or startable) before Play.
type Config struct {
	Source source.Source
	Sink   output.Sink
	Codec  codec.Codec

	// Volume in [0.0, 1.0]; 0 selects DefaultVolume. Use SetVolume(0)
	// after construction to start muted.
	Volume float64

	// OnProgress, when set, is invoked after each forwarded frame with a
	// completion fraction in [0.0, 1.0]. No calls are made before the
	// stream metadata (and so the total estimate) is known.
	OnProgress func(fraction float64)

	// Continue, when set, is consulted after each frame; returning false
	// stops the session the same way Stop does.
	Continue func() bool

	// WriteTimeout bounds each sink write; 0 selects the sink default.
	WriteTimeout time.Duration

	// WindowSize fixes the compressed byte window capacity; 0 selects
	// stream.DefaultWindowSize.
	WindowSize int
}

// Session plays one compressed stream end to end. The volume and the stop
// flag are the only state mutated from outside the playback loop; both are
// atomics so a controlling goroutine may touch them mid-session.
type Session struct {
	id  string
	cfg Config

	volumeBits atomic.Uint64
	stopFlag   atomic.Bool
	state      atomic.Int32
	processed  atomic.Uint64

	estimatedTotal int64

	played atomic.Bool
}

// NewSession validates the configuration and creates an idle session. No
// I/O happens until Play.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Source == nil || cfg.Sink == nil || cfg.Codec == nil {
		return nil, ErrMissingCollaborator
	}
	if cfg.Volume == 0 {
		cfg.Volume = DefaultVolume
	}

	s := &Session{
		id:  uuid.New().String(),
		cfg: cfg,
	}
	s.SetVolume(cfg.Volume)
	s.state.Store(int32(StateIdle))
	return s, nil
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// SetVolume updates the playback volume, clamped to [0.0, 1.0]. Safe to
// call from any goroutine while the session plays.
func (s *Session) SetVolume(volume float64) {
	s.volumeBits.Store(math.Float64bits(audio.ClampVolume(volume)))
}

// Volume returns the current volume.
func (s *Session) Volume() float64 {
	return math.Float64frombits(s.volumeBits.Load())
}

// Stop requests a cooperative halt. It only sets a flag: an in-flight frame
// decode or sink write runs to completion, and the loop stops at the next
// frame boundary. Safe to call from any goroutine, any number of times.
func (s *Session) Stop() {
	s.stopFlag.Store(true)
	s.state.CompareAndSwap(int32(StateStreaming), int32(StateStopRequested))
}

// ProcessedFrames returns the count of frames forwarded so far. It is
// non-decreasing for the life of the session.
func (s *Session) ProcessedFrames() uint64 {
	return s.processed.Load()
}

// Play runs the session to completion. Outcomes:
//   - nil: the stream ended normally
//   - ErrStopped: Stop was requested (or the continuation predicate said no)
//   - other error: an unrecoverable sink or source failure; State is Failed
//
// Sessions are single-use; a second Play returns ErrSessionUsed.
func (s *Session) Play() error {
	if !s.played.CompareAndSwap(false, true) {
		return ErrSessionUsed
	}

	if !s.cfg.Sink.IsActive() {
		if err := s.cfg.Sink.Start(); err != nil {
			s.state.Store(int32(StateFailed))
			return fmt.Errorf("failed to start sink: %w", err)
		}
	}

	streamer, err := stream.NewStreamer(s.cfg.Source, s.cfg.Codec, s.cfg.WindowSize)
	if err != nil {
		s.state.Store(int32(StateFailed))
		return err
	}

	scratch := make([]int16, s.cfg.Codec.MaxSamplesPerFrame())
	s.state.Store(int32(StateStreaming))

	defer func() {
		s.cfg.Source.Close()
		s.cfg.Sink.Silence(20 * time.Millisecond)
	}()

	for {
		frame, err := streamer.Next()
		if errors.Is(err, stream.ErrExhausted) {
			s.state.Store(int32(StateStopped))
			return nil
		}
		if err != nil {
			s.state.Store(int32(StateFailed))
			return fmt.Errorf("playback failed: %w", err)
		}

		n := audio.ScaleSamples(scratch, frame.Samples, s.Volume())
		if _, werr := s.cfg.Sink.Write(scratch[:n], s.cfg.WriteTimeout); werr != nil {
			if !errors.Is(werr, output.ErrWriteTimeout) {
				// A hardware write failure is not assumed transient within
				// one session: stop immediately, no retry.
				s.state.Store(int32(StateFailed))
				return fmt.Errorf("playback failed: %w", werr)
			}
			// Timeout degrades to the samples the device accepted.
		}

		s.processed.Add(1)
		s.reportProgress(frame.Meta)

		if s.stopFlag.Load() || (s.cfg.Continue != nil && !s.cfg.Continue()) {
			s.state.CompareAndSwap(int32(StateStreaming), int32(StateStopRequested))
			s.state.Store(int32(StateStopped))
			return ErrStopped
		}
	}
}

// reportProgress derives the total-frame estimate once metadata is known
// and invokes the observer with a monotone fraction capped at 1.0.
func (s *Session) reportProgress(meta codec.FrameMetadata) {
	if s.cfg.OnProgress == nil {
		return
	}

	if s.estimatedTotal == 0 {
		s.estimatedTotal = estimateTotalFrames(s.cfg.Source, meta)
	}
	if s.estimatedTotal <= 0 {
		return
	}

	fraction := float64(s.processed.Load()) / float64(s.estimatedTotal)
	if fraction > 1.0 {
		fraction = 1.0
	}
	s.cfg.OnProgress(fraction)
}

// estimateTotalFrames derives a frame-count estimate from the source size
// and the average compressed frame size implied by the bitrate. Returns 0
// when the source size or metadata is unknown.
func estimateTotalFrames(src source.Source, meta codec.FrameMetadata) int64 {
	sized, ok := src.(source.Sized)
	if !ok || !meta.Valid {
		return 0
	}
	if meta.SampleRate == 0 || meta.Channels == 0 || meta.OutputSampleCount == 0 {
		return 0
	}

	frameSeconds := float64(meta.OutputSampleCount/meta.Channels) / float64(meta.SampleRate)
	avgFrameBytes := int(float64(meta.BitRateKbps) * 125 * frameSeconds)
	return audio.EstimateTotalFrames(sized.Size(), avgFrameBytes)
}
