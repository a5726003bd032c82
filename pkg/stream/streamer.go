// ABOUTME: Frame streamer state machine
// ABOUTME: Drives refill, sync search, decode and bounded resynchronization
package stream

import (
	"errors"
	"fmt"

	"github.com/pulseplay/pulseplay-go/pkg/audio/codec"
	"github.com/pulseplay/pulseplay-go/pkg/source"
)

// ErrExhausted signals normal end of stream: the source is drained and the
// window holds no further decodable frame. It is terminal and not a failure.
var ErrExhausted = errors.New("stream exhausted")

// ErrSourceStalled reports a source that kept claiming more data while
// returning none. Sources may legitimately return 0 bytes, but a source
// that never makes progress again would otherwise spin Next forever.
var ErrSourceStalled = errors.New("source stalled without progress")

// DefaultWindowSize is the byte window capacity used when none is given.
const DefaultWindowSize = 8192

// syncTail is how many window bytes are kept when a sync search over the
// whole window fails: a frame header may straddle the window edge, and a
// 4-byte header needs at most 3 bytes carried into the next refill.
const syncTail = 3

// maxStalledRefills bounds how many consecutive refills may add zero bytes
// from a source still reporting HasMore before the streamer gives up on it.
const maxStalledRefills = 64

type streamerState int

const (
	stateAwaitingData streamerState = iota
	stateSearching
	stateDecoding
	stateDraining
	stateExhausted
	stateFatal
)

// Frame is one decoded PCM frame in bitstream order. Samples aliases the
// streamer's reusable block and is only valid until the next call to Next.
type Frame struct {
	Samples []int16
	Meta    codec.FrameMetadata
}

// Streamer turns a byte source into an ordered sequence of decoded frames.
// It owns the refill and resynchronization policy: transient stream damage
// is absorbed by byte-level resync and never surfaces to the caller.
type Streamer struct {
	buf *Buffer
	src source.Source
	cdc codec.Codec

	pcm []int16

	meta     codec.FrameMetadata
	haveMeta bool

	state streamerState
	err   error

	// lastChance marks that the source is drained and the current window
	// content is the final chance to find a frame. It bounds the tail scan
	// so a corrupt or syncless ending cannot loop.
	lastChance bool

	// stalls counts consecutive zero-byte refills from a source still
	// claiming more data. Reset on any added bytes or decoded frame.
	stalls int

	frames uint64
}

// NewStreamer builds a streamer over src using cdc. windowSize fixes the
// byte window capacity for the life of the streamer; 0 selects
// DefaultWindowSize. All buffers are allocated here, before any I/O.
func NewStreamer(src source.Source, cdc codec.Codec, windowSize int) (*Streamer, error) {
	if windowSize == 0 {
		windowSize = DefaultWindowSize
	}
	buf, err := NewBuffer(windowSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream window: %w", err)
	}

	return &Streamer{
		buf:   buf,
		src:   src,
		cdc:   cdc,
		pcm:   make([]int16, cdc.MaxSamplesPerFrame()),
		state: stateAwaitingData,
	}, nil
}

// Metadata returns the stream metadata latched from the first successfully
// decoded frame, and whether it is known yet.
func (s *Streamer) Metadata() (codec.FrameMetadata, bool) {
	return s.meta, s.haveMeta
}

// Frames returns the count of frames emitted so far.
func (s *Streamer) Frames() uint64 {
	return s.frames
}

// Next produces the next decoded frame. It loops internally through refill,
// sync search and resynchronization until exactly one frame is decoded,
// ErrExhausted marks normal end of stream, or a fatal source failure is
// returned. Callers never observe the intermediate states.
func (s *Streamer) Next() (Frame, error) {
	if s.state == stateDraining {
		s.state = stateDecoding
	}

	for {
		switch s.state {
		case stateExhausted:
			return Frame{}, ErrExhausted

		case stateFatal:
			return Frame{}, s.err

		case stateAwaitingData:
			s.awaitData()

		case stateSearching:
			s.search()

		case stateDecoding:
			frame, emitted := s.decode()
			if emitted {
				return frame, nil
			}
		}
	}
}

// awaitData refills the window. Zero bytes added with the source drained
// either ends the stream (empty window) or marks the remaining tail as the
// last chance to find a frame.
func (s *Streamer) awaitData() {
	added, err := s.buf.Refill(s.src)
	if err != nil {
		s.state = stateFatal
		s.err = err
		return
	}

	if added > 0 {
		s.lastChance = false
		s.stalls = 0
		s.state = stateSearching
		return
	}

	if s.src.HasMore() {
		// Source stalled but not drained; search what we have, but only a
		// bounded number of times with no forward progress.
		s.stalls++
		if s.stalls > maxStalledRefills {
			s.state = stateFatal
			s.err = ErrSourceStalled
			return
		}
		s.state = stateSearching
		return
	}

	if s.buf.Remaining() == 0 {
		s.state = stateExhausted
		return
	}

	s.lastChance = true
	s.state = stateSearching
}

// search locates the next frame sync in the window. On failure the searched
// bytes are consumed except a short tail, forcing a refill, since a sync
// pattern may straddle the window edge or not have arrived yet.
func (s *Streamer) search() {
	window := s.buf.View()
	k := s.cdc.FindSync(window)
	if k >= 0 {
		if err := s.buf.Consume(k); err != nil {
			s.state = stateFatal
			s.err = err
			return
		}
		s.state = stateDecoding
		return
	}

	if s.lastChance {
		s.state = stateExhausted
		return
	}

	keep := syncTail
	if keep > len(window) {
		keep = len(window)
	}
	if err := s.buf.Consume(len(window) - keep); err != nil {
		s.state = stateFatal
		s.err = err
		return
	}
	s.state = stateAwaitingData
}

// decode attempts one frame at the window cursor. Returns the emitted frame
// when decoding succeeded.
func (s *Streamer) decode() (Frame, bool) {
	window := s.buf.View()

	var pending codec.FrameMetadata
	if !s.haveMeta {
		if m, err := s.cdc.PeekMetadata(window); err == nil {
			pending = m
		}
	}

	res := s.cdc.DecodeOne(window, s.pcm)
	switch res.Outcome {
	case codec.Ok:
		if err := s.buf.Consume(res.BytesConsumed); err != nil {
			s.state = stateFatal
			s.err = err
			return Frame{}, false
		}
		if !s.haveMeta {
			s.meta = pending
			s.haveMeta = true
		}
		s.frames++
		s.stalls = 0

		meta := s.meta
		meta.OutputSampleCount = res.SampleCount

		if s.buf.Remaining() == 0 {
			s.state = stateAwaitingData
		} else {
			s.state = stateDraining
		}
		return Frame{Samples: s.pcm[:res.SampleCount], Meta: meta}, true

	case codec.Underflow:
		if s.lastChance {
			// Truncated trailing frame; the stream ends here.
			s.state = stateExhausted
			return Frame{}, false
		}
		if s.buf.Remaining() == s.buf.Capacity() {
			// Frame larger than the window; skip a byte so a full window
			// can never wedge the machine.
			s.skipByte()
			return Frame{}, false
		}
		s.state = stateAwaitingData
		return Frame{}, false

	default: // codec.Error
		s.skipByte()
		return Frame{}, false
	}
}

// skipByte advances the cursor by one byte and resumes sync search. This is
// the forced resync path: cost is bounded by the window size before a
// refill is forced again.
func (s *Streamer) skipByte() {
	if s.buf.Remaining() == 0 {
		s.state = stateAwaitingData
		return
	}
	if err := s.buf.Consume(1); err != nil {
		s.state = stateFatal
		s.err = err
		return
	}
	s.state = stateSearching
}
