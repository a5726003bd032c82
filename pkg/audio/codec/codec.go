// ABOUTME: Codec interface definition
// ABOUTME: Window-based frame sync, metadata peek and single-frame decode
package codec

import "errors"

// ErrNoFrame is returned by PeekMetadata when the window does not start
// with a parseable frame header.
var ErrNoFrame = errors.New("no frame header at window start")

// DecodeOutcome classifies the result of decoding one frame.
type DecodeOutcome int

const (
	// Ok means one frame was decoded and consumed.
	Ok DecodeOutcome = iota

	// Underflow means the window holds the start of a frame but not all of
	// it; the caller should refill and retry from the same position.
	Underflow

	// Error means the bytes at the window start passed sync but are not a
	// decodable frame; the caller should resynchronize.
	Error
)

func (o DecodeOutcome) String() string {
	switch o {
	case Ok:
		return "ok"
	case Underflow:
		return "underflow"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// FrameMetadata describes a compressed frame. Everything except
// OutputSampleCount is constant for the life of a stream.
type FrameMetadata struct {
	SampleRate        int
	Channels          int
	BitRateKbps       int
	OutputSampleCount int
	Valid             bool
}

// DecodeResult reports one DecodeOne call: the outcome, the count of window
// bytes consumed, and the count of PCM samples produced into the caller's
// block.
type DecodeResult struct {
	Outcome       DecodeOutcome
	BytesConsumed int
	SampleCount   int
}

// Codec locates and decodes frames inside a caller-managed byte window. The
// surrounding refill, resynchronization and backpressure discipline belongs
// to the stream package; implementations only interpret bytes.
type Codec interface {
	// FindSync returns the offset of the next frame sync pattern in window,
	// or -1 when none is present.
	FindSync(window []byte) int

	// PeekMetadata parses the frame header at the start of window without
	// consuming bytes.
	PeekMetadata(window []byte) (FrameMetadata, error)

	// DecodeOne decodes exactly one frame from the start of window into pcm,
	// which is a fixed caller-owned block reused across frames. On Underflow
	// no bytes are consumed. MaxSamplesPerFrame bounds the pcm size needed.
	DecodeOne(window []byte, pcm []int16) DecodeResult

	// MaxSamplesPerFrame returns the largest OutputSampleCount the codec can
	// produce, sizing the caller's reusable PCM block.
	MaxSamplesPerFrame() int
}
