// ABOUTME: Test fixtures for the streaming pipeline
// ABOUTME: Synthetic bitstream builder plus fake codec and sink
package audiotest

import (
	"sync"
	"time"

	"github.com/pulseplay/pulseplay-go/pkg/audio/codec"
	"github.com/pulseplay/pulseplay-go/pkg/audio/output"
)

// The synthetic bitstream format used across pipeline tests:
//
//	frame := 0xF5 0xAA <payloadLen> <seq> payload[payloadLen]
//
// Every payload byte must equal seq; a mismatch is a decode error, which
// lets tests corrupt a single byte and watch resynchronization. Each frame
// decodes to FrameSamples int16 samples all equal to seq.

const (
	syncByte0 = 0xF5
	syncByte1 = 0xAA

	headerLen = 4

	// FrameSamples is the decoded sample count of every synthetic frame.
	FrameSamples = 8

	// DefaultPayloadLen is the payload size used by BuildStream.
	DefaultPayloadLen = 12
)

// BuildFrame encodes one synthetic frame.
func BuildFrame(seq byte, payloadLen int) []byte {
	frame := make([]byte, headerLen+payloadLen)
	frame[0] = syncByte0
	frame[1] = syncByte1
	frame[2] = byte(payloadLen)
	frame[3] = seq
	for i := 0; i < payloadLen; i++ {
		frame[headerLen+i] = seq
	}
	return frame
}

// BuildStream encodes count well-formed frames with sequential seq values.
func BuildStream(count int) []byte {
	var out []byte
	for i := 0; i < count; i++ {
		out = append(out, BuildFrame(byte(i), DefaultPayloadLen)...)
	}
	return out
}

// FakeCodec decodes the synthetic bitstream through the codec contract.
type FakeCodec struct {
	// DecodeCalls counts DecodeOne invocations, bounding-loop assertions
	// use it to prove termination cost is proportional to input size.
	DecodeCalls int
	FindCalls   int
}

func (c *FakeCodec) MaxSamplesPerFrame() int {
	return FrameSamples
}

func (c *FakeCodec) FindSync(window []byte) int {
	c.FindCalls++
	for i := 0; i+1 < len(window); i++ {
		if window[i] == syncByte0 && window[i+1] == syncByte1 {
			return i
		}
	}
	return -1
}

func (c *FakeCodec) PeekMetadata(window []byte) (codec.FrameMetadata, error) {
	if len(window) < headerLen || window[0] != syncByte0 || window[1] != syncByte1 {
		return codec.FrameMetadata{}, codec.ErrNoFrame
	}
	return codec.FrameMetadata{
		SampleRate:        8000,
		Channels:          1,
		BitRateKbps:       64,
		OutputSampleCount: FrameSamples,
		Valid:             true,
	}, nil
}

func (c *FakeCodec) DecodeOne(window []byte, pcm []int16) codec.DecodeResult {
	c.DecodeCalls++

	if len(window) < 2 {
		if len(window) == 0 || window[0] == syncByte0 {
			return codec.DecodeResult{Outcome: codec.Underflow}
		}
		return codec.DecodeResult{Outcome: codec.Error}
	}
	if window[0] != syncByte0 || window[1] != syncByte1 {
		return codec.DecodeResult{Outcome: codec.Error}
	}
	if len(window) < headerLen {
		return codec.DecodeResult{Outcome: codec.Underflow}
	}

	payloadLen := int(window[2])
	seq := window[3]
	if len(window) < headerLen+payloadLen {
		return codec.DecodeResult{Outcome: codec.Underflow}
	}

	for i := 0; i < payloadLen; i++ {
		if window[headerLen+i] != seq {
			return codec.DecodeResult{Outcome: codec.Error}
		}
	}

	for i := 0; i < FrameSamples; i++ {
		pcm[i] = int16(seq)
	}
	return codec.DecodeResult{
		Outcome:       codec.Ok,
		BytesConsumed: headerLen + payloadLen,
		SampleCount:   FrameSamples,
	}
}

// FakeSink records every block written to it. Error and timeout injection
// let session tests exercise the failure paths without hardware.
type FakeSink struct {
	mu sync.Mutex

	active bool
	blocks [][]int16

	// StartErr, when set, is returned by Start.
	StartErr error

	// WriteErr, when set, is returned by Write after FailAfter writes.
	WriteErr  error
	FailAfter int

	// TimeoutEvery, when > 0, makes every Nth write report ErrWriteTimeout.
	TimeoutEvery int

	writeCalls   int
	silenceCalls int
}

func (s *FakeSink) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *FakeSink) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StartErr != nil {
		return s.StartErr
	}
	s.active = true
	return nil
}

func (s *FakeSink) Write(samples []int16, _ time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return 0, output.ErrNotActive
	}
	s.writeCalls++

	if s.WriteErr != nil && s.writeCalls > s.FailAfter {
		return 0, s.WriteErr
	}
	if s.TimeoutEvery > 0 && s.writeCalls%s.TimeoutEvery == 0 {
		return 0, output.ErrWriteTimeout
	}

	block := make([]int16, len(samples))
	copy(block, samples)
	s.blocks = append(s.blocks, block)
	return len(samples), nil
}

func (s *FakeSink) Silence(time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.silenceCalls++
	return nil
}

// Blocks returns a snapshot of the recorded sample blocks.
func (s *FakeSink) Blocks() [][]int16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]int16, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// SilenceCalls returns how many times Silence was invoked.
func (s *FakeSink) SilenceCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.silenceCalls
}
