// ABOUTME: MP3 codec implementation
// ABOUTME: Header-level sync search bridged onto go-mp3 for PCM synthesis
package codec

import (
	"bytes"
	"encoding/binary"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// mp3MaxSamples is the largest interleaved sample count one frame decodes
// to: 1152 samples per channel, two output channels (the decoder renders
// mono streams as two identical channels).
const mp3MaxSamples = 1152 * 2

// MP3 decodes MPEG Layer III frames out of a byte window. Sync search and
// frame sizing are done on the header bits; PCM synthesis is delegated to a
// persistent go-mp3 decoder fed exactly one frame at a time, which keeps the
// bit reservoir intact across frames. The zero value is not usable; call
// NewMP3.
type MP3 struct {
	feed    bytes.Buffer
	dec     *mp3.Decoder
	scratch [mp3MaxSamples * 2]byte
}

// NewMP3 creates an MP3 codec.
func NewMP3() *MP3 {
	return &MP3{}
}

// FindSync scans window for the next byte offset carrying a parseable frame
// header and returns it, or -1 when the window holds none. A trailing
// partial header does not count as a sync: the caller keeps a short tail
// across refills so a header straddling the window edge is found after the
// next refill.
func (c *MP3) FindSync(window []byte) int {
	for i := 0; i+headerSize <= len(window); i++ {
		if _, ok := parseFrameHeader(window[i:]); ok {
			return i
		}
	}
	return -1
}

// PeekMetadata parses the frame header at the start of window without
// consuming bytes. Channels reports the decoder's output channel count,
// which is always two: mono streams are rendered to both channels.
func (c *MP3) PeekMetadata(window []byte) (FrameMetadata, error) {
	hdr, ok := parseFrameHeader(window)
	if !ok {
		return FrameMetadata{}, ErrNoFrame
	}
	return FrameMetadata{
		SampleRate:        hdr.sampleRate,
		Channels:          2,
		BitRateKbps:       hdr.bitRate,
		OutputSampleCount: hdr.samplesPerFrame() * 2,
		Valid:             true,
	}, nil
}

// MaxSamplesPerFrame returns the PCM block size needed for any frame.
func (c *MP3) MaxSamplesPerFrame() int {
	return mp3MaxSamples
}

// DecodeOne decodes the frame at the start of window into pcm. Underflow is
// reported without consuming bytes when the window holds less than one full
// frame. A frame that parses but does not decode resets the synthesis state
// and reports Error, so the next valid frame starts clean.
func (c *MP3) DecodeOne(window []byte, pcm []int16) DecodeResult {
	hdr, ok := parseFrameHeader(window)
	if !ok {
		if len(window) < headerSize && c.couldBeSync(window) {
			return DecodeResult{Outcome: Underflow}
		}
		return DecodeResult{Outcome: Error}
	}

	frameLen := hdr.frameLength()
	if frameLen > len(window) {
		return DecodeResult{Outcome: Underflow}
	}

	want := hdr.samplesPerFrame() * 2
	if want > len(pcm) {
		return DecodeResult{Outcome: Error}
	}

	c.feed.Write(window[:frameLen])

	if c.dec == nil {
		dec, err := mp3.NewDecoder(&c.feed)
		if err != nil {
			c.reset()
			return DecodeResult{Outcome: Error}
		}
		c.dec = dec
	}

	// Pull exactly this frame's PCM. go-mp3 consumes the frame bytes fed
	// above and yields 16-bit little-endian stereo.
	out := c.scratch[:want*2]
	read := 0
	for read < len(out) {
		n, err := c.dec.Read(out[read:])
		read += n
		if err != nil {
			c.reset()
			return DecodeResult{Outcome: Error}
		}
	}

	for i := 0; i < want; i++ {
		pcm[i] = int16(binary.LittleEndian.Uint16(out[i*2:]))
	}

	return DecodeResult{Outcome: Ok, BytesConsumed: frameLen, SampleCount: want}
}

// couldBeSync reports whether a short window is a plausible header prefix,
// in which case the caller should refill rather than resync.
func (c *MP3) couldBeSync(window []byte) bool {
	switch len(window) {
	case 0:
		return true
	case 1:
		return window[0] == 0xFF
	default:
		return hasSyncPattern(window[0], window[1])
	}
}

// reset discards the synthesis state after a decode failure. Any reservoir
// carry-over is lost, which costs at most a few silent granules after
// recovery.
func (c *MP3) reset() {
	c.feed.Reset()
	c.dec = nil
}
