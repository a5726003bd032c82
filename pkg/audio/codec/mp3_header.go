// ABOUTME: MPEG audio frame header parsing
// ABOUTME: Sync pattern, bitrate/sample-rate tables and frame length math
package codec

// mpegVersion values follow the 2-bit version field of the frame header.
// mpeg25 is listed for the field encoding but rejected by the parser: the
// synthesis backend resolves version 2.5 headers into the 22050 Hz family,
// so their frames can never decode here.
type mpegVersion int

const (
	mpeg25 mpegVersion = 0
	mpeg2  mpegVersion = 2
	mpeg1  mpegVersion = 3
)

// headerSize is the byte length of an MPEG audio frame header.
const headerSize = 4

// Layer III bitrates in kbps, indexed by the 4-bit bitrate field. Index 0
// (free format) and 15 (forbidden) are rejected.
var bitratesMPEG1 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
var bitratesMPEG2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}

// Sample rates in Hz, indexed by the 2-bit sample rate field. Index 3 is
// reserved.
var sampleRates = map[mpegVersion][3]int{
	mpeg1: {44100, 48000, 32000},
	mpeg2: {22050, 24000, 16000},
}

// frameHeader holds the fields of one parsed Layer III header.
type frameHeader struct {
	version    mpegVersion
	sampleRate int
	bitRate    int // kbps
	padding    int
	channels   int
}

// samplesPerFrame returns the decoded sample count per channel.
func (h frameHeader) samplesPerFrame() int {
	if h.version == mpeg1 {
		return 1152
	}
	return 576
}

// frameLength returns the total compressed frame size in bytes, header
// included.
func (h frameHeader) frameLength() int {
	// Layer III: floor(spf/8 * bitrate / samplerate) + padding.
	return h.samplesPerFrame() / 8 * h.bitRate * 1000 / h.sampleRate + h.padding
}

// hasSyncPattern reports whether b0,b1 carry the 11-bit frame sync.
func hasSyncPattern(b0, b1 byte) bool {
	return b0 == 0xFF && b1&0xE0 == 0xE0
}

// parseFrameHeader validates and decodes the 4-byte header at the start of
// window. It accepts Layer III frames of MPEG-1 and MPEG-2 with a known
// bitrate and sample rate; anything else, MPEG-2.5 included, is not a frame.
func parseFrameHeader(window []byte) (frameHeader, bool) {
	if len(window) < headerSize {
		return frameHeader{}, false
	}
	if !hasSyncPattern(window[0], window[1]) {
		return frameHeader{}, false
	}

	// MPEG-2.5 and the reserved version value are not decodable downstream.
	version := mpegVersion(window[1] >> 3 & 0x3)
	if version != mpeg1 && version != mpeg2 {
		return frameHeader{}, false
	}

	// Layer field: 01 = Layer III.
	if window[1]>>1&0x3 != 1 {
		return frameHeader{}, false
	}

	bitrateIdx := int(window[2] >> 4 & 0xF)
	if bitrateIdx == 0 || bitrateIdx == 15 {
		return frameHeader{}, false
	}
	bitRate := bitratesMPEG2[bitrateIdx]
	if version == mpeg1 {
		bitRate = bitratesMPEG1[bitrateIdx]
	}

	rateIdx := int(window[2] >> 2 & 0x3)
	if rateIdx == 3 {
		return frameHeader{}, false
	}

	channels := 2
	if window[3]>>6&0x3 == 3 { // mono channel mode
		channels = 1
	}

	return frameHeader{
		version:    version,
		sampleRate: sampleRates[version][rateIdx],
		bitRate:    bitRate,
		padding:    int(window[2] >> 1 & 0x1),
		channels:   channels,
	}, true
}
