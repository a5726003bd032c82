// ABOUTME: Audio type definitions
// ABOUTME: Sample scaling helpers and stream estimates
package audio

import "time"

const (
	// MaxSample and MinSample bound the 16-bit signed PCM range.
	MaxSample = 32767
	MinSample = -32768
)

// Format describes a decoded PCM stream.
type Format struct {
	SampleRate int
	Channels   int
}

// ClampVolume constrains a volume setting to [0.0, 1.0].
func ClampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

// ScaleSamples multiplies src by volume into dst with saturation and returns
// the number of samples written. dst and src may alias. Volume is clamped
// before use, so the result never leaves the 16-bit signed range.
func ScaleSamples(dst, src []int16, volume float64) int {
	volume = ClampVolume(volume)
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}

	switch volume {
	case 1.0:
		copy(dst[:n], src[:n])
	case 0.0:
		for i := range dst[:n] {
			dst[i] = 0
		}
	default:
		for i := 0; i < n; i++ {
			scaled := float64(src[i]) * volume
			if scaled > MaxSample {
				scaled = MaxSample
			} else if scaled < MinSample {
				scaled = MinSample
			}
			dst[i] = int16(scaled)
		}
	}

	return n
}

// EstimateDuration estimates stream duration from its byte size and bitrate.
// Returns 0 when the bitrate is unknown.
func EstimateDuration(sizeBytes int64, bitRateKbps int) time.Duration {
	if bitRateKbps <= 0 || sizeBytes <= 0 {
		return 0
	}
	seconds := float64(sizeBytes*8) / float64(bitRateKbps*1000)
	return time.Duration(seconds * float64(time.Second))
}

// EstimateTotalFrames estimates the frame count of a stream from its byte
// size and the average compressed frame size. Returns 0 if either is unknown.
func EstimateTotalFrames(sizeBytes int64, avgFrameBytes int) int64 {
	if avgFrameBytes <= 0 || sizeBytes <= 0 {
		return 0
	}
	return sizeBytes / int64(avgFrameBytes)
}
