// ABOUTME: Tests for audio types and sample scaling
// ABOUTME: Covers volume clamping, scaling paths and stream estimates
package audio

import (
	"testing"
	"time"
)

func TestClampVolume(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"in range", 0.5, 0.5},
		{"zero", 0.0, 0.0},
		{"one", 1.0, 1.0},
		{"below range", -0.3, 0.0},
		{"above range", 1.7, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampVolume(tt.input); got != tt.expected {
				t.Errorf("ClampVolume(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestScaleSamplesUnityIsExactCopy(t *testing.T) {
	src := []int16{-32768, -1, 0, 1, 12345, 32767}
	dst := make([]int16, len(src))

	n := ScaleSamples(dst, src, 1.0)
	if n != len(src) {
		t.Fatalf("ScaleSamples returned %d, want %d", n, len(src))
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("sample %d: got %d, want %d", i, dst[i], src[i])
		}
	}
}

func TestScaleSamplesMuteIsAllZeros(t *testing.T) {
	src := []int16{-32768, -1, 0, 1, 32767}
	dst := []int16{9, 9, 9, 9, 9}

	ScaleSamples(dst, src, 0.0)
	for i, s := range dst {
		if s != 0 {
			t.Errorf("sample %d: got %d, want 0", i, s)
		}
	}
}

func TestScaleSamplesHalfVolume(t *testing.T) {
	src := []int16{-32768, -100, 0, 100, 32767}
	dst := make([]int16, len(src))

	ScaleSamples(dst, src, 0.5)
	for i, s := range src {
		want := int16(float64(s) * 0.5)
		if dst[i] != want {
			t.Errorf("sample %d: got %d, want %d", i, dst[i], want)
		}
	}
}

func TestScaleSamplesClampsVolumeAboveOne(t *testing.T) {
	src := []int16{-32768, 32767}
	dst := make([]int16, len(src))

	// Anything above 1.0 clamps to unity, so no sample can overflow.
	ScaleSamples(dst, src, 2.5)
	if dst[0] != -32768 || dst[1] != 32767 {
		t.Errorf("got %v, want [-32768 32767]", dst)
	}
}

func TestScaleSamplesShortDst(t *testing.T) {
	src := []int16{1, 2, 3, 4}
	dst := make([]int16, 2)

	n := ScaleSamples(dst, src, 1.0)
	if n != 2 {
		t.Errorf("ScaleSamples returned %d, want 2", n)
	}
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		bitrate  int
		expected time.Duration
	}{
		{"one minute at 128kbps", 960000, 128, time.Minute},
		{"unknown bitrate", 960000, 0, 0},
		{"unknown size", 0, 128, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateDuration(tt.size, tt.bitrate); got != tt.expected {
				t.Errorf("EstimateDuration(%d, %d) = %v, want %v", tt.size, tt.bitrate, got, tt.expected)
			}
		})
	}
}

func TestEstimateTotalFrames(t *testing.T) {
	if got := EstimateTotalFrames(4170, 417); got != 10 {
		t.Errorf("EstimateTotalFrames(4170, 417) = %d, want 10", got)
	}
	if got := EstimateTotalFrames(4170, 0); got != 0 {
		t.Errorf("EstimateTotalFrames with unknown frame size = %d, want 0", got)
	}
	if got := EstimateTotalFrames(0, 417); got != 0 {
		t.Errorf("EstimateTotalFrames with unknown size = %d, want 0", got)
	}
}
