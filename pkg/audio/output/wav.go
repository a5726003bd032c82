// ABOUTME: WAV file sink implementation
// ABOUTME: Renders session output to disk via go-audio/wav
package output

import (
	"fmt"
	"os"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pulseplay/pulseplay-go/pkg/audio"
)

// WAV renders PCM to a 16-bit WAV file instead of a device. Useful for
// offline rendering and for exercising full session plumbing without audio
// hardware. Writes never block, so the write timeout is unused.
type WAV struct {
	f      *os.File
	enc    *wav.Encoder
	format audio.Format
	active bool

	// reused across writes to keep the per-frame path allocation-free
	ints []int

	SamplesWritten int64
}

// NewWAV creates a WAV sink writing to path with the given format.
func NewWAV(path string, format audio.Format) (*WAV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create wav file: %w", err)
	}

	enc := wav.NewEncoder(f, format.SampleRate, 16, format.Channels, 1)
	return &WAV{f: f, enc: enc, format: format}, nil
}

// IsActive reports whether the sink accepts samples.
func (w *WAV) IsActive() bool {
	return w.active
}

// Start marks the sink active. The file is already open.
func (w *WAV) Start() error {
	w.active = true
	return nil
}

// Write appends samples to the file.
func (w *WAV) Write(samples []int16, _ time.Duration) (int, error) {
	if !w.active {
		return 0, ErrNotActive
	}

	if cap(w.ints) < len(samples) {
		w.ints = make([]int, len(samples))
	}
	w.ints = w.ints[:len(samples)]
	for i, s := range samples {
		w.ints[i] = int(s)
	}

	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: w.format.Channels, SampleRate: w.format.SampleRate},
		Data:           w.ints,
		SourceBitDepth: 16,
	}
	if err := w.enc.Write(buf); err != nil {
		return 0, fmt.Errorf("wav write failed: %w", err)
	}

	w.SamplesWritten += int64(len(samples))
	return len(samples), nil
}

// Silence appends the given duration of zero samples.
func (w *WAV) Silence(d time.Duration) error {
	if !w.active || d <= 0 {
		return nil
	}
	count := int(float64(w.format.SampleRate*w.format.Channels) * d.Seconds())
	zeros := make([]int16, count)
	_, err := w.Write(zeros, 0)
	return err
}

// Close finalizes the WAV header and closes the file.
func (w *WAV) Close() error {
	w.active = false
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("failed to finalize wav: %w", err)
	}
	return w.f.Close()
}
