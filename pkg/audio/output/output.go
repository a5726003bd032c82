// ABOUTME: Audio sink interface definition
// ABOUTME: Common contract for PCM playback backends
package output

import (
	"errors"
	"time"
)

var (
	// ErrNotActive is returned by Write when the sink has not been started.
	ErrNotActive = errors.New("sink not active")

	// ErrWriteTimeout is returned when a write could not be accepted within
	// its timeout. It is a partial-write condition, not a device failure;
	// sessions continue after it.
	ErrWriteTimeout = errors.New("sink write timed out")
)

// DefaultWriteTimeout bounds a single sink write when the caller does not
// choose one.
const DefaultWriteTimeout = 100 * time.Millisecond

// Sink accepts interleaved 16-bit PCM sample blocks. Backpressure is
// expressed by Write blocking up to the given timeout; a slow device limits
// how fast the decode loop advances.
type Sink interface {
	// IsActive reports whether the sink is started and accepting samples.
	IsActive() bool

	// Start activates the sink. Starting an active sink is a no-op.
	Start() error

	// Write forwards samples to the device, blocking at most timeout, and
	// returns the count accepted. ErrWriteTimeout reports samples that
	// could not be accepted in time.
	Write(samples []int16, timeout time.Duration) (int, error)

	// Silence emits the given duration of silence, flushing residual audio
	// out of the device after a session ends.
	Silence(d time.Duration) error
}
