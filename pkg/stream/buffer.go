// ABOUTME: Fixed-capacity sliding byte window
// ABOUTME: Compacts unread bytes in place, never reallocates
package stream

import (
	"errors"
	"fmt"

	"github.com/pulseplay/pulseplay-go/pkg/source"
)

var (
	// ErrInvalidCapacity is returned when constructing a buffer with a
	// non-positive capacity.
	ErrInvalidCapacity = errors.New("buffer capacity must be positive")

	// ErrInvalidConsume is returned when a consume would advance past the
	// buffer fill level.
	ErrInvalidConsume = errors.New("consume exceeds buffered bytes")
)

// Buffer is a fixed-capacity byte window over a compressed stream. Bytes in
// [0, cursor) are stale, bytes in [cursor, fill) are unread. The invariant
// cursor <= fill <= capacity holds after every operation, and the backing
// array is allocated exactly once.
type Buffer struct {
	buf    []byte
	fill   int
	cursor int
}

// NewBuffer allocates a window of the given fixed capacity.
func NewBuffer(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Buffer{buf: make([]byte, capacity)}, nil
}

// Capacity returns the fixed window capacity.
func (b *Buffer) Capacity() int {
	return len(b.buf)
}

// Remaining returns the count of unread bytes.
func (b *Buffer) Remaining() int {
	return b.fill - b.cursor
}

// View returns the unread window [cursor, fill). The slice aliases the
// buffer and is invalidated by the next Refill or Consume; callers must not
// write through it.
func (b *Buffer) View() []byte {
	return b.buf[b.cursor:b.fill]
}

// Consume advances the read cursor by n bytes.
func (b *Buffer) Consume(n int) error {
	if n < 0 || b.cursor+n > b.fill {
		return fmt.Errorf("%w: n=%d remaining=%d", ErrInvalidConsume, n, b.Remaining())
	}
	b.cursor += n
	return nil
}

// Refill compacts the window and fills the free space from src, returning
// the number of bytes added. A return of 0 with the source drained and the
// window empty means the stream is exhausted; a return of 0 with unread
// bytes still buffered leaves the state unchanged and is not an error.
func (b *Buffer) Refill(src source.Source) (int, error) {
	b.compact()

	added := 0
	for b.fill < len(b.buf) && src.HasMore() {
		n, err := src.Read(b.buf[b.fill:])
		if err != nil {
			return added, fmt.Errorf("refill failed: %w", err)
		}
		if n == 0 {
			// Exhausted for now; do not spin on a stalled source.
			break
		}
		b.fill += n
		added += n
	}

	return added, nil
}

// compact slides unread bytes to the window start, reclaiming stale space.
// O(remaining) and skipped entirely when the cursor is already at 0.
func (b *Buffer) compact() {
	if b.cursor == 0 {
		return
	}
	n := copy(b.buf, b.buf[b.cursor:b.fill])
	b.cursor = 0
	b.fill = n
}
