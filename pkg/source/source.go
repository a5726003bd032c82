// ABOUTME: Byte source interface definition
// ABOUTME: Sequential chunked byte provider over a named resource
package source

import "errors"

var (
	// ErrNotFound is returned by Open when the named resource does not exist.
	ErrNotFound = errors.New("source not found")

	// ErrClosed is returned by operations on a closed source.
	ErrClosed = errors.New("source closed")
)

// Source is a sequential, chunked byte provider. Read fills dst with up to
// len(dst) bytes and returns the count; 0 means exhausted for now, which is
// not necessarily end of stream. HasMore reports whether further bytes may
// still arrive.
type Source interface {
	Read(dst []byte) (int, error)

	HasMore() bool

	Close() error
}

// Sized is implemented by sources with a known total byte size. The playback
// session uses it for progress and duration estimates; sources without a
// known size simply report no estimate.
type Sized interface {
	Size() int64
}
