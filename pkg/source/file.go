// ABOUTME: File-backed byte source
// ABOUTME: Sequential reads over os.File with size tracking
package source

import (
	"fmt"
	"io"
	"os"
)

// FileSource reads a file sequentially in bounded chunks.
type FileSource struct {
	f      *os.File
	size   int64
	offset int64
	closed bool
}

// Open opens the named file as a Source. A missing file is reported as
// ErrNotFound so callers can distinguish it from I/O failures.
func Open(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open source: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}

	return &FileSource{f: f, size: info.Size()}, nil
}

// Read fills dst with the next bytes of the file. Returns 0 at end of file.
func (s *FileSource) Read(dst []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.f.Read(dst)
	s.offset += int64(n)
	if err == io.EOF {
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("source read failed: %w", err)
	}
	return n, nil
}

// HasMore reports whether unread bytes remain in the file.
func (s *FileSource) HasMore() bool {
	return !s.closed && s.offset < s.size
}

// Size returns the total file size in bytes.
func (s *FileSource) Size() int64 {
	return s.size
}

// Close releases the underlying file handle. Close is idempotent.
func (s *FileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}
