// ABOUTME: In-memory byte source
// ABOUTME: Serves a byte slice in caller-bounded chunks
package source

// BytesSource serves an in-memory byte slice as a Source. Useful for tests
// and for streams already held in memory.
type BytesSource struct {
	data   []byte
	offset int
	closed bool

	// ChunkLimit, when > 0, caps the bytes returned per Read call. It lets
	// tests exercise partial refills the way a slow device would.
	ChunkLimit int
}

// NewBytes creates a Source over data. The slice is not copied.
func NewBytes(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

func (s *BytesSource) Read(dst []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	chunk := s.data[s.offset:]
	if s.ChunkLimit > 0 && len(chunk) > s.ChunkLimit {
		chunk = chunk[:s.ChunkLimit]
	}
	n := copy(dst, chunk)
	s.offset += n
	return n, nil
}

func (s *BytesSource) HasMore() bool {
	return !s.closed && s.offset < len(s.data)
}

// Size returns the total length of the backing slice.
func (s *BytesSource) Size() int64 {
	return int64(len(s.data))
}

func (s *BytesSource) Close() error {
	s.closed = true
	return nil
}
