// ABOUTME: Tests for the fixed-capacity byte window
// ABOUTME: Covers refill, consume bounds and compaction ordering
package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pulseplay/pulseplay-go/pkg/source"
)

func TestNewBufferRejectsInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		if _, err := NewBuffer(capacity); !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("NewBuffer(%d): got %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}

func TestBufferRefillFillsToCapacity(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}

	buf, err := NewBuffer(32)
	if err != nil {
		t.Fatal(err)
	}

	added, err := buf.Refill(source.NewBytes(data))
	if err != nil {
		t.Fatalf("Refill failed: %v", err)
	}
	if added != 32 {
		t.Errorf("Refill added %d bytes, want 32", added)
	}
	if buf.Remaining() != 32 {
		t.Errorf("Remaining() = %d, want 32", buf.Remaining())
	}
	if !bytes.Equal(buf.View(), data[:32]) {
		t.Error("View() does not match source prefix")
	}
}

func TestBufferRefillWhenFullAddsNothing(t *testing.T) {
	src := source.NewBytes(make([]byte, 100))
	buf, err := NewBuffer(16)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := buf.Refill(src); err != nil {
		t.Fatal(err)
	}
	added, err := buf.Refill(src)
	if err != nil {
		t.Fatalf("second Refill failed: %v", err)
	}
	if added != 0 {
		t.Errorf("Refill on full buffer added %d bytes, want 0", added)
	}
}

func TestBufferCompactionPreservesByteOrder(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	src := source.NewBytes(data)
	src.ChunkLimit = 5 // partial refills force repeated compaction

	buf, err := NewBuffer(16)
	if err != nil {
		t.Fatal(err)
	}

	// Drain the whole source through the small window, consuming a prime
	// number of bytes per step so the cursor lands everywhere.
	var got []byte
	for {
		if _, err := buf.Refill(src); err != nil {
			t.Fatalf("Refill failed: %v", err)
		}
		if buf.Remaining() == 0 {
			break
		}
		n := 7
		if n > buf.Remaining() {
			n = buf.Remaining()
		}
		got = append(got, buf.View()[:n]...)
		if err := buf.Consume(n); err != nil {
			t.Fatalf("Consume failed: %v", err)
		}
	}

	if !bytes.Equal(got, data) {
		t.Errorf("bytes reordered or lost through compaction:\n got %v\nwant %v", got, data)
	}
}

func TestBufferConsumeBounds(t *testing.T) {
	buf, err := NewBuffer(16)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buf.Refill(source.NewBytes(make([]byte, 8))); err != nil {
		t.Fatal(err)
	}

	if err := buf.Consume(9); !errors.Is(err, ErrInvalidConsume) {
		t.Errorf("Consume past fill: got %v, want ErrInvalidConsume", err)
	}
	if err := buf.Consume(-1); !errors.Is(err, ErrInvalidConsume) {
		t.Errorf("Consume negative: got %v, want ErrInvalidConsume", err)
	}
	if err := buf.Consume(8); err != nil {
		t.Errorf("Consume exact remaining failed: %v", err)
	}
	if buf.Remaining() != 0 {
		t.Errorf("Remaining() = %d after consuming everything, want 0", buf.Remaining())
	}
}

func TestBufferCapacityIsFixed(t *testing.T) {
	buf, err := NewBuffer(16)
	if err != nil {
		t.Fatal(err)
	}
	src := source.NewBytes(make([]byte, 1000))

	for i := 0; i < 10; i++ {
		if _, err := buf.Refill(src); err != nil {
			t.Fatal(err)
		}
		if buf.Remaining() > buf.Capacity() {
			t.Fatalf("Remaining() %d exceeds capacity %d", buf.Remaining(), buf.Capacity())
		}
		if err := buf.Consume(4); err != nil {
			t.Fatal(err)
		}
	}
	if buf.Capacity() != 16 {
		t.Errorf("Capacity() = %d, want 16", buf.Capacity())
	}
}
