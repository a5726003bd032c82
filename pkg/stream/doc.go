// ABOUTME: Streaming core package
// ABOUTME: Fixed byte window plus the frame streamer state machine
// Package stream implements the bounded-memory streaming core: a
// fixed-capacity byte window that slides over a compressed stream, and a
// frame streamer that turns it into an ordered sequence of decoded frames.
//
// The streamer absorbs transient stream damage internally. Each call to
// Next yields exactly one frame, or ErrExhausted at normal end of stream;
// resynchronization after corrupt bytes advances one byte at a time and is
// bounded by the window size per refill, so no input can wedge the loop.
package stream
