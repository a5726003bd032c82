// ABOUTME: Byte source package for compressed stream input
// ABOUTME: Provides Source interface with file and memory implementations
// Package source provides sequential, chunked byte input for the streaming
// pipeline.
//
// A Source hands out bytes in caller-sized chunks and reports whether more
// may still arrive. Reads returning 0 bytes mean "nothing right now", which
// lets slow storage back-pressure the decode loop without signalling a
// premature end of stream.
//
// Example:
//
//	src, err := source.Open("clip.mp3")
//	defer src.Close()
package source
