// ABOUTME: Codec package for window-based frame decoding
// ABOUTME: Codec contract plus the MP3 implementation
// Package codec defines the window-based codec contract used by the
// streaming core: locating frame sync patterns, peeking frame metadata and
// decoding exactly one frame into a caller-owned PCM block.
//
// The MP3 implementation parses MPEG Layer III headers itself and delegates
// PCM synthesis to go-mp3.
package codec
