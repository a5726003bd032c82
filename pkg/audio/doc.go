// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, sample scaling and stream estimate helpers
// Package audio provides fundamental audio types and utilities for PCM playback.
//
// This package defines core types used throughout the pulseplay library:
//   - Format: Describes a decoded PCM stream (sample rate, channels)
//
// It also provides utilities shared by the streaming pipeline:
//   - Saturating volume scaling over int16 sample blocks
//   - Duration and frame-count estimates derived from bitrate
//
// Example:
//
//	scratch := make([]int16, len(frame))
//	audio.ScaleSamples(scratch, frame, 0.7)
package audio
