// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Sink interface with speaker and WAV file backends
// Package output provides PCM playback sinks.
//
// A Sink accepts interleaved int16 sample blocks with a bounded write
// timeout; backpressure from a slow device is what paces the decode loop.
//
// Backends:
//   - Oto: the platform audio device, via the oto library
//   - WAV: render to a WAV file (offline use and tests)
//
// Example:
//
//	sink := output.NewOto(audio.Format{SampleRate: 44100, Channels: 2})
//	err := sink.Start()
//	n, err := sink.Write(samples, 100*time.Millisecond)
package output
