// ABOUTME: High-level playback session API
// ABOUTME: Session lifecycle, probing, volume and cooperative stop
// Package player drives a compressed stream end to end: frames decoded by
// the stream package are volume-scaled and forwarded to a sink, with
// progress reporting and cooperative stop.
//
// A Session owns its stream window and streamer for one playback; the
// source, sink and codec are borrowed from the caller. Sessions are
// single-use.
//
// Example:
//
//	src, _ := source.Open("clip.mp3")
//	sink := output.NewOto(audio.Format{SampleRate: 44100, Channels: 2})
//	sess, _ := player.NewSession(player.Config{
//	    Source: src,
//	    Sink:   sink,
//	    Codec:  codec.NewMP3(),
//	    Volume: 0.7,
//	})
//	err := sess.Play()
package player
