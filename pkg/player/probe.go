// ABOUTME: Stream probing without playback
// ABOUTME: Reads a bounded prefix to report metadata and estimated duration
package player

import (
	"errors"
	"time"

	"github.com/pulseplay/pulseplay-go/pkg/audio"
	"github.com/pulseplay/pulseplay-go/pkg/audio/codec"
	"github.com/pulseplay/pulseplay-go/pkg/source"
)

// probePrefixSize bounds how much of the stream Probe reads. A valid frame
// header appears well within the first 4 KiB of any playable stream.
const probePrefixSize = 4096

// ErrNoStream is returned by Probe when no frame sync is found in the
// stream prefix.
var ErrNoStream = errors.New("no frame found in stream prefix")

// Info describes a probed stream.
type Info struct {
	Meta      codec.FrameMetadata
	SizeBytes int64

	// Duration is a bitrate-based estimate, 0 when the size is unknown.
	// It is an estimate only: variable-bitrate streams drift from it.
	Duration time.Duration
}

// Probe reads a bounded prefix from src, locates the first frame and
// returns its metadata with a duration estimate. The source is consumed;
// open a fresh one to play.
func Probe(src source.Source, cdc codec.Codec) (Info, error) {
	prefix := make([]byte, probePrefixSize)
	filled := 0
	for filled < len(prefix) && src.HasMore() {
		n, err := src.Read(prefix[filled:])
		if err != nil {
			return Info{}, err
		}
		if n == 0 {
			break
		}
		filled += n
	}

	window := prefix[:filled]
	k := cdc.FindSync(window)
	if k < 0 {
		return Info{}, ErrNoStream
	}

	meta, err := cdc.PeekMetadata(window[k:])
	if err != nil {
		return Info{}, err
	}

	info := Info{Meta: meta}
	if sized, ok := src.(source.Sized); ok {
		info.SizeBytes = sized.Size()
		info.Duration = audio.EstimateDuration(sized.Size(), meta.BitRateKbps)
	}
	return info, nil
}
