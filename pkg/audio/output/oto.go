// ABOUTME: Oto-based speaker sink implementation
// ABOUTME: Pipe-fed oto player with bounded, order-preserving writes
package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/pulseplay/pulseplay-go/pkg/audio"
)

// Oto plays PCM through the platform audio device using the oto library.
// The oto player pulls from a pipe; a single writer goroutine feeds it so
// timed-out writes keep draining in the background without reordering
// samples. oto permits one audio context per process, so create at most one
// Oto sink.
type Oto struct {
	format audio.Format

	otoCtx *oto.Context
	player *oto.Player
	pr     *io.PipeReader
	pw     *io.PipeWriter

	reqs   chan otoWriteReq
	active bool
}

type otoWriteReq struct {
	data []byte
	done chan otoWriteRes
}

type otoWriteRes struct {
	n   int
	err error
}

// NewOto creates a speaker sink for the given PCM format. The device is not
// opened until Start.
func NewOto(format audio.Format) *Oto {
	return &Oto{format: format}
}

// IsActive reports whether the device is started.
func (o *Oto) IsActive() bool {
	return o.active
}

// Start opens the audio device and begins pulling samples.
func (o *Oto) Start() error {
	if o.active {
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   o.format.SampleRate,
		ChannelCount: o.format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.pr, o.pw = io.Pipe()
	o.player = ctx.NewPlayer(o.pr)
	o.player.Play()

	o.reqs = make(chan otoWriteReq)
	go o.writeLoop()

	o.active = true
	log.Printf("Speaker started: %dHz, %d channels", o.format.SampleRate, o.format.Channels)
	return nil
}

// writeLoop serializes pipe writes so a timed-out caller never interleaves
// with the next block.
func (o *Oto) writeLoop() {
	for req := range o.reqs {
		n, err := o.pw.Write(req.data)
		req.done <- otoWriteRes{n: n / 2, err: err}
	}
}

// Write forwards samples to the device, blocking at most timeout. Samples
// are copied, so the caller may reuse its block immediately; a timed-out
// block still reaches the device once the pipe drains.
func (o *Oto) Write(samples []int16, timeout time.Duration) (int, error) {
	if !o.active {
		return 0, ErrNotActive
	}
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}

	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	req := otoWriteReq{data: data, done: make(chan otoWriteRes, 1)}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o.reqs <- req:
	case <-timer.C:
		return 0, ErrWriteTimeout
	}

	select {
	case res := <-req.done:
		if res.err != nil {
			return res.n, fmt.Errorf("speaker write failed: %w", res.err)
		}
		return res.n, nil
	case <-timer.C:
		// The writer goroutine finishes the block in the background.
		return 0, ErrWriteTimeout
	}
}

// Silence plays the given duration of zero samples, pushing residual audio
// through the device buffer.
func (o *Oto) Silence(d time.Duration) error {
	if !o.active || d <= 0 {
		return nil
	}

	count := int(float64(o.format.SampleRate*o.format.Channels) * d.Seconds())
	zeros := make([]int16, count)
	_, err := o.Write(zeros, d+DefaultWriteTimeout)
	if err != nil && !errors.Is(err, ErrWriteTimeout) {
		return err
	}
	return nil
}

// Close stops the device and releases the audio context.
func (o *Oto) Close() error {
	if !o.active {
		return nil
	}
	o.active = false

	close(o.reqs)
	o.pw.Close()
	err := o.player.Close()
	o.otoCtx.Suspend()
	return err
}
