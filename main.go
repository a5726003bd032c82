// ABOUTME: Entry point for the pulseplay player CLI
// ABOUTME: Parses flags, probes the stream and runs a playback session
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pulseplay/pulseplay-go/internal/ui"
	"github.com/pulseplay/pulseplay-go/internal/version"
	"github.com/pulseplay/pulseplay-go/pkg/audio"
	"github.com/pulseplay/pulseplay-go/pkg/audio/codec"
	"github.com/pulseplay/pulseplay-go/pkg/audio/output"
	"github.com/pulseplay/pulseplay-go/pkg/player"
	"github.com/pulseplay/pulseplay-go/pkg/source"
)

var (
	filePath    = flag.String("file", "", "MP3 file to play")
	volume      = flag.Float64("volume", player.DefaultVolume, "Playback volume (0.0 to 1.0)")
	wavOut      = flag.String("wav-out", "", "Render to a WAV file instead of the speaker")
	windowBytes = flag.Int("window-bytes", 0, "Stream window capacity in bytes (default 8192)")
	timeoutMs   = flag.Int("write-timeout-ms", 100, "Sink write timeout in milliseconds")
	logFile     = flag.String("log-file", "pulseplay.log", "Log file path")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: pulseplay -file <path.mp3> [-volume 0.7] [-wav-out out.wav]")
		os.Exit(2)
	}

	useTUI := !*noTUI && *wavOut == ""

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

	// Probe the stream first: the speaker needs the format up front.
	mp3Codec := codec.NewMP3()
	probeSrc, err := source.Open(*filePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *filePath, err)
	}
	info, err := player.Probe(probeSrc, mp3Codec)
	probeSrc.Close()
	if err != nil {
		log.Fatalf("Failed to probe %s: %v", *filePath, err)
	}
	log.Printf("Stream: %dHz %dch %dkbps, ~%s",
		info.Meta.SampleRate, info.Meta.Channels, info.Meta.BitRateKbps,
		info.Duration.Round(time.Second))

	format := audio.Format{SampleRate: info.Meta.SampleRate, Channels: info.Meta.Channels}

	var sink output.Sink
	if *wavOut != "" {
		wavSink, err := output.NewWAV(*wavOut, format)
		if err != nil {
			log.Fatalf("Failed to create WAV sink: %v", err)
		}
		defer wavSink.Close()
		sink = wavSink
	} else {
		otoSink := output.NewOto(format)
		defer otoSink.Close()
		sink = otoSink
	}

	src, err := source.Open(*filePath)
	if err != nil {
		log.Fatalf("Failed to reopen %s: %v", *filePath, err)
	}

	control := ui.NewControl()
	var tuiProg *tea.Program
	if useTUI {
		initial := ui.StatusMsg{
			Path:       *filePath,
			SampleRate: info.Meta.SampleRate,
			Channels:   info.Meta.Channels,
			BitRate:    info.Meta.BitRateKbps,
			State:      "playing",
		}
		tuiProg, err = ui.Run(control, initial, int(*volume*100))
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
	}

	sendStatus := func(msg tea.Msg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	lastLogged := -10
	var sess *player.Session
	sess, err = player.NewSession(player.Config{
		Source:       src,
		Sink:         sink,
		Codec:        mp3Codec,
		Volume:       *volume,
		WriteTimeout: time.Duration(*timeoutMs) * time.Millisecond,
		WindowSize:   *windowBytes,
		OnProgress: func(fraction float64) {
			sendStatus(ui.StatusMsg{State: "playing", Fraction: fraction, Frames: sess.ProcessedFrames()})
			if !useTUI {
				if pct := int(fraction * 100); pct >= lastLogged+10 {
					lastLogged = pct
					log.Printf("Progress: %d%%", pct)
				}
			}
		},
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	// Control paths into the running session: TUI keys and OS signals both
	// go through the session's thread-safe Stop/SetVolume.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			select {
			case percent := <-control.Volume:
				sess.SetVolume(float64(percent) / 100.0)
			case <-control.Stop:
				sess.Stop()
			case <-sigChan:
				log.Printf("Shutdown signal received")
				sess.Stop()
			}
		}
	}()

	done := make(chan error, 1)
	go func() {
		err := sess.Play()
		sendStatus(ui.DoneMsg{State: sess.State().String()})
		done <- err
	}()

	if tuiProg != nil {
		if _, err := tuiProg.Run(); err != nil {
			log.Printf("TUI error: %v", err)
		}
		// TUI quit before playback ended; make sure the session winds down.
		sess.Stop()
	}

	err = <-done
	switch {
	case err == nil:
		log.Printf("Playback finished: %d frames", sess.ProcessedFrames())
	case errors.Is(err, player.ErrStopped):
		log.Printf("Playback stopped: %d frames", sess.ProcessedFrames())
	default:
		log.Fatalf("Playback failed: %v", err)
	}
}
