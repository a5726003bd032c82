// ABOUTME: Stream probe CLI
// ABOUTME: Prints frame metadata and duration estimate without playing
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pulseplay/pulseplay-go/pkg/audio/codec"
	"github.com/pulseplay/pulseplay-go/pkg/player"
	"github.com/pulseplay/pulseplay-go/pkg/source"
)

var filePath = flag.String("file", "", "MP3 file to probe")

func main() {
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: pulseplay-probe -file <path.mp3>")
		os.Exit(2)
	}

	src, err := source.Open(*filePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *filePath, err)
	}
	defer src.Close()

	info, err := player.Probe(src, codec.NewMP3())
	if err != nil {
		log.Fatalf("Failed to probe %s: %v", *filePath, err)
	}

	fmt.Printf("File:        %s\n", *filePath)
	fmt.Printf("Size:        %d bytes\n", info.SizeBytes)
	fmt.Printf("Sample rate: %d Hz\n", info.Meta.SampleRate)
	fmt.Printf("Channels:    %d\n", info.Meta.Channels)
	fmt.Printf("Bitrate:     %d kbps\n", info.Meta.BitRateKbps)
	fmt.Printf("Duration:    ~%s (bitrate estimate)\n", info.Duration)
}
