// ABOUTME: Tests for the playback TUI model
// ABOUTME: Covers status updates, control keys and rendering helpers
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelAppliesStatus(t *testing.T) {
	m := NewModel(NewControl(), StatusMsg{Path: "song.mp3"}, 70)

	updated, _ := m.Update(StatusMsg{
		SampleRate: 44100,
		Channels:   2,
		BitRate:    128,
		State:      "playing",
		Fraction:   0.25,
		Frames:     100,
	})
	got := updated.(Model)

	if got.sampleRate != 44100 || got.channels != 2 || got.bitRate != 128 {
		t.Errorf("format not applied: %dHz %dch %dkbps", got.sampleRate, got.channels, got.bitRate)
	}
	if got.state != "playing" || got.fraction != 0.25 || got.frames != 100 {
		t.Errorf("playback state not applied: %q %v %d", got.state, got.fraction, got.frames)
	}
}

func TestModelDoneQuits(t *testing.T) {
	m := NewModel(NewControl(), StatusMsg{Path: "song.mp3"}, 70)

	updated, cmd := m.Update(DoneMsg{State: "stopped"})
	if cmd == nil {
		t.Fatal("DoneMsg did not produce a quit command")
	}
	if updated.(Model).state != "stopped" {
		t.Errorf("state = %q, want stopped", updated.(Model).state)
	}
}

func TestModelVolumeKeys(t *testing.T) {
	control := NewControl()
	m := NewModel(control, StatusMsg{Path: "song.mp3"}, 70)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := updated.(Model).volume; got != 75 {
		t.Errorf("volume after up = %d, want 75", got)
	}
	select {
	case percent := <-control.Volume:
		if percent != 75 {
			t.Errorf("control received %d, want 75", percent)
		}
	default:
		t.Error("volume change not sent to control")
	}

	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := updated.(Model).volume; got != 70 {
		t.Errorf("volume after down = %d, want 70", got)
	}
}

func TestModelVolumeIsClamped(t *testing.T) {
	m := NewModel(NewControl(), StatusMsg{Path: "song.mp3"}, 98)

	var updated tea.Model = m
	for i := 0; i < 3; i++ {
		updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	if got := updated.(Model).volume; got != 100 {
		t.Errorf("volume = %d, want clamped to 100", got)
	}
}

func TestModelStopKey(t *testing.T) {
	control := NewControl()
	m := NewModel(control, StatusMsg{Path: "song.mp3"}, 70)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if updated.(Model).state != "stopping" {
		t.Errorf("state = %q after stop key, want stopping", updated.(Model).state)
	}
	select {
	case <-control.Stop:
	default:
		t.Error("stop not sent to control")
	}
}

func TestModelViewShowsFormat(t *testing.T) {
	m := NewModel(NewControl(), StatusMsg{Path: "song.mp3"}, 70)
	m.width = 80
	m.sampleRate = 44100
	m.channels = 2
	m.bitRate = 128

	view := m.View()
	if !strings.Contains(view, "44100Hz Stereo @ 128kbps") {
		t.Errorf("view missing format line:\n%s", view)
	}
	if !strings.Contains(view, "song.mp3") {
		t.Errorf("view missing file path:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		max      int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-file-name.mp3", 10, "a-very-..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.max); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
		}
	}
}

func TestChannelName(t *testing.T) {
	tests := []struct {
		channels int
		expected string
	}{
		{1, "Mono"},
		{2, "Stereo"},
		{6, "6ch"},
	}
	for _, tt := range tests {
		if got := channelName(tt.channels); got != tt.expected {
			t.Errorf("channelName(%d) = %q, want %q", tt.channels, got, tt.expected)
		}
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(50, 100, 10); got != "█████░░░░░" {
		t.Errorf("renderBar(50, 100, 10) = %q", got)
	}
	if got := renderBar(200, 100, 4); got != "████" {
		t.Errorf("overfull bar = %q, want all filled", got)
	}
	if got := renderBar(-5, 100, 4); got != "░░░░" {
		t.Errorf("negative bar = %q, want all empty", got)
	}
}
