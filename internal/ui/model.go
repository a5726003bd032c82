// ABOUTME: Bubbletea model for playback TUI
// ABOUTME: Shows stream format, progress and volume; handles control keys
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state for one playback.
type Model struct {
	// Stream
	path       string
	sampleRate int
	channels   int
	bitRate    int

	// Playback
	state    string
	volume   int // percent, mirrors the session volume
	fraction float64
	frames   uint64

	// Dimensions
	width  int
	height int

	control *Control
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	case DoneMsg:
		m.state = msg.State
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := fmt.Sprintf(`┌─ Pulseplay ──────────────────────────────────────────┐
│ File:   %-44s │
`, truncate(m.path, 44))

	if m.sampleRate > 0 {
		s += fmt.Sprintf("│ Format: %dHz %s @ %dkbps%-21s │\n",
			m.sampleRate, channelName(m.channels), m.bitRate, "")
	} else {
		s += "│ Format: (waiting for first frame)                    │\n"
	}

	progressBar := renderBar(int(m.fraction*100), 100, 30)
	s += fmt.Sprintf("│ %-8s [%s] %3d%%%-6s │\n",
		m.state, progressBar, int(m.fraction*100), "")
	s += fmt.Sprintf("│ Frames: %-44d │\n", m.frames)

	volumeBar := renderBar(m.volume, 100, 10)
	s += fmt.Sprintf("│ Volume: [%s] %3d%%%-32s │\n", volumeBar, m.volume, "")

	s += `│ ↑/↓:Volume  s:Stop  q:Quit                           │
└──────────────────────────────────────────────────────┘
`
	return s
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "s":
		m.control.requestStop()
		m.state = "stopping"
	case "up":
		m.volume += 5
		if m.volume > 100 {
			m.volume = 100
		}
		m.control.setVolume(m.volume)
	case "down":
		m.volume -= 5
		if m.volume < 0 {
			m.volume = 0
		}
		m.control.setVolume(m.volume)
	}

	return m, nil
}

// applyStatus updates the model from a status message.
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Path != "" {
		m.path = msg.Path
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.bitRate = msg.BitRate
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Fraction > 0 {
		m.fraction = msg.Fraction
	}
	if msg.Frames > 0 {
		m.frames = msg.Frames
	}
}

// StatusMsg updates TUI state.
type StatusMsg struct {
	Path       string
	SampleRate int
	Channels   int
	BitRate    int
	State      string
	Fraction   float64
	Frames     uint64
}

// DoneMsg ends the TUI when playback finishes.
type DoneMsg struct {
	State string
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// channelName names a channel count.
func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// renderBar renders a filled/empty bar of the given width.
func renderBar(value, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := value * width / max
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
