// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program and carries control events to the session
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Control carries volume and stop events from the TUI to the playback
// session.
type Control struct {
	Volume chan int // percent
	Stop   chan struct{}
}

// NewControl creates a control handler.
func NewControl() *Control {
	return &Control{
		Volume: make(chan int, 10),
		Stop:   make(chan struct{}, 1),
	}
}

func (c *Control) setVolume(percent int) {
	select {
	case c.Volume <- percent:
	default:
	}
}

func (c *Control) requestStop() {
	select {
	case c.Stop <- struct{}{}:
	default:
	}
}

// NewModel creates a TUI model with the initial volume in percent. Messages
// sent before the program runs are dropped by bubbletea, so anything known
// up front goes in through the initial status instead.
func NewModel(control *Control, status StatusMsg, volume int) Model {
	m := Model{
		state:   "idle",
		volume:  volume,
		control: control,
	}
	m.applyStatus(status)
	return m
}

// Run builds the TUI program. The caller drives it with Program.Run and
// feeds it StatusMsg/DoneMsg via Program.Send.
func Run(control *Control, status StatusMsg, volume int) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(control, status, volume), tea.WithAltScreen())
	return p, nil
}
