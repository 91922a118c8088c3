// Package tui provides the Bubble Tea integration for Math Run.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Frame rate bounds for --fps. Zero or negative selects defaultTickRate.
const (
	defaultTickRate = 60
	maxTickRate     = 240
)

// TickMsg carries the wall-clock time of one simulation frame.
type TickMsg time.Time

// tickInterval returns the wait between frames for a requested rate.
func tickInterval(rate int) time.Duration {
	switch {
	case rate <= 0:
		rate = defaultTickRate
	case rate > maxTickRate:
		rate = maxTickRate
	}
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next frame.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
