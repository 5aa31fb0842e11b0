// Package tui provides the Bubble Tea integration for birdrush.
// It handles the terminal UI loop, input mapping, and the menu, game and
// scoreboard screens, both locally and over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall-clock time of one simulation frame.
type TickMsg time.Time

// tickCmd schedules the next frame after the given interval. The interval
// is computed once per model from the configured tick rate.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval converts a ticks-per-second rate to a frame interval,
// falling back to 60 for a zero or negative rate.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
