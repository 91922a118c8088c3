package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mathrun/internal/core"
)

// Hold emulation windows. Terminals report key presses and auto-repeats but
// never releases, so a held action stays active until its key goes quiet.
// The first window spans the OS delay before auto-repeat starts.
const (
	firstHoldWindow  = 320 * time.Millisecond
	repeatHoldWindow = 120 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "w", "up":
		return core.ActionJump, false
	case "1":
		return core.ActionAnswer1, false
	case "2":
		return core.ActionAnswer2, false
	case "3":
		return core.ActionAnswer3, false
	case "4":
		return core.ActionAnswer4, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// isHeld reports whether an action is a continuous control rather than a tap.
func isHeld(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionJump
}

// holdTracker keeps movement keys pressed between their repeat events.
type holdTracker struct {
	first map[core.Action]time.Time // first press of the current hold
	last  map[core.Action]time.Time // most recent press or repeat
}

func newHoldTracker() *holdTracker {
	return &holdTracker{
		first: make(map[core.Action]time.Time),
		last:  make(map[core.Action]time.Time),
	}
}

// Press records a press or repeat of a held action at now.
// Pressing a direction releases the opposite one.
func (h *holdTracker) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		h.Release(core.ActionRight)
	case core.ActionRight:
		h.Release(core.ActionLeft)
	}
	if !h.active(a, now) {
		h.first[a] = now
	}
	h.last[a] = now
}

// Release forgets an action immediately.
func (h *holdTracker) Release(a core.Action) {
	delete(h.first, a)
	delete(h.last, a)
}

// Reset releases everything.
func (h *holdTracker) Reset() {
	clear(h.first)
	clear(h.last)
}

func (h *holdTracker) active(a core.Action, now time.Time) bool {
	last, ok := h.last[a]
	if !ok {
		return false
	}
	window := firstHoldWindow
	if last.After(h.first[a]) {
		window = repeatHoldWindow
	}
	return now.Sub(last) <= window
}

// Apply sets every action still held at now on the frame and drops expired ones.
func (h *holdTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a := range h.last {
		if h.active(a, now) {
			frame.Set(a)
		} else {
			h.Release(a)
		}
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
// Letters are left to the name field, so only non-printing keys navigate.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c":
		return MenuActionQuit
	case "up":
		return MenuActionUp
	case "down":
		return MenuActionDown
	case "left":
		return MenuActionLeft
	case "right":
		return MenuActionRight
	case "enter":
		return MenuActionSelect
	case "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
