package tui

import (
	"time"

	"github.com/vovakirdan/block-breaker/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last event.
const DefaultHoldWindow = 150 * time.Millisecond

// HeldKeys turns key press events into per-tick held state.
// Terminals report presses and auto-repeats but no releases, so a key is
// treated as held until no event for it has arrived within the hold window.
type HeldKeys struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHeldKeys creates a held-key table. A non-positive window uses
// DefaultHoldWindow.
func NewHeldKeys(window time.Duration) *HeldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HeldKeys{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// Press records a press or repeat of a at now.
// Pressing one direction releases the other immediately.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.last, core.ActionRight)
	case core.ActionRight:
		delete(h.last, core.ActionLeft)
	}
	h.last[a] = now
}

// Held reports whether a is held at now.
func (h *HeldKeys) Held(a core.Action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) < h.window
}

// Frame returns the actions held at now and forgets expired ones.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a, t := range h.last {
		if now.Sub(t) < h.window {
			frame.Set(a)
		} else {
			delete(h.last, a)
		}
	}
	return frame
}

// Reset releases every key.
func (h *HeldKeys) Reset() {
	clear(h.last)
}
