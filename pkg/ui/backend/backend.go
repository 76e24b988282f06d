// Package backend defines the terminal surface the table viewer draws on.
// The tcell backend drives a real terminal; the sim backend wraps tcell's
// simulation screen for frame tests.
package backend

import "github.com/odvcencio/gridview/pkg/ui/terminal"

// Backend is the terminal abstraction layer.
// Exactly one Backend is acquired per process: Init on startup, Fini on every
// exit path.
type Backend interface {
	// Init takes over the terminal (alt screen, raw mode).
	Init() error

	// Fini restores the terminal.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets a cell at position (x, y) with the given rune and style.
	// The comb parameter contains combining characters (can be nil).
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show synchronizes the internal buffer to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent blocks until an event is available and returns it.
	// Returns nil if the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	// Sync forces a full redraw on next Show().
	Sync()
}

// RenderTarget is the drawing subset of Backend.
// runtime.Buffer implements it too, so the same writer can paint an
// off-screen buffer or a live frame.
type RenderTarget interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}

// SubTarget wraps a RenderTarget with an offset for sub-region rendering.
// Coordinates outside the region, or outside the parent, are dropped.
type SubTarget struct {
	parent  RenderTarget
	offsetX int
	offsetY int
	width   int
	height  int
}

// NewSubTarget creates a sub-region of a RenderTarget.
func NewSubTarget(parent RenderTarget, x, y, w, h int) *SubTarget {
	return &SubTarget{
		parent:  parent,
		offsetX: x,
		offsetY: y,
		width:   max(0, w),
		height:  max(0, h),
	}
}

// Size returns the sub-target dimensions.
func (s *SubTarget) Size() (width, height int) {
	return s.width, s.height
}

// Contains reports whether the relative point lies inside the region and
// inside the parent target.
func (s *SubTarget) Contains(x, y int) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	pw, ph := s.parent.Size()
	ax, ay := s.offsetX+x, s.offsetY+y
	return ax >= 0 && ax < pw && ay >= 0 && ay < ph
}

// SetContent sets content with coordinates relative to the sub-target.
func (s *SubTarget) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	if !s.Contains(x, y) {
		return
	}
	s.parent.SetContent(s.offsetX+x, s.offsetY+y, mainc, comb, style)
}
