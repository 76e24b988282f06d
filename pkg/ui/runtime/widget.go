// Package runtime provides the widget runtime for the gridview terminal
// viewer: a cell buffer, rectangle geometry, a root screen and the event loop
// that serializes every render on one goroutine.
package runtime

// Constraints define the min/max space available to a widget during measure.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Tight returns constraints that force an exact size.
func Tight(w, h int) Constraints {
	return Constraints{
		MinWidth:  w,
		MaxWidth:  w,
		MinHeight: h,
		MaxHeight: h,
	}
}

// Loose returns constraints with only max bounds (min = 0).
func Loose(w, h int) Constraints {
	return Constraints{
		MaxWidth:  w,
		MaxHeight: h,
	}
}

// Constrain clamps a size to fit within these constraints.
func (c Constraints) Constrain(s Size) Size {
	return Size{
		Width:  clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

// MaxSize returns the maximum size allowed by constraints.
func (c Constraints) MaxSize() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// Size is a widget's measured dimensions.
type Size struct {
	Width, Height int
}

// Rect is a positioned rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// ZeroRect is the zero value rect.
var ZeroRect = Rect{}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersection returns the overlapping area of two rects.
func (r Rect) Intersection(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x || y2 <= y {
		return ZeroRect
	}
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Inset returns a rect shrunk by the given amounts.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  max(0, r.Width-left-right),
		Height: max(0, r.Height-top-bottom),
	}
}

// SplitVertical cuts the rect into a top part of at most top rows and the
// remaining bottom part.
func (r Rect) SplitVertical(top int) (Rect, Rect) {
	top = clamp(top, 0, max(0, r.Height))
	upper := Rect{X: r.X, Y: r.Y, Width: r.Width, Height: top}
	lower := Rect{X: r.X, Y: r.Y + top, Width: r.Width, Height: r.Height - top}
	return upper, lower
}

// Widget is the core interface all UI components implement.
type Widget interface {
	// Measure returns desired size given constraints.
	Measure(constraints Constraints) Size

	// Layout assigns final position and size.
	// Widget should store this for use in Render.
	Layout(bounds Rect)

	// Render draws the widget to the buffer.
	Render(ctx RenderContext)

	// HandleMessage processes input/events.
	// Returns result indicating if handled and any commands to bubble up.
	HandleMessage(msg Message) HandleResult
}

// Invalidator is implemented by widgets that track whether their last
// render is still current. Widgets that do not implement it are redrawn on
// every render pass.
type Invalidator interface {
	NeedsRender() bool
	ClearInvalidation()
}

// HandleResult is returned from HandleMessage.
type HandleResult struct {
	Handled  bool      // Was the message consumed?
	Commands []Command // Commands to send to parent/app
}

// Handled returns a result indicating the message was consumed.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns a result indicating the message was not consumed.
func Unhandled() HandleResult {
	return HandleResult{Handled: false}
}

// WithCommand returns a handled result with a single command.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
