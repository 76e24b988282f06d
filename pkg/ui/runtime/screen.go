package runtime

// Screen owns the root widget and the off-screen buffer it renders into.
type Screen struct {
	width, height int
	root          Widget
	buffer        *Buffer
	stale         bool
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
		stale:  true,
	}
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions and re-lays out the root.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	s.stale = true

	if s.root != nil {
		s.root.Layout(Rect{0, 0, w, h})
	}
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot sets and lays out the root widget.
func (s *Screen) SetRoot(root Widget) {
	s.root = root
	s.stale = true
	if root != nil {
		root.Layout(Rect{0, 0, s.width, s.height})
	}
}

// Root returns the root widget.
func (s *Screen) Root() Widget {
	return s.root
}

// Render clears the buffer and draws the root widget. A root that reports
// it is still current is not redrawn and the buffer keeps its contents.
// Render reports whether it drew.
func (s *Screen) Render() bool {
	inv, tracked := s.root.(Invalidator)
	if tracked && !s.stale && !inv.NeedsRender() {
		return false
	}
	s.buffer.Clear()
	s.stale = false
	if s.root == nil {
		return true
	}
	s.root.Render(RenderContext{
		Buffer: s.buffer,
		Bounds: Rect{0, 0, s.width, s.height},
	})
	if tracked {
		inv.ClearInvalidation()
	}
	return true
}

// HandleMessage dispatches a message to the root widget.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	if s.root == nil {
		return Unhandled()
	}
	return s.root.HandleMessage(msg)
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer *Buffer
	Bounds Rect // Widget's allocated bounds
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer: ctx.Buffer,
		Bounds: bounds,
	}
}
