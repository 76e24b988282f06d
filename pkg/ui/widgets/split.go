package widgets

import "github.com/odvcencio/gridview/pkg/ui/runtime"

// Split stacks two widgets vertically: Bottom gets a fixed number of rows
// and Top everything above it. When the area is too short, Top keeps at
// least MinTop rows and Bottom shrinks.
type Split struct {
	Base
	Top          runtime.Widget
	Bottom       runtime.Widget
	MinTop       int
	BottomHeight int
}

// NewSplit creates a split with the given minimum top and fixed bottom
// heights.
func NewSplit(top, bottom runtime.Widget, minTop, bottomHeight int) *Split {
	return &Split{
		Top:          top,
		Bottom:       bottom,
		MinTop:       minTop,
		BottomHeight: bottomHeight,
	}
}

// Measure fills the available space.
func (s *Split) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.MaxSize()
}

// Layout divides bounds between the children.
func (s *Split) Layout(bounds runtime.Rect) {
	s.Base.Layout(bounds)
	topHeight := max(min(s.MinTop, bounds.Height), bounds.Height-s.BottomHeight)
	top, bottom := bounds.SplitVertical(topHeight)
	if s.Top != nil {
		s.Top.Layout(top)
	}
	if s.Bottom != nil {
		s.Bottom.Layout(bottom)
	}
}

// Render draws both children.
func (s *Split) Render(ctx runtime.RenderContext) {
	if s.Top != nil {
		s.Top.Render(ctx)
	}
	if s.Bottom != nil {
		s.Bottom.Render(ctx)
	}
}

// HandleMessage offers msg to the top child, then the bottom one.
func (s *Split) HandleMessage(msg runtime.Message) runtime.HandleResult {
	for _, child := range []runtime.Widget{s.Top, s.Bottom} {
		if child == nil {
			continue
		}
		if result := child.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}

// NeedsRender reports whether the split or either child changed.
func (s *Split) NeedsRender() bool {
	return s.Base.NeedsRender() || childNeedsRender(s.Top) || childNeedsRender(s.Bottom)
}

// ClearInvalidation clears the split and both children.
func (s *Split) ClearInvalidation() {
	s.Base.ClearInvalidation()
	clearChild(s.Top)
	clearChild(s.Bottom)
}
