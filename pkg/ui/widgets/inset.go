package widgets

import "github.com/odvcencio/gridview/pkg/ui/runtime"

// Inset keeps Margin blank cells between its bounds and Child.
type Inset struct {
	Base
	Child  runtime.Widget
	Margin int
}

// NewInset wraps child with a margin on every side.
func NewInset(child runtime.Widget, margin int) *Inset {
	return &Inset{Child: child, Margin: max(0, margin)}
}

// Measure adds the margin to the child's size.
func (i *Inset) Measure(constraints runtime.Constraints) runtime.Size {
	if i.Child == nil {
		return constraints.Constrain(runtime.Size{Width: 2 * i.Margin, Height: 2 * i.Margin})
	}
	inner := runtime.Loose(max(0, constraints.MaxWidth-2*i.Margin), max(0, constraints.MaxHeight-2*i.Margin))
	size := i.Child.Measure(inner)
	return constraints.Constrain(runtime.Size{
		Width:  size.Width + 2*i.Margin,
		Height: size.Height + 2*i.Margin,
	})
}

// Layout places the child inside the margin.
func (i *Inset) Layout(bounds runtime.Rect) {
	i.Base.Layout(bounds)
	if i.Child != nil {
		i.Child.Layout(bounds.Inset(i.Margin, i.Margin, i.Margin, i.Margin))
	}
}

// Render draws the child.
func (i *Inset) Render(ctx runtime.RenderContext) {
	if i.Child != nil {
		i.Child.Render(ctx)
	}
}

// HandleMessage forwards msg to the child.
func (i *Inset) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if i.Child == nil {
		return runtime.Unhandled()
	}
	return i.Child.HandleMessage(msg)
}

// NeedsRender reports whether the inset or its child changed.
func (i *Inset) NeedsRender() bool {
	return i.Base.NeedsRender() || childNeedsRender(i.Child)
}

// ClearInvalidation clears the inset and its child.
func (i *Inset) ClearInvalidation() {
	i.Base.ClearInvalidation()
	clearChild(i.Child)
}
