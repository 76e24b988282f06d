// Package widgets provides the small set of widgets the table viewer is
// built from.
package widgets

import "github.com/odvcencio/gridview/pkg/ui/runtime"

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
type Base struct {
	bounds      runtime.Rect
	needsRender bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	if b.bounds != bounds {
		b.bounds = bounds
		b.needsRender = true
	}
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// Invalidate marks the widget as needing a render pass.
func (b *Base) Invalidate() {
	b.needsRender = true
}

// NeedsRender reports whether the widget needs to re-render.
func (b *Base) NeedsRender() bool {
	return b.needsRender
}

// ClearInvalidation clears the render-needed flag.
func (b *Base) ClearInvalidation() {
	b.needsRender = false
}

// childNeedsRender reports whether w needs a render pass. Widgets that do
// not track invalidation always do.
func childNeedsRender(w runtime.Widget) bool {
	if w == nil {
		return false
	}
	inv, ok := w.(runtime.Invalidator)
	return !ok || inv.NeedsRender()
}

func clearChild(w runtime.Widget) {
	if inv, ok := w.(runtime.Invalidator); ok {
		inv.ClearInvalidation()
	}
}
