package runtime

import (
	"testing"

	"github.com/odvcencio/gridview/pkg/ui/backend"
)

func TestBuffer_New(t *testing.T) {
	b := NewBuffer(80, 24)

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("Size() = %d, %d; want 80, 24", w, h)
	}
	if b.Get(79, 23).Rune != ' ' {
		t.Error("new buffer should be blank")
	}
	if b.IsDirty() {
		t.Error("new buffer should not be dirty")
	}
}

func TestBuffer_SetGet(t *testing.T) {
	b := NewBuffer(10, 10)
	style := backend.DefaultStyle().Foreground(backend.ColorRGB(255, 0, 0))

	b.Set(5, 5, 'X', style)
	cell := b.Get(5, 5)

	if cell.Rune != 'X' {
		t.Errorf("Get() rune = %c, want X", cell.Rune)
	}
	if cell.Style != style {
		t.Error("Get() should return the stored style")
	}
}

func TestBuffer_SetOutOfBounds(t *testing.T) {
	b := NewBuffer(10, 10)

	// Should not panic
	b.Set(-1, 5, 'X', backend.DefaultStyle())
	b.Set(100, 5, 'X', backend.DefaultStyle())
	b.Set(5, -1, 'X', backend.DefaultStyle())
	b.Set(5, 100, 'X', backend.DefaultStyle())

	if b.IsDirty() {
		t.Error("out of bounds writes must not touch the buffer")
	}
	if cell := b.Get(-1, -1); cell.Rune != ' ' {
		t.Errorf("Get(-1,-1) = %c, want space", cell.Rune)
	}
}

func TestBuffer_SetContentImplementsRenderTarget(t *testing.T) {
	b := NewBuffer(4, 1)
	var target backend.RenderTarget = b

	target.SetContent(1, 0, 'k', []rune{'́'}, backend.DefaultStyle())

	if b.Get(1, 0).Rune != 'k' {
		t.Errorf("SetContent did not write, got %q", b.Get(1, 0).Rune)
	}
}

func TestBuffer_SetStringClips(t *testing.T) {
	b := NewBuffer(5, 1)

	b.SetString(-2, 0, "abcdefgh", backend.DefaultStyle())

	if got := b.Line(0); got != "cdefg" {
		t.Errorf("Line(0) = %q, want %q", got, "cdefg")
	}
}

func TestBuffer_Fill(t *testing.T) {
	b := NewBuffer(4, 3)

	b.Fill(Rect{X: 2, Y: 1, Width: 5, Height: 5}, '#', backend.DefaultStyle())

	want := "    \n  ##\n  ##"
	if got := b.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuffer_LineSkipsWideContinuation(t *testing.T) {
	b := NewBuffer(4, 1)
	b.Set(0, 0, '日', backend.DefaultStyle())
	b.Set(1, 0, 0, backend.DefaultStyle())
	b.Set(2, 0, 'x', backend.DefaultStyle())

	if got := b.Line(0); got != "日x " {
		t.Errorf("Line(0) = %q", got)
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := NewBuffer(3, 1)
	b.SetString(0, 0, "abc", backend.DefaultStyle())

	b.Clear()

	if got := b.Line(0); got != "   " {
		t.Errorf("Line(0) after Clear = %q", got)
	}
}

func TestBuffer_Resize(t *testing.T) {
	b := NewBuffer(3, 2)
	b.SetString(0, 0, "abc", backend.DefaultStyle())

	b.Resize(2, 3)

	w, h := b.Size()
	if w != 2 || h != 3 {
		t.Fatalf("Size() = %d,%d after resize", w, h)
	}
	if got := b.String(); got != "ab\n  \n  " {
		t.Errorf("String() = %q", got)
	}
	if b.DirtyCount() != 6 {
		t.Errorf("resize should mark everything dirty, got %d", b.DirtyCount())
	}
}

func TestBuffer_DirtyTracking(t *testing.T) {
	b := NewBuffer(10, 10)

	b.Set(2, 3, 'a', backend.DefaultStyle())
	b.Set(7, 5, 'b', backend.DefaultStyle())
	b.Set(7, 5, 'b', backend.DefaultStyle())

	if b.DirtyCount() != 2 {
		t.Errorf("DirtyCount() = %d, want 2", b.DirtyCount())
	}
	if r := b.DirtyRect(); r != (Rect{X: 2, Y: 3, Width: 6, Height: 3}) {
		t.Errorf("DirtyRect() = %+v", r)
	}

	var seen []rune
	b.ForEachDirtyCell(func(x, y int, cell Cell) {
		seen = append(seen, cell.Rune)
	})
	if string(seen) != "ab" {
		t.Errorf("ForEachDirtyCell visited %q, want \"ab\"", string(seen))
	}

	b.ClearDirty()
	if b.IsDirty() {
		t.Error("ClearDirty should reset dirty state")
	}
}

func TestBuffer_SetSameValueNotDirty(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Set(0, 0, ' ', backend.DefaultStyle())

	if b.IsDirty() {
		t.Error("writing an identical cell must not mark it dirty")
	}
}
