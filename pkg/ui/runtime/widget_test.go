package runtime

import "testing"

func TestConstraints_Tight(t *testing.T) {
	c := Tight(80, 24)

	if got := c.Constrain(Size{10, 100}); got != (Size{80, 24}) {
		t.Errorf("Constrain() = %v, want 80x24", got)
	}
}

func TestConstraints_Constrain(t *testing.T) {
	c := Constraints{MinWidth: 10, MaxWidth: 100, MinHeight: 5, MaxHeight: 50}

	tests := []struct {
		input    Size
		expected Size
	}{
		{Size{50, 25}, Size{50, 25}},   // Within bounds
		{Size{5, 25}, Size{10, 25}},    // Below min width
		{Size{150, 25}, Size{100, 25}}, // Above max width
		{Size{50, 2}, Size{50, 5}},     // Below min height
		{Size{50, 100}, Size{50, 50}},  // Above max height
	}

	for _, tc := range tests {
		got := c.Constrain(tc.input)
		if got != tc.expected {
			t.Errorf("Constrain(%v) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	tests := []struct {
		x, y     int
		expected bool
	}{
		{15, 15, true},
		{10, 10, true},
		{29, 29, true},
		{9, 15, false},
		{30, 15, false},
		{15, 9, false},
		{15, 30, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRect_Intersection(t *testing.T) {
	r1 := Rect{X: 0, Y: 0, Width: 20, Height: 20}
	r2 := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	if got := r1.Intersection(r2); got != (Rect{X: 10, Y: 10, Width: 10, Height: 10}) {
		t.Errorf("Intersection() = %+v", got)
	}
	if got := r1.Intersection(Rect{X: 50, Y: 50, Width: 1, Height: 1}); got != ZeroRect {
		t.Errorf("disjoint Intersection() = %+v, want zero", got)
	}
}

func TestRect_Inset(t *testing.T) {
	r := NewRect(0, 0, 10, 4).Inset(1, 2, 1, 2)

	if r != (Rect{X: 2, Y: 1, Width: 6, Height: 2}) {
		t.Errorf("Inset() = %+v", r)
	}
	if !NewRect(0, 0, 2, 2).Inset(2, 2, 2, 2).Empty() {
		t.Error("over-inset rect should be empty")
	}
}

func TestRect_SplitVertical(t *testing.T) {
	top, bottom := NewRect(0, 0, 30, 10).SplitVertical(6)

	if top != (Rect{X: 0, Y: 0, Width: 30, Height: 6}) {
		t.Errorf("top = %+v", top)
	}
	if bottom != (Rect{X: 0, Y: 6, Width: 30, Height: 4}) {
		t.Errorf("bottom = %+v", bottom)
	}

	top, bottom = NewRect(0, 0, 30, 3).SplitVertical(6)
	if top.Height != 3 || bottom.Height != 0 {
		t.Errorf("split past the end: top=%+v bottom=%+v", top, bottom)
	}
}
