package grid

// Borders holds the runes used to frame a table. A zero rune for a line
// removes that line from the layout.
type Borders struct {
	Top, Bottom, Left, Right rune
	Horizontal, Vertical     rune

	TopLeft, TopRight, BottomLeft, BottomRight rune

	TopIntersection, BottomIntersection rune
	LeftIntersection, RightIntersection rune
	Intersection                        rune
}

var (
	BordersNone = Borders{}

	BordersASCII = Borders{
		Top: '-', Bottom: '-', Left: '|', Right: '|',
		Horizontal: '-', Vertical: '|',
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		TopIntersection: '+', BottomIntersection: '+',
		LeftIntersection: '+', RightIntersection: '+',
		Intersection: '+',
	}

	BordersModern = Borders{
		Top: '─', Bottom: '─', Left: '│', Right: '│',
		Horizontal: '─', Vertical: '│',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		TopIntersection: '┬', BottomIntersection: '┴',
		LeftIntersection: '├', RightIntersection: '┤',
		Intersection: '┼',
	}

	BordersRounded = Borders{
		Top: '─', Bottom: '─', Left: '│', Right: '│',
		Horizontal: '─', Vertical: '│',
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		TopIntersection: '┬', BottomIntersection: '┴',
		LeftIntersection: '├', RightIntersection: '┤',
		Intersection: '┼',
	}

	BordersDouble = Borders{
		Top: '═', Bottom: '═', Left: '║', Right: '║',
		Horizontal: '═', Vertical: '║',
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		TopIntersection: '╦', BottomIntersection: '╩',
		LeftIntersection: '╠', RightIntersection: '╣',
		Intersection: '╬',
	}

	// BordersColumns separates columns only.
	BordersColumns = Borders{Vertical: '│'}
)

// horizontal returns the rune of horizontal line i, where 0 is the top
// frame and rows is the bottom frame.
func (b Borders) horizontal(i, rows int) rune {
	switch i {
	case 0:
		return b.Top
	case rows:
		return b.Bottom
	default:
		return b.Horizontal
	}
}

// vertical returns the rune of vertical line i, where 0 is the left frame
// and cols is the right frame.
func (b Borders) vertical(i, cols int) rune {
	switch i {
	case 0:
		return b.Left
	case cols:
		return b.Right
	default:
		return b.Vertical
	}
}

// hasHorizontal reports whether horizontal line i occupies an output line.
func (b Borders) hasHorizontal(i, rows int) bool { return b.horizontal(i, rows) != 0 }

// hasVertical reports whether vertical line i occupies a column.
func (b Borders) hasVertical(i, cols int) bool { return b.vertical(i, cols) != 0 }

// junction picks the rune where lines meet, from which of the four arms
// are drawn. h and v are the runes of the crossing lines.
func (b Borders) junction(up, down, left, right bool, h, v rune) rune {
	switch {
	case up && down && left && right:
		return b.Intersection
	case down && left && right:
		return b.TopIntersection
	case up && left && right:
		return b.BottomIntersection
	case up && down && right:
		return b.LeftIntersection
	case up && down && left:
		return b.RightIntersection
	case down && right:
		return b.TopLeft
	case down && left:
		return b.TopRight
	case up && right:
		return b.BottomLeft
	case up && left:
		return b.BottomRight
	case left || right:
		return h
	case up || down:
		return v
	default:
		return ' '
	}
}
