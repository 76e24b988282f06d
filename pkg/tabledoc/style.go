package tabledoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/gridview/pkg/errors"
	"github.com/odvcencio/gridview/pkg/grid"
)

var styles = map[string]grid.Borders{
	"none":    grid.BordersNone,
	"ascii":   grid.BordersASCII,
	"modern":  grid.BordersModern,
	"rounded": grid.BordersRounded,
	"double":  grid.BordersDouble,
	"columns": grid.BordersColumns,
}

// Styles lists the border style names in sorted order.
func Styles() []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseStyle resolves a border style name. The empty name is ascii.
func ParseStyle(name string) (grid.Borders, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return grid.BordersASCII, nil
	}
	b, ok := styles[name]
	if !ok {
		return grid.Borders{}, invalid("style", "unknown border style").
			WithContext("style", name).
			WithUserMessage(fmt.Sprintf("Unknown border style %q; choose one of %s.", name, strings.Join(Styles(), ", ")))
	}
	return b, nil
}

func parseHAlign(s string) (grid.HAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return grid.AlignLeft, nil
	case "center", "centre":
		return grid.AlignCenter, nil
	case "right":
		return grid.AlignRight, nil
	}
	return grid.AlignLeft, fmt.Errorf("unknown horizontal alignment %q", s)
}

func parseVAlign(s string) (grid.VAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return grid.AlignTop, nil
	case "middle", "center", "centre":
		return grid.AlignMiddle, nil
	case "bottom":
		return grid.AlignBottom, nil
	}
	return grid.AlignTop, fmt.Errorf("unknown vertical alignment %q", s)
}

// spanLength resolves a span value against the tracks left after its
// origin. Zero means all of them.
func spanLength(n, remaining int) (int, error) {
	switch {
	case n < 0:
		return 0, fmt.Errorf("span must not be negative")
	case n == 0:
		return remaining, nil
	case n > remaining:
		return 0, fmt.Errorf("span of %d exceeds the %d tracks available", n, remaining)
	}
	return n, nil
}

func invalid(field, msg string) *errors.Error {
	return errors.New(errors.ErrCodeInvalidInput, msg).WithContext("field", field)
}

func fieldf(list string, i int) string {
	return fmt.Sprintf("%s[%d]", list, i)
}
