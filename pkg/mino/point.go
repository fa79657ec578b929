package mino

import (
	"strconv"
	"strings"
)

// Point is a grid location. Row 0 is the top of the board.
type Point struct {
	Row, Col int
}

func (p Point) Add(o Point) Point { return Point{p.Row + o.Row, p.Col + o.Col} }

func (p Point) String() string {
	var b strings.Builder
	b.WriteRune('(')
	b.WriteString(strconv.Itoa(p.Row))
	b.WriteRune(',')
	b.WriteString(strconv.Itoa(p.Col))
	b.WriteRune(')')

	return b.String()
}
