package mino

import (
	"fmt"
	"strings"
)

// Shape is a rectangular occupancy matrix, indexed [row][col].
type Shape [][]bool

// ParseShape builds a shape from rows of 'X' (occupied) and '.' (empty).
func ParseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for r, row := range rows {
		s[r] = make([]bool, len(row))
		for c, ch := range row {
			s[r][c] = ch == 'X'
		}
	}

	return s
}

func (s Shape) Height() int { return len(s) }

func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}

	return len(s[0])
}

func (s Shape) Size() (int, int) {
	return s.Width(), s.Height()
}

func (s Shape) Copy() Shape {
	newShape := make(Shape, len(s))
	for r := range s {
		newShape[r] = make([]bool, len(s[r]))
		copy(newShape[r], s[r])
	}

	return newShape
}

// Rotated returns the shape turned 90 degrees clockwise about its own
// bounding box. A rows×cols matrix becomes cols×rows.
func (s Shape) Rotated() Shape {
	rows, cols := s.Height(), s.Width()

	newShape := make(Shape, cols)
	for c := 0; c < cols; c++ {
		newShape[c] = make([]bool, rows)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			newShape[c][rows-1-r] = s[r][c]
		}
	}

	return newShape
}

func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}

	for r := range s {
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}

	return true
}

// Cells returns the occupied offsets relative to the top-left corner.
func (s Shape) Cells() []Point {
	var cells []Point
	for r := range s {
		for c := range s[r] {
			if s[r][c] {
				cells = append(cells, Point{r, c})
			}
		}
	}

	return cells
}

func (s Shape) String() string {
	var b strings.Builder
	for r := range s {
		if r > 0 {
			b.WriteRune('\n')
		}
		for c := range s[r] {
			if s[r][c] {
				b.WriteRune('X')
			} else {
				b.WriteRune('.')
			}
		}
	}

	return b.String()
}

type ShapeType int

const (
	ShapeI ShapeType = iota
	ShapeO
	ShapeT
	ShapeL
	ShapeJ
	ShapeZ
	ShapeS
)

// AllShapes lists every shape type that can be spawned.
var AllShapes = []ShapeType{ShapeI, ShapeO, ShapeT, ShapeL, ShapeJ, ShapeZ, ShapeS}

var baseShapes = map[ShapeType]Shape{
	ShapeI: ParseShape("XXXX"),
	ShapeO: ParseShape("XX", "XX"),
	ShapeT: ParseShape(".X.", "XXX"),
	ShapeL: ParseShape("X.", "X.", "XX"),
	ShapeJ: ParseShape(".X", ".X", "XX"),
	ShapeZ: ParseShape("XX.", ".XX"),
	ShapeS: ParseShape(".XX", "XX."),
}

var shapeBlocks = map[ShapeType]Block{
	ShapeI: BlockSolidCyan,
	ShapeO: BlockSolidYellow,
	ShapeT: BlockSolidMagenta,
	ShapeL: BlockSolidOrange,
	ShapeJ: BlockSolidBlue,
	ShapeZ: BlockSolidRed,
	ShapeS: BlockSolidGreen,
}

// Shape returns a fresh copy of the type's base matrix.
func (t ShapeType) Shape() Shape {
	return baseShapes[t].Copy()
}

func (t ShapeType) Block() Block {
	if b, ok := shapeBlocks[t]; ok {
		return b
	}

	return BlockNone
}

func (t ShapeType) String() string {
	switch t {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	case ShapeZ:
		return "Z"
	case ShapeS:
		return "S"
	default:
		return "?"
	}
}

func ParseShapeType(s string) (ShapeType, error) {
	for _, t := range AllShapes {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown shape type %q", s)
}
