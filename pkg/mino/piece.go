package mino

import (
	"fmt"
)

// Piece is the falling piece: a shape anchored by its top-left corner.
// Pieces are values; every move or rotation produces a new one so a
// rejected candidate can simply be dropped.
type Piece struct {
	Point
	Shape Shape
	Block Block
	Type  ShapeType
}

func (p Piece) String() string {
	return fmt.Sprintf("%s@%s", p.Type, p.Point)
}

// NewPiece spawns a piece of type t at the top of a board with the given
// number of columns, centered and biased left on odd remainders.
func NewPiece(t ShapeType, columns int) Piece {
	shape := t.Shape()

	return Piece{
		Point: Point{Row: 0, Col: (columns - shape.Width()) / 2},
		Shape: shape,
		Block: t.Block(),
		Type:  t,
	}
}

// Moved returns a copy of the piece translated by the given offsets.
func (p Piece) Moved(rows int, cols int) Piece {
	p.Point = Point{p.Row + rows, p.Col + cols}
	return p
}

// Rotated returns a copy of the piece turned clockwise in place. The
// anchor does not move, so the footprint's width and height swap.
func (p Piece) Rotated() Piece {
	p.Shape = p.Shape.Rotated()
	return p
}

// Cells returns the absolute board positions the piece occupies.
func (p Piece) Cells() []Point {
	cells := p.Shape.Cells()
	for i := range cells {
		cells[i] = cells[i].Add(p.Point)
	}

	return cells
}

func (p Piece) Occupies(loc Point) bool {
	r := loc.Row - p.Row
	c := loc.Col - p.Col
	if r < 0 || r >= p.Shape.Height() || c < 0 || c >= len(p.Shape[r]) {
		return false
	}

	return p.Shape[r][c]
}
