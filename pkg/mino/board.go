package mino

import (
	"strings"
)

// Board is the grid of settled blocks. It is not safe for concurrent use;
// the engine that owns it serializes access.
type Board struct {
	W int // Width
	H int // Height

	M [][]Block // Matrix, indexed [row][col]
}

func NewBoard(rows int, columns int) *Board {
	b := &Board{W: columns, H: rows}
	b.M = make([][]Block, rows)
	for r := range b.M {
		b.M[r] = b.emptyRow()
	}

	return b
}

func (b *Board) emptyRow() []Block {
	return make([]Block, b.W)
}

func (b *Board) Rows() int    { return b.H }
func (b *Board) Columns() int { return b.W }

func (b *Board) InBounds(loc Point) bool {
	return loc.Row >= 0 && loc.Row < b.H && loc.Col >= 0 && loc.Col < b.W
}

// Block returns the settled block at a location, or BlockNone when the
// location is outside the board.
func (b *Board) Block(row int, col int) Block {
	if !b.InBounds(Point{row, col}) {
		return BlockNone
	}

	return b.M[row][col]
}

func (b *Board) Empty(loc Point) bool {
	return b.M[loc.Row][loc.Col] == BlockNone
}

// SetBlock fills an empty in-bounds cell.
func (b *Board) SetBlock(row int, col int, block Block) bool {
	loc := Point{row, col}
	if !b.InBounds(loc) || !b.Empty(loc) {
		return false
	}

	b.M[row][col] = block
	return true
}

// CanPlace reports whether every occupied cell of the piece lands inside
// the board on an empty cell.
func (b *Board) CanPlace(p Piece) bool {
	for _, loc := range p.Cells() {
		if !b.InBounds(loc) || !b.Empty(loc) {
			return false
		}
	}

	return true
}

// Lock writes the piece's block into the board. Cells outside the board
// are skipped.
func (b *Board) Lock(p Piece) {
	for _, loc := range p.Cells() {
		if !b.InBounds(loc) {
			continue
		}

		b.M[loc.Row][loc.Col] = p.Block
	}
}

func (b *Board) LineFilled(row int) bool {
	for col := 0; col < b.W; col++ {
		if b.M[row][col] == BlockNone {
			return false
		}
	}

	return true
}

// ClearFullLines removes every filled row, shifts the remaining rows down
// in their original order and refills the top with empty rows. It returns
// the number of rows removed.
func (b *Board) ClearFullLines() int {
	kept := make([][]Block, 0, b.H)
	for row := 0; row < b.H; row++ {
		if b.LineFilled(row) {
			continue
		}

		kept = append(kept, b.M[row])
	}

	cleared := b.H - len(kept)
	if cleared == 0 {
		return 0
	}

	newM := make([][]Block, 0, b.H)
	for i := 0; i < cleared; i++ {
		newM = append(newM, b.emptyRow())
	}
	b.M = append(newM, kept...)

	return cleared
}

func (b *Board) Clear() {
	for row := range b.M {
		b.M[row] = b.emptyRow()
	}
}

// Blocks returns a copy of the grid.
func (b *Board) Blocks() [][]Block {
	newM := make([][]Block, len(b.M))
	for row := range b.M {
		newM[row] = make([]Block, len(b.M[row]))
		copy(newM[row], b.M[row])
	}

	return newM
}

// Render dumps the board top row first, one letter per settled block and
// '.' for empty cells.
func (b *Board) Render() string {
	var sb strings.Builder

	for row := 0; row < b.H; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}
		for col := 0; col < b.W; col++ {
			sb.WriteRune(b.M[row][col].Letter())
		}
	}

	return sb.String()
}
