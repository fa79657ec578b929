package mino

type ShapeTestData struct {
	Type  ShapeType
	Block Block
	Shape string
	Col   int // spawn column on a 10 wide board
}

var shapeTestData = []*ShapeTestData{
	{ShapeI, BlockSolidCyan, "XXXX", 3},
	{ShapeO, BlockSolidYellow, "XX\nXX", 4},
	{ShapeT, BlockSolidMagenta, ".X.\nXXX", 3},
	{ShapeL, BlockSolidOrange, "X.\nX.\nXX", 4},
	{ShapeJ, BlockSolidBlue, ".X\n.X\nXX", 4},
	{ShapeZ, BlockSolidRed, "XX.\n.XX", 3},
	{ShapeS, BlockSolidGreen, ".XX\nXX.", 3}}

// fillRow settles blocks across a whole row except the listed columns.
func fillRow(b *Board, row int, block Block, holes ...int) {
	for col := 0; col < b.W; col++ {
		hole := false
		for _, h := range holes {
			if h == col {
				hole = true
				break
			}
		}
		if hole {
			continue
		}

		b.SetBlock(row, col, block)
	}
}
