package mino

type Block int

func (b Block) String() string {
	return string(b.Rune())
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return ' '
	case BlockSolidBlue, BlockSolidCyan, BlockSolidRed, BlockSolidYellow, BlockSolidMagenta, BlockSolidGreen, BlockSolidOrange:
		return '█'
	default:
		return '?'
	}
}

// Letter returns the shape letter a block color belongs to, used by text
// dumps of the board.
func (b Block) Letter() rune {
	switch b {
	case BlockNone:
		return '.'
	case BlockSolidCyan:
		return 'I'
	case BlockSolidYellow:
		return 'O'
	case BlockSolidMagenta:
		return 'T'
	case BlockSolidOrange:
		return 'L'
	case BlockSolidBlue:
		return 'J'
	case BlockSolidRed:
		return 'Z'
	case BlockSolidGreen:
		return 'S'
	default:
		return '?'
	}
}

const (
	BlockNone Block = iota
	BlockSolidBlue
	BlockSolidCyan
	BlockSolidRed
	BlockSolidYellow
	BlockSolidMagenta
	BlockSolidGreen
	BlockSolidOrange
)

// AllBlocks lists every solid block color.
var AllBlocks = []Block{BlockSolidCyan, BlockSolidYellow, BlockSolidMagenta, BlockSolidOrange, BlockSolidBlue, BlockSolidRed, BlockSolidGreen}
