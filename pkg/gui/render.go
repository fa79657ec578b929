package gui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	// Cells are drawn two columns wide so they look square
	cellWidth = 2

	DefaultStatusText = "Enter to start, Z/X/Up to rotate, arrow keys or HL to move, Space to drop, Q to quit"
)

var (
	renderHLine    = string(tcell.RuneHLine)
	renderVLine    = string(tcell.RuneVLine)
	renderULCorner = string(tcell.RuneULCorner)
	renderURCorner = string(tcell.RuneURCorner)
	renderLLCorner = string(tcell.RuneLLCorner)
	renderLRCorner = string(tcell.RuneLRCorner)

	renderSolid = strings.Repeat("█", cellWidth)
	renderEmpty = strings.Repeat(" ", cellWidth)
)

// colorTag returns the tview tag selecting c as the foreground
func colorTag(c tcell.Color) string {
	if c == tcell.ColorDefault || c.Hex() == -1 {
		return "[-]"
	}
	return fmt.Sprintf("[#%06x]", c.Hex())
}

// RenderMatrix draws the board with the falling piece and a border, top row
// first, as tview color tagged text
func RenderMatrix(s game.Snapshot, t Theme) string {
	var buf bytes.Buffer

	border := colorTag(t.Border)
	hline := strings.Repeat(renderHLine, s.Columns*cellWidth)

	buf.WriteString(border + renderULCorner + hline + renderURCorner + "\n")
	for row := 0; row < s.Rows; row++ {
		buf.WriteString(border + renderVLine)

		for col := 0; col < s.Columns; col++ {
			b := s.Blocks[row][col]
			if b == mino.BlockNone {
				buf.WriteString(renderEmpty)
				continue
			}

			buf.WriteString(colorTag(t.Block(b)) + renderSolid)
		}

		buf.WriteString(border + renderVLine + "\n")
	}
	buf.WriteString(border + renderLLCorner + hline + renderLRCorner + "[-]")

	return buf.String()
}

// RenderSide draws the player name, scores and game status
func RenderSide(nick string, s game.Snapshot, t Theme) string {
	var buf bytes.Buffer

	label := colorTag(t.Label)
	value := colorTag(t.Value)

	field := func(name string, v interface{}) {
		fmt.Fprintf(&buf, "%s%s\n%s%v\n\n", label, name, value, v)
	}

	field("Player", tview.Escape(nick))
	field("Score", s.Score)
	field("High score", s.HighScore)
	field("Lines", s.Lines)

	switch {
	case s.GameOver:
		fmt.Fprintf(&buf, "%sGame over\n%sEnter to play again", colorTag(t.GameOver), colorTag(t.Msg))
	case !s.Active():
		fmt.Fprintf(&buf, "%sEnter to start", colorTag(t.Msg))
	}

	buf.WriteString("[-]")
	return buf.String()
}
