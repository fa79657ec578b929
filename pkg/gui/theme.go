package gui

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name     string      `json:"name"`
	Border   tcell.Color `json:"border"`
	Empty    tcell.Color `json:"empty"`
	Label    tcell.Color `json:"label"`
	Value    tcell.Color `json:"value"`
	Msg      tcell.Color `json:"msg"`
	GameOver tcell.Color `json:"gameOver"`
	Blue     tcell.Color `json:"blue"`
	Cyan     tcell.Color `json:"cyan"`
	Red      tcell.Color `json:"red"`
	Yellow   tcell.Color `json:"yellow"`
	Magenta  tcell.Color `json:"magenta"`
	Green    tcell.Color `json:"green"`
	Orange   tcell.Color `json:"orange"`
}

// ThemeHex is the form themes are stored in
type ThemeHex struct {
	Name     string `json:"name"`
	Border   string `json:"border"`
	Empty    string `json:"empty"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
	GameOver string `json:"gameOver"`
	Blue     string `json:"blue"`
	Cyan     string `json:"cyan"`
	Red      string `json:"red"`
	Yellow   string `json:"yellow"`
	Magenta  string `json:"magenta"`
	Green    string `json:"green"`
	Orange   string `json:"orange"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Border.Hex()),
		fmtHex(t.Empty.Hex()),
		fmtHex(t.Label.Hex()),
		fmtHex(t.Value.Hex()),
		fmtHex(t.Msg.Hex()),
		fmtHex(t.GameOver.Hex()),
		fmtHex(t.Blue.Hex()),
		fmtHex(t.Cyan.Hex()),
		fmtHex(t.Red.Hex()),
		fmtHex(t.Yellow.Hex()),
		fmtHex(t.Magenta.Hex()),
		fmtHex(t.Green.Hex()),
		fmtHex(t.Orange.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.Border),
		tcell.GetColor(t.Empty),
		tcell.GetColor(t.Label),
		tcell.GetColor(t.Value),
		tcell.GetColor(t.Msg),
		tcell.GetColor(t.GameOver),
		tcell.GetColor(t.Blue),
		tcell.GetColor(t.Cyan),
		tcell.GetColor(t.Red),
		tcell.GetColor(t.Yellow),
		tcell.GetColor(t.Magenta),
		tcell.GetColor(t.Green),
		tcell.GetColor(t.Orange),
	}
}

// Block returns the color a block is drawn with
func (t Theme) Block(b mino.Block) tcell.Color {
	switch b {
	case mino.BlockSolidBlue:
		return t.Blue
	case mino.BlockSolidCyan:
		return t.Cyan
	case mino.BlockSolidRed:
		return t.Red
	case mino.BlockSolidYellow:
		return t.Yellow
	case mino.BlockSolidMagenta:
		return t.Magenta
	case mino.BlockSolidGreen:
		return t.Green
	case mino.BlockSolidOrange:
		return t.Orange
	default:
		return t.Empty
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	// First check if want is in the provided config (override)
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	for _, t := range Themes {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// LoadThemes decodes a JSON array of ThemeHex
func LoadThemes(data []byte) ([]ThemeHex, error) {
	var themes []ThemeHex
	if err := json.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("theme: failed to decode: %w", err)
	}

	return themes, nil
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",            // Name
	tcell.Color247,     // Border
	tcell.ColorDefault, // Empty
	tcell.Color247,     // Label
	tcell.ColorDefault, // Value
	tcell.Color160,     // Msg
	tcell.Color167,     // GameOver
	tcell.NewHexColor(0x2864ff),
	tcell.NewHexColor(0x00eeee),
	tcell.NewHexColor(0xee0000),
	tcell.NewHexColor(0xdddd00),
	tcell.NewHexColor(0xc000cc),
	tcell.NewHexColor(0x00e900),
	tcell.NewHexColor(0xff7308),
}

// ThemeMono draws every block in the same color
var ThemeMono = Theme{
	"mono",
	tcell.Color250,
	tcell.ColorDefault,
	tcell.Color250,
	tcell.Color255,
	tcell.Color255,
	tcell.Color255,
	tcell.Color252,
	tcell.Color252,
	tcell.Color252,
	tcell.Color252,
	tcell.Color252,
	tcell.Color252,
	tcell.Color252,
}

// Themes lists the built in themes
var Themes = []Theme{ThemeBasic, ThemeMono}
