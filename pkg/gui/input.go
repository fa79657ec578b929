package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune

	a event.GameAction
}

var keybindings = []*Keybinding{
	{r: 'z', a: event.ActionRotate},
	{r: 'Z', a: event.ActionRotate},
	{r: 'x', a: event.ActionRotate},
	{r: 'X', a: event.ActionRotate},
	{k: tcell.KeyUp, a: event.ActionRotate},
	{r: 'k', a: event.ActionRotate},
	{r: 'K', a: event.ActionRotate},
	{k: tcell.KeyLeft, a: event.ActionMoveLeft},
	{r: 'h', a: event.ActionMoveLeft},
	{r: 'H', a: event.ActionMoveLeft},
	{k: tcell.KeyRight, a: event.ActionMoveRight},
	{r: 'l', a: event.ActionMoveRight},
	{r: 'L', a: event.ActionMoveRight},
	{k: tcell.KeyDown, a: event.ActionHardDrop},
	{r: 'j', a: event.ActionHardDrop},
	{r: 'J', a: event.ActionHardDrop},
	{r: ' ', a: event.ActionHardDrop},
	{k: tcell.KeyEnter, a: event.ActionStart},
	{r: 'n', a: event.ActionStart},
	{r: 'N', a: event.ActionStart},
}

// actionFor maps a key press to a game action
func actionFor(ev *tcell.EventKey) event.GameAction {
	k := ev.Key()
	r := ev.Rune()

	for _, bind := range keybindings {
		if bind.k != 0 {
			if bind.k == k {
				return bind.a
			}
			continue
		}

		if k == tcell.KeyRune && bind.r == r {
			return bind.a
		}
	}

	return event.ActionUnknown
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}

	return false
}
