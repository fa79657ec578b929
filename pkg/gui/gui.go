// Package gui is the terminal front-end: it draws engine snapshots with
// tview and turns key presses into game actions.
package gui

import (
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
)

type GUI struct {
	App *tview.Application

	engine *game.Engine
	nick   string
	theme  Theme

	grid   *tview.Grid
	mtx    *tview.TextView
	side   *tview.TextView
	status *tview.TextView

	// redraw holds at most one pending draw request
	redraw   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newTextView() *tview.TextView {
	tv := tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false)

	tv.SetDynamicColors(true)
	return tv
}

func New(engine *game.Engine, nick string, theme Theme) *GUI {
	g := &GUI{
		App:    tview.NewApplication(),
		engine: engine,
		nick:   nick,
		theme:  theme,
		mtx:    newTextView(),
		side:   newTextView(),
		status: newTextView(),
		redraw: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	g.status.SetText(DefaultStatusText)

	spacer := tview.NewBox()
	g.grid = tview.NewGrid().
		SetBorders(false).
		SetRows(engine.Rows()+2, 1, -1).
		SetColumns(1, engine.Columns()*cellWidth+2, 2, -1).
		AddItem(spacer, 0, 0, 3, 1, 0, 0, false).
		AddItem(g.mtx, 0, 1, 1, 1, 0, 0, false).
		AddItem(g.side, 0, 3, 1, 1, 0, 0, false).
		AddItem(g.status, 1, 1, 1, 3, 0, 0, false)

	g.App.SetRoot(g.grid, true)
	g.App.SetInputCapture(g.handleKeypress)

	engine.AddListener(g.handleEvent)
	g.draw()

	return g
}

// SetScreen replaces the terminal the application draws on
func (g *GUI) SetScreen(s tcell.Screen) {
	g.App.SetScreen(s)
}

func (g *GUI) Run() error {
	go g.drawLoop()

	err := g.App.Run()
	g.closeDone()
	return err
}

func (g *GUI) Stop() {
	g.closeDone()
	g.engine.Stop()
	g.App.Stop()
}

func (g *GUI) closeDone() {
	g.stopOnce.Do(func() {
		close(g.done)
	})
}

// drawLoop hands queued redraws to the application one at a time until the
// GUI stops.
func (g *GUI) drawLoop() {
	for {
		select {
		case <-g.done:
			return
		case <-g.redraw:
		}

		g.App.QueueUpdateDraw(g.draw)
	}
}

func (g *GUI) requestDraw() {
	select {
	case <-g.done:
		return
	default:
	}

	select {
	case g.redraw <- struct{}{}:
	default:
	}
}

func (g *GUI) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	if isQuit(ev) {
		g.Stop()
		return nil
	}

	a := actionFor(ev)
	if a == event.ActionUnknown {
		return ev
	}

	g.engine.ProcessAction(a)
	return nil
}

// handleEvent runs on whichever goroutine changed the engine, so it only
// requests a redraw from drawLoop.
func (g *GUI) handleEvent(e interface{}) {
	switch e := e.(type) {
	case *event.GameOverEvent:
		log.Printf("%s finished with score %d", g.nick, e.Score)
	case *event.HighScoreEvent:
		log.Printf("%s set a new high score %d", g.nick, e.HighScore)
	}

	g.requestDraw()
}

func (g *GUI) draw() {
	s := g.engine.Snapshot()

	g.mtx.SetText(RenderMatrix(s, g.theme))
	g.side.SetText(RenderSide(g.nick, s, g.theme))
}
