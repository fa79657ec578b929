package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	DefaultRows         = 20
	DefaultColumns      = 10
	DefaultFallTime     = 500 * time.Millisecond
	DefaultScorePerLine = 100
)

// Options configures a new Engine. Zero values fall back to the defaults
// above, a RandomSource, a TickerScheduler and a MemoryStore.
type Options struct {
	Rows         int
	Columns      int
	FallTime     time.Duration
	ScorePerLine int

	Source    mino.Source
	Scheduler Scheduler
	Store     HighScoreStore

	Logger   *log.Logger
	LogLevel int
}

// Engine owns the board, the falling piece and the score, and runs the
// gravity loop. All methods are safe to call from any goroutine; the
// embedded mutex serializes ticks with player actions.
type Engine struct {
	FallTime     time.Duration
	ScorePerLine int
	LogLevel     int

	board *mino.Board
	piece *mino.Piece

	score     int
	highScore int
	lines     int
	gameOver  bool

	source    mino.Source
	scheduler Scheduler
	ticker    Handle
	tickGen   int
	store     HighScoreStore
	logger    *log.Logger

	listeners []func(interface{})
	pending   []interface{}

	*sync.Mutex
}

// Snapshot is a consistent copy of everything a presentation layer draws.
type Snapshot struct {
	Rows    int
	Columns int

	// Blocks holds the settled board with the falling piece drawn over it.
	Blocks [][]mino.Block
	Piece  *mino.Piece

	Score     int
	HighScore int
	Lines     int
	GameOver  bool
}

func (s Snapshot) Active() bool {
	return s.Piece != nil
}

func NewEngine(ctx context.Context, o Options) (*Engine, error) {
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.FallTime == 0 {
		o.FallTime = DefaultFallTime
	}
	if o.ScorePerLine == 0 {
		o.ScorePerLine = DefaultScorePerLine
	}
	if o.Source == nil {
		o.Source = mino.NewRandomSource(0)
	}
	if o.Scheduler == nil {
		o.Scheduler = TickerScheduler{}
	}
	if o.Store == nil {
		o.Store = &MemoryStore{}
	}

	highScore, err := o.Store.LoadHighScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load high score: %w", err)
	}
	if highScore < 0 {
		highScore = 0
	}

	g := &Engine{
		FallTime:     o.FallTime,
		ScorePerLine: o.ScorePerLine,
		LogLevel:     o.LogLevel,
		board:        mino.NewBoard(o.Rows, o.Columns),
		highScore:    highScore,
		source:       o.Source,
		scheduler:    o.Scheduler,
		store:        o.Store,
		logger:       o.Logger,
		Mutex:        new(sync.Mutex)}

	return g, nil
}

// AddListener registers fn to receive the events in package event. It is
// called without the engine locked, so it may query the engine.
func (g *Engine) AddListener(fn func(interface{})) {
	g.Lock()
	defer g.Unlock()

	g.listeners = append(g.listeners, fn)
}

// update runs fn with the engine locked, then delivers the events fn
// queued once the lock is released.
func (g *Engine) update(fn func()) {
	g.Lock()
	fn()
	pending := g.pending
	g.pending = nil
	listeners := g.listeners
	g.Unlock()

	for _, e := range pending {
		if ev, ok := e.(*event.HighScoreEvent); ok {
			err := g.store.SaveHighScore(context.Background(), ev.HighScore)
			if err != nil {
				g.Logf(LogStandard, "failed to save high score %d: %s", ev.HighScore, err)
			}
		}

		for _, l := range listeners {
			l(e)
		}
	}
}

func (g *Engine) emitL(e interface{}) {
	g.pending = append(g.pending, e)
}

func (g *Engine) eventL() event.Event {
	return event.Event{Score: g.score, HighScore: g.highScore}
}

// Start clears the board and score, spawns the first piece and restarts
// gravity. Calling Start during a game begins a new one.
func (g *Engine) Start() {
	g.update(g.startL)
}

func (g *Engine) startL() {
	g.board.Clear()
	g.piece = nil
	g.score = 0
	g.lines = 0
	g.gameOver = false

	g.Logf(LogDebug, "Starting game on %dx%d board", g.board.Columns(), g.board.Rows())
	g.emitL(&event.StartEvent{Event: g.eventL()})

	g.startTickerL()
	g.spawnL()
}

// Stop halts gravity without changing the game state.
func (g *Engine) Stop() {
	g.Lock()
	defer g.Unlock()

	g.stopTickerL()
}

func (g *Engine) startTickerL() {
	g.stopTickerL()

	g.tickGen++
	gen := g.tickGen
	g.ticker = g.scheduler.Schedule(g.FallTime, func() {
		g.tick(gen)
	})
}

func (g *Engine) stopTickerL() {
	if g.ticker == nil {
		return
	}

	g.ticker.Cancel()
	g.ticker = nil
}

func (g *Engine) spawnL() {
	p := mino.NewPiece(g.source.Take(), g.board.Columns())

	if g.board.CanPlace(p) {
		g.piece = &p
		g.Logf(LogVerbose, "Spawned %s", p)
		g.emitL(&event.DrawEvent{Event: g.eventL()})
		return
	}

	g.gameOver = true
	g.piece = nil
	g.stopTickerL()

	g.Logf(LogStandard, "Game over - score: %d lines: %d", g.score, g.lines)
	g.emitL(&event.GameOverEvent{Event: g.eventL()})
}

// tick is the scheduler callback. Ticks from a canceled or replaced
// schedule are dropped.
func (g *Engine) tick(gen int) {
	g.update(func() {
		if g.ticker == nil || gen != g.tickGen {
			return
		}

		g.tickL()
	})
}

// Tick lowers the falling piece by one row, or lands it when it cannot
// fall further.
func (g *Engine) Tick() {
	g.update(g.tickL)
}

func (g *Engine) tickL() {
	if g.piece == nil {
		return
	}

	candidate := g.piece.Moved(1, 0)
	if g.board.CanPlace(candidate) {
		g.piece = &candidate
		g.emitL(&event.DrawEvent{Event: g.eventL()})
		return
	}

	g.landL()
}

// landL locks the falling piece, clears lines, scores them and spawns the
// next piece.
func (g *Engine) landL() {
	g.board.Lock(*g.piece)
	g.piece = nil

	cleared := g.board.ClearFullLines()
	if cleared > 0 {
		g.lines += cleared
		g.score += cleared * g.ScorePerLine

		g.Logf(LogDebug, "Cleared %d lines, score %d", cleared, g.score)
		g.emitL(&event.ScoreEvent{Event: g.eventL(), Lines: cleared})

		if g.score > g.highScore {
			g.highScore = g.score
			g.emitL(&event.HighScoreEvent{Event: g.eventL()})
		}
	}

	g.spawnL()
}

// tryL replaces the falling piece with transform's result when it fits.
func (g *Engine) tryL(transform func(mino.Piece) mino.Piece) bool {
	if g.piece == nil {
		return false
	}

	candidate := transform(*g.piece)
	if !g.board.CanPlace(candidate) {
		return false
	}

	g.piece = &candidate
	g.emitL(&event.DrawEvent{Event: g.eventL()})
	return true
}

func moveLeft(p mino.Piece) mino.Piece  { return p.Moved(0, -1) }
func moveRight(p mino.Piece) mino.Piece { return p.Moved(0, 1) }
func rotate(p mino.Piece) mino.Piece    { return p.Rotated() }

func (g *Engine) MoveLeft() {
	g.update(func() { g.tryL(moveLeft) })
}

func (g *Engine) MoveRight() {
	g.update(func() { g.tryL(moveRight) })
}

// Rotate turns the falling piece clockwise. There are no wall kicks: a
// rotation that does not fit where the piece is leaves it unchanged.
func (g *Engine) Rotate() {
	g.update(func() { g.tryL(rotate) })
}

// HardDrop drops the falling piece as far as it goes and lands it.
func (g *Engine) HardDrop() {
	g.update(g.hardDropL)
}

func (g *Engine) hardDropL() {
	if g.piece == nil {
		return
	}

	p := *g.piece
	for {
		next := p.Moved(1, 0)
		if !g.board.CanPlace(next) {
			break
		}

		p = next
	}

	g.piece = &p
	g.landL()
}

func (g *Engine) ProcessAction(a event.GameAction) {
	switch a {
	case event.ActionMoveLeft:
		g.MoveLeft()
	case event.ActionMoveRight:
		g.MoveRight()
	case event.ActionRotate:
		g.Rotate()
	case event.ActionHardDrop:
		g.HardDrop()
	case event.ActionStart:
		g.Start()
	default:
		g.Log(LogDebug, "unknown action ", a)
	}
}

// ColorAt returns the block drawn at a cell: the falling piece when it
// covers the cell, the settled board otherwise.
func (g *Engine) ColorAt(row int, col int) mino.Block {
	g.Lock()
	defer g.Unlock()

	return g.colorAtL(row, col)
}

func (g *Engine) colorAtL(row int, col int) mino.Block {
	if g.piece != nil && g.piece.Occupies(mino.Point{Row: row, Col: col}) {
		return g.piece.Block
	}

	return g.board.Block(row, col)
}

func (g *Engine) Score() int {
	g.Lock()
	defer g.Unlock()

	return g.score
}

func (g *Engine) HighScore() int {
	g.Lock()
	defer g.Unlock()

	return g.highScore
}

// Lines returns the number of lines cleared in the current game.
func (g *Engine) Lines() int {
	g.Lock()
	defer g.Unlock()

	return g.lines
}

func (g *Engine) IsGameOver() bool {
	g.Lock()
	defer g.Unlock()

	return g.gameOver
}

func (g *Engine) HasActivePiece() bool {
	g.Lock()
	defer g.Unlock()

	return g.piece != nil
}

// Piece returns a copy of the falling piece, if any.
func (g *Engine) Piece() (mino.Piece, bool) {
	g.Lock()
	defer g.Unlock()

	if g.piece == nil {
		return mino.Piece{}, false
	}

	return *g.piece, true
}

func (g *Engine) Rows() int    { return g.board.Rows() }
func (g *Engine) Columns() int { return g.board.Columns() }

func (g *Engine) Snapshot() Snapshot {
	g.Lock()
	defer g.Unlock()

	s := Snapshot{
		Rows:      g.board.Rows(),
		Columns:   g.board.Columns(),
		Blocks:    make([][]mino.Block, g.board.Rows()),
		Score:     g.score,
		HighScore: g.highScore,
		Lines:     g.lines,
		GameOver:  g.gameOver,
	}

	for row := range s.Blocks {
		s.Blocks[row] = make([]mino.Block, s.Columns)
		for col := range s.Blocks[row] {
			s.Blocks[row][col] = g.colorAtL(row, col)
		}
	}

	if g.piece != nil {
		p := *g.piece
		s.Piece = &p
	}

	return s
}
