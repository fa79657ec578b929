package game

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

type testEngine struct {
	*Engine
	scheduler *ManualScheduler
	store     *MemoryStore
	events    []interface{}
}

func newTestEngine(t *testing.T, source mino.Source) *testEngine {
	t.Helper()

	te := &testEngine{scheduler: NewManualScheduler(), store: &MemoryStore{}}

	g, err := NewEngine(context.Background(), Options{Source: source, Scheduler: te.scheduler, Store: te.store})
	require.NoError(t, err)

	g.AddListener(func(e interface{}) {
		te.events = append(te.events, e)
	})
	te.Engine = g

	return te
}

// fillRow settles blocks across a row except the listed columns.
func (te *testEngine) fillRow(row int, holes ...int) {
	te.Lock()
	defer te.Unlock()

	for col := 0; col < te.board.Columns(); col++ {
		skip := false
		for _, h := range holes {
			if h == col {
				skip = true
			}
		}
		if !skip {
			te.board.SetBlock(row, col, mino.BlockSolidRed)
		}
	}
}

func (te *testEngine) countEvents(match func(interface{}) bool) int {
	n := 0
	for _, e := range te.events {
		if match(e) {
			n++
		}
	}

	return n
}

func TestEngineStart(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))

	assert.False(t, te.HasActivePiece())
	assert.False(t, te.IsGameOver())
	assert.Equal(t, 0, te.scheduler.Active())

	te.Start()

	p, ok := te.Piece()
	require.True(t, ok)
	assert.Equal(t, mino.Point{Row: 0, Col: 4}, p.Point)
	assert.Equal(t, mino.BlockSolidYellow, p.Block)
	assert.False(t, te.IsGameOver())
	assert.Equal(t, 1, te.scheduler.Active())
	assert.Equal(t, DefaultFallTime, te.scheduler.handles[0].interval)

	te.Start()
	assert.Equal(t, 2, te.scheduler.Scheduled())
	assert.Equal(t, 1, te.scheduler.Active(), "restarting must cancel the previous tick")

	_, ok = te.events[0].(*event.StartEvent)
	assert.True(t, ok)
}

func TestEngineStartResetsGame(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))
	te.Start()

	te.fillRow(19, 4, 5)
	te.HardDrop()
	require.Equal(t, 100, te.Score())

	te.Start()
	assert.Equal(t, 0, te.Score())
	assert.Equal(t, 0, te.Lines())
	assert.Equal(t, 100, te.HighScore())

	s := te.Snapshot()
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Columns; col++ {
			if s.Piece.Occupies(mino.Point{Row: row, Col: col}) {
				continue
			}
			require.Equal(t, mino.BlockNone, s.Blocks[row][col], "board not cleared at (%d,%d)", row, col)
		}
	}
}

func TestEngineTick(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))
	te.Start()

	te.scheduler.Fire()
	p, _ := te.Piece()
	assert.Equal(t, 1, p.Row)

	te.scheduler.FireN(17)
	p, _ = te.Piece()
	assert.Equal(t, 18, p.Row)

	// Blocked by the floor: lock and spawn.
	te.scheduler.Fire()
	p, ok := te.Piece()
	require.True(t, ok)
	assert.Equal(t, mino.Point{Row: 0, Col: 4}, p.Point)

	for _, loc := range []mino.Point{{Row: 18, Col: 4}, {Row: 18, Col: 5}, {Row: 19, Col: 4}, {Row: 19, Col: 5}} {
		assert.Equal(t, mino.BlockSolidYellow, te.ColorAt(loc.Row, loc.Col), "expected locked block at %s", loc)
	}
	assert.Equal(t, 0, te.Score())
}

func TestEngineTickWithoutPiece(t *testing.T) {
	te := newTestEngine(t, nil)

	te.Tick()
	te.MoveLeft()
	te.MoveRight()
	te.Rotate()
	te.HardDrop()

	assert.False(t, te.HasActivePiece())
	assert.False(t, te.IsGameOver())
	assert.Empty(t, te.events)
}

func TestEngineMove(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))
	te.Start()

	for i := 0; i < 10; i++ {
		te.MoveLeft()
	}
	p, _ := te.Piece()
	assert.Equal(t, 0, p.Col)

	for i := 0; i < 10; i++ {
		te.MoveRight()
	}
	p, _ = te.Piece()
	assert.Equal(t, 8, p.Col)
	assert.Equal(t, 0, p.Row)

	// Blocked by a settled block.
	te.Lock()
	te.board.SetBlock(1, 7, mino.BlockSolidRed)
	te.Unlock()

	te.MoveLeft()
	p, _ = te.Piece()
	assert.Equal(t, 8, p.Col)
}

func TestEngineRotate(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeI))
	te.Start()

	te.Rotate()
	p, _ := te.Piece()
	assert.Equal(t, mino.Point{Row: 0, Col: 3}, p.Point)
	assert.Equal(t, 1, p.Shape.Width())
	assert.Equal(t, 4, p.Shape.Height())

	for i := 0; i < 6; i++ {
		te.MoveRight()
	}
	p, _ = te.Piece()
	require.Equal(t, 9, p.Col)

	// Horizontal would reach column 12: rejected, no kick.
	te.Rotate()
	rejected, _ := te.Piece()
	assert.Equal(t, p.Point, rejected.Point)
	assert.True(t, p.Shape.Equal(rejected.Shape))

	te.MoveLeft()
	te.MoveLeft()
	te.MoveLeft()
	te.Rotate()
	p, _ = te.Piece()
	assert.Equal(t, mino.Point{Row: 0, Col: 6}, p.Point)
	assert.Equal(t, 4, p.Shape.Width())
}

func TestEngineRotateBlocked(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeT))
	te.Start()

	te.Lock()
	te.board.SetBlock(2, 3, mino.BlockSolidRed)
	te.Unlock()

	// T rotated clockwise occupies (2,3).
	te.Rotate()
	p, _ := te.Piece()
	assert.True(t, p.Shape.Equal(mino.ShapeT.Shape()))
}

func TestEngineHardDropClearsLine(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))
	te.Start()

	te.fillRow(19, 4, 5)
	te.HardDrop()

	assert.Equal(t, 100, te.Score())
	assert.Equal(t, 1, te.Lines())
	assert.Equal(t, 100, te.HighScore())
	assert.Equal(t, 100, te.store.Score)

	s := te.Snapshot()
	for col := 0; col < s.Columns; col++ {
		expected := mino.BlockNone
		if col == 4 || col == 5 {
			expected = mino.BlockSolidYellow
		}
		assert.Equal(t, expected, s.Blocks[19][col], "bottom row column %d", col)
		assert.Equal(t, mino.BlockNone, s.Blocks[18][col], "row 18 column %d", col)
	}

	p, ok := te.Piece()
	require.True(t, ok)
	assert.Equal(t, 0, p.Row)

	assert.Equal(t, 1, te.countEvents(func(e interface{}) bool {
		ev, ok := e.(*event.ScoreEvent)
		return ok && ev.Lines == 1 && ev.Score == 100
	}))
	assert.Equal(t, 1, te.countEvents(func(e interface{}) bool {
		ev, ok := e.(*event.HighScoreEvent)
		return ok && ev.HighScore == 100
	}))
}

func TestEngineHardDropClearsTwoLines(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))
	te.Start()

	te.fillRow(18, 4, 5)
	te.fillRow(19, 4, 5)
	te.HardDrop()

	assert.Equal(t, 200, te.Score())
	assert.Equal(t, 2, te.Lines())
}

func TestEngineHardDropLandsOnBlocks(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))
	te.Start()

	te.Lock()
	te.board.SetBlock(10, 5, mino.BlockSolidRed)
	te.Unlock()

	te.HardDrop()
	assert.Equal(t, mino.BlockSolidYellow, te.ColorAt(8, 4))
	assert.Equal(t, mino.BlockSolidYellow, te.ColorAt(9, 5))
	assert.Equal(t, mino.BlockNone, te.ColorAt(11, 4))
}

func TestEngineHighScoreNotLowered(t *testing.T) {
	store := &MemoryStore{Score: 500}
	scheduler := NewManualScheduler()

	g, err := NewEngine(context.Background(), Options{Source: mino.NewSequenceSource(mino.ShapeO), Scheduler: scheduler, Store: store})
	require.NoError(t, err)
	require.Equal(t, 500, g.HighScore())

	g.Start()
	for col := 0; col < 10; col++ {
		if col != 4 && col != 5 {
			g.board.SetBlock(19, col, mino.BlockSolidRed)
		}
	}
	g.HardDrop()

	assert.Equal(t, 100, g.Score())
	assert.Equal(t, 500, g.HighScore())
	assert.Equal(t, 0, store.Saves)
}

func TestEngineGameOver(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))
	te.Start()

	te.Lock()
	for row := 2; row < 20; row++ {
		te.board.SetBlock(row, 4, mino.BlockSolidRed)
		te.board.SetBlock(row, 5, mino.BlockSolidRed)
	}
	te.Unlock()

	// The piece lands at the top and the next spawn overlaps it.
	te.scheduler.Fire()

	assert.True(t, te.IsGameOver())
	assert.False(t, te.HasActivePiece())
	assert.Equal(t, 0, te.scheduler.Active())
	assert.Equal(t, 1, te.countEvents(func(e interface{}) bool {
		_, ok := e.(*event.GameOverEvent)
		return ok
	}))

	before := te.Snapshot()
	eventCount := len(te.events)

	te.MoveLeft()
	te.MoveRight()
	te.Rotate()
	te.HardDrop()
	te.Tick()
	assert.Equal(t, 0, te.scheduler.Fire())

	assert.Equal(t, before, te.Snapshot())
	assert.Len(t, te.events, eventCount)

	te.Start()
	assert.False(t, te.IsGameOver())
	assert.True(t, te.HasActivePiece())
	assert.Equal(t, 1, te.scheduler.Active())
}

func TestEngineStaleTickIgnored(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))
	te.Start()

	te.Lock()
	gen := te.tickGen
	te.Unlock()

	te.Start()
	te.tick(gen)

	p, _ := te.Piece()
	assert.Equal(t, 0, p.Row)

	te.Stop()
	assert.Equal(t, 0, te.scheduler.Active())

	te.Lock()
	gen = te.tickGen
	te.Unlock()
	te.tick(gen)

	p, _ = te.Piece()
	assert.Equal(t, 0, p.Row, "tick after Stop must be ignored")
}

func TestEngineColorAt(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeT))
	te.Start()

	te.Lock()
	te.board.SetBlock(19, 0, mino.BlockSolidGreen)
	te.Unlock()

	assert.Equal(t, mino.BlockSolidMagenta, te.ColorAt(0, 4))
	assert.Equal(t, mino.BlockSolidMagenta, te.ColorAt(1, 3))
	assert.Equal(t, mino.BlockNone, te.ColorAt(0, 3))
	assert.Equal(t, mino.BlockSolidGreen, te.ColorAt(19, 0))
	assert.Equal(t, mino.BlockNone, te.ColorAt(-1, 0))
	assert.Equal(t, mino.BlockNone, te.ColorAt(0, 10))
}

func TestEngineProcessAction(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeI))

	te.ProcessAction(event.ActionStart)
	require.True(t, te.HasActivePiece())

	te.ProcessAction(event.ActionMoveLeft)
	p, _ := te.Piece()
	assert.Equal(t, 2, p.Col)

	te.ProcessAction(event.ActionMoveRight)
	te.ProcessAction(event.ActionMoveRight)
	p, _ = te.Piece()
	assert.Equal(t, 4, p.Col)

	te.ProcessAction(event.ActionRotate)
	p, _ = te.Piece()
	assert.Equal(t, 4, p.Shape.Height())

	te.ProcessAction(event.ActionUnknown)

	te.ProcessAction(event.ActionHardDrop)
	assert.Equal(t, mino.BlockSolidCyan, te.ColorAt(19, 4))
	assert.Equal(t, mino.BlockSolidCyan, te.ColorAt(16, 4))
}

func TestEngineListenerMayQuery(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeO))

	var scores []int
	te.AddListener(func(e interface{}) {
		scores = append(scores, te.Score())
		te.HasActivePiece()
	})

	te.Start()
	te.MoveLeft()
	assert.NotEmpty(t, scores)
}

func TestEngineScoreMonotonic(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		te := newTestEngine(t, mino.NewRandomSource(seed))
		r := rand.New(rand.NewSource(seed))

		te.Start()

		lastScore, lastHigh := 0, te.HighScore()
		for i := 0; i < 5000 && !te.IsGameOver(); i++ {
			switch r.Intn(6) {
			case 0:
				te.MoveLeft()
			case 1:
				te.MoveRight()
			case 2:
				te.Rotate()
			case 3:
				te.HardDrop()
			default:
				te.scheduler.Fire()
			}

			score, high := te.Score(), te.HighScore()
			require.GreaterOrEqual(t, score, lastScore)
			require.Zero(t, (score-lastScore)%DefaultScorePerLine)
			require.Equal(t, te.Lines()*DefaultScorePerLine, score)
			require.GreaterOrEqual(t, high, lastHigh)
			require.GreaterOrEqual(t, high, score)

			lastScore, lastHigh = score, high
		}
	}
}

type failingStore struct {
	loadErr error
	saveErr error
}

func (s failingStore) LoadHighScore(ctx context.Context) (int, error) { return 0, s.loadErr }
func (s failingStore) SaveHighScore(ctx context.Context, score int) error {
	return s.saveErr
}

func TestEngineStoreErrors(t *testing.T) {
	_, err := NewEngine(context.Background(), Options{Store: failingStore{loadErr: errors.New("disk on fire")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")

	var buf bytes.Buffer
	g, err := NewEngine(context.Background(), Options{
		Source:    mino.NewSequenceSource(mino.ShapeO),
		Scheduler: NewManualScheduler(),
		Store:     failingStore{saveErr: errors.New("read only")},
		Logger:    log.New(&buf, "", 0),
	})
	require.NoError(t, err)

	g.Start()
	for col := 0; col < 10; col++ {
		if col != 4 && col != 5 {
			g.board.SetBlock(19, col, mino.BlockSolidRed)
		}
	}
	g.HardDrop()

	assert.Equal(t, 100, g.HighScore())
	assert.True(t, g.HasActivePiece())
	assert.Contains(t, buf.String(), "failed to save high score 100: read only")
}

func TestEngineSnapshotMatchesColorAt(t *testing.T) {
	te := newTestEngine(t, mino.NewSequenceSource(mino.ShapeL, mino.ShapeZ))
	te.Start()

	te.HardDrop()
	te.Rotate()
	te.MoveRight()
	te.scheduler.FireN(3)

	s := te.Snapshot()
	require.True(t, s.Active())
	require.Len(t, s.Blocks, te.Rows())

	for row := 0; row < s.Rows; row++ {
		require.Len(t, s.Blocks[row], te.Columns())
		for col := 0; col < s.Columns; col++ {
			assert.Equal(t, te.ColorAt(row, col), s.Blocks[row][col], "cell (%d,%d)", row, col)
		}
	}

	for _, loc := range s.Piece.Cells() {
		assert.Equal(t, mino.BlockSolidRed, s.Blocks[loc.Row][loc.Col])
	}
	assert.Equal(t, mino.BlockSolidOrange, s.Blocks[19][4])
}
