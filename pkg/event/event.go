package event

// Event carries the state shared by every notification an engine emits.
type Event struct {
	Score     int
	HighScore int
	Message   string
}

// StartEvent is emitted when a new game begins.
type StartEvent struct {
	Event
}

// DrawEvent is emitted whenever the visible grid changes.
type DrawEvent struct {
	Event
}

// ScoreEvent is emitted when landing a piece clears lines.
type ScoreEvent struct {
	Event
	Lines int
}

// HighScoreEvent is emitted when the score passes the high score.
type HighScoreEvent struct {
	Event
}

type GameOverEvent struct {
	Event
}
