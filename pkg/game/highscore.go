package game

import (
	"context"
	"sync"
)

// HighScoreStore persists the best score across games. The engine loads it
// once when constructed and saves every time the high score rises.
type HighScoreStore interface {
	LoadHighScore(ctx context.Context) (int, error)
	SaveHighScore(ctx context.Context, score int) error
}

// MemoryStore keeps the high score for the life of the process.
type MemoryStore struct {
	Score int
	Saves int

	sync.Mutex
}

func (s *MemoryStore) LoadHighScore(ctx context.Context) (int, error) {
	s.Lock()
	defer s.Unlock()

	return s.Score, nil
}

func (s *MemoryStore) SaveHighScore(ctx context.Context, score int) error {
	s.Lock()
	defer s.Unlock()

	s.Saves++
	if score > s.Score {
		s.Score = score
	}
	return nil
}
