package mino

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies the type of each spawned piece.
type Source interface {
	Take() ShapeType
}

// RandomSource picks uniformly from AllShapes on every take. It is not a
// bag: the same type may come up any number of times in a row.
type RandomSource struct {
	Seed int64

	randomizer *rand.Rand

	*sync.Mutex
}

// NewRandomSource returns a source seeded with seed, or with the current
// time when seed is 0.
func NewRandomSource(seed int64) *RandomSource {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}

	return &RandomSource{Seed: seed, randomizer: rand.New(rand.NewSource(seed)), Mutex: new(sync.Mutex)}
}

func (s *RandomSource) Take() ShapeType {
	s.Lock()
	defer s.Unlock()

	return AllShapes[s.randomizer.Intn(len(AllShapes))]
}

// SequenceSource hands out a fixed list of types, starting over at the
// end. It makes spawns deterministic.
type SequenceSource struct {
	Types []ShapeType

	i int
	*sync.Mutex
}

func NewSequenceSource(types ...ShapeType) *SequenceSource {
	if len(types) == 0 {
		types = AllShapes
	}

	return &SequenceSource{Types: types, Mutex: new(sync.Mutex)}
}

func (s *SequenceSource) Take() ShapeType {
	s.Lock()
	defer s.Unlock()

	t := s.Types[s.i]
	if s.i == len(s.Types)-1 {
		s.i = 0
	} else {
		s.i++
	}

	return t
}
