package game

import (
	"go-tetris/internal/piece"

	"github.com/kamstrup/intmap"
)

// Stats counts what happened across the games of one Game instance.
type Stats struct {
	spawned *intmap.Map[piece.Kind, int]
	Lines   int
	Locks   int
	Games   int
}

func newStats() *Stats {
	return &Stats{spawned: intmap.New[piece.Kind, int](piece.KindCount)}
}

// Spawned returns how many pieces of kind k became the current piece.
func (s *Stats) Spawned(k piece.Kind) int {
	n, _ := s.spawned.Get(k)
	return n
}

// TotalSpawned sums Spawned over every kind.
func (s *Stats) TotalSpawned() int {
	total := 0
	for _, k := range piece.Kinds() {
		total += s.Spawned(k)
	}
	return total
}

func (s *Stats) recordSpawn(k piece.Kind) {
	s.spawned.Put(k, s.Spawned(k)+1)
}

func (s *Stats) recordLock(cleared int) {
	s.Locks++
	s.Lines += cleared
}
