package board

import (
	"github.com/daystram/brainrot/position"
)

// Monkey steps like a king onto empty squares and jumps over any adjacent piece.
// Jumps chain from every empty landing square; landing on an enemy captures it and
// ends that chain. Every chained landing is reachable in a single move.
type Monkey struct{ Colored }

func NewMonkey(s Side) *Monkey { return &Monkey{Colored{s}} }

func (*Monkey) Kind() Kind       { return KindMonkey }
func (m *Monkey) Symbol() string { return m.Color.Cased("M") }
func (m *Monkey) Clone() Piece   { c := *m; return &c }

func (m *Monkey) InitialMoves(b *Board, from position.Coord) []Move {
	mvs := step(b, from, toEmpty)
	seen := make(map[position.Coord]bool, len(mvs))
	for _, mv := range mvs {
		seen[mv.Type.Target] = true
	}
	visited := make(map[position.Coord]bool)
	for _, to := range m.jumps(b, from, visited, nil) {
		if seen[to] {
			continue
		}
		seen[to] = true
		mvs = append(mvs, Move{From: from, Type: MoveTo(to)})
	}
	return mvs
}

// jumps walks the jump graph depth first. visited is shared across the whole
// search so every landing square is expanded at most once.
func (m *Monkey) jumps(b *Board, at position.Coord, visited map[position.Coord]bool, acc []position.Coord) []position.Coord {
	for _, d := range position.DirectionsOmni {
		over, to := at.Add(d), at.Add(d).Add(d)
		if !over.Valid() || !to.Valid() || visited[to] {
			continue
		}
		if b.PieceAt(over) == nil {
			continue
		}
		switch target := b.PieceAt(to); {
		case target == nil:
			visited[to] = true
			acc = append(acc, to)
			acc = m.jumps(b, to, visited, acc)
		case target.Side() != m.Color:
			visited[to] = true
			acc = append(acc, to)
		}
	}
	return acc
}
