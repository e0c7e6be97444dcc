package board

import (
	"math"

	"github.com/daystram/brainrot/position"
)

// RangeUnbounded lets a glider slide until it is blocked or leaves the board.
const RangeUnbounded = math.MaxInt

// glide steps outward along each direction, emitting a MoveTo for every square
// reached. A ray stops at the board edge, after an occupied square (which is still
// emitted as a capture candidate) or once maxRange steps were taken.
func glide(b *Board, from position.Coord, dirs []position.Direction, maxRange int) []Move {
	var mvs []Move
	for _, d := range dirs {
		to := from
		for step := 1; ; step++ {
			to = to.Add(d)
			if !to.Valid() {
				break
			}
			mvs = append(mvs, Move{From: from, Type: MoveTo(to)})
			if b.PieceAt(to) != nil || step >= maxRange {
				break
			}
		}
	}
	return mvs
}

// jump emits a MoveTo for every in-bounds offset, ignoring anything in between.
func jump(from position.Coord, offsets []position.Direction) []Move {
	var mvs []Move
	for _, d := range offsets {
		if to := from.Add(d); to.Valid() {
			mvs = append(mvs, Move{From: from, Type: MoveTo(to)})
		}
	}
	return mvs
}

// step emits a king step for every neighbour accepted by ok.
func step(b *Board, from position.Coord, ok func(position.Coord, Square) bool) []Move {
	var mvs []Move
	for _, d := range position.DirectionsOmni {
		to := from.Add(d)
		sq := b.square(to)
		if sq == nil || !ok(to, *sq) {
			continue
		}
		mvs = append(mvs, Move{From: from, Type: MoveTo(to)})
	}
	return mvs
}

func toEmpty(_ position.Coord, sq Square) bool {
	return sq.IsEmpty()
}
