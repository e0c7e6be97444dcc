package engine

import (
	"github.com/daystram/brainrot/board"
	"github.com/daystram/brainrot/position"
)

var (
	scoreMaterial = map[board.Kind]int32{
		board.KindPawn:    100,
		board.KindKnight:  320,
		board.KindBishop:  330,
		board.KindRook:    500,
		board.KindQueen:   900,
		board.KindKing:    2000,
		board.KindGoblin:  400,
		board.KindSkibidi: 150,
		board.KindBus:     250,
		board.KindMonkey:  300,
		board.KindCustom:  300,
	}

	// PST tables taken from https://www.chessprogramming.org/Simplified_Evaluation_Function,
	// laid out from White's point of view with rank 0 first.
	scorePiecePosition = map[board.Kind][64]int32{
		board.KindPawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			50, 50, 50, 50, 50, 50, 50, 50,
			10, 10, 20, 30, 30, 20, 10, 10,
			5, 5, 10, 25, 25, 10, 5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, -5, -10, 0, 0, -10, -5, 5,
			5, 10, 10, -20, -20, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		board.KindKnight: {
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
	}

	scoreSkibidiPhase int32 = 40
	scoreLocked       int32 = 30
)

// Evaluate scores the board from the point of view of side: material including
// carried pieces, piece placement, and a penalty for pieces stuck on Frozen or
// Brainrot squares.
func Evaluate(b *board.Board, side board.Side) int32 {
	var score int32
	for c, p := range b.AllPieces() {
		v := pieceValue(p) + placement(p, c)
		if sq, err := b.SquareAt(c); err == nil && sq.Conditions.Immobilizing() {
			v -= scoreLocked
		}
		if p.Side() == side {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

func pieceValue(p board.Piece) int32 {
	v := scoreMaterial[p.Kind()]
	switch pp := p.(type) {
	case *board.Goblin:
		if pp.Cargo != nil {
			v += scoreMaterial[pp.Cargo.Kind()] / 2
		}
	case *board.Skibidi:
		v += int32(pp.Phase-board.SkibidiMinPhase) * scoreSkibidiPhase
	case board.Carrier:
		for _, passenger := range pp.Passengers() {
			v += pieceValue(passenger)
		}
	}
	return v
}

func placement(p board.Piece, c position.Coord) int32 {
	table, ok := scorePiecePosition[p.Kind()]
	if !ok {
		return 0
	}
	rank := c.Rank
	if p.Side() == board.SideBlack {
		rank = position.MaxComponentScalar - 1 - rank
	}
	return table[rank*position.MaxComponentScalar+c.File]
}

type scoredMove struct {
	mv    board.Move
	score int32
}

// scoreMoves orders the PV move first, then captures by most valuable victim and
// least valuable attacker.
func scoreMoves(b *board.Board, pv board.Move, mvs []board.Move) []scoredMove {
	scored := make([]scoredMove, len(mvs))
	for i, mv := range mvs {
		scored[i].mv = mv
		switch {
		case mv.Equal(pv):
			scored[i].score = ScoreInfinite
		case mv.Type.Kind == board.MoveKindMoveTo:
			victim := b.PieceAt(mv.Type.Target)
			attacker := b.PieceAt(mv.From)
			if victim != nil && attacker != nil && victim.Side() != attacker.Side() {
				scored[i].score = scoreMaterial[victim.Kind()]*10 - scoreMaterial[attacker.Kind()]
			}
		}
	}
	return scored
}

func sortMoves(mvs []scoredMove, index int) {
	bestIndex, bestScore := index, mvs[index].score
	for i := index + 1; i < len(mvs); i++ {
		if mvs[i].score > bestScore {
			bestIndex = i
			bestScore = mvs[i].score
		}
	}
	mvs[index], mvs[bestIndex] = mvs[bestIndex], mvs[index]
}
