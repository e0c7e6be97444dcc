package board

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/daystram/brainrot/position"
)

const (
	SkibidiMinPhase = 1
	SkibidiMaxPhase = 4
)

// Skibidi steps like a king, may only capture other Skibidis and spends moves to
// raise its phase. Its phase controls the Brainrot it radiates.
type Skibidi struct {
	Colored
	Phase int
}

func NewSkibidi(s Side) *Skibidi {
	return &Skibidi{Colored: Colored{s}, Phase: SkibidiMinPhase}
}

func (*Skibidi) Kind() Kind      { return KindSkibidi }
func (sk *Skibidi) Clone() Piece { c := *sk; return &c }

// BrainrotRadius is the Chebyshev radius tagged around the Skibidi.
func (sk *Skibidi) BrainrotRadius() int {
	if sk.Phase < SkibidiMinPhase || sk.Phase > SkibidiMaxPhase {
		return 0
	}
	return sk.Phase - 1
}

func (sk *Skibidi) ShiftPhase() error {
	if sk.Phase >= SkibidiMaxPhase {
		return fmt.Errorf("%w: skibidi already at phase %d", ErrUnsupportedMove, sk.Phase)
	}
	sk.Phase++
	return nil
}

func (sk *Skibidi) Symbol() string {
	sym := sk.Color.Cased("S")
	if sk.Phase > SkibidiMinPhase {
		sym += "(PHASE=" + strconv.Itoa(sk.Phase) + ")"
	}
	return sym
}

func (sk *Skibidi) InitialMoves(b *Board, from position.Coord) []Move {
	mvs := step(b, from, func(_ position.Coord, sq Square) bool {
		return sq.Piece == nil || sq.Piece.Kind() == KindSkibidi
	})
	if sk.Phase < SkibidiMaxPhase {
		mvs = append(mvs, Move{From: from, Type: PhaseShift()})
	}
	return mvs
}

// PostMoveEffects resets the phase whenever the Skibidi relocates.
func (sk *Skibidi) PostMoveEffects(_, after *Board, mv Move) error {
	if mv.Type.Kind != MoveKindMoveTo {
		return nil
	}
	sk.Phase = SkibidiMinPhase
	log().Debug("skibidi phase reset", coordField("at", mv.Type.Target))
	return after.SetPieceAt(mv.Type.Target, sk)
}

func decodeSkibidi(name, state string) Piece {
	sk := NewSkibidi(sideOfSymbol(name))
	for _, f := range stateFields(state) {
		switch f.key {
		case "PHASE":
			phase, err := strconv.Atoi(f.value)
			if err != nil || phase < SkibidiMinPhase || phase > SkibidiMaxPhase {
				log().Warn("invalid skibidi phase", zap.String("value", f.value))
				continue
			}
			sk.Phase = phase
		default:
			log().Warn("unknown skibidi attribute", zap.String("field", f.raw))
		}
	}
	return sk
}
