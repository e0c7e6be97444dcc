package board

import (
	"github.com/daystram/brainrot/position"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindPawn
	KindRook
	KindKnight
	KindBishop
	KindQueen
	KindKing
	KindGoblin
	KindSkibidi
	KindBus
	KindMonkey
	KindCustom
)

func (k Kind) String() string {
	return k.Name()
}

func (k Kind) Name() string {
	switch k {
	case KindPawn:
		return "Pawn"
	case KindRook:
		return "Rook"
	case KindKnight:
		return "Knight"
	case KindBishop:
		return "Bishop"
	case KindQueen:
		return "Queen"
	case KindKing:
		return "King"
	case KindGoblin:
		return "Goblin"
	case KindSkibidi:
		return "Skibidi"
	case KindBus:
		return "Bus"
	case KindMonkey:
		return "Monkey"
	case KindCustom:
		return "Custom"
	default:
		return ""
	}
}

// Piece is the closed set of piece kinds the engine knows. Host-defined pieces
// enter through Custom.
type Piece interface {
	Kind() Kind
	Side() Side
	SetSide(s Side)

	// Symbol is the notation token, including any nested state.
	Symbol() string

	// InitialMoves returns pseudo-legal candidates before same-side filtering.
	InitialMoves(b *Board, from position.Coord) []Move

	// Clone returns a deep copy, including carried pieces.
	Clone() Piece

	piece()
}

// Carrier is implemented by pieces that hold passengers.
type Carrier interface {
	Piece
	CanCarry(p Piece) bool
	Passengers() []Piece
	Load(p Piece) error
	Unload(index int) (Piece, error)
	Reload(index int, p Piece) error
}

// Effector is implemented by pieces that react after they moved. before is the
// board prior to the move, after is the board being mutated.
type Effector interface {
	PostMoveEffects(before, after *Board, mv Move) error
}

// Phased is implemented by pieces that can PhaseShift in place.
type Phased interface {
	ShiftPhase() error
}

// CanCarry reports whether carrier can take p aboard. Pieces that are not
// carriers never can.
func CanCarry(carrier, p Piece) bool {
	c, ok := carrier.(Carrier)
	return ok && c.CanCarry(p)
}

// Colored holds the side shared by every piece.
type Colored struct {
	Color Side
}

func (c *Colored) Side() Side {
	return c.Color
}

func (c *Colored) SetSide(s Side) {
	c.Color = s
}

func (*Colored) piece() {}

// PieceMoves returns the moves p may make from the given square: InitialMoves with
// off-board destinations dropped and same-side destinations either dropped or
// rewritten into MoveIntoCarrier when the occupant can carry p.
func PieceMoves(b *Board, p Piece, from position.Coord) []Move {
	candidates := p.InitialMoves(b, from)
	mvs := make([]Move, 0, len(candidates))
	for _, mv := range candidates {
		if mv.Type.Kind != MoveKindMoveTo {
			mvs = append(mvs, mv)
			continue
		}
		sq := b.square(mv.Type.Target)
		if sq == nil {
			continue
		}
		if sq.Piece != nil && sq.Piece.Side() == p.Side() {
			if !CanCarry(sq.Piece, p) {
				continue
			}
			mv.Type = MoveIntoCarrier(mv.Type.Target)
		}
		mvs = append(mvs, mv)
	}
	return mvs
}
